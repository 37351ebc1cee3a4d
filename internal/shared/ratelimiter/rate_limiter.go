// Package ratelimiter は、キーごと（クライアントIPなど）に操作の頻度を制限します。
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、キー単位で操作を許可するかを判定するインターフェースです。
type RateLimiterInterface interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter はキーごとにトークンバケットを保持します。
// interval あたり limit 回まで許可し、バースト上限も limit です。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	idleTTL  time.Duration
	visitors map[string]*visitor
	now      func() time.Time

	// lastSweep は最後に sweep した時刻。sweep は interval に1回だけ実行する
	lastSweep time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合、nilを返します（制限なし）。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return nil
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		idleTTL:  3 * interval,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow は key に対する操作を1回消費し、上限内であれば true を返します。
// nil の RateLimiter は常に true を返します。
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.interval {
		rl.sweep(now)
		rl.lastSweep = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		every := rl.interval / time.Duration(rl.limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), rl.limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep は idleTTL 以上アクセスのないキーを削除します。呼び出し側でロックを保持すること。
func (rl *RateLimiter) sweep(now time.Time) {
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idleTTL {
			delete(rl.visitors, k)
		}
	}
}

// Len は現在追跡しているキーの数を返します。
func (rl *RateLimiter) Len() int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
