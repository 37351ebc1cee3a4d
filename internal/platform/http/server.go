// Package http はHTTPサーバーの構成と起動・停止を提供します。
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// NewServer は受信用に設定されたHTTPサーバーを作成します。
//
// 設定:
//   - ReadHeaderTimeout: ヘッダー読み取りの上限（Slowloris対策）
//   - ReadTimeout / WriteTimeout: リクエスト全体の上限
//   - IdleTimeout: Keep-Alive接続の維持期間
//   - MaxHeaderBytes: ヘッダーサイズの上限
//
// 注意:
//   - http.ListenAndServe はタイムアウトを持たないため使用しないこと
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// Serve は ln でリクエストを受け付け、ctx がキャンセルされるとグレースフルに停止します。
// 処理中のリクエストは shutdownTimeout まで完了を待ちます。
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("http server shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// ListenAndServe は srv.Addr で待ち受けを開始し、Serve を呼び出します。
func ListenAndServe(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, ln, shutdownTimeout)
}
