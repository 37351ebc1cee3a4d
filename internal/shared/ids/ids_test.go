package ids

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Valid(t *testing.T) {
	t.Parallel()

	id := New()
	assert.Len(t, id, 26)
	assert.True(t, Valid(id))
}

// TestNew_Monotonic は同一プロセス内で生成したIDが単調増加することを検証します。
func TestNew_Monotonic(t *testing.T) {
	t.Parallel()

	now := time.Now()
	prev := NewAt(now)
	for i := 0; i < 100; i++ {
		next := NewAt(now)
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestNew_ConcurrentUnique(t *testing.T) {
	t.Parallel()

	const n = 500
	var wg sync.WaitGroup
	out := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out <- New()
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[string]struct{}, n)
	for id := range out {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"generated", New(), true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"too short", "01ARZ3NDEKTSV4RRFFQ69G5FA", false},
		{"invalid char", "01ARZ3NDEKTSV4RRFFQ69G5FAU", false},
		{"mongo object id", "507f1f77bcf86cd799439011", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}
