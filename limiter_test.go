package folio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(max int, window time.Duration) (*LoginLimiter, *time.Time) {
	l := NewLoginLimiter(max, window)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)
	defer l.Stop()
	ip := "203.0.113.10"

	assert.True(t, l.Allow(ip))
	assert.True(t, l.Allow(ip))
	assert.False(t, l.Allow(ip))
	assert.True(t, l.Allow("203.0.113.11"), "other IPs are unaffected")
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)
	defer l.Stop()
	ip := "203.0.113.20"

	assert.True(t, l.Allow(ip))
	assert.False(t, l.Allow(ip))

	*clock = clock.Add(time.Minute + time.Second)
	assert.True(t, l.Allow(ip))
}

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	defer l.Stop()
	ip := "203.0.113.30"

	assert.True(t, l.Check(ip))
	assert.True(t, l.Check(ip))
	l.Record(ip)
	assert.False(t, l.Check(ip))
}

func TestLoginLimiterPrune(t *testing.T) {
	l, clock := newTestLimiter(3, time.Minute)
	defer l.Stop()
	l.Record("a")
	*clock = clock.Add(2 * time.Minute)
	l.Record("b")
	l.prune()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.attempts, "a")
	assert.Len(t, l.attempts["b"], 1)
}

func TestLoginLimiterStopTwice(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
