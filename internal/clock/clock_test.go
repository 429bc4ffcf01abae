package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClockNow(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "RealClock.Now should not be before the call")
	assert.False(t, got.After(after), "RealClock.Now should not be after the call")
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	c := NewMockClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.UnixMilli(), c.NowUnixMilli())

	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())

	c.Advance(-time.Minute)
	assert.Equal(t, start.Add(30*time.Second), c.Now())

	later := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
	assert.Equal(t, later.UnixMilli(), c.NowUnixMilli())
}

func TestMockClockConcurrentAccess(t *testing.T) {
	c := NewMockClock(time.Unix(0, 0))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Advance(time.Second)
		}
		close(done)
	}()

	for i := 0; i < 100; i++ {
		_ = c.NowUnixMilli()
	}
	<-done

	assert.Equal(t, int64(100_000), c.NowUnixMilli())
}
