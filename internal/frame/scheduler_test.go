package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickRunsInRequestOrder(t *testing.T) {
	s := New()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		s.RequestFrame(func(time.Duration) { got = append(got, i) })
	}
	assert.Equal(t, 3, s.Pending())
	assert.Equal(t, 3, s.Tick(0))
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, s.Tick(time.Millisecond))
}

func TestRequestDuringTickRunsNextTick(t *testing.T) {
	s := New()
	calls := 0
	var loop Callback
	loop = func(time.Duration) {
		calls++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)
	s.Tick(0)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Pending())
	s.Tick(16 * time.Millisecond)
	assert.Equal(t, 2, calls)
}

func TestCancelFrame(t *testing.T) {
	s := New()
	ran := false
	h := s.RequestFrame(func(time.Duration) { ran = true })
	s.CancelFrame(h)
	s.CancelFrame(h)
	s.CancelFrame(Handle(999))
	assert.Equal(t, 0, s.Tick(0))
	assert.False(t, ran)
}

func TestCancelWithinSameTick(t *testing.T) {
	s := New()
	secondRan := false
	var second Handle
	s.RequestFrame(func(time.Duration) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Duration) { secondRan = true })
	assert.Equal(t, 1, s.Tick(0))
	assert.False(t, secondRan)
}

func TestTickPassesClock(t *testing.T) {
	s := New()
	var seen time.Duration
	s.RequestFrame(func(now time.Duration) { seen = now })
	s.Tick(42 * time.Millisecond)
	assert.Equal(t, 42*time.Millisecond, seen)
}
