package ladder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualScheduler_RunsInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string

	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(10*time.Millisecond, func() {
		got = append(got, "a")
		s.AfterFunc(5*time.Millisecond, func() { got = append(got, "b") })
	})
	stopped := s.AfterFunc(20*time.Millisecond, func() { got = append(got, "x") })
	require.True(t, stopped.Stop())
	require.False(t, stopped.Stop())

	s.Advance(25 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, s.Pending())

	s.Advance(5 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 0, s.Pending())
}

func TestManualScheduler_SameDeadlineKeepsOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []int
	for i := 0; i < 3; i++ {
		s.AfterFunc(time.Second, func() { got = append(got, i) })
	}
	s.Advance(time.Second)
	require.Equal(t, []int{0, 1, 2}, got)
}

func TestLockedScheduler_HoldsLock(t *testing.T) {
	var mu sync.Mutex
	s := NewLockedScheduler(&mu)
	done := make(chan struct{})

	mu.Lock()
	s.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
		t.Fatal("callback ran while the lock was held")
	case <-time.After(30 * time.Millisecond):
	}
	mu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}

func TestTimerSet_StopAll(t *testing.T) {
	s := NewManualScheduler()
	var ts timerSet
	fired := false
	ts.add(s.AfterFunc(time.Millisecond, func() { fired = true }))
	ts.add(s.AfterFunc(time.Second, func() { fired = true }))

	ts.stopAll()
	s.Advance(time.Minute)
	require.False(t, fired)
	require.Empty(t, ts.timers)
}
