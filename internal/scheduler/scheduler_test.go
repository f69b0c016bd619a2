package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunUntilDispatchesInTimeOrder(t *testing.T) {
	s := New()
	var order []string
	s.ScheduleAt(2, func(*Scheduler) { order = append(order, "b") })
	s.ScheduleAt(1, func(*Scheduler) { order = append(order, "a") })
	s.ScheduleAt(3, func(*Scheduler) { order = append(order, "c") })
	s.RunUntil(10)
	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Equal(t, float64(3), s.Now())
}

func TestTieBreakIsInsertionOrder(t *testing.T) {
	s := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.ScheduleAt(5, func(*Scheduler) { order = append(order, i) })
	}
	s.RunUntil(5)
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestScheduleInPastIsRejected(t *testing.T) {
	s := New()
	s.ScheduleAt(5, func(*Scheduler) {})
	s.RunUntil(5)
	_, err := s.ScheduleAt(4, func(*Scheduler) {})
	require.ErrorIs(t, err, ErrScheduleInPast)
}

func TestCancelSkipsActivation(t *testing.T) {
	s := New()
	ran := false
	h, err := s.ScheduleAt(1, func(*Scheduler) { ran = true })
	require.NoError(t, err)
	s.Cancel(h)
	s.RunUntil(10)
	require.False(t, ran)
}

func TestRunUntilStopsAtBoundary(t *testing.T) {
	s := New()
	s.ScheduleAt(100, func(*Scheduler) {})
	s.RunUntil(5)
	require.Equal(t, float64(0), s.Now())
	require.Equal(t, 1, s.Pending())
}

func TestNowNeverDecreases(t *testing.T) {
	s := New()
	var times []float64
	for _, at := range []float64{1, 1, 2, 5} {
		at := at
		s.ScheduleAt(at, func(sc *Scheduler) { times = append(times, sc.Now()) })
	}
	s.RunUntil(10)
	for i := 1; i < len(times); i++ {
		require.GreaterOrEqual(t, times[i], times[i-1])
	}
}
