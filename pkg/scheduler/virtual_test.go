package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualAdvanceRunsDueTasksInOrder(t *testing.T) {
	v := NewVirtual(time.Unix(0, 0))

	var order []string
	require.NoError(t, v.RunAfter(5*time.Second, func() { order = append(order, "a") }))
	require.NoError(t, v.RunAfter(2*time.Second, func() { order = append(order, "b") }))
	require.NoError(t, v.RunAfter(10*time.Second, func() { order = append(order, "c") }))

	v.Advance(6 * time.Second)

	assert.Equal(t, []string{"b", "a"}, order)
	assert.Equal(t, 1, v.PendingCount())
}

func TestVirtualAdvanceDoesNotRunFutureTasks(t *testing.T) {
	v := NewVirtual(time.Unix(0, 0))

	ran := false
	require.NoError(t, v.RunAfter(10*time.Second, func() { ran = true }))

	v.Advance(1 * time.Second)
	assert.False(t, ran)
}

func TestVirtualTaskSchedulingAnotherTaskRunsWithinSameAdvance(t *testing.T) {
	v := NewVirtual(time.Unix(0, 0))

	var order []string
	require.NoError(t, v.RunAfter(1*time.Second, func() {
		order = append(order, "first")
		_ = v.RunAfter(1*time.Second, func() { order = append(order, "chained") })
	}))

	v.Advance(5 * time.Second)

	assert.Equal(t, []string{"first", "chained"}, order)
}

func TestVirtualNowAdvances(t *testing.T) {
	start := time.Unix(1000, 0)
	v := NewVirtual(start)

	v.Advance(30 * time.Second)
	assert.Equal(t, start.Add(30*time.Second), v.Now())
}
