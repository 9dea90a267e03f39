package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeferred_FIFO(t *testing.T) {
	var d Deferred
	var got []int

	for i := 1; i <= 3; i++ {
		d.Push(func() { got = append(got, i) })
	}
	d.Push(nil)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 3, d.Drain())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, d.Len())
}

func TestDeferred_PushDuringDrainRunsNextDrain(t *testing.T) {
	var d Deferred
	var got []string

	d.Push(func() {
		got = append(got, "first")
		d.Push(func() { got = append(got, "second") })
	})

	assert.Equal(t, 1, d.Drain())
	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, 1, d.Len())

	assert.Equal(t, 1, d.Drain())
	assert.Equal(t, []string{"first", "second"}, got)
	assert.Zero(t, d.Drain())
}
