package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExamRoom_AssignAndRelease(t *testing.T) {
	// GIVEN a free room
	r := NewExamRoom(2)
	assert.False(t, r.Busy)
	assert.Equal(t, -1, r.PatientID)

	// WHEN a patient is examined from 1 to 4
	r.Assign(7, 1, 4)
	assert.True(t, r.Busy)
	assert.Equal(t, 7, r.PatientID)
	assert.Equal(t, 4.0, r.CompletionTime)
	got := r.Release(4)

	// THEN the room is free again and its busy time accumulated
	assert.Equal(t, 7, got)
	assert.False(t, r.Busy)
	assert.Equal(t, -1, r.PatientID)
	assert.Equal(t, 3.0, r.BusyTime)
	assert.Equal(t, 1, r.Served)
	assert.Equal(t, "Exam room 2", r.String())
}

func TestExamRoom_InvariantViolationsPanic(t *testing.T) {
	t.Run("assign busy room", func(t *testing.T) {
		r := NewExamRoom(0)
		r.Assign(1, 0, 1)
		assert.Panics(t, func() { r.Assign(2, 0, 1) })
	})
	t.Run("completion before start", func(t *testing.T) {
		assert.Panics(t, func() { NewExamRoom(0).Assign(1, 5, 4) })
	})
	t.Run("release free room", func(t *testing.T) {
		assert.Panics(t, func() { NewExamRoom(0).Release(1) })
	})
	t.Run("release at wrong time", func(t *testing.T) {
		r := NewExamRoom(0)
		r.Assign(1, 0, 2)
		assert.Panics(t, func() { r.Release(1.5) })
	})
}
