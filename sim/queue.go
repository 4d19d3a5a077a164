// Implements the WaitQueue, which holds admitted patients waiting for an exam room.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of patient IDs ordered by arrival.
// It is non-empty only while every exam room is busy.
type WaitQueue struct {
	queue []int
}

// Enqueue adds a patient to the back of the wait queue.
func (wq *WaitQueue) Enqueue(patientID int) {
	wq.queue = append(wq.queue, patientID)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range wq.queue {
		sb.WriteString(fmt.Sprint(id))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of waiting patients.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the patient at the front of the queue without removing it.
// ok is false if the queue is empty.
func (wq *WaitQueue) Peek() (patientID int, ok bool) {
	if len(wq.queue) == 0 {
		return -1, false
	}
	return wq.queue[0], true
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (wq *WaitQueue) Items() []int {
	return wq.queue
}

// Dequeue removes the patient at the front of the queue.
func (wq *WaitQueue) Dequeue() (patientID int, ok bool) {
	if len(wq.queue) == 0 {
		return -1, false
	}
	patientID = wq.queue[0]
	wq.queue = wq.queue[1:]
	return patientID, true
}
