package io

// Queue is a replayable in-memory input port. Values are appended with
// Push and consumed in order; Rewind replays them from the start.
type Queue struct {
	Values []int

	next int
}

var _ InputPort = (*Queue)(nil)

// Push appends values to the end of the queue.
func (q *Queue) Push(values ...int) {
	q.Values = append(q.Values, values...)
}

// Read returns the next queued value, or ok=false when drained.
func (q *Queue) Read() (value int, ok bool) {
	if q.next >= len(q.Values) {
		return
	}
	value, ok = q.Values[q.next], true
	q.next++
	return
}

// Rewind replays the queue from the beginning.
func (q *Queue) Rewind() {
	q.next = 0
}
