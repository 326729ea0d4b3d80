package engine

import "container/heap"

// Scheduler is a time-and-priority ordered event queue. Events may be
// enqueued while the queue is being drained; they merge into total order
// rather than appending. Owned by one engine run and discarded with it.
type Scheduler struct {
	h   eventHeap
	seq uint64
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.h)
	return s
}

// Enqueue assigns each event the next sequence number and inserts it.
func (s *Scheduler) Enqueue(events ...Event) {
	for _, ev := range events {
		s.seq++
		ev.seq = s.seq
		heap.Push(&s.h, ev)
	}
}

// Next removes and returns the lowest-ordered pending event.
func (s *Scheduler) Next() (Event, bool) {
	if len(s.h) == 0 {
		return Event{}, false
	}
	return heap.Pop(&s.h).(Event), true
}

func (s *Scheduler) Len() int {
	return len(s.h)
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return h[i].Before(h[j])
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}
