package orderqueue

import (
	"container/heap"
	"sync"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/order"
)

// Queue is a binary heap of pending orders, keyed by urgency descending with
// insertion sequence descending as the tie-break: among equally urgent orders
// the most recently pushed one dequeues first.
type Queue struct {
	mu      sync.Mutex
	entries entryHeap
	seq     uint64
}

func New() *Queue {
	return &Queue{}
}

func (q *Queue) Push(o *domain.Order) {
	if o == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	heap.Push(&q.entries, entry{order: o, seq: q.seq})
}

func (q *Queue) Pop() (*domain.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil, domain.ErrEmptyQueue
	}
	e := heap.Pop(&q.entries).(entry)
	return e.order, nil
}

func (q *Queue) Peek() (*domain.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil, domain.ErrEmptyQueue
	}
	return q.entries[0].order, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

type entry struct {
	order *domain.Order
	seq   uint64
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].order.Urgency != h[j].order.Urgency {
		return h[i].order.Urgency > h[j].order.Urgency
	}
	return h[i].seq > h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	return e
}
