package order

// Queue holds pending orders and always surfaces the most urgent one next.
// Among orders of equal urgency the most recently pushed dequeues first.
type Queue interface {
	Push(o *Order)
	// Pop removes and returns the highest-priority order, or ErrEmptyQueue.
	Pop() (*Order, error)
	// Peek returns the highest-priority order without removing it.
	Peek() (*Order, error)
	Len() int
}
