package parking

// WaitingQueue is the bounded FIFO of vehicles that arrived while every
// slot was occupied.  It is a circular buffer of fixed capacity:
// Enqueue fails cleanly when full, with no partial effect.
//
// The queue embodies a fairness guarantee — earlier arrivals get slots
// first — so Remove must keep the relative order of the remaining
// entries.  It rebuilds the queue in order rather than swapping the
// tail into the hole.
type WaitingQueue struct {
	buf   []int
	front int
	count int
}

// NewWaitingQueue returns an empty queue holding at most capacity vehicles.
func NewWaitingQueue(capacity int) *WaitingQueue {
	return &WaitingQueue{buf: make([]int, capacity)}
}

// Enqueue appends a vehicle at the back.  It returns false, without any
// side effect, when the queue is full.
func (q *WaitingQueue) Enqueue(vehicle int) bool {
	if q.count == len(q.buf) {
		return false
	}
	q.buf[(q.front+q.count)%len(q.buf)] = vehicle
	q.count++
	return true
}

// Dequeue removes and returns the vehicle at the head.  The second
// return value is false when the queue is empty.
func (q *WaitingQueue) Dequeue() (int, bool) {
	if q.count == 0 {
		return 0, false
	}
	v := q.buf[q.front]
	q.front = (q.front + 1) % len(q.buf)
	q.count--
	return v, true
}

// PushFront re-inserts a vehicle at the head of the queue.  It exists
// for the promotion path: when a just-dequeued vehicle cannot take a
// slot after all, putting it back at the front preserves its place in
// line.  Returns false when the queue is full.
func (q *WaitingQueue) PushFront(vehicle int) bool {
	if q.count == len(q.buf) {
		return false
	}
	q.front = (q.front - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.front] = vehicle
	q.count++
	return true
}

// Remove deletes the given vehicle from anywhere in the queue while
// preserving the order of everyone behind it.  It drains the queue and
// re-enqueues all other vehicles in their original order.  Returns
// false when the vehicle was not queued.
func (q *WaitingQueue) Remove(vehicle int) bool {
	removed := false
	n := q.count
	for i := 0; i < n; i++ {
		v, _ := q.Dequeue()
		if v == vehicle && !removed {
			removed = true
			continue
		}
		q.Enqueue(v)
	}
	return removed
}

// Len reports the number of queued vehicles.
func (q *WaitingQueue) Len() int { return q.count }

// Capacity reports the maximum queue length.
func (q *WaitingQueue) Capacity() int { return len(q.buf) }

// Vehicles returns a snapshot of the queue in arrival order.
func (q *WaitingQueue) Vehicles() []int {
	out := make([]int, 0, q.count)
	for i := 0; i < q.count; i++ {
		out = append(out, q.buf[(q.front+i)%len(q.buf)])
	}
	return out
}

// Position returns the 1-based place of a vehicle in line, or 0 when
// the vehicle is not queued.
func (q *WaitingQueue) Position(vehicle int) int {
	for i := 0; i < q.count; i++ {
		if q.buf[(q.front+i)%len(q.buf)] == vehicle {
			return i + 1
		}
	}
	return 0
}

// Reset empties the queue.
func (q *WaitingQueue) Reset() {
	q.front = 0
	q.count = 0
}
