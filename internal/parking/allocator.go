package parking

import (
	"container/heap"
	"sort"
)

// SlotAllocator hands out the numerically smallest free slot and takes
// released slots back.  Slots are identified 1..capacity.  The facility
// policy is to fill from slot 1 upward even as vehicles leave and return
// in arbitrary order, so the free set is kept as a min-heap: Acquire is
// always the minimum, never merely "some free slot".
//
// The allocator trusts its caller: releasing a slot that was never
// acquired, or releasing twice, corrupts the free set.  The engine owns
// the only reference and pairs every Release with a prior Acquire.
type SlotAllocator struct {
	capacity int
	free     slotHeap
}

// NewSlotAllocator returns an allocator with all slots 1..capacity free.
func NewSlotAllocator(capacity int) *SlotAllocator {
	a := &SlotAllocator{capacity: capacity}
	a.Reset()
	return a
}

// Acquire removes and returns the smallest free slot.  The second
// return value is false when every slot is occupied.
func (a *SlotAllocator) Acquire() (int, bool) {
	if a.free.Len() == 0 {
		return 0, false
	}
	return heap.Pop(&a.free).(int), true
}

// Release returns a previously acquired slot to the free set.
func (a *SlotAllocator) Release(slot int) {
	heap.Push(&a.free, slot)
}

// FreeCount reports how many slots are currently free.
func (a *SlotAllocator) FreeCount() int { return a.free.Len() }

// Capacity reports the total number of slots.
func (a *SlotAllocator) Capacity() int { return a.capacity }

// FreeSlots returns the free slot ids in ascending order.  The heap is
// not ordered beyond its root, so the listing sorts a copy.
func (a *SlotAllocator) FreeSlots() []int {
	out := make([]int, len(a.free))
	copy(out, a.free)
	sort.Ints(out)
	return out
}

// Reset marks every slot free again.  Used at construction and by the
// emergency reset.
func (a *SlotAllocator) Reset() {
	a.free = a.free[:0]
	for s := 1; s <= a.capacity; s++ {
		a.free = append(a.free, s)
	}
	heap.Init(&a.free)
}

// slotHeap implements heap.Interface as a min-heap of slot ids.
type slotHeap []int

func (h slotHeap) Len() int            { return len(h) }
func (h slotHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h slotHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *slotHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *slotHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
