package parking

import (
	"sync"
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
)

// Options fixes the facility's configuration surface at construction.
// None of these values change for the lifetime of the engine.
type Options struct {
	Capacity     int   // number of slots, ids 1..Capacity
	WaitCapacity int   // waiting queue length
	MaxVehicles  int   // valid vehicle ids are [0, MaxVehicles)
	FeePerHour   int64 // per started hour, ignored for pass holders
}

// Engine orchestrates the allocator, the waiting queue, the ledger and
// the history log.  It owns all of them exclusively; callers interact
// only through its operations, and every operation samples "now" once.
//
// Operations are short, synchronous and deterministic.  The single
// mutex is the coarse exclusion boundary required once the engine is
// driven by concurrent HTTP handlers: the promotion step inside Exit
// reads and writes allocator, queue and ledger as one atomic unit, so
// finer locking would buy nothing and risk a slot being observed as
// both released and re-acquired.
type Engine struct {
	mu        sync.Mutex
	opts      Options
	allocator *SlotAllocator
	queue     *WaitingQueue
	ledger    *Ledger
	history   *HistoryLog
	revenue   int64
	now       func() time.Time
}

// NewEngine builds a fully free facility.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:      opts,
		allocator: NewSlotAllocator(opts.Capacity),
		queue:     NewWaitingQueue(opts.WaitCapacity),
		ledger:    NewLedger(opts.MaxVehicles),
		history:   NewHistoryLog(),
		now:       time.Now,
	}
}

// Entry admits a vehicle.  The lowest free slot is assigned when one
// exists; otherwise the vehicle joins the waiting queue.  Errors:
// ErrInvalidVehicle, ErrDuplicateEntry, ErrCapacityExceeded (both slots
// and queue full; no state change).
func (e *Engine) Entry(vehicle int) (model.EntryOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ValidVehicle(vehicle) {
		return model.EntryOutcome{}, ErrInvalidVehicle
	}
	if e.ledger.Status(vehicle) != model.StatusAbsent {
		return model.EntryOutcome{}, ErrDuplicateEntry
	}

	slot, ok := e.allocator.Acquire()
	if !ok {
		if !e.queue.Enqueue(vehicle) {
			return model.EntryOutcome{}, ErrCapacityExceeded
		}
		e.ledger.SetWaiting(vehicle)
		return model.EntryOutcome{
			Vehicle:       vehicle,
			QueuePosition: e.queue.Len(),
		}, nil
	}

	now := e.now()
	e.ledger.SetParked(vehicle, slot, now)
	e.history.Append(vehicle, slot, now)
	return model.EntryOutcome{
		Vehicle:   vehicle,
		Parked:    true,
		Slot:      slot,
		EnteredAt: &now,
	}, nil
}

// Exit handles a vehicle leaving.  For a parked vehicle it bills the
// session, closes the history record, frees the slot and immediately
// promotes the head of the waiting queue into it.  For a waiting
// vehicle it cancels the queue entry: no fee, no history — the session
// never started.  Errors: ErrInvalidVehicle, ErrNotParked,
// ErrNotInQueue (queue and ledger disagree about a waiting vehicle).
func (e *Engine) Exit(vehicle int) (model.ExitOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ValidVehicle(vehicle) {
		return model.ExitOutcome{}, ErrInvalidVehicle
	}

	switch e.ledger.Status(vehicle) {
	case model.StatusAbsent:
		return model.ExitOutcome{}, ErrNotParked

	case model.StatusWaiting:
		if !e.queue.Remove(vehicle) {
			return model.ExitOutcome{}, ErrNotInQueue
		}
		e.ledger.SetAbsent(vehicle)
		return model.ExitOutcome{Vehicle: vehicle, WaitingCancelled: true}, nil
	}

	slot, enteredAt := e.ledger.ParkedAt(vehicle)
	now := e.now()

	// Clamp against clock skew; a negative stay bills as zero seconds.
	elapsed := now.Sub(enteredAt)
	if elapsed < 0 {
		elapsed = 0
	}
	secs := int64(elapsed / time.Second)
	fee := e.feeFor(vehicle, secs)

	e.history.CloseOpen(vehicle, slot, now)
	e.revenue += fee
	e.ledger.SetAbsent(vehicle)
	e.allocator.Release(slot)

	out := model.ExitOutcome{
		Vehicle:         vehicle,
		Slot:            slot,
		EnteredAt:       &enteredAt,
		ExitedAt:        &now,
		DurationSeconds: secs,
		Fee:             fee,
		PassHolder:      e.ledger.IsPassHolder(vehicle),
	}
	out.Duration = out.DurationString()
	out.Promoted = e.promote()
	return out, nil
}

// feeFor computes the charge for a stay of secs seconds: zero for pass
// holders, otherwise every started hour at the configured rate.
func (e *Engine) feeFor(vehicle int, secs int64) int64 {
	if e.ledger.IsPassHolder(vehicle) {
		return 0
	}
	billedHours := (secs + 3599) / 3600 // ceil to the next full hour
	return billedHours * e.opts.FeePerHour
}

// promote moves the head of the waiting queue into a slot.  Exit just
// released one, so acquisition is expected to succeed; if it does not,
// the vehicle goes back to the front of the queue so it keeps its place
// in line.
func (e *Engine) promote() *model.Promotion {
	next, ok := e.queue.Dequeue()
	if !ok {
		return nil
	}
	slot, ok := e.allocator.Acquire()
	if !ok {
		e.queue.PushFront(next)
		return nil
	}
	now := e.now()
	e.ledger.SetParked(next, slot, now)
	e.history.Append(next, slot, now)
	return &model.Promotion{Vehicle: next, Slot: slot, EnteredAt: now}
}

// SetPassHolder registers a monthly pass for the vehicle.  The flag is
// independent of current parking status and never applies retroactively
// to a session already being billed.
func (e *Engine) SetPassHolder(vehicle int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ValidVehicle(vehicle) {
		return ErrInvalidVehicle
	}
	e.ledger.SetPassHolder(vehicle)
	return nil
}

// EmergencyReset clears all live occupancy: every parked or waiting
// vehicle becomes absent, all slots are freed and the queue empties.
// Total revenue and the history log are deliberately untouched — an
// operational incident must not erase the audit trail or the books.
func (e *Engine) EmergencyReset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ledger.ResetOccupancy()
	e.allocator.Reset()
	e.queue.Reset()
}

// QueryVehicle reports where a vehicle currently is.
func (e *Engine) QueryVehicle(vehicle int) (model.VehicleInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ValidVehicle(vehicle) {
		return model.VehicleInfo{}, ErrInvalidVehicle
	}
	info := model.VehicleInfo{
		Vehicle:    vehicle,
		Status:     e.ledger.Status(vehicle).String(),
		PassHolder: e.ledger.IsPassHolder(vehicle),
	}
	switch e.ledger.Status(vehicle) {
	case model.StatusParked:
		slot, enteredAt := e.ledger.ParkedAt(vehicle)
		info.Slot = slot
		info.EnteredAt = &enteredAt
	case model.StatusWaiting:
		info.QueuePosition = e.queue.Position(vehicle)
	}
	return info, nil
}

// SlotMap lists every slot in order with its occupant, if any.
func (e *Engine) SlotMap() []model.SlotInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.SlotInfo, 0, e.allocator.Capacity())
	for s := 1; s <= e.allocator.Capacity(); s++ {
		info := model.SlotInfo{Slot: s}
		if v, ok := e.ledger.VehicleAt(s); ok {
			_, enteredAt := e.ledger.ParkedAt(v)
			vv, t := v, enteredAt
			info.Occupied = true
			info.Vehicle = &vv
			info.EnteredAt = &t
		}
		out = append(out, info)
	}
	return out
}

// Occupied lists the occupied slots in ascending slot order.
func (e *Engine) Occupied() []model.OccupiedSlot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.OccupiedSlot, 0, e.ledger.ParkedCount())
	for s := 1; s <= e.allocator.Capacity(); s++ {
		if v, ok := e.ledger.VehicleAt(s); ok {
			_, enteredAt := e.ledger.ParkedAt(v)
			out = append(out, model.OccupiedSlot{Slot: s, Vehicle: v, EnteredAt: enteredAt})
		}
	}
	return out
}

// FreeSlots lists the free slot ids in ascending order.
func (e *Engine) FreeSlots() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allocator.FreeSlots()
}

// Waiting lists the queued vehicles in arrival order.
func (e *Engine) Waiting() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Vehicles()
}

// WaitingCapacity reports the maximum queue length, for the
// "count/capacity" form the waiting listing has always shown.
func (e *Engine) WaitingCapacity() int {
	return e.queue.Capacity()
}

// History returns all session records, most recent first.
func (e *Engine) History() []model.HistoryRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Records()
}

// TotalRevenue returns the accumulated fees.  The accumulator only ever
// grows; the emergency reset does not touch it.
func (e *Engine) TotalRevenue() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revenue
}
