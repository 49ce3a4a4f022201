package parking

import (
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
)

// vehicleState is the ledger's per-vehicle entry.  Slot and enteredAt
// are meaningful only while status is StatusParked.
type vehicleState struct {
	status    model.VehicleStatus
	slot      int
	enteredAt time.Time
}

// Ledger tracks the state of every vehicle id in [0, maxVehicles) plus
// the pass-holder flags.  It keeps the slot-to-vehicle mapping as well,
// so that for every parked vehicle the two directions stay mutual
// inverses: the engine updates both through SetParked/SetAbsent and
// never touches them separately.
//
// Pass-holder flags outlive parking sessions and survive the emergency
// reset; they are facility membership, not occupancy state.
type Ledger struct {
	states        []vehicleState
	passHolder    []bool
	slotToVehicle map[int]int
}

// NewLedger returns a ledger for vehicle ids 0..maxVehicles-1, all absent.
func NewLedger(maxVehicles int) *Ledger {
	return &Ledger{
		states:        make([]vehicleState, maxVehicles),
		passHolder:    make([]bool, maxVehicles),
		slotToVehicle: make(map[int]int),
	}
}

// ValidVehicle reports whether the id is inside the configured range.
func (l *Ledger) ValidVehicle(vehicle int) bool {
	return vehicle >= 0 && vehicle < len(l.states)
}

// Status returns the vehicle's current state tag.
func (l *Ledger) Status(vehicle int) model.VehicleStatus {
	return l.states[vehicle].status
}

// ParkedAt returns the slot and entry time of a parked vehicle.  Only
// meaningful when Status is StatusParked.
func (l *Ledger) ParkedAt(vehicle int) (slot int, enteredAt time.Time) {
	return l.states[vehicle].slot, l.states[vehicle].enteredAt
}

// SetParked marks the vehicle parked at the given slot and records both
// directions of the occupancy mapping.
func (l *Ledger) SetParked(vehicle, slot int, enteredAt time.Time) {
	l.states[vehicle] = vehicleState{status: model.StatusParked, slot: slot, enteredAt: enteredAt}
	l.slotToVehicle[slot] = vehicle
}

// SetWaiting marks the vehicle as queued.
func (l *Ledger) SetWaiting(vehicle int) {
	l.states[vehicle] = vehicleState{status: model.StatusWaiting}
}

// SetAbsent clears the vehicle's state and, if it was parked, the slot
// side of the mapping.
func (l *Ledger) SetAbsent(vehicle int) {
	if l.states[vehicle].status == model.StatusParked {
		delete(l.slotToVehicle, l.states[vehicle].slot)
	}
	l.states[vehicle] = vehicleState{}
}

// SetPassHolder flags the vehicle as a monthly pass holder.  The flag
// is independent of parking status and only affects future fees.
func (l *Ledger) SetPassHolder(vehicle int) {
	l.passHolder[vehicle] = true
}

// IsPassHolder reports the pass flag.
func (l *Ledger) IsPassHolder(vehicle int) bool {
	return l.passHolder[vehicle]
}

// VehicleAt returns the vehicle occupying the given slot, if any.
func (l *Ledger) VehicleAt(slot int) (int, bool) {
	v, ok := l.slotToVehicle[slot]
	return v, ok
}

// ParkedCount reports the number of occupied slots.
func (l *Ledger) ParkedCount() int { return len(l.slotToVehicle) }

// ResetOccupancy forces every vehicle back to absent and clears the
// occupancy mapping.  Pass-holder flags are kept.
func (l *Ledger) ResetOccupancy() {
	for i := range l.states {
		l.states[i] = vehicleState{}
	}
	l.slotToVehicle = make(map[int]int)
}
