package model

import "time"

// VehicleStatus is the tagged state of a vehicle inside the facility.
// A vehicle is always in exactly one of the three states; there is no
// sentinel value.  Transitions are driven exclusively by the parking
// engine: Absent -> Parked -> Absent, or Absent -> Waiting -> Parked ->
// Absent when the vehicle had to queue first.
type VehicleStatus int

const (
	StatusAbsent  VehicleStatus = iota // not in the facility and not queued
	StatusParked                       // occupying a slot
	StatusWaiting                      // queued for the next free slot
)

// String renders the status for logs and JSON responses.
func (s VehicleStatus) String() string {
	switch s {
	case StatusParked:
		return "PARKED"
	case StatusWaiting:
		return "WAITING"
	default:
		return "ABSENT"
	}
}

// VehicleInfo is the answer to a per-vehicle status query.
//
// Fields:
//  Vehicle       – vehicle identifier.
//  Status        – ABSENT, PARKED or WAITING.
//  Slot          – occupied slot when parked, 0 otherwise.
//  EnteredAt     – entry timestamp when parked, nil otherwise.
//  QueuePosition – 1-based position when waiting, 0 otherwise.
//  PassHolder    – whether the vehicle holds a monthly pass.
type VehicleInfo struct {
	Vehicle       int        `json:"vehicle"`
	Status        string     `json:"status"`
	Slot          int        `json:"slot,omitempty"`
	EnteredAt     *time.Time `json:"entered_at,omitempty"`
	QueuePosition int        `json:"queue_position,omitempty"`
	PassHolder    bool       `json:"pass_holder"`
}

// OccupiedSlot is one row of the occupied-slots listing: which vehicle
// holds which slot and since when.
type OccupiedSlot struct {
	Slot      int       `json:"slot"`
	Vehicle   int       `json:"vehicle"`
	EnteredAt time.Time `json:"entered_at"`
}

// SlotInfo is one row of the full slot map.  Free slots carry no
// occupant fields.
type SlotInfo struct {
	Slot      int        `json:"slot"`
	Occupied  bool       `json:"occupied"`
	Vehicle   *int       `json:"vehicle,omitempty"`
	EnteredAt *time.Time `json:"entered_at,omitempty"`
}
