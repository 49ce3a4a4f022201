package model

import (
	"fmt"
	"time"
)

// EntryOutcome is the structured result of a successful entry request.
// Exactly one of the two shapes applies: the vehicle was parked
// immediately (Parked true, Slot and EnteredAt set) or the facility was
// full and the vehicle joined the waiting queue (Parked false,
// QueuePosition set, 1-based).
type EntryOutcome struct {
	Vehicle       int        `json:"vehicle"`
	Parked        bool       `json:"parked"`
	Slot          int        `json:"slot,omitempty"`
	EnteredAt     *time.Time `json:"entered_at,omitempty"`
	QueuePosition int        `json:"queue_position,omitempty"`
}

// Promotion describes a waiting vehicle that was moved into a slot as
// part of another vehicle's exit.  It opens a fresh session: the
// promoted vehicle's clock starts at EnteredAt, not at its original
// arrival in the queue.
type Promotion struct {
	Vehicle   int       `json:"vehicle"`
	Slot      int       `json:"slot"`
	EnteredAt time.Time `json:"entered_at"`
}

// ExitOutcome is the structured result of a successful exit request.
//
// When the vehicle was parked, the billing fields are populated and
// Promoted optionally carries the vehicle that inherited the freed
// slot.  When the vehicle was merely waiting, WaitingCancelled is true
// and everything else is zero: the session never started, so there is
// no fee and no history mutation.
type ExitOutcome struct {
	Vehicle          int        `json:"vehicle"`
	WaitingCancelled bool       `json:"waiting_cancelled,omitempty"`
	Slot             int        `json:"slot,omitempty"`
	EnteredAt        *time.Time `json:"entered_at,omitempty"`
	ExitedAt         *time.Time `json:"exited_at,omitempty"`
	DurationSeconds  int64      `json:"duration_seconds"`
	Duration         string     `json:"duration,omitempty"`
	Fee              int64      `json:"fee"`
	PassHolder       bool       `json:"pass_holder"`
	Promoted         *Promotion `json:"promoted,omitempty"`
}

// DurationParts splits the billed duration into hours, minutes and
// seconds for display, the way the facility has always reported it.
func (o ExitOutcome) DurationParts() (hours, minutes, seconds int64) {
	secs := o.DurationSeconds
	return secs / 3600, (secs % 3600) / 60, secs % 60
}

// DurationString renders the breakdown as "H hr M min S sec".
func (o ExitOutcome) DurationString() string {
	h, m, s := o.DurationParts()
	return fmt.Sprintf("%d hr %d min %d sec", h, m, s)
}
