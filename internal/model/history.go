package model

import "time"

// HistoryRecord is one parking session in the audit log.  A record is
// created open (ExitedAt nil) when a slot is allocated, either on direct
// entry or on promotion from the waiting queue, and closed exactly once
// when the vehicle departs.  Closed records never mutate again and
// records are never deleted outside full reinitialization.
//
// Fields:
//  Vehicle   – vehicle identifier.
//  Slot      – slot occupied during the session.
//  EnteredAt – when the slot was allocated.
//  ExitedAt  – when the vehicle departed; nil while still parked.
type HistoryRecord struct {
	Vehicle   int        `json:"vehicle"`
	Slot      int        `json:"slot"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at,omitempty"`
}

// Closed reports whether the session has ended.
func (r HistoryRecord) Closed() bool { return r.ExitedAt != nil }
