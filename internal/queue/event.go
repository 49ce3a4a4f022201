// Package queue defines message payloads exchanged over the message broker.
package queue

// PromotedPart describes the waiting vehicle, if any, that inherited
// the slot freed by the session in the enclosing event.
type PromotedPart struct {
	Vehicle   int    `json:"vehicle"`
	Slot      int    `json:"slot"`
	EnteredAt string `json:"entered_at"`
}

// SessionClosedEvent is published when a parked vehicle departs and its
// session is billed.  It carries everything downstream consumers need
// for audit lines, receipts or analytics without querying the engine.
// Cancelled waits are not published: those sessions never started.
type SessionClosedEvent struct {
	Vehicle         int           `json:"vehicle"`
	Slot            int           `json:"slot"`
	EnteredAt       string        `json:"entered_at"`
	ExitedAt        string        `json:"exited_at"`
	DurationSeconds int64         `json:"duration_seconds"`
	Fee             int64         `json:"fee"`
	PassHolder      bool          `json:"pass_holder"`
	Promoted        *PromotedPart `json:"promoted,omitempty"`
}
