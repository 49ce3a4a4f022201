package parking

import (
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
)

// HistoryLog is the append-only record of every parking session, open
// or closed.  Records are appended when a slot is allocated and closed
// once on departure; the log is never pruned during normal operation —
// the emergency reset deliberately leaves it intact as the audit trail.
type HistoryLog struct {
	records []model.HistoryRecord // append order; newest at the end
}

// NewHistoryLog returns an empty log.
func NewHistoryLog() *HistoryLog { return &HistoryLog{} }

// Append opens a new session record for the given vehicle and slot.
func (l *HistoryLog) Append(vehicle, slot int, enteredAt time.Time) {
	l.records = append(l.records, model.HistoryRecord{
		Vehicle:   vehicle,
		Slot:      slot,
		EnteredAt: enteredAt,
	})
}

// CloseOpen sets the exit time on the most recently appended open
// record for the (vehicle, slot) pair and returns true.  The ledger
// invariant means at most one such record should exist; scanning from
// the newest end makes the newest win if that invariant ever breaks.
// Returns false when no open record matches.
func (l *HistoryLog) CloseOpen(vehicle, slot int, exitedAt time.Time) bool {
	for i := len(l.records) - 1; i >= 0; i-- {
		r := &l.records[i]
		if r.Vehicle == vehicle && r.Slot == slot && r.ExitedAt == nil {
			t := exitedAt
			r.ExitedAt = &t
			return true
		}
	}
	return false
}

// Len reports the number of records, open and closed.
func (l *HistoryLog) Len() int { return len(l.records) }

// Records returns a copy of the log, most recent first.
func (l *HistoryLog) Records() []model.HistoryRecord {
	out := make([]model.HistoryRecord, len(l.records))
	for i, r := range l.records {
		out[len(l.records)-1-i] = r
	}
	return out
}
