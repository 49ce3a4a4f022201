package parking

import "errors"

// Sentinel errors returned by engine operations.  Every failure is a
// terminal, deterministic outcome of the request itself; nothing here is
// transient, so callers never retry.  Contract violations inside the
// engine (double release of a slot, ledger/allocator mismatch) are bugs,
// not errors, and are exercised by invariant tests instead.
var (
	// ErrInvalidVehicle means the vehicle id is outside the configured range.
	ErrInvalidVehicle = errors.New("invalid vehicle id")
	// ErrDuplicateEntry means the vehicle is already parked or waiting.
	ErrDuplicateEntry = errors.New("vehicle already parked or waiting")
	// ErrCapacityExceeded means both the slots and the waiting queue are full.
	ErrCapacityExceeded = errors.New("parking and waiting queue full")
	// ErrNotParked means an exit was requested for an absent vehicle.
	ErrNotParked = errors.New("vehicle not parked")
	// ErrNotInQueue means a waiting vehicle could not be found in the queue.
	ErrNotInQueue = errors.New("vehicle not in waiting queue")
)
