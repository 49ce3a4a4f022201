package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/parking"
	"github.com/iliyamo/smart-parking/internal/queue"
	queue_publisher "github.com/iliyamo/smart-parking/internal/service"
)

// ParkingHandler exposes the mutating facility operations: entry, exit,
// pass registration and the emergency reset.  All of them sit behind
// JWT auth with the OPERATOR role.
type ParkingHandler struct {
	Engine *parking.Engine
	// PublishEvents turns the session.closed broker publishing on.  It
	// is off when no broker is configured so exits stay fast.
	PublishEvents bool
}

// NewParkingHandler returns a handler bound to the engine.
func NewParkingHandler(engine *parking.Engine, publishEvents bool) *ParkingHandler {
	return &ParkingHandler{Engine: engine, PublishEvents: publishEvents}
}

// vehicleReq carries a vehicle id.  A pointer distinguishes "vehicle 0"
// from a missing field — 0 is a perfectly valid id.
type vehicleReq struct {
	Vehicle *int `json:"vehicle"`
}

// statusFor translates engine sentinel errors into HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, parking.ErrInvalidVehicle):
		return http.StatusBadRequest
	case errors.Is(err, parking.ErrDuplicateEntry), errors.Is(err, parking.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, parking.ErrNotParked), errors.Is(err, parking.ErrNotInQueue):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Entry admits a vehicle: 201 with the slot when parked, 202 with the
// queue position when the facility is full and the vehicle waits.
func (h *ParkingHandler) Entry(c echo.Context) error {
	var req vehicleReq
	if err := c.Bind(&req); err != nil || req.Vehicle == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle required"})
	}

	out, err := h.Engine.Entry(*req.Vehicle)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	if !out.Parked {
		return c.JSON(http.StatusAccepted, out)
	}
	return c.JSON(http.StatusCreated, out)
}

// Exit departs a vehicle and returns the billed outcome, or confirms a
// cancelled wait.  A closed session is published to the broker as a
// best-effort side channel; billing already happened, so a publish
// failure never fails the request.
func (h *ParkingHandler) Exit(c echo.Context) error {
	var req vehicleReq
	if err := c.Bind(&req); err != nil || req.Vehicle == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle required"})
	}

	out, err := h.Engine.Exit(*req.Vehicle)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	if h.PublishEvents && !out.WaitingCancelled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishSessionClosed(ctx, sessionEvent(out))
	}
	return c.JSON(http.StatusOK, out)
}

// sessionEvent maps an exit outcome onto the broker payload.
func sessionEvent(out model.ExitOutcome) queue.SessionClosedEvent {
	ev := queue.SessionClosedEvent{
		Vehicle:         out.Vehicle,
		Slot:            out.Slot,
		EnteredAt:       out.EnteredAt.UTC().Format(time.RFC3339),
		ExitedAt:        out.ExitedAt.UTC().Format(time.RFC3339),
		DurationSeconds: out.DurationSeconds,
		Fee:             out.Fee,
		PassHolder:      out.PassHolder,
	}
	if out.Promoted != nil {
		ev.Promoted = &queue.PromotedPart{
			Vehicle:   out.Promoted.Vehicle,
			Slot:      out.Promoted.Slot,
			EnteredAt: out.Promoted.EnteredAt.UTC().Format(time.RFC3339),
		}
	}
	return ev
}

// RegisterPass flags a vehicle as a monthly pass holder.
func (h *ParkingHandler) RegisterPass(c echo.Context) error {
	var req vehicleReq
	if err := c.Bind(&req); err != nil || req.Vehicle == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle required"})
	}

	if err := h.Engine.SetPassHolder(*req.Vehicle); err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicle": *req.Vehicle, "pass_holder": true})
}

// EmergencyReset clears live occupancy and the waiting queue.  Revenue
// and history survive; the response says so explicitly because the
// distinction matters to whoever pressed the button.
func (h *ParkingHandler) EmergencyReset(c echo.Context) error {
	h.Engine.EmergencyReset()
	return c.JSON(http.StatusOK, echo.Map{
		"reset":            true,
		"history_retained": true,
		"revenue_retained": true,
	})
}
