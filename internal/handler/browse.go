package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/parking"
)

// BrowseHandler exposes the read-only views of the facility: slot map,
// free slots, occupied listing, per-vehicle search, waiting queue,
// session history and total revenue.  Apart from revenue these are
// public, cached and rate limited — a departures board, not a console.
type BrowseHandler struct {
	Engine *parking.Engine
}

// NewBrowseHandler returns a handler bound to the engine.
func NewBrowseHandler(engine *parking.Engine) *BrowseHandler {
	return &BrowseHandler{Engine: engine}
}

// Slots returns the full slot map, every slot with its occupant or free.
func (h *BrowseHandler) Slots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"slots": h.Engine.SlotMap()})
}

// FreeSlots returns the free slot ids in ascending order.
func (h *BrowseHandler) FreeSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"free": h.Engine.FreeSlots()})
}

// Vehicles returns the occupied slots with vehicle and entry time.
func (h *BrowseHandler) Vehicles(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"occupied": h.Engine.Occupied()})
}

// Vehicle looks up a single vehicle by the :id path parameter.
func (h *BrowseHandler) Vehicle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	info, err := h.Engine.QueryVehicle(id)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, info)
}

// Waiting returns the waiting queue in arrival order, with the
// count/capacity pair the board has always displayed.
func (h *BrowseHandler) Waiting(c echo.Context) error {
	vehicles := h.Engine.Waiting()
	return c.JSON(http.StatusOK, echo.Map{
		"waiting":  vehicles,
		"count":    len(vehicles),
		"capacity": h.Engine.WaitingCapacity(),
	})
}

// History returns all session records, most recent first.
func (h *BrowseHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"history": h.Engine.History()})
}

// Revenue returns the accumulated fees.  Routed behind auth: the books
// are not part of the public departures board.
func (h *BrowseHandler) Revenue(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"total_revenue": h.Engine.TotalRevenue()})
}
