package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/parking"
)

func newTestEngine() *parking.Engine {
	return parking.NewEngine(parking.Options{
		Capacity:     2,
		WaitCapacity: 1,
		MaxVehicles:  100,
		FeePerHour:   50,
	})
}

// postJSON runs a handler against a JSON POST body and returns the recorder.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestEntryHandlerStatuses(t *testing.T) {
	h := NewParkingHandler(newTestEngine(), false)

	rec := postJSON(t, h.Entry, `{"vehicle": 5}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var out struct {
		Parked bool `json:"parked"`
		Slot   int  `json:"slot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Parked)
	assert.Equal(t, 1, out.Slot)

	// Vehicle 0 is a valid id, not a missing field.
	rec = postJSON(t, h.Entry, `{"vehicle": 0}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Facility full -> queued with 202.
	rec = postJSON(t, h.Entry, `{"vehicle": 9}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	var queued struct {
		QueuePosition int `json:"queue_position"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queued))
	assert.Equal(t, 1, queued.QueuePosition)

	// Queue full too -> conflict.
	rec = postJSON(t, h.Entry, `{"vehicle": 10}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Duplicate -> conflict.
	rec = postJSON(t, h.Entry, `{"vehicle": 5}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Out-of-range id -> bad request.
	rec = postJSON(t, h.Entry, `{"vehicle": 1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing field -> bad request.
	rec = postJSON(t, h.Entry, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExitHandlerStatuses(t *testing.T) {
	h := NewParkingHandler(newTestEngine(), false)

	postJSON(t, h.Entry, `{"vehicle": 5}`)

	rec := postJSON(t, h.Exit, `{"vehicle": 5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Slot int   `json:"slot"`
		Fee  int64 `json:"fee"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Slot)
	assert.Zero(t, out.Fee, "sub-second stay bills zero hours")

	rec = postJSON(t, h.Exit, `{"vehicle": 5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExitHandlerCancelsWaiting(t *testing.T) {
	h := NewParkingHandler(newTestEngine(), false)

	postJSON(t, h.Entry, `{"vehicle": 1}`)
	postJSON(t, h.Entry, `{"vehicle": 2}`)
	postJSON(t, h.Entry, `{"vehicle": 3}`) // queued

	rec := postJSON(t, h.Exit, `{"vehicle": 3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		WaitingCancelled bool `json:"waiting_cancelled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.WaitingCancelled)
}

func TestRegisterPassAndReset(t *testing.T) {
	engine := newTestEngine()
	h := NewParkingHandler(engine, false)

	rec := postJSON(t, h.RegisterPass, `{"vehicle": 7}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.RegisterPass, `{"vehicle": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	postJSON(t, h.Entry, `{"vehicle": 7}`)
	rec = postJSON(t, h.EmergencyReset, `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, engine.Occupied())
	assert.Len(t, engine.History(), 1, "reset keeps the audit trail")
}

func TestBrowseVehicleLookup(t *testing.T) {
	engine := newTestEngine()
	ph := NewParkingHandler(engine, false)
	bh := NewBrowseHandler(engine)

	postJSON(t, ph.Entry, `{"vehicle": 5}`)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, bh.Vehicle(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	var info struct {
		Status string `json:"status"`
		Slot   int    `json:"slot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "PARKED", info.Status)
	assert.Equal(t, 1, info.Slot)

	// Non-numeric id is rejected before the engine sees it.
	rec2 := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec2)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, bh.Vehicle(c))
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestBrowseListings(t *testing.T) {
	engine := newTestEngine()
	ph := NewParkingHandler(engine, false)
	bh := NewBrowseHandler(engine)

	postJSON(t, ph.Entry, `{"vehicle": 5}`)
	postJSON(t, ph.Entry, `{"vehicle": 7}`)
	postJSON(t, ph.Entry, `{"vehicle": 9}`) // queued

	get := func(h echo.HandlerFunc) *httptest.ResponseRecorder {
		e := echo.New()
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
		return rec
	}

	rec := get(bh.FreeSlots)
	assert.JSONEq(t, `{"free": []}`, rec.Body.String())

	rec = get(bh.Waiting)
	var waiting struct {
		Waiting  []int `json:"waiting"`
		Count    int   `json:"count"`
		Capacity int   `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &waiting))
	assert.Equal(t, []int{9}, waiting.Waiting)
	assert.Equal(t, 1, waiting.Count)
	assert.Equal(t, 1, waiting.Capacity)

	rec = get(bh.Slots)
	var slots struct {
		Slots []struct {
			Slot     int  `json:"slot"`
			Occupied bool `json:"occupied"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	require.Len(t, slots.Slots, 2)
	assert.True(t, slots.Slots[0].Occupied)

	rec = get(bh.Revenue)
	assert.JSONEq(t, `{"total_revenue": 0}`, rec.Body.String())
}
