package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-inventory/config"
	"hotel-inventory/controllers"
	"hotel-inventory/models"
	"hotel-inventory/repository"
	"hotel-inventory/routes"
	"hotel-inventory/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	require.NoError(t, config.SeedMemory(context.Background(), store))
	svc := services.NewReservationService(store, nil, zerolog.Nop())

	return routes.SetupRouter(
		controllers.NewReservationController(svc),
		controllers.NewRoomController(svc),
		[]string{"*"},
		zerolog.Nop(),
	)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoomTypesAndRooms(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/room-types", nil)
	require.Equal(t, http.StatusOK, code)
	types := decode[[]models.RoomType](t, env)
	require.Len(t, types, 3)
	assert.Equal(t, "Standard Queen", types[0].Name)

	code, env = do(t, r, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, code)
	rooms := decode[[]models.Room](t, env)
	require.Len(t, rooms, 12)
	assert.Equal(t, "101", rooms[0].Number)
	assert.Equal(t, models.RoomVacant, rooms[0].Status)
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/availability?check_in=2024-05-01&check_out=2024-05-03&guests=3", nil)
	require.Equal(t, http.StatusOK, code)
	types := decode[[]models.RoomType](t, env)
	require.Len(t, types, 1)
	assert.Equal(t, "Family Suite", types[0].Name)

	code, env = do(t, r, http.MethodGet, "/api/availability?check_in=2024-05-01&check_out=2024-05-02", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.RoomType](t, env), 3)

	tests := []struct {
		name, query, code string
	}{
		{"reversed range", "check_in=2024-05-03&check_out=2024-05-01", "error.validation"},
		{"empty party", "check_in=2024-05-01&check_out=2024-05-02&guests=0", "error.validation"},
		{"missing check-in", "check_out=2024-05-02", "error.invalidPayload"},
		{"bad date", "check_in=May+1&check_out=2024-05-02", "error.invalidPayload"},
		{"bad guests", "check_in=2024-05-01&check_out=2024-05-02&guests=two", "error.invalidPayload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, r, http.MethodGet, "/api/availability?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestQuoteEndpoint(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/quote?room_type_id=2&check_in=2024-05-01&check_out=2024-05-04", nil)
	require.Equal(t, http.StatusOK, code)
	q := decode[services.Quote](t, env)
	assert.Equal(t, 3, q.Nights)
	assert.InDelta(t, 540.0, q.Total, 0.001)

	code, env = do(t, r, http.MethodGet, "/api/quote?room_type_id=42&check_in=2024-05-01&check_out=2024-05-04", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error.notFound", env.Error.Code)
}

func TestReservationLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/reservations", map[string]any{
		"guestName":  "Jane Doe",
		"email":      "jane@example.com",
		"roomTypeId": 2,
		"checkIn":    "2024-05-01",
		"checkOut":   "2024-05-03",
	})
	require.Equal(t, http.StatusCreated, code, env.Error.Message)
	created := decode[models.Reservation](t, env)
	assert.Equal(t, models.ReservationConfirmed, created.Status)
	assert.Nil(t, created.AssignedRoomID)
	assert.Equal(t, 2, created.Nights)

	code, env = do(t, r, http.MethodGet, "/api/reservations/"+created.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created.ID, decode[models.Reservation](t, env).ID)

	// Deluxe King rooms are 102, 105, 108 and 111.
	code, env = do(t, r, http.MethodPost, "/api/reservations/"+created.ID+"/check-in", nil)
	require.Equal(t, http.StatusOK, code, env.Error.Message)
	checkedIn := decode[models.Reservation](t, env)
	assert.Equal(t, models.ReservationCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.AssignedRoomID)
	assert.Equal(t, uint(2), *checkedIn.AssignedRoomID)

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+created.ID+"/check-in", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.illegalTransition", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+created.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.illegalTransition", env.Error.Code)

	code, env = do(t, r, http.MethodPatch, "/api/rooms/2/status", map[string]string{"status": "Vacant"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.roomBusy", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+created.ID+"/check-out", nil)
	require.Equal(t, http.StatusOK, code, env.Error.Message)
	out := decode[models.Reservation](t, env)
	assert.Equal(t, models.ReservationCheckedOut, out.Status)
	assert.Equal(t, uint(2), *out.AssignedRoomID)

	code, env = do(t, r, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, code)
	rooms := decode[[]models.Room](t, env)
	assert.Equal(t, models.RoomCleaning, rooms[1].Status)

	code, env = do(t, r, http.MethodGet, "/api/reservations", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Reservation](t, env), 1)
}

func TestCreateAndCancelErrors(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/reservations", map[string]any{
		"guestName": "Jane", "email": "not-an-email", "roomTypeId": 1,
		"checkIn": "2024-05-01", "checkOut": "2024-05-02",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.validation", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/reservations", map[string]any{"guestName": "Jane"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidPayload", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/reservations/missing/cancel", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error.notFound", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/reservations", map[string]any{
		"guestName": "Jane", "email": "jane@example.com", "roomTypeId": 1,
		"checkIn": "2024-05-01", "checkOut": "2024-05-02",
	})
	require.Equal(t, http.StatusCreated, code)
	id := decode[models.Reservation](t, env).ID

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+id+"/cancel", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.ReservationCancelled, decode[models.Reservation](t, env).Status)

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+id+"/check-out", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.illegalTransition", env.Error.Code)
}

func TestUpdateRoomStatusEndpoint(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPatch, "/api/rooms/1/status", map[string]string{"status": "Occupied"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "error.forbiddenStatus", env.Error.Code)

	code, env = do(t, r, http.MethodPatch, "/api/rooms/1/status", map[string]string{"status": "maintenance"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.RoomMaintenance, decode[models.Room](t, env).Status)

	code, env = do(t, r, http.MethodPatch, "/api/rooms/1/status", map[string]string{"status": "Dirty"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidPayload", env.Error.Code)

	code, _ = do(t, r, http.MethodPatch, "/api/rooms/abc/status", map[string]string{"status": "Vacant"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPatch, "/api/rooms/999/status", map[string]string{"status": "Vacant"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error.notFound", env.Error.Code)
}

func TestRoomStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/rooms/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[services.RoomStats](t, env)
	assert.Equal(t, services.RoomStats{Total: 12, Vacant: 12}, stats)

	code, _ = do(t, r, http.MethodPatch, "/api/rooms/1/status", map[string]string{"status": "Maintenance"})
	require.Equal(t, http.StatusOK, code)
	code, env = do(t, r, http.MethodPost, "/api/reservations", map[string]any{
		"guestName": "Jane", "email": "jane@example.com", "roomTypeId": 2,
		"checkIn": "2024-05-01", "checkOut": "2024-05-02",
	})
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, r, http.MethodPost, "/api/reservations/"+decode[models.Reservation](t, env).ID+"/check-in", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/rooms/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats = decode[services.RoomStats](t, env)
	assert.Equal(t, 1, stats.Occupied)
	assert.Equal(t, 1, stats.Maintenance)
	assert.Equal(t, 8, stats.OccupancyRate)
}

func TestNoVacantRoomOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	// Family Suite rooms are 103, 106, 109 and 112.
	for _, id := range []string{"3", "6", "9", "12"} {
		code, _ := do(t, r, http.MethodPatch, "/api/rooms/"+id+"/status", map[string]string{"status": "Maintenance"})
		require.Equal(t, http.StatusOK, code)
	}
	code, env := do(t, r, http.MethodPost, "/api/reservations", map[string]any{
		"guestName": "Jane", "email": "jane@example.com", "roomTypeId": 3,
		"checkIn": "2024-05-01", "checkOut": "2024-05-02",
	})
	require.Equal(t, http.StatusCreated, code)
	id := decode[models.Reservation](t, env).ID

	code, env = do(t, r, http.MethodPost, "/api/reservations/"+id+"/check-in", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.noVacantRoom", env.Error.Code)
}
