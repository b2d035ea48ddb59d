package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"detailify/config"
	"detailify/models"
	"detailify/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScheduleRepo struct {
	detailer *models.Detailer
	bookings []models.Booking
	events   []models.CalendarEvent
	created  []*models.Booking
	listErr  error
}

func (f *fakeScheduleRepo) GetDetailer(ctx context.Context, detailerID string) (*models.Detailer, error) {
	if f.detailer == nil {
		return nil, errors.New("not found")
	}
	return f.detailer, nil
}

func (f *fakeScheduleRepo) ListBlockingBookings(ctx context.Context, detailerID, date string) ([]models.Booking, error) {
	return f.bookings, f.listErr
}

func (f *fakeScheduleRepo) ListEvents(ctx context.Context, detailerID, date string) ([]models.CalendarEvent, error) {
	return f.events, f.listErr
}

func (f *fakeScheduleRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	f.created = append(f.created, booking)
	return nil
}

func newTestRouter(repo *fakeScheduleRepo, gate scheduling.Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig.DefaultJobMinutes = 120
	config.AppConfig.LeaseTTLSeconds = 10

	h := NewScheduleHandler(repo, gate, &scheduling.ConflictResolver{Logger: zap.NewNop()}, zap.NewNop())
	r := gin.New()
	r.POST("/api/schedule/availability", h.CheckAvailability)
	r.POST("/api/schedule/book", h.ConfirmBooking)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAvailabilityFreeSlot(t *testing.T) {
	repo := &fakeScheduleRepo{}
	r := newTestRouter(repo, scheduling.NewMemoryGate())

	w := postJSON(t, r, "/api/schedule/availability", gin.H{
		"detailerId": "det-1",
		"date":       "2025-06-14",
		"time":       "10:00",
		"timezone":   "America/Chicago",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)

	// durationMinutes was omitted, so the configured default applies.
	assert.Equal(t, 2*time.Hour, resp.RequestedSlot.End.Sub(resp.RequestedSlot.Start))
}

func TestCheckAvailabilityConflict(t *testing.T) {
	repo := &fakeScheduleRepo{
		bookings: []models.Booking{{
			ID: "b1", DetailerID: "det-1", LocalDate: "2025-06-14", LocalTime: "11:00",
			Status: models.BookingStatusConfirmed, CustomerName: "Dana",
		}},
	}
	r := newTestRouter(repo, scheduling.NewMemoryGate())

	w := postJSON(t, r, "/api/schedule/availability", gin.H{
		"detailerId": "det-1",
		"date":       "2025-06-14",
		"time":       "10:00",
		"timezone":   "America/Chicago",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "Dana", resp.Conflicts[0].Label)
	require.Len(t, resp.Suggestions, 3)
	assert.NotEmpty(t, resp.Suggestions[0].LocalTime.Time, "suggestions carry a local-time rendering")
}

func TestCheckAvailabilityTimezoneFallsBackToDetailer(t *testing.T) {
	repo := &fakeScheduleRepo{
		detailer: &models.Detailer{ID: "det-1", BusinessName: "Sudsy", Timezone: "America/Chicago", Active: true},
	}
	r := newTestRouter(repo, scheduling.NewMemoryGate())

	w := postJSON(t, r, "/api/schedule/availability", gin.H{
		"detailerId": "det-1",
		"date":       "2025-06-14",
		"time":       "10:00",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckAvailabilityBadInput(t *testing.T) {
	r := newTestRouter(&fakeScheduleRepo{}, scheduling.NewMemoryGate())

	for name, payload := range map[string]gin.H{
		"missing required fields": {"detailerId": "det-1"},
		"impossible date":         {"detailerId": "det-1", "date": "2024-02-30", "time": "10:00", "timezone": "America/Chicago"},
		"garbage time":            {"detailerId": "det-1", "date": "2025-06-14", "time": "later", "timezone": "America/Chicago"},
		"unknown zone":            {"detailerId": "det-1", "date": "2025-06-14", "time": "10:00", "timezone": "Atlantis/Reef"},
	} {
		t.Run(name, func(t *testing.T) {
			w := postJSON(t, r, "/api/schedule/availability", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestConfirmBookingHappyPath(t *testing.T) {
	repo := &fakeScheduleRepo{}
	gate := scheduling.NewMemoryGate()
	r := newTestRouter(repo, gate)

	w := postJSON(t, r, "/api/schedule/book", gin.H{
		"sessionId":    "conv-42",
		"detailerId":   "det-1",
		"date":         "2025-06-14",
		"time":         "10:00",
		"timezone":     "America/Chicago",
		"customerName": "Dana",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.BookingStatusPending, repo.created[0].Status)
	assert.Equal(t, "conv-42", repo.created[0].SessionID)

	// The lease is released on the way out.
	assert.False(t, gate.IsHeld("session:conv-42"))
}

func TestConfirmBookingGateBusy(t *testing.T) {
	repo := &fakeScheduleRepo{}
	gate := scheduling.NewMemoryGate()
	require.True(t, gate.TryAcquire("session:conv-42", time.Minute))

	r := newTestRouter(repo, gate)
	w := postJSON(t, r, "/api/schedule/book", gin.H{
		"sessionId":    "conv-42",
		"detailerId":   "det-1",
		"date":         "2025-06-14",
		"time":         "10:00",
		"timezone":     "America/Chicago",
		"customerName": "Dana",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, repo.created, "a busy gate must block the write")
}

func TestConfirmBookingConflictReleasesLease(t *testing.T) {
	repo := &fakeScheduleRepo{
		bookings: []models.Booking{{
			ID: "b1", DetailerID: "det-1", LocalDate: "2025-06-14", LocalTime: "10:00",
			Status: models.BookingStatusConfirmed, CustomerName: "Taken",
		}},
	}
	gate := scheduling.NewMemoryGate()
	r := newTestRouter(repo, gate)

	w := postJSON(t, r, "/api/schedule/book", gin.H{
		"sessionId":    "conv-42",
		"detailerId":   "det-1",
		"date":         "2025-06-14",
		"time":         "10:00",
		"timezone":     "America/Chicago",
		"customerName": "Dana",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, repo.created)

	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.NotEmpty(t, resp.Suggestions, "a rejected slot always comes with alternatives")

	// Release must happen on every exit path, including rejection.
	assert.False(t, gate.IsHeld("session:conv-42"))
}

func TestCheckAvailabilityStorageFailure(t *testing.T) {
	repo := &fakeScheduleRepo{listErr: errors.New("mongo down")}
	r := newTestRouter(repo, scheduling.NewMemoryGate())

	w := postJSON(t, r, "/api/schedule/availability", gin.H{
		"detailerId": "det-1",
		"date":       "2025-06-14",
		"time":       "10:00",
		"timezone":   "America/Chicago",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
