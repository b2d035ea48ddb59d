package handlers

import (
	"net/http"
	"time"

	"detailify/config"
	scheduleRepo "detailify/database/repository/schedule"
	"detailify/models"
	"detailify/services/scheduling"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves the availability-check and booking-creation
// endpoints. Both webhooks from the SMS/voice AI layer and dashboard actions
// land here.
type ScheduleHandler struct {
	Repo     scheduleRepo.ScheduleRepository
	Gate     scheduling.Gate
	Resolver *scheduling.ConflictResolver
	Logger   *zap.Logger
}

func NewScheduleHandler(repo scheduleRepo.ScheduleRepository, gate scheduling.Gate, resolver *scheduling.ConflictResolver, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo, Gate: gate, Resolver: resolver, Logger: logger}
}

// CheckAvailability evaluates a requested slot against the detailer's day.
// "No conflicts" and "conflicts found" are both 200s; only malformed input
// is an error.
func (h *ScheduleHandler) CheckAvailability(c *gin.Context) {
	var input models.AvailabilityRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, ok := h.normalizeRequest(c, input.DetailerID, input.Date, input.Time, input.Timezone, input.DurationMinutes)
	if !ok {
		return
	}

	resp, ok := h.evaluate(c, req, input.Date)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmBooking runs the serialized check-then-write sequence for one
// conversation: acquire the session's lease, re-check availability, persist
// the booking, release. Without the lease, a double webhook delivery or two
// SMS turns arriving together could both pass the check and both write.
func (h *ScheduleHandler) ConfirmBooking(c *gin.Context) {
	var input models.BookSlotRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	gateKey := "session:" + input.SessionID
	ttl := time.Duration(config.AppConfig.LeaseTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	if !h.Gate.TryAcquire(gateKey, ttl) {
		// Busy is a normal outcome, not a failure; the AI layer decides
		// whether to re-prompt the customer.
		c.JSON(http.StatusConflict, gin.H{"error": "another booking for this conversation is already in progress"})
		return
	}
	defer h.Gate.Release(gateKey)

	req, ok := h.normalizeRequest(c, input.DetailerID, input.Date, input.Time, input.Timezone, input.DurationMinutes)
	if !ok {
		return
	}

	resp, ok := h.evaluate(c, req, input.Date)
	if !ok {
		return
	}
	if !resp.Available {
		c.JSON(http.StatusConflict, resp)
		return
	}

	booking := &models.Booking{
		DetailerID:    input.DetailerID,
		LocalDate:     input.Date,
		LocalTime:     input.Time,
		Status:        models.BookingStatusPending,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Service:       input.Service,
		SessionID:     input.SessionID,
	}
	if err := h.Repo.CreateBooking(c.Request.Context(), booking); err != nil {
		h.Logger.Error("failed to persist booking",
			zap.String("detailerId", input.DetailerID),
			zap.String("sessionId", input.SessionID),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":       booking,
		"requestedSlot": req.Interval,
	})
}

// normalizeRequest resolves the timezone (falling back to the detailer
// profile), applies the configured default job length and converts the
// local-time input into an absolute UTC interval. Writes the error response
// itself and returns ok=false on failure.
func (h *ScheduleHandler) normalizeRequest(c *gin.Context, detailerID, date, localTime, timezone string, durationMinutes int) (models.NormalizedSlotRequest, bool) {
	if timezone == "" {
		detailer, err := h.Repo.GetDetailer(c.Request.Context(), detailerID)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "detailer not found", detailerID)
			return models.NormalizedSlotRequest{}, false
		}
		timezone = detailer.Timezone
	}

	if durationMinutes == 0 {
		durationMinutes = config.AppConfig.DefaultJobMinutes
	}

	interval, err := scheduling.NormalizeLocalSlot(date, localTime, timezone, durationMinutes)
	if err != nil {
		// Everything NormalizeLocalSlot rejects is caller input.
		utils.JSONError(c, http.StatusBadRequest, "invalid slot", err.Error())
		return models.NormalizedSlotRequest{}, false
	}

	return models.NormalizedSlotRequest{
		DetailerID:      detailerID,
		Interval:        interval,
		Timezone:        timezone,
		DurationMinutes: durationMinutes,
	}, true
}

// evaluate loads the day's snapshot, runs the conflict check and renders the
// verdict. Writes the error response itself and returns ok=false on storage
// failure.
func (h *ScheduleHandler) evaluate(c *gin.Context, req models.NormalizedSlotRequest, date string) (models.AvailabilityResponse, bool) {
	ctx := c.Request.Context()

	bookings, err := h.Repo.ListBlockingBookings(ctx, req.DetailerID, date)
	if err != nil {
		h.Logger.Error("failed to load bookings", zap.String("detailerId", req.DetailerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load schedule", "")
		return models.AvailabilityResponse{}, false
	}
	events, err := h.Repo.ListEvents(ctx, req.DetailerID, date)
	if err != nil {
		h.Logger.Error("failed to load calendar events", zap.String("detailerId", req.DetailerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load schedule", "")
		return models.AvailabilityResponse{}, false
	}

	verdict := h.Resolver.Evaluate(req, bookings, events)

	suggestions := make([]models.SuggestedSlot, 0, len(verdict.Suggestions))
	for _, s := range verdict.Suggestions {
		local, ferr := scheduling.FormatUTCInLocal(s.Start, req.Timezone)
		if ferr != nil {
			// The zone was already validated; keep the UTC form if this
			// somehow fails.
			local = models.LocalStamp{}
		}
		suggestions = append(suggestions, models.SuggestedSlot{
			Start:     s.Start.Format(time.RFC3339),
			End:       s.End.Format(time.RFC3339),
			LocalTime: local,
		})
	}

	return models.AvailabilityResponse{
		Available:     verdict.Available,
		Conflicts:     verdict.Conflicts,
		Suggestions:   suggestions,
		RequestedSlot: req.Interval,
	}, true
}
