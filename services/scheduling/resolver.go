package scheduling

import (
	"detailify/models"

	"go.uber.org/zap"
)

const defaultSuggestionCount = 3

// ConflictResolver decides whether a requested slot is actually free on a
// detailer's calendar, reconciling structured bookings and free-form
// calendar events in one pass. It holds no state between calls and is safe
// for concurrent use; serialization of check-then-write sequences is the
// gate's job, not this one's.
type ConflictResolver struct {
	SuggestionCount int // 0 means defaultSuggestionCount
	Logger          *zap.Logger
}

// candidate is one existing record lifted into the comparison space.
type candidate struct {
	interval  models.TimeInterval
	kind      string
	label     string
	localTime string
}

// Evaluate checks the normalized request against a snapshot of the
// detailer's bookings and events for the target day. Cancelled and completed
// bookings never block. A stored record whose date or time fails to parse is
// logged and excluded rather than failing the whole evaluation; one corrupt
// historical row must not block every future booking.
func (r *ConflictResolver) Evaluate(req models.NormalizedSlotRequest, bookings []models.Booking, events []models.CalendarEvent) models.ConflictVerdict {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	candidates := make([]candidate, 0, len(bookings)+len(events))
	for _, b := range bookings {
		if !b.Blocking() {
			continue
		}
		iv, err := NormalizeLocalSlot(b.LocalDate, b.LocalTime, req.Timezone, req.DurationMinutes)
		if err != nil {
			logger.Warn("skipping booking with unparseable stored time",
				zap.String("bookingId", b.ID),
				zap.String("date", b.LocalDate),
				zap.String("time", b.LocalTime),
				zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate{
			interval:  iv,
			kind:      models.ConflictSourceBooking,
			label:     b.CustomerName,
			localTime: b.LocalTime,
		})
	}
	for _, e := range events {
		iv, err := NormalizeLocalSlot(e.LocalDate, e.LocalTime, req.Timezone, req.DurationMinutes)
		if err != nil {
			logger.Warn("skipping calendar event with unparseable stored time",
				zap.String("eventId", e.ID),
				zap.String("date", e.LocalDate),
				zap.String("time", e.LocalTime),
				zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate{
			interval:  iv,
			kind:      models.ConflictSourceEvent,
			label:     e.Title,
			localTime: e.LocalTime,
		})
	}

	intervals := make([]models.TimeInterval, len(candidates))
	for i, c := range candidates {
		intervals[i] = c.interval
	}

	hits := FindOverlapping(req.Interval, intervals)
	if len(hits) == 0 {
		return models.ConflictVerdict{Available: true, Conflicts: []models.ConflictDescriptor{}, Suggestions: []models.TimeInterval{}}
	}

	conflicts := make([]models.ConflictDescriptor, 0, len(hits))
	latestEnd := candidates[hits[0]].interval.End
	for _, idx := range hits {
		c := candidates[idx]
		conflicts = append(conflicts, models.ConflictDescriptor{
			SourceKind: c.kind,
			Label:      c.label,
			LocalTime:  c.localTime,
		})
		if c.interval.End.After(latestEnd) {
			latestEnd = c.interval.End
		}
	}

	count := r.SuggestionCount
	if count <= 0 {
		count = defaultSuggestionCount
	}
	// Anchor suggestions at the latest conflicting end. These are fast,
	// approximate candidates; they are not re-validated against later
	// conflicts the same day.
	suggestions, err := SuggestNext(latestEnd, req.DurationMinutes, count)
	if err != nil {
		logger.Warn("failed to build slot suggestions", zap.Error(err))
		suggestions = nil
	}
	if suggestions == nil {
		suggestions = []models.TimeInterval{}
	}

	return models.ConflictVerdict{
		Available:   false,
		Conflicts:   conflicts,
		Suggestions: suggestions,
	}
}
