package scheduling

import (
	"time"

	"detailify/models"
)

// SuggestNext proposes count back-to-back candidate slots of the given
// length, the first starting at afterUTC. Candidates are not re-checked
// against the calendar; a caller that needs guaranteed-free suggestions must
// run each one back through the resolver.
func SuggestNext(afterUTC time.Time, durationMinutes, count int) ([]models.TimeInterval, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if count <= 0 {
		return nil, nil
	}

	step := time.Duration(durationMinutes) * time.Minute
	slots := make([]models.TimeInterval, 0, count)
	start := afterUTC
	for i := 0; i < count; i++ {
		end := start.Add(step)
		slots = append(slots, models.TimeInterval{Start: start, End: end})
		start = end
	}
	return slots, nil
}
