package scheduling

import (
	"strings"
	"time"

	"detailify/models"
)

const dateLayout = "2006-01-02"

// Accepted wall-clock layouts, tried in order: 24-hour, then 12-hour with
// and without a space before the meridiem, then bare hours like "2 PM".
var timeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// NormalizeLocalSlot converts a local calendar date, a free-text local time
// and an IANA timezone into an absolute half-open UTC interval of the given
// length. The zone's rules for that specific date apply, so the same wall
// clock maps differently across daylight-saving transitions. A wall-clock
// time skipped by a spring-forward transition is rejected with
// ErrNonexistentLocalTime rather than silently rolled forward.
//
// Every comparison in the conflict checker goes through this one function;
// stored records and the incoming request must never be compared in
// different zones.
func NormalizeLocalSlot(date, localTime, timezone string, durationMinutes int) (models.TimeInterval, error) {
	if durationMinutes <= 0 {
		return models.TimeInterval{}, ErrInvalidDuration
	}

	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return models.TimeInterval{}, ErrInvalidDate
	}

	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil {
		return models.TimeInterval{}, ErrUnknownTimezone
	}

	clock, err := parseWallClock(localTime)
	if err != nil {
		return models.TimeInterval{}, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	// time.Date normalizes instants that fall in a spring-forward gap onto
	// the other side of the transition; a shifted wall clock means the
	// requested local time never happened on that date.
	if start.Hour() != clock.Hour() || start.Minute() != clock.Minute() {
		return models.TimeInterval{}, ErrNonexistentLocalTime
	}

	startUTC := start.UTC()
	return models.TimeInterval{
		Start: startUTC,
		End:   startUTC.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// FormatUTCInLocal renders a UTC instant back into the given zone, in the
// same date/time shape bookings are stored with.
func FormatUTCInLocal(instant time.Time, timezone string) (models.LocalStamp, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil {
		return models.LocalStamp{}, ErrUnknownTimezone
	}
	local := instant.In(loc)
	return models.LocalStamp{
		Date: local.Format(dateLayout),
		Time: local.Format("3:04 PM"),
	}, nil
}

func parseWallClock(raw string) (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}
