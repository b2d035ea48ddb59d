package scheduling

import "errors"

// Caller-input errors. These surface to the API layer as 400s and are never
// retried internally; malformed stored records are handled separately (the
// resolver skips them).
var (
	ErrInvalidDate          = errors.New("invalid calendar date, expected YYYY-MM-DD")
	ErrInvalidTimeFormat    = errors.New("invalid time, expected \"14:00\" or \"2:00 PM\"")
	ErrUnknownTimezone      = errors.New("unknown IANA timezone")
	ErrInvalidDuration      = errors.New("duration must be a positive number of minutes")
	ErrNonexistentLocalTime = errors.New("local time does not exist on that date (daylight saving transition)")
)
