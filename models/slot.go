package models

import "time"

// TimeInterval is a half-open [Start, End) window of absolute UTC time.
// Two back-to-back intervals sharing an endpoint do not overlap.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LocalStamp is a UTC instant rendered back into a detailer's local zone,
// in the same shape bookings are stored with.
type LocalStamp struct {
	Date string `json:"date"` // e.g. "2025-06-14"
	Time string `json:"time"` // e.g. "2:00 PM"
}

// NormalizedSlotRequest is the validated, resolved form of an incoming
// availability or booking request. Built once per request, never mutated.
type NormalizedSlotRequest struct {
	DetailerID      string       `json:"detailerId"`
	Interval        TimeInterval `json:"interval"`
	Timezone        string       `json:"timezone"`
	DurationMinutes int          `json:"durationMinutes"`
}

// Conflict source kinds.
const (
	ConflictSourceBooking = "booking"
	ConflictSourceEvent   = "event"
)

// ConflictDescriptor describes one existing record blocking a requested slot.
// LocalTime carries the record's original stored time string so the message
// matches what the detailer already sees on their calendar.
type ConflictDescriptor struct {
	SourceKind string `json:"type"`
	Label      string `json:"label"`
	LocalTime  string `json:"time"`
}

// ConflictVerdict is the outcome of one availability evaluation.
type ConflictVerdict struct {
	Available   bool                 `json:"available"`
	Conflicts   []ConflictDescriptor `json:"conflicts"`
	Suggestions []TimeInterval       `json:"suggestions"`
}
