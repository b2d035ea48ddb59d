package models

// AvailabilityRequest is the payload of the availability-check endpoint.
// DurationMinutes may be omitted; the server applies the configured default
// job length.
type AvailabilityRequest struct {
	DetailerID      string `json:"detailerId" binding:"required"`
	Date            string `json:"date" binding:"required"` // "2006-01-02"
	Time            string `json:"time" binding:"required"` // "2:00 PM" or "14:00"
	Timezone        string `json:"timezone,omitempty"`      // falls back to the detailer profile
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// SuggestedSlot pairs a candidate interval with its local-time rendering so
// the SMS/voice layer can read it straight back to the customer.
type SuggestedSlot struct {
	Start     string     `json:"start"`
	End       string     `json:"end"`
	LocalTime LocalStamp `json:"local"`
}

// AvailabilityResponse is the availability-check endpoint's reply.
type AvailabilityResponse struct {
	Available     bool                 `json:"available"`
	Conflicts     []ConflictDescriptor `json:"conflicts"`
	Suggestions   []SuggestedSlot      `json:"suggestions"`
	RequestedSlot TimeInterval         `json:"requestedSlot"`
}

// BookSlotRequest is the payload of the booking-creation endpoint. SessionID
// identifies the owning conversation and keys the serialization gate, so a
// double webhook delivery cannot book the same slot twice.
type BookSlotRequest struct {
	SessionID       string `json:"sessionId" binding:"required"`
	DetailerID      string `json:"detailerId" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Timezone        string `json:"timezone,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	Service         string `json:"service,omitempty"`
}
