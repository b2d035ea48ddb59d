package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking is one appointment on a detailer's calendar. Times are stored the
// way the dashboard captures them: a calendar date plus a free-text local
// time string ("2:00 PM" or "14:00") in the detailer's zone.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	DetailerID    string    `bson:"detailerId" json:"detailerId"`
	LocalDate     string    `bson:"date" json:"date"` // "2006-01-02"
	LocalTime     string    `bson:"time" json:"time"`
	Status        string    `bson:"status" json:"status"`
	CustomerName  string    `bson:"customerName" json:"customerName"`
	CustomerPhone string    `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	Service       string    `bson:"service,omitempty" json:"service,omitempty"`
	SessionID     string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Blocking reports whether this booking occupies its slot for conflict
// purposes. Cancelled and completed bookings never block.
func (b Booking) Blocking() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
