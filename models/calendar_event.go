package models

// CalendarEvent is a free-form entry synced onto a detailer's calendar from
// an external source (e.g. a personal Google Calendar appointment). Events
// have no status lifecycle; every event blocks its slot.
type CalendarEvent struct {
	ID         string `bson:"id" json:"id"`
	DetailerID string `bson:"detailerId" json:"detailerId"`
	LocalDate  string `bson:"date" json:"date"`
	LocalTime  string `bson:"time" json:"time"`
	Title      string `bson:"title" json:"title"`
}
