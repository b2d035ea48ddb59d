// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"detailify/database"
	"detailify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository is the read/write surface the scheduling endpoints need:
// a snapshot of one detailer's day for conflict evaluation, plus the single
// write performed after the gate and the availability check both pass. The
// conflict core itself never touches this interface.
type ScheduleRepository interface {
	GetDetailer(ctx context.Context, detailerID string) (*models.Detailer, error)
	ListBlockingBookings(ctx context.Context, detailerID, date string) ([]models.Booking, error)
	ListEvents(ctx context.Context, detailerID, date string) ([]models.CalendarEvent, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
}

type mongoScheduleRepo struct {
	detailers *mongo.Collection
	bookings  *mongo.Collection
	events    *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.DB()
	return &mongoScheduleRepo{
		detailers: db.Collection("detailers"),
		bookings:  db.Collection("bookings"),
		events:    db.Collection("calendar_events"),
	}
}
