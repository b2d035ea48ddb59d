// File: database/repository/schedule/queries.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"detailify/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoScheduleRepo) GetDetailer(ctx context.Context, detailerID string) (*models.Detailer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var detailer models.Detailer
	if err := r.detailers.FindOne(ctx, bson.M{"id": detailerID}).Decode(&detailer); err != nil {
		return nil, fmt.Errorf("failed to fetch detailer %s: %w", detailerID, err)
	}
	return &detailer, nil
}

// ListBlockingBookings returns the detailer's pending and confirmed bookings
// for one calendar day. Cancelled and completed bookings are filtered in the
// query; they never participate in conflict checks.
func (r *mongoScheduleRepo) ListBlockingBookings(ctx context.Context, detailerID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"detailerId": detailerID,
		"date":       date,
		"status":     bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
	}

	cursor, err := r.bookings.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListEvents returns every synced calendar event for the day. Events carry no
// status; all of them block.
func (r *mongoScheduleRepo) ListEvents(ctx context.Context, detailerID, date string) ([]models.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"detailerId": detailerID,
		"date":       date,
	}

	cursor, err := r.events.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.CalendarEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return events, nil
}
