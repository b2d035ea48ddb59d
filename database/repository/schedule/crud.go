// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"detailify/models"

	"github.com/google/uuid"
)

func (r *mongoScheduleRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}
