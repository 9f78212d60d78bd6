package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
	bookingStorage "github.com/deskhive/space-booking-service/internal/infra/storage/booking"
	"github.com/deskhive/space-booking-service/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	lastStatusFilter *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastStatusFilter = status

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		SpaceID:     1,
		UserID:      42,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Interval:    domain.TimeInterval{Start: 600, End: 720},
		Status:      domain.StatusConfirmed,
		AmountMinor: 100000,
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: testBooking()}}
	svc := NewService(repo, nopLogger{})

	t.Run("owner gets the booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 5, 42)
		require.NoError(t, err)

		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2026-09-10", resp.BookingDate)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "12:00", resp.EndTime)
	})

	t.Run("foreign booking is hidden", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 42)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("pending booking becomes confirmed", func(t *testing.T) {
		pending := testBooking()
		pending.Status = domain.StatusPending
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pending}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Confirm(context.Background(), 5, 42)
		require.NoError(t, err)

		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[5].Status)
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		cancelled := testBooking()
		cancelled.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: cancelled}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Confirm(context.Background(), 5, 42)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[5].Status)
	})

	t.Run("repeated confirmation is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: testBooking()}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Confirm(context.Background(), 5, 42)
		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	})

	t.Run("foreign booking", func(t *testing.T) {
		pending := testBooking()
		pending.Status = domain.StatusPending
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pending}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Confirm(context.Background(), 5, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusPending, repo.bookings[5].Status)
	})
}

func TestGetUserBookings(t *testing.T) {
	cancelled := testBooking()
	cancelled.ID = 6
	cancelled.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		5: testBooking(),
		6: cancelled,
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("without filter returns everything", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})
		require.NoError(t, err)

		assert.Len(t, resp.Bookings, 2)
		assert.Nil(t, repo.lastStatusFilter)
	})

	t.Run("status filter is passed to the repository", func(t *testing.T) {
		status := "cancelled"
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &status})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "cancelled", resp.Bookings[0].Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		status := "archived"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
