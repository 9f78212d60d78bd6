package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a space booking for a single date and time interval.
// The interval is fixed at creation; a reschedule is modeled as
// cancel + new booking, never as an interval mutation.
type Booking struct {
	ID          int64
	SpaceID     int64
	UserID      int64
	BookingDate time.Time
	Interval    TimeInterval
	Status      BookingStatus
	AmountMinor int64 // стоимость в минорных единицах (копейки)

	CancellationReason *string
	CancelledAt        *time.Time
	RefundAmountMinor  *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime returns true if the booking blocks availability.
// Cancelled bookings never occupy time.
func (b *Booking) OccupiesTime() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// SpaceBookingsFilter фильтр для получения бронирований пространства
type SpaceBookingsFilter struct {
	SpaceID          int64          // Обязательный параметр
	Date             *time.Time     // Конкретная дата (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
