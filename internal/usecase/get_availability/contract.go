package get_availability

import (
	"context"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetPattern(ctx context.Context, spaceID int64) (*domain.WeeklyPattern, error)
	GetOverride(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilityOverride, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBySpaceWithFilter(ctx context.Context, filter domain.SpaceBookingsFilter) ([]*domain.Booking, error)
}

// SpaceRepository интерфейс репозитория пространств
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
