package schedule

import (
	"context"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	UpsertPattern(ctx context.Context, pattern *domain.WeeklyPattern) (*domain.WeeklyPattern, error)
	GetPattern(ctx context.Context, spaceID int64) (*domain.WeeklyPattern, error)
	CreateOverride(ctx context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error)
	ReplaceOverride(ctx context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error)
	GetOverride(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilityOverride, error)
	DeleteOverride(ctx context.Context, spaceID int64, date time.Time) error
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
