package set_override

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
