package set_schedule

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	SetWeeklyPattern(ctx context.Context, req *models.SetScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
