package delete_override

import (
	"context"
	"time"
)

type ScheduleService interface {
	DeleteOverride(ctx context.Context, partnerID, spaceID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
