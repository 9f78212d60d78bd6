package get_refund_policy

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

type PolicyService interface {
	GetByID(ctx context.Context, id int64, partnerID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
