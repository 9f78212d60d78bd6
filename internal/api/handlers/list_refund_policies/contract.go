package list_refund_policies

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

type PolicyService interface {
	ListByPartner(ctx context.Context, partnerID int64) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
