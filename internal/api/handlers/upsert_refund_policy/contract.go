package upsert_refund_policy

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

type PolicyService interface {
	Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
