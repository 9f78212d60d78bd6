package refundpolicy

import (
	"context"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// PolicyRepository интерфейс репозитория политик возврата
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error)
	Update(ctx context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error)
	GetByID(ctx context.Context, id int64) (*domain.RefundPolicy, error)
	GetDefaultByPartner(ctx context.Context, partnerID int64) (*domain.RefundPolicy, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]*domain.RefundPolicy, error)
	ClearDefault(ctx context.Context, partnerID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
