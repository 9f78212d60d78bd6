package refundpolicy

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/space-booking-service/internal/domain"
	policyRepo "github.com/deskhive/space-booking-service/internal/infra/storage/refundpolicy"
	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

// Service сервис для управления политиками возврата
type Service struct {
	policyRepo PolicyRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик возврата
func NewService(
	policyRepo PolicyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		policyRepo: policyRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Upsert создает новую политику или обновляет существующую целиком
// Если политика помечена как дефолтная, флаг снимается с предыдущего
// дефолта в той же транзакции - у партнёра не бывает двух дефолтов
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: saving policy for partner=%d (id=%v, default=%v)",
		req.PartnerID, req.PolicyID, req.IsDefault)

	// 1. Валидируем и конвертируем политику
	policy, err := req.ToDomainPolicy()
	if err != nil {
		s.logger.Warn("Upsert: validation failed for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. При обновлении проверяем, что политика принадлежит партнёру
	if req.PolicyID != nil {
		existing, err := s.policyRepo.GetByID(ctx, *req.PolicyID)
		if err != nil {
			if errors.Is(err, policyRepo.ErrPolicyNotFound) {
				s.logger.Warn("Upsert: policy id=%d not found", *req.PolicyID)
				return nil, ErrPolicyNotFound
			}
			s.logger.Error("Upsert: repository error for policy id=%d: %v", *req.PolicyID, err)
			return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}
		if existing.PartnerID != req.PartnerID {
			s.logger.Warn("Upsert: partner=%d does not own policy id=%d", req.PartnerID, *req.PolicyID)
			return nil, ErrAccessDenied
		}
	}

	// 3. Сохраняем в serializable транзакции, чтобы переключение дефолта было атомарным
	var saved *domain.RefundPolicy
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if policy.IsDefault {
			if err := s.policyRepo.ClearDefault(ctx, policy.PartnerID); err != nil {
				return err
			}
		}

		var txErr error
		if req.PolicyID != nil {
			saved, txErr = s.policyRepo.Update(ctx, policy)
		} else {
			saved, txErr = s.policyRepo.Create(ctx, policy)
		}
		return txErr
	})

	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Upsert: policy id=%v not found during update", req.PolicyID)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("Upsert: transaction error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Upsert - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved policy id=%d for partner=%d", saved.ID, req.PartnerID)
	return models.FromDomainPolicy(saved), nil
}

// GetByID получает политику по ID с проверкой владельца
func (s *Service) GetByID(ctx context.Context, id int64, partnerID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetByID: fetching policy id=%d for partner=%d", id, partnerID)

	policy, err := s.policyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("GetByID: policy id=%d not found", id)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("GetByID: repository error for policy id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if policy.PartnerID != partnerID {
		s.logger.Warn("GetByID: partner=%d does not own policy id=%d", partnerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainPolicy(policy), nil
}

// ListByPartner получает все политики партнёра
func (s *Service) ListByPartner(ctx context.Context, partnerID int64) (*models.PolicyListResponse, error) {
	s.logger.Info("ListByPartner: fetching policies for partner=%d", partnerID)

	policies, err := s.policyRepo.ListByPartner(ctx, partnerID)
	if err != nil {
		s.logger.Error("ListByPartner: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: ListByPartner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPartner: successfully fetched %d policies for partner=%d", len(policies), partnerID)
	return models.FromDomainPolicyList(policies), nil
}
