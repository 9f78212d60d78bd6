package models

import (
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// Request модели

// TierRequest ступень возврата в запросе
type TierRequest struct {
	HoursBeforeStart int    `json:"hoursBeforeStart"`
	RefundPercentage int    `json:"refundPercentage"`
	FixedFeeMinor    *int64 `json:"fixedFeeMinor,omitempty"`
}

// UpsertPolicyRequest запрос на создание или обновление политики возврата
// Если PolicyID задан - политика обновляется целиком, иначе создаётся новая
type UpsertPolicyRequest struct {
	PolicyID  *int64 `json:"-"`
	PartnerID int64  `json:"-"`

	Name                      string        `json:"name"`
	CalculationType           string        `json:"calculationType"` // percentage | fixed_amount | tiered
	DefaultRefundPercentage   int           `json:"defaultRefundPercentage"`
	FixedCancellationFeeMinor int64         `json:"fixedCancellationFeeMinor"`
	NoRefundHours             int           `json:"noRefundHours"`
	MinimumNoticeHours        int           `json:"minimumNoticeHours"`
	AllowSameDayRefund        bool          `json:"allowSameDayRefund"`
	Tiers                     []TierRequest `json:"tiers,omitempty"`
	ForceMajeureFullRefund    bool          `json:"forceMajeureFullRefund"`
	IsActive                  bool          `json:"isActive"`
	IsDefault                 bool          `json:"isDefault"`
}

// ToDomainPolicy конвертирует запрос в domain модель с валидацией
func (r *UpsertPolicyRequest) ToDomainPolicy() (*domain.RefundPolicy, error) {
	tiers := make([]domain.RefundTier, len(r.Tiers))
	for i, tier := range r.Tiers {
		tiers[i] = domain.RefundTier{
			HoursBeforeStart: tier.HoursBeforeStart,
			RefundPercentage: tier.RefundPercentage,
			FixedFeeMinor:    tier.FixedFeeMinor,
		}
	}

	policy := &domain.RefundPolicy{
		PartnerID:                 r.PartnerID,
		Name:                      r.Name,
		CalculationType:           domain.RefundCalculationType(r.CalculationType),
		DefaultRefundPercentage:   r.DefaultRefundPercentage,
		FixedCancellationFeeMinor: r.FixedCancellationFeeMinor,
		NoRefundHours:             r.NoRefundHours,
		MinimumNoticeHours:        r.MinimumNoticeHours,
		AllowSameDayRefund:        r.AllowSameDayRefund,
		Tiers:                     tiers,
		ForceMajeureFullRefund:    r.ForceMajeureFullRefund,
		IsActive:                  r.IsActive,
		IsDefault:                 r.IsDefault,
	}

	if r.PolicyID != nil {
		policy.ID = *r.PolicyID
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return policy, nil
}

// Response модели

// TierResponse ступень возврата в ответе
type TierResponse struct {
	HoursBeforeStart int    `json:"hoursBeforeStart"`
	RefundPercentage int    `json:"refundPercentage"`
	FixedFeeMinor    *int64 `json:"fixedFeeMinor,omitempty"`
}

// PolicyResponse ответ с данными политики возврата
type PolicyResponse struct {
	ID                        int64          `json:"id"`
	PartnerID                 int64          `json:"partnerId"`
	Name                      string         `json:"name"`
	CalculationType           string         `json:"calculationType"`
	DefaultRefundPercentage   int            `json:"defaultRefundPercentage"`
	FixedCancellationFeeMinor int64          `json:"fixedCancellationFeeMinor"`
	NoRefundHours             int            `json:"noRefundHours"`
	MinimumNoticeHours        int            `json:"minimumNoticeHours"`
	AllowSameDayRefund        bool           `json:"allowSameDayRefund"`
	Tiers                     []TierResponse `json:"tiers,omitempty"`
	ForceMajeureFullRefund    bool           `json:"forceMajeureFullRefund"`
	IsActive                  bool           `json:"isActive"`
	IsDefault                 bool           `json:"isDefault"`
	CreatedAt                 time.Time      `json:"createdAt"`
	UpdatedAt                 time.Time      `json:"updatedAt"`
}

// PolicyListResponse ответ со списком политик
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.RefundPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	tiers := make([]TierResponse, len(p.Tiers))
	for i, tier := range p.Tiers {
		tiers[i] = TierResponse{
			HoursBeforeStart: tier.HoursBeforeStart,
			RefundPercentage: tier.RefundPercentage,
			FixedFeeMinor:    tier.FixedFeeMinor,
		}
	}

	return &PolicyResponse{
		ID:                        p.ID,
		PartnerID:                 p.PartnerID,
		Name:                      p.Name,
		CalculationType:           string(p.CalculationType),
		DefaultRefundPercentage:   p.DefaultRefundPercentage,
		FixedCancellationFeeMinor: p.FixedCancellationFeeMinor,
		NoRefundHours:             p.NoRefundHours,
		MinimumNoticeHours:        p.MinimumNoticeHours,
		AllowSameDayRefund:        p.AllowSameDayRefund,
		Tiers:                     tiers,
		ForceMajeureFullRefund:    p.ForceMajeureFullRefund,
		IsActive:                  p.IsActive,
		IsDefault:                 p.IsDefault,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.RefundPolicy) *PolicyListResponse {
	if policies == nil {
		return &PolicyListResponse{
			Policies: []PolicyResponse{},
		}
	}

	resp := &PolicyListResponse{
		Policies: make([]PolicyResponse, len(policies)),
	}

	for i, policy := range policies {
		if policyResp := FromDomainPolicy(policy); policyResp != nil {
			resp.Policies[i] = *policyResp
		}
	}

	return resp
}
