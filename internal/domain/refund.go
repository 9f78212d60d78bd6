package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy возвращается при нарушении инвариантов политики возврата
var ErrInvalidPolicy = errors.New("domain: invalid refund policy")

// RefundCalculationType способ расчёта возврата
type RefundCalculationType string

const (
	CalculationPercentage  RefundCalculationType = "percentage"
	CalculationFixedAmount RefundCalculationType = "fixed_amount"
	CalculationTiered      RefundCalculationType = "tiered"
)

// Refund reason codes, surfaced to callers for auditing and messaging.
const (
	ReasonForceMajeure       = "force_majeure"
	ReasonBelowMinimumNotice = "below_minimum_notice"
	ReasonNoRefundWindow     = "no_refund_window"
	ReasonTierMatched        = "tier_matched"
	ReasonPercentagePolicy   = "percentage_policy"
	ReasonFixedAmountPolicy  = "fixed_amount_policy"
)

// RefundTier is a refund rule keyed by a minimum notice threshold.
// The applicable tier is the one with the largest HoursBeforeStart that is
// still <= the actual notice given.
type RefundTier struct {
	HoursBeforeStart int
	RefundPercentage int
	FixedFeeMinor    *int64
}

// RefundPolicy is a partner-owned cancellation policy. At most one policy
// per partner may be the default at any time; the refundpolicy service
// enforces the flip atomically.
type RefundPolicy struct {
	ID                        int64
	PartnerID                 int64
	Name                      string
	CalculationType           RefundCalculationType
	DefaultRefundPercentage   int
	FixedCancellationFeeMinor int64
	NoRefundHours             int
	MinimumNoticeHours        int
	AllowSameDayRefund        bool
	Tiers                     []RefundTier
	ForceMajeureFullRefund    bool
	IsActive                  bool
	IsDefault                 bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Validate проверяет инварианты политики возврата
// Дубликаты порогов в tiers запрещены, чтобы выбор тира был однозначным
func (p *RefundPolicy) Validate() error {
	switch p.CalculationType {
	case CalculationPercentage, CalculationFixedAmount, CalculationTiered:
	default:
		return fmt.Errorf("%w: unknown calculation type %q", ErrInvalidPolicy, p.CalculationType)
	}

	if p.DefaultRefundPercentage < 0 || p.DefaultRefundPercentage > 100 {
		return fmt.Errorf("%w: default refund percentage %d out of range", ErrInvalidPolicy, p.DefaultRefundPercentage)
	}
	if p.FixedCancellationFeeMinor < 0 {
		return fmt.Errorf("%w: negative cancellation fee", ErrInvalidPolicy)
	}
	if p.NoRefundHours < 0 || p.MinimumNoticeHours < 0 {
		return fmt.Errorf("%w: negative hour threshold", ErrInvalidPolicy)
	}
	if len(p.Name) > MaxPolicyNameLength {
		return fmt.Errorf("%w: name too long", ErrInvalidPolicy)
	}
	if len(p.Tiers) > MaxRefundTiers {
		return fmt.Errorf("%w: too many tiers (%d)", ErrInvalidPolicy, len(p.Tiers))
	}
	if p.CalculationType == CalculationTiered && len(p.Tiers) == 0 {
		return fmt.Errorf("%w: tiered policy must have at least one tier", ErrInvalidPolicy)
	}

	seen := make(map[int]struct{}, len(p.Tiers))
	for idx, tier := range p.Tiers {
		if tier.HoursBeforeStart < 0 {
			return fmt.Errorf("%w: tier %d has negative threshold", ErrInvalidPolicy, idx)
		}
		if tier.RefundPercentage < 0 || tier.RefundPercentage > 100 {
			return fmt.Errorf("%w: tier %d refund percentage %d out of range", ErrInvalidPolicy, idx, tier.RefundPercentage)
		}
		if tier.FixedFeeMinor != nil && *tier.FixedFeeMinor < 0 {
			return fmt.Errorf("%w: tier %d has negative fixed fee", ErrInvalidPolicy, idx)
		}
		if _, dup := seen[tier.HoursBeforeStart]; dup {
			return fmt.Errorf("%w: duplicate tier threshold %dh", ErrInvalidPolicy, tier.HoursBeforeStart)
		}
		seen[tier.HoursBeforeStart] = struct{}{}
	}

	return nil
}

// RefundResult is the outcome of a refund computation. A pure value:
// producing it never moves money and never mutates the booking.
type RefundResult struct {
	RefundAmountMinor    int64
	CancellationFeeMinor int64
	RefundPercentage     float64
	IsRefundable         bool
	Reason               string
}

// NoticeHours возвращает количество полных часов между отменой и началом
// бронирования; отрицательный запас (отмена после начала) обрезается до 0
func NoticeHours(bookingStart, cancellationTime time.Time) int {
	delta := bookingStart.Sub(cancellationTime)
	if delta <= 0 {
		return 0
	}
	return int(delta / time.Hour)
}
