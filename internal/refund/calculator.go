package refund

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// ErrUnknownCalculationType возвращается для политики с неизвестным типом расчёта
var ErrUnknownCalculationType = errors.New("refund: unknown calculation type")

// Compute вычисляет возврат по политике отмены.
//
// Порядок применения правил:
//  1. Форс-мажор при forceMajeureFullRefund - полный возврат без учёта запаса
//  2. Запас времени (notice) - полные часы от отмены до начала, минимум 0
//  3. Запрет same-day отмены: при allowSameDayRefund = false и запасе меньше
//     minimumNoticeHours отмена без возврата
//  4. Тиры (для tiered-политики) имеют приоритет над сплошным окном
//     noRefundHours: сначала ищем подходящий тир, и только если ни один
//     не подошёл (или политика не tiered) - применяем noRefundHours
//  5. percentage / fixed_amount - базовые формулы с вычетом фиксированного сбора
//
// Вся денежная арифметика в целых минорных единицах; проценты применяются
// с округлением half-up на последнем шаге. Функция чистая: не трогает ни
// бронирование, ни платёжный шлюз
func Compute(
	policy *domain.RefundPolicy,
	amountMinor int64,
	bookingStart time.Time,
	cancellationTime time.Time,
	isForceMajeure bool,
) (domain.RefundResult, error) {
	if isForceMajeure && policy.ForceMajeureFullRefund {
		return buildResult(amountMinor, amountMinor, true, domain.ReasonForceMajeure), nil
	}

	notice := domain.NoticeHours(bookingStart, cancellationTime)

	if !policy.AllowSameDayRefund && notice < policy.MinimumNoticeHours {
		return buildResult(amountMinor, 0, false, domain.ReasonBelowMinimumNotice), nil
	}

	switch policy.CalculationType {
	case domain.CalculationTiered:
		if tier, ok := matchTier(policy.Tiers, notice); ok {
			refund := applyPercentage(amountMinor, tier.RefundPercentage)
			if tier.FixedFeeMinor != nil {
				refund -= *tier.FixedFeeMinor
			}
			refund = clamp(refund, amountMinor)
			return buildResult(amountMinor, refund, refund > 0, domain.ReasonTierMatched), nil
		}
		// Ни один тир не подошёл - откатываемся на сплошное окно noRefundHours
		if notice <= policy.NoRefundHours {
			return buildResult(amountMinor, 0, false, domain.ReasonNoRefundWindow), nil
		}
		refund := clamp(applyPercentage(amountMinor, policy.DefaultRefundPercentage)-policy.FixedCancellationFeeMinor, amountMinor)
		return buildResult(amountMinor, refund, refund > 0, domain.ReasonPercentagePolicy), nil

	case domain.CalculationPercentage:
		if notice <= policy.NoRefundHours {
			return buildResult(amountMinor, 0, false, domain.ReasonNoRefundWindow), nil
		}
		refund := clamp(applyPercentage(amountMinor, policy.DefaultRefundPercentage)-policy.FixedCancellationFeeMinor, amountMinor)
		return buildResult(amountMinor, refund, refund > 0, domain.ReasonPercentagePolicy), nil

	case domain.CalculationFixedAmount:
		if notice <= policy.NoRefundHours {
			return buildResult(amountMinor, 0, false, domain.ReasonNoRefundWindow), nil
		}
		refund := clamp(amountMinor-policy.FixedCancellationFeeMinor, amountMinor)
		return buildResult(amountMinor, refund, refund > 0, domain.ReasonFixedAmountPolicy), nil

	default:
		return domain.RefundResult{}, fmt.Errorf("%w: %q", ErrUnknownCalculationType, policy.CalculationType)
	}
}

// matchTier выбирает тир с наибольшим порогом hoursBeforeStart, который
// всё ещё <= фактического запаса. Тиры сортируются по убыванию порога,
// первый подходящий побеждает
func matchTier(tiers []domain.RefundTier, noticeHours int) (domain.RefundTier, bool) {
	sorted := make([]domain.RefundTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].HoursBeforeStart > sorted[b].HoursBeforeStart
	})

	for _, tier := range sorted {
		if noticeHours >= tier.HoursBeforeStart {
			return tier, true
		}
	}

	return domain.RefundTier{}, false
}

// applyPercentage применяет процент к сумме в минорных единицах
// с округлением half-up
func applyPercentage(amountMinor int64, percentage int) int64 {
	return (amountMinor*int64(percentage) + 50) / 100
}

// clamp ограничивает возврат диапазоном [0, amount]
func clamp(refund, amountMinor int64) int64 {
	if refund < 0 {
		return 0
	}
	if refund > amountMinor {
		return amountMinor
	}
	return refund
}

func buildResult(amountMinor, refundMinor int64, refundable bool, reason string) domain.RefundResult {
	fee := amountMinor - refundMinor
	if fee < 0 {
		fee = 0
	}

	var pct float64
	if amountMinor > 0 {
		pct = float64(refundMinor) / float64(amountMinor) * 100
	}

	return domain.RefundResult{
		RefundAmountMinor:    refundMinor,
		CancellationFeeMinor: fee,
		RefundPercentage:     pct,
		IsRefundable:         refundable,
		Reason:               reason,
	}
}
