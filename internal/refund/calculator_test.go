package refund

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
)

var bookingStart = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

func percentagePolicy() *domain.RefundPolicy {
	return &domain.RefundPolicy{
		CalculationType:           domain.CalculationPercentage,
		DefaultRefundPercentage:   80,
		FixedCancellationFeeMinor: 5000,
		NoRefundHours:             2,
		AllowSameDayRefund:        true,
		ForceMajeureFullRefund:    true,
	}
}

func tieredPolicy() *domain.RefundPolicy {
	return &domain.RefundPolicy{
		CalculationType:         domain.CalculationTiered,
		DefaultRefundPercentage: 10,
		NoRefundHours:           2,
		AllowSameDayRefund:      true,
		ForceMajeureFullRefund:  true,
		Tiers: []domain.RefundTier{
			{HoursBeforeStart: 48, RefundPercentage: 100},
			{HoursBeforeStart: 24, RefundPercentage: 50},
		},
	}
}

func TestCompute_ForceMajeure(t *testing.T) {
	// Форс-мажор перекрывает любой запас, даже нулевой
	cancelAt := bookingStart.Add(-10 * time.Minute)

	result, err := Compute(percentagePolicy(), 100000, bookingStart, cancelAt, true)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), result.RefundAmountMinor)
	assert.Equal(t, int64(0), result.CancellationFeeMinor)
	assert.True(t, result.IsRefundable)
	assert.Equal(t, domain.ReasonForceMajeure, result.Reason)
}

func TestCompute_ForceMajeureDisabledByPolicy(t *testing.T) {
	policy := percentagePolicy()
	policy.ForceMajeureFullRefund = false

	// Флаг форс-мажора игнорируется, работает обычная формула
	cancelAt := bookingStart.Add(-30 * time.Hour)
	result, err := Compute(policy, 100000, bookingStart, cancelAt, true)
	require.NoError(t, err)

	assert.Equal(t, int64(75000), result.RefundAmountMinor) // 80% - 5000
	assert.Equal(t, domain.ReasonPercentagePolicy, result.Reason)
}

func TestCompute_SameDayGate(t *testing.T) {
	policy := percentagePolicy()
	policy.AllowSameDayRefund = false
	policy.MinimumNoticeHours = 24

	cancelAt := bookingStart.Add(-10 * time.Hour)
	result, err := Compute(policy, 100000, bookingStart, cancelAt, false)
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.RefundAmountMinor)
	assert.Equal(t, int64(100000), result.CancellationFeeMinor)
	assert.False(t, result.IsRefundable)
	assert.Equal(t, domain.ReasonBelowMinimumNotice, result.Reason)
}

func TestCompute_PercentageWithFee(t *testing.T) {
	cancelAt := bookingStart.Add(-30 * time.Hour)

	result, err := Compute(percentagePolicy(), 100000, bookingStart, cancelAt, false)
	require.NoError(t, err)

	// 80% от 100000 = 80000, минус сбор 5000
	assert.Equal(t, int64(75000), result.RefundAmountMinor)
	assert.Equal(t, int64(25000), result.CancellationFeeMinor)
	assert.InDelta(t, 75.0, result.RefundPercentage, 0.01)
	assert.True(t, result.IsRefundable)
}

func TestCompute_NoRefundWindow(t *testing.T) {
	cancelAt := bookingStart.Add(-90 * time.Minute) // запас 1 час < noRefundHours 2

	result, err := Compute(percentagePolicy(), 100000, bookingStart, cancelAt, false)
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.RefundAmountMinor)
	assert.False(t, result.IsRefundable)
	assert.Equal(t, domain.ReasonNoRefundWindow, result.Reason)
}

func TestCompute_TierSelection(t *testing.T) {
	t.Run("30h notice matches the 24h tier", func(t *testing.T) {
		cancelAt := bookingStart.Add(-30 * time.Hour)

		result, err := Compute(tieredPolicy(), 100000, bookingStart, cancelAt, false)
		require.NoError(t, err)

		assert.Equal(t, int64(50000), result.RefundAmountMinor)
		assert.Equal(t, domain.ReasonTierMatched, result.Reason)
	})

	t.Run("50h notice matches the 48h tier", func(t *testing.T) {
		cancelAt := bookingStart.Add(-50 * time.Hour)

		result, err := Compute(tieredPolicy(), 100000, bookingStart, cancelAt, false)
		require.NoError(t, err)

		assert.Equal(t, int64(100000), result.RefundAmountMinor)
	})

	t.Run("tier fixed fee is deducted", func(t *testing.T) {
		fee := int64(3000)
		policy := tieredPolicy()
		policy.Tiers = []domain.RefundTier{
			{HoursBeforeStart: 24, RefundPercentage: 50, FixedFeeMinor: &fee},
		}

		cancelAt := bookingStart.Add(-30 * time.Hour)
		result, err := Compute(policy, 100000, bookingStart, cancelAt, false)
		require.NoError(t, err)

		assert.Equal(t, int64(47000), result.RefundAmountMinor)
	})

	t.Run("no tier matched falls back to the default formula", func(t *testing.T) {
		cancelAt := bookingStart.Add(-10 * time.Hour)

		result, err := Compute(tieredPolicy(), 100000, bookingStart, cancelAt, false)
		require.NoError(t, err)

		// Запас 10 часов: выше noRefundHours, но ниже минимального тира 24ч
		assert.Equal(t, int64(10000), result.RefundAmountMinor)
		assert.Equal(t, domain.ReasonPercentagePolicy, result.Reason)
	})
}

func TestCompute_FixedAmount(t *testing.T) {
	policy := &domain.RefundPolicy{
		CalculationType:           domain.CalculationFixedAmount,
		FixedCancellationFeeMinor: 20000,
		AllowSameDayRefund:        true,
	}

	cancelAt := bookingStart.Add(-30 * time.Hour)
	result, err := Compute(policy, 100000, bookingStart, cancelAt, false)
	require.NoError(t, err)

	assert.Equal(t, int64(80000), result.RefundAmountMinor)
	assert.Equal(t, domain.ReasonFixedAmountPolicy, result.Reason)
}

func TestCompute_RefundNeverNegative(t *testing.T) {
	policy := percentagePolicy()
	policy.DefaultRefundPercentage = 10
	policy.FixedCancellationFeeMinor = 50000

	cancelAt := bookingStart.Add(-30 * time.Hour)
	result, err := Compute(policy, 100000, bookingStart, cancelAt, false)
	require.NoError(t, err)

	// 10% = 10000, сбор 50000: возврат обрезается до нуля
	assert.Equal(t, int64(0), result.RefundAmountMinor)
	assert.False(t, result.IsRefundable)
}

func TestCompute_RoundingHalfUp(t *testing.T) {
	policy := &domain.RefundPolicy{
		CalculationType:         domain.CalculationPercentage,
		DefaultRefundPercentage: 33,
		AllowSameDayRefund:      true,
	}

	cancelAt := bookingStart.Add(-30 * time.Hour)
	result, err := Compute(policy, 101, bookingStart, cancelAt, false)
	require.NoError(t, err)

	// 101 * 33 / 100 = 33.33 -> 33 (half-up)
	assert.Equal(t, int64(33), result.RefundAmountMinor)
}

func TestCompute_UnknownCalculationType(t *testing.T) {
	policy := percentagePolicy()
	policy.CalculationType = "hourly"

	_, err := Compute(policy, 100000, bookingStart, bookingStart.Add(-30*time.Hour), false)
	assert.ErrorIs(t, err, ErrUnknownCalculationType)
}
