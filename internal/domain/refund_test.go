package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPolicy() *RefundPolicy {
	return &RefundPolicy{
		PartnerID:               1,
		Name:                    "Standard",
		CalculationType:         CalculationPercentage,
		DefaultRefundPercentage: 80,
		NoRefundHours:           2,
		AllowSameDayRefund:      true,
	}
}

func TestRefundPolicy_Validate(t *testing.T) {
	t.Run("valid percentage policy", func(t *testing.T) {
		assert.NoError(t, validPolicy().Validate())
	})

	t.Run("unknown calculation type", func(t *testing.T) {
		p := validPolicy()
		p.CalculationType = "hourly"
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		p := validPolicy()
		p.DefaultRefundPercentage = 101
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})

	t.Run("negative fee", func(t *testing.T) {
		p := validPolicy()
		p.FixedCancellationFeeMinor = -100
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})

	t.Run("tiered without tiers", func(t *testing.T) {
		p := validPolicy()
		p.CalculationType = CalculationTiered
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})

	t.Run("duplicate tier thresholds", func(t *testing.T) {
		p := validPolicy()
		p.CalculationType = CalculationTiered
		p.Tiers = []RefundTier{
			{HoursBeforeStart: 24, RefundPercentage: 50},
			{HoursBeforeStart: 24, RefundPercentage: 75},
		}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})

	t.Run("tier percentage out of range", func(t *testing.T) {
		p := validPolicy()
		p.CalculationType = CalculationTiered
		p.Tiers = []RefundTier{{HoursBeforeStart: 24, RefundPercentage: 150}}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
	})
}

func TestNoticeHours(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Неполные часы отбрасываются
	assert.Equal(t, 30, NoticeHours(start, start.Add(-30*time.Hour-30*time.Minute)))
	assert.Equal(t, 0, NoticeHours(start, start.Add(-59*time.Minute)))

	// Отмена после начала - запас 0, не отрицательный
	assert.Equal(t, 0, NoticeHours(start, start.Add(2*time.Hour)))
}
