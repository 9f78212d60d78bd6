package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
	"github.com/deskhive/space-booking-service/pkg/ptr"
)

func fullWeekRequest() *SetScheduleRequest {
	days := make(map[string]DayRequest, 7)
	for _, key := range domain.WeekdayKeys {
		days[key] = DayRequest{IsAvailable: false}
	}
	days["monday"] = DayRequest{
		IsAvailable: true,
		Slots: []SlotRequest{
			{Start: "09:00", End: "12:00", PriceMinor: 50000},
			{Start: "13:00", End: "17:00", PriceMinor: 60000},
		},
	}
	return &SetScheduleRequest{PartnerID: 10, SpaceID: 1, Days: days}
}

func TestSetScheduleRequest_ToDomainPattern(t *testing.T) {
	t.Run("valid full week", func(t *testing.T) {
		pattern, err := fullWeekRequest().ToDomainPattern()
		require.NoError(t, err)

		assert.Equal(t, int64(1), pattern.SpaceID)
		monday := pattern.Days[time.Monday]
		require.Len(t, monday.Slots, 2)
		assert.Equal(t, domain.TimeInterval{Start: 540, End: 720}, monday.Slots[0].Interval)
		assert.Equal(t, int64(60000), monday.Slots[1].PriceMinor)
	})

	t.Run("unknown weekday key", func(t *testing.T) {
		req := fullWeekRequest()
		req.Days["someday"] = DayRequest{IsAvailable: false}

		_, err := req.ToDomainPattern()
		assert.ErrorIs(t, err, ErrUnknownWeekday)
	})

	t.Run("missing weekday", func(t *testing.T) {
		req := fullWeekRequest()
		delete(req.Days, "sunday")

		_, err := req.ToDomainPattern()
		assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
	})

	t.Run("malformed slot", func(t *testing.T) {
		req := fullWeekRequest()
		req.Days["tuesday"] = DayRequest{
			IsAvailable: true,
			Slots:       []SlotRequest{{Start: "12:00", End: "09:00"}},
		}

		_, err := req.ToDomainPattern()
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("overlapping slots", func(t *testing.T) {
		req := fullWeekRequest()
		req.Days["monday"] = DayRequest{
			IsAvailable: true,
			Slots: []SlotRequest{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "14:00"},
			},
		}

		_, err := req.ToDomainPattern()
		assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
	})
}

func TestSetOverrideRequest_ToDomainOverride(t *testing.T) {
	t.Run("blocking override", func(t *testing.T) {
		req := &SetOverrideRequest{
			SpaceID:     1,
			Date:        "2026-03-14",
			IsAvailable: false,
			Reason:      "ремонт",
		}

		override, err := req.ToDomainOverride()
		require.NoError(t, err)

		assert.True(t, override.Blocks())
		assert.Equal(t, "ремонт", override.Reason)
		assert.Nil(t, override.OpenInterval)
	})

	t.Run("reopening override with interval", func(t *testing.T) {
		req := &SetOverrideRequest{
			SpaceID:     1,
			Date:        "2026-03-14",
			IsAvailable: true,
			OpenStart:   ptr.Ptr("10:00"),
			OpenEnd:     ptr.Ptr("16:00"),
		}

		override, err := req.ToDomainOverride()
		require.NoError(t, err)

		require.NotNil(t, override.OpenInterval)
		assert.Equal(t, domain.TimeInterval{Start: 600, End: 960}, *override.OpenInterval)
	})

	t.Run("half-set interval", func(t *testing.T) {
		req := &SetOverrideRequest{
			SpaceID:     1,
			Date:        "2026-03-14",
			IsAvailable: true,
			OpenStart:   ptr.Ptr("10:00"),
		}

		_, err := req.ToDomainOverride()
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := &SetOverrideRequest{SpaceID: 1, Date: "14.03.2026"}

		_, err := req.ToDomainOverride()
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestFromDomainOverride(t *testing.T) {
	interval := domain.TimeInterval{Start: 600, End: 960}
	price := int64(30000)

	resp := FromDomainOverride(&domain.AvailabilityOverride{
		ID:           3,
		SpaceID:      1,
		Date:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		IsAvailable:  true,
		OpenInterval: &interval,
		PriceMinor:   &price,
	})

	require.NotNil(t, resp)
	assert.Equal(t, "2026-03-14", resp.Date)
	require.NotNil(t, resp.OpenStart)
	assert.Equal(t, "10:00", *resp.OpenStart)
	assert.Equal(t, "16:00", *resp.OpenEnd)
}
