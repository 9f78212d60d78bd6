package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
	scheduleStorage "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceStorage "github.com/deskhive/space-booking-service/internal/infra/storage/space"
	"github.com/deskhive/space-booking-service/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeScheduleRepo хранит паттерны и override'ы в памяти
type fakeScheduleRepo struct {
	patterns  map[int64]*domain.WeeklyPattern
	overrides map[string]*domain.AvailabilityOverride
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		patterns:  make(map[int64]*domain.WeeklyPattern),
		overrides: make(map[string]*domain.AvailabilityOverride),
	}
}

func overrideKey(spaceID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", spaceID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleRepo) UpsertPattern(_ context.Context, pattern *domain.WeeklyPattern) (*domain.WeeklyPattern, error) {
	saved := *pattern
	saved.UpdatedAt = time.Now()
	f.patterns[pattern.SpaceID] = &saved
	return &saved, nil
}

func (f *fakeScheduleRepo) GetPattern(_ context.Context, spaceID int64) (*domain.WeeklyPattern, error) {
	pattern, ok := f.patterns[spaceID]
	if !ok {
		return nil, scheduleStorage.ErrPatternNotFound
	}
	return pattern, nil
}

func (f *fakeScheduleRepo) CreateOverride(_ context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	key := overrideKey(override.SpaceID, override.Date)
	if _, exists := f.overrides[key]; exists {
		return nil, scheduleStorage.ErrOverrideExists
	}
	f.nextID++
	saved := *override
	saved.ID = f.nextID
	f.overrides[key] = &saved
	return &saved, nil
}

func (f *fakeScheduleRepo) ReplaceOverride(_ context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	key := overrideKey(override.SpaceID, override.Date)
	existing, ok := f.overrides[key]
	if !ok {
		return nil, scheduleStorage.ErrOverrideNotFound
	}
	saved := *override
	saved.ID = existing.ID
	f.overrides[key] = &saved
	return &saved, nil
}

func (f *fakeScheduleRepo) GetOverride(_ context.Context, spaceID int64, date time.Time) (*domain.AvailabilityOverride, error) {
	override, ok := f.overrides[overrideKey(spaceID, date)]
	if !ok {
		return nil, scheduleStorage.ErrOverrideNotFound
	}
	return override, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, spaceID int64, date time.Time) error {
	key := overrideKey(spaceID, date)
	if _, ok := f.overrides[key]; !ok {
		return scheduleStorage.ErrOverrideNotFound
	}
	delete(f.overrides, key)
	return nil
}

type fakeSpaceRepo struct {
	space *domain.Space
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	if f.space == nil || f.space.ID != id {
		return nil, spaceStorage.ErrSpaceNotFound
	}
	return f.space, nil
}

func newTestService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, &fakeSpaceRepo{space: &domain.Space{ID: 1, PartnerID: 10}}, nopLogger{})
}

func fullWeekRequest(partnerID int64) *models.SetScheduleRequest {
	days := make(map[string]models.DayRequest, 7)
	for _, key := range domain.WeekdayKeys {
		days[key] = models.DayRequest{IsAvailable: false}
	}
	days["monday"] = models.DayRequest{
		IsAvailable: true,
		Slots:       []models.SlotRequest{{Start: "09:00", End: "17:00", PriceMinor: 50000}},
	}
	return &models.SetScheduleRequest{PartnerID: partnerID, SpaceID: 1, Days: days}
}

func TestSetWeeklyPattern(t *testing.T) {
	t.Run("owner sets the pattern", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := newTestService(repo)

		resp, err := svc.SetWeeklyPattern(context.Background(), fullWeekRequest(10))
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.SpaceID)
		assert.True(t, resp.Days["monday"].IsAvailable)
		assert.Contains(t, repo.patterns, int64(1))
	})

	t.Run("foreign partner is rejected", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.SetWeeklyPattern(context.Background(), fullWeekRequest(99))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("incomplete week is rejected", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		req := fullWeekRequest(10)
		delete(req.Days, "friday")

		_, err := svc.SetWeeklyPattern(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetSchedule(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo)

	_, err := svc.GetSchedule(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = svc.SetWeeklyPattern(context.Background(), fullWeekRequest(10))
	require.NoError(t, err)

	resp, err := svc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 7)
}

func blockingOverrideRequest(partnerID int64) *models.SetOverrideRequest {
	return &models.SetOverrideRequest{
		PartnerID:   partnerID,
		SpaceID:     1,
		Date:        "2026-03-14",
		IsAvailable: false,
		Reason:      "ремонт",
	}
}

func TestSetOverride(t *testing.T) {
	t.Run("creates a new override", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		resp, err := svc.SetOverride(context.Background(), blockingOverrideRequest(10))
		require.NoError(t, err)

		assert.False(t, resp.IsAvailable)
		assert.Equal(t, "2026-03-14", resp.Date)
	})

	t.Run("second override for the same date is rejected", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.SetOverride(context.Background(), blockingOverrideRequest(10))
		require.NoError(t, err)

		_, err = svc.SetOverride(context.Background(), blockingOverrideRequest(10))
		assert.ErrorIs(t, err, ErrOverrideExists)
	})

	t.Run("explicit replace overwrites", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.SetOverride(context.Background(), blockingOverrideRequest(10))
		require.NoError(t, err)

		req := blockingOverrideRequest(10)
		req.Reason = "инвентаризация"
		req.Replace = true

		resp, err := svc.SetOverride(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "инвентаризация", resp.Reason)
	})

	t.Run("replace without existing override", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		req := blockingOverrideRequest(10)
		req.Replace = true

		_, err := svc.SetOverride(context.Background(), req)
		assert.ErrorIs(t, err, ErrOverrideNotFound)
	})

	t.Run("foreign partner is rejected", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.SetOverride(context.Background(), blockingOverrideRequest(99))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestDeleteOverride(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo())

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	err := svc.DeleteOverride(context.Background(), 10, 1, date)
	assert.ErrorIs(t, err, ErrOverrideNotFound)

	_, err = svc.SetOverride(context.Background(), blockingOverrideRequest(10))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOverride(context.Background(), 10, 1, date))

	err = svc.DeleteOverride(context.Background(), 10, 1, date)
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}
