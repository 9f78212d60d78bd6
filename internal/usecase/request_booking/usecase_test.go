package request_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
	scheduleStorage "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceStorage "github.com/deskhive/space-booking-service/internal/infra/storage/space"
	"github.com/deskhive/space-booking-service/pkg/keymutex"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeBookingRepo хранит бронирования в памяти. Потокобезопасность
// намеренно не обеспечивается - конкурентный доступ обязан
// сериализоваться пер-ключевой блокировкой usecase
type fakeBookingRepo struct {
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetBySpaceWithFilter(_ context.Context, filter domain.SpaceBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.SpaceID != filter.SpaceID {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	pattern  *domain.WeeklyPattern
	override *domain.AvailabilityOverride
}

func (f *fakeScheduleRepo) GetPattern(_ context.Context, spaceID int64) (*domain.WeeklyPattern, error) {
	if f.pattern == nil || f.pattern.SpaceID != spaceID {
		return nil, scheduleStorage.ErrPatternNotFound
	}
	return f.pattern, nil
}

func (f *fakeScheduleRepo) GetOverride(_ context.Context, _ int64, _ time.Time) (*domain.AvailabilityOverride, error) {
	if f.override == nil {
		return nil, scheduleStorage.ErrOverrideNotFound
	}
	return f.override, nil
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

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	monday      = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	defaultOpen = domain.TimeInterval{Start: 540, End: 1080}
)

func testPattern() *domain.WeeklyPattern {
	days := make(map[time.Weekday]domain.DaySchedule, 7)
	for weekday := range domain.WeekdayKeys {
		days[weekday] = domain.DaySchedule{IsAvailable: false}
	}
	days[time.Monday] = domain.DaySchedule{
		IsAvailable: true,
		Slots: []domain.PricedSlot{
			{Interval: domain.TimeInterval{Start: 540, End: 1020}, PriceMinor: 50000}, // 09:00-17:00
		},
	}
	return &domain.WeeklyPattern{SpaceID: 1, Days: days}
}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(
		bookings,
		schedule,
		&fakeSpaceRepo{space: &domain.Space{ID: 1, PartnerID: 10, BasePriceMinor: 50000}},
		fakeTxManager{},
		keymutex.New(),
		defaultOpen,
		nopLogger{},
	)
	// Фиксируем "сейчас" за неделю до даты бронирования
	uc.timeProvider = fixedTime{now: monday.AddDate(0, 0, -7)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:      42,
		SpaceID:     1,
		Date:        monday,
		StartTime:   "10:00",
		EndTime:     "12:00",
		AmountMinor: 100000,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{pattern: testPattern()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, int64(100000), resp.AmountMinor)
	assert.Equal(t, int64(50000), resp.PriceMinor)

	require.Len(t, bookings.bookings, 1)
	assert.Equal(t, domain.StatusPending, bookings.bookings[0].Status)
}

func TestExecute_OverlappingBookingRejected(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{pattern: testPattern()})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос пересекает первый на полчаса
	req := validRequest()
	req.StartTime = "11:30"
	req.EndTime = "13:00"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOverlapsBooking)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_BackToBackBookingsAllowed(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{pattern: testPattern()})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Полуинтервалы: конец одного бронирования - допустимое начало следующего
	req := validRequest()
	req.StartTime = "12:00"
	req.EndTime = "13:00"

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, bookings.bookings, 2)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{pattern: testPattern()})

	req := validRequest()
	req.StartTime = "18:00"
	req.EndTime = "20:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestExecute_ClosedDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{pattern: testPattern()})

	req := validRequest()
	req.Date = monday.AddDate(0, 0, 1) // вторник закрыт паттерном

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceClosed)
}

func TestExecute_BlockingOverrideClosesDate(t *testing.T) {
	schedule := &fakeScheduleRepo{
		pattern:  testPattern(),
		override: &domain.AvailabilityOverride{SpaceID: 1, Date: monday, IsAvailable: false},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, schedule)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpaceClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{pattern: testPattern()})
	uc.timeProvider = fixedTime{now: monday.AddDate(0, 0, 1)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{pattern: testPattern()})

	req := validRequest()
	req.StartTime = "12:00"
	req.EndTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentRequestsSingleWinner(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{pattern: testPattern()})

	const workers = 10
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	// Ровно один запрос создаёт бронирование, остальные видят пересечение
	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case assert.ErrorIs(t, err, ErrOverlapsBooking):
			conflicts++
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, bookings.bookings, 1)
}
