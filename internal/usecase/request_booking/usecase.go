package request_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/space-booking-service/internal/availability"
	"github.com/deskhive/space-booking-service/internal/domain"
	scheduleRepo "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceRepo "github.com/deskhive/space-booking-service/internal/infra/storage/space"
)

// UseCase use case запроса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	spaceRepo    SpaceRepository
	txManager    TransactionManager
	locker       KeyLocker
	timeProvider TimeProvider
	defaultOpen  domain.TimeInterval
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	locker KeyLocker,
	defaultOpen domain.TimeInterval,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		spaceRepo:    spaceRepo,
		txManager:    txManager,
		locker:       locker,
		timeProvider: &RealTimeProvider{},
		defaultOpen:  defaultOpen,
		logger:       logger,
	}
}

// Execute выполняет запрос бронирования
// Пер-ключевая блокировка (space, date) сериализует конкурирующие запросы
// внутри процесса, сериализуемая транзакция с FOR UPDATE защищает от
// двойного бронирования между репликами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: user=%d, space=%d, date=%s, time=%s-%s",
		req.UserID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	requested, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RequestBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование пространства
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("RequestBooking: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("RequestBooking: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Захватываем пер-ключевую блокировку на пару (space, date)
	// Освобождается на всех путях выхода
	unlock := uc.locker.Lock(lockKey(req.SpaceID, req.Date))
	defer unlock()

	var result *domain.Booking
	var matchedSlot domain.PricedSlot

	// 5. Пересчитываем доступность и создаём бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Разрешаем эффективное расписание на дату
		effective, err := uc.resolveEffective(txCtx, space, req.Date)
		if err != nil {
			return err
		}

		if !effective.IsAvailable {
			uc.logger.Warn("RequestBooking: space=%d is closed on %s",
				req.SpaceID, req.Date.Format(domain.DateFormat))
			return ErrSpaceClosed
		}

		// 5.2. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		filter := domain.SpaceBookingsFilter{
			SpaceID: req.SpaceID,
			Date:    &req.Date,
		}

		bookings, err := uc.bookingRepo.GetBySpaceWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.3. Валидируем запрошенный интервал против свободных фрагментов
		free := availability.FreeIntervals(effective, bookings)
		slot, err := availability.ValidateRequest(effective, free, requested)
		if err != nil {
			switch {
			case errors.Is(err, availability.ErrOutsideHours):
				uc.logger.Warn("RequestBooking: interval %s outside operating hours for space=%d",
					requested, req.SpaceID)
				return ErrOutsideHours
			case errors.Is(err, availability.ErrOverlapsBooking):
				uc.logger.Warn("RequestBooking: interval %s overlaps existing booking for space=%d",
					requested, req.SpaceID)
				return ErrOverlapsBooking
			default:
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}
		}

		// 5.4. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			SpaceID:     req.SpaceID,
			UserID:      req.UserID,
			BookingDate: req.Date,
			Interval:    requested,
			Status:      domain.StatusPending,
			AmountMinor: req.AmountMinor,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		uc.logger.Info("RequestBooking: interval %s landed in slot %s (price=%d)",
			requested, slot.Interval, slot.PriceMinor)

		result = created
		matchedSlot = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		SpaceID:     result.SpaceID,
		UserID:      result.UserID,
		BookingDate: result.BookingDate,
		StartTime:   domain.FormatClock(result.Interval.Start),
		EndTime:     domain.FormatClock(result.Interval.End),
		Status:      string(result.Status),
		AmountMinor: result.AmountMinor,
		PriceMinor:  matchedSlot.PriceMinor,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// resolveEffective разрешает эффективное расписание: паттерн + override на дату
func (uc *UseCase) resolveEffective(ctx context.Context, space *domain.Space, date time.Time) (domain.DaySchedule, error) {
	pattern, err := uc.scheduleRepo.GetPattern(ctx, space.ID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrPatternNotFound) {
			uc.logger.Warn("RequestBooking: schedule for space id=%d not found", space.ID)
			return domain.DaySchedule{}, ErrScheduleNotFound
		}
		uc.logger.Error("RequestBooking: failed to get schedule for space id=%d: %v", space.ID, err)
		return domain.DaySchedule{}, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	nominal, err := availability.ResolveNominal(pattern, date)
	if err != nil {
		uc.logger.Error("RequestBooking: schedule gap for space id=%d weekday=%s: %v",
			space.ID, date.Weekday(), err)
		return domain.DaySchedule{}, ErrScheduleGap
	}

	override, err := uc.scheduleRepo.GetOverride(ctx, space.ID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("RequestBooking: failed to get override for space id=%d: %v", space.ID, err)
		return domain.DaySchedule{}, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	fallback := domain.PricedSlot{Interval: uc.defaultOpen, PriceMinor: space.BasePriceMinor}
	return availability.ApplyOverride(nominal, override, fallback), nil
}

// lockKey строит ключ пер-ключевой блокировки для пары (space, date)
func lockKey(spaceID int64, date time.Time) string {
	return fmt.Sprintf("space:%d:date:%s", spaceID, date.Format(domain.DateFormat))
}
