package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/space-booking-service/internal/availability"
	"github.com/deskhive/space-booking-service/internal/domain"
	scheduleRepo "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceRepo "github.com/deskhive/space-booking-service/internal/infra/storage/space"
)

// UseCase use case получения доступности пространства на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	spaceRepo    SpaceRepository
	defaultOpen  domain.TimeInterval
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// defaultOpen - интервал работы по умолчанию из конфига, используется
// как fallback при повторном открытии закрытого дня через override
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	defaultOpen domain.TimeInterval,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		spaceRepo:    spaceRepo,
		defaultOpen:  defaultOpen,
		logger:       logger,
	}
}

// Execute вычисляет свободные интервалы пространства на дату
// Композиция: недельный паттерн -> override на дату -> вычитание активных бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: space=%d, date=%s", req.SpaceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование пространства
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("GetAvailability: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 3. Получаем недельный паттерн
	pattern, err := uc.scheduleRepo.GetPattern(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrPatternNotFound) {
			uc.logger.Warn("GetAvailability: schedule for space id=%d not found", req.SpaceID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailability: failed to get schedule for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Разрешаем номинальное расписание на день недели
	nominal, err := availability.ResolveNominal(pattern, req.Date)
	if err != nil {
		// Пропущенный день недели - нарушение целостности паттерна
		uc.logger.Error("GetAvailability: schedule gap for space id=%d weekday=%s: %v",
			req.SpaceID, req.Date.Weekday(), err)
		return nil, ErrScheduleGap
	}

	// 5. Применяем override на дату, если он есть
	override, err := uc.scheduleRepo.GetOverride(ctx, req.SpaceID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailability: failed to get override for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	fallback := domain.PricedSlot{Interval: uc.defaultOpen, PriceMinor: space.BasePriceMinor}
	effective := availability.ApplyOverride(nominal, override, fallback)

	// Закрытый день - слотов нет, отдаём причину из override
	if !effective.IsAvailable {
		reason := ""
		if override != nil && override.Blocks() {
			reason = override.Reason
		}
		uc.logger.Info("GetAvailability: space=%d closed on %s", req.SpaceID, req.Date.Format(domain.DateFormat))
		return &Response{
			SpaceID:     req.SpaceID,
			Date:        req.Date,
			IsAvailable: false,
			Reason:      reason,
			FreeSlots:   []FreeSlot{},
		}, nil
	}

	// 6. Вычитаем активные бронирования на эту дату
	filter := domain.SpaceBookingsFilter{
		SpaceID: req.SpaceID,
		Date:    &req.Date,
	}

	bookings, err := uc.bookingRepo.GetBySpaceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	free := availability.FreeIntervals(effective, bookings)

	slots := make([]FreeSlot, len(free))
	for i, slot := range free {
		slots[i] = FreeSlot{
			Start:      domain.FormatClock(slot.Interval.Start),
			End:        domain.FormatClock(slot.Interval.End),
			PriceMinor: slot.PriceMinor,
		}
	}

	uc.logger.Info("GetAvailability: space=%d date=%s, %d free slots",
		req.SpaceID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		SpaceID:     req.SpaceID,
		Date:        req.Date,
		IsAvailable: true,
		FreeSlots:   slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
