package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
	bookingRepo "github.com/deskhive/space-booking-service/internal/infra/storage/booking"
	policyRepo "github.com/deskhive/space-booking-service/internal/infra/storage/refundpolicy"
	spaceRepo "github.com/deskhive/space-booking-service/internal/infra/storage/space"
	"github.com/deskhive/space-booking-service/internal/refund"
)

// UseCase use case отмены бронирования с расчётом возврата
type UseCase struct {
	bookingRepo  BookingRepository
	spaceRepo    SpaceRepository
	policyRepo   PolicyRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	policyRepo PolicyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		spaceRepo:    spaceRepo,
		policyRepo:   policyRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и рассчитывает возврат по политике партнёра
// Расчёт выполняется до мутации - если расчёт падает, бронирование не трогаем
// При DryRun возвращает расчёт без изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d, forceMajeure=%v, dryRun=%v",
		req.BookingID, req.UserID, req.IsForceMajeure, req.DryRun)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Пользователь может отменить только своё бронирование
	if booking.UserID != req.UserID {
		uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Отменённое бронирование отменить повторно нельзя
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}

	// 5. Находим применимую политику: закреплённая за пространством,
	// иначе дефолтная политика партнёра
	policy, err := uc.resolvePolicy(ctx, booking.SpaceID)
	if err != nil {
		return nil, err
	}

	// 6. Рассчитываем возврат. Чистая функция - никаких побочных эффектов
	bookingStart := startOfBooking(booking)
	result, err := refund.Compute(policy, booking.AmountMinor, bookingStart, now, req.IsForceMajeure)
	if err != nil {
		uc.logger.Error("CancelBooking: refund computation failed for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: refund computation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: computed refund=%d fee=%d (%.1f%%, reason=%s) for booking id=%d",
		result.RefundAmountMinor, result.CancellationFeeMinor, result.RefundPercentage,
		result.Reason, req.BookingID)

	// 7. Предпросмотр - отдаём расчёт без мутации
	if req.DryRun {
		return &Response{
			BookingID:            booking.ID,
			Status:               string(booking.Status),
			RefundAmountMinor:    result.RefundAmountMinor,
			CancellationFeeMinor: result.CancellationFeeMinor,
			RefundPercentage:     result.RefundPercentage,
			IsRefundable:         result.IsRefundable,
			Reason:               result.Reason,
			DryRun:               true,
		}, nil
	}

	// 8. Отменяем бронирование только после успешного расчёта
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason, now, result.RefundAmountMinor); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, refund=%d",
		req.BookingID, result.RefundAmountMinor)

	cancelledAt := now
	return &Response{
		BookingID:            booking.ID,
		Status:               string(domain.StatusCancelled),
		RefundAmountMinor:    result.RefundAmountMinor,
		CancellationFeeMinor: result.CancellationFeeMinor,
		RefundPercentage:     result.RefundPercentage,
		IsRefundable:         result.IsRefundable,
		Reason:               result.Reason,
		DryRun:               false,
		CancelledAt:          &cancelledAt,
	}, nil
}

// resolvePolicy находит политику возврата для пространства
func (uc *UseCase) resolvePolicy(ctx context.Context, spaceID int64) (*domain.RefundPolicy, error) {
	space, err := uc.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Error("CancelBooking: space id=%d not found for booking", spaceID)
			return nil, fmt.Errorf("%w: booking references missing space %d", ErrInternal, spaceID)
		}
		uc.logger.Error("CancelBooking: failed to get space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// Закреплённая за пространством политика имеет приоритет
	if space.RefundPolicyID != nil {
		policy, err := uc.policyRepo.GetByID(ctx, *space.RefundPolicyID)
		if err == nil {
			return policy, nil
		}
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CancelBooking: failed to get policy id=%d: %v", *space.RefundPolicyID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		uc.logger.Warn("CancelBooking: pinned policy id=%d not found, falling back to partner default",
			*space.RefundPolicyID)
	}

	policy, err := uc.policyRepo.GetDefaultByPartner(ctx, space.PartnerID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Warn("CancelBooking: partner=%d has no default refund policy", space.PartnerID)
			return nil, ErrPolicyNotFound
		}
		uc.logger.Error("CancelBooking: failed to get default policy for partner=%d: %v", space.PartnerID, err)
		return nil, fmt.Errorf("%w: failed to get default policy: %v", ErrInternal, err)
	}

	return policy, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// startOfBooking возвращает момент начала бронирования
func startOfBooking(b *domain.Booking) time.Time {
	day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		0, 0, 0, 0, b.BookingDate.Location())
	return day.Add(time.Duration(b.Interval.Start) * time.Minute)
}
