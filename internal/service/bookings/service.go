package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/space-booking-service/internal/domain"
	bookingRepo "github.com/deskhive/space-booking-service/internal/infra/storage/booking"
	"github.com/deskhive/space-booking-service/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Confirm переводит бронирование пользователя из pending в confirmed.
// Подтверждение фиксируется после успешной оплаты
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	switch booking.Status {
	case domain.StatusCancelled:
		s.logger.Warn("Confirm: booking id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	case domain.StatusConfirmed:
		s.logger.Warn("Confirm: booking id=%d is already confirmed", id)
		return nil, ErrAlreadyConfirmed
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: failed to update status for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed
	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}
