package request_booking

import (
	"fmt"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// validateRequest валидирует входные данные и парсит интервал
func validateRequest(req *Request) (domain.TimeInterval, error) {
	if req.UserID <= 0 {
		return domain.TimeInterval{}, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return domain.TimeInterval{}, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return domain.TimeInterval{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.AmountMinor < 0 {
		return domain.TimeInterval{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	interval, err := domain.ParseTimeInterval(req.StartTime, req.EndTime)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: invalid interval: %v", ErrInvalidInput, err)
	}

	return interval, nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
