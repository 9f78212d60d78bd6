package request_booking

import (
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
	requestBooking "github.com/deskhive/space-booking-service/internal/usecase/request_booking"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	SpaceID     int64  `json:"spaceId"`
	BookingDate string `json:"bookingDate"` // "2026-03-14"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "12:00"
	AmountMinor int64  `json:"amountMinor"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	SpaceID     int64  `json:"spaceId"`
	UserID      int64  `json:"userId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amountMinor"`
	PriceMinor  int64  `json:"priceMinor"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestBookingRequest) ToUseCaseRequest(userID int64) (*requestBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		UserID:      userID,
		SpaceID:     r.SpaceID,
		Date:        bookingDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		AmountMinor: r.AmountMinor,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		SpaceID:     resp.SpaceID,
		UserID:      resp.UserID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime,
		EndTime:     resp.EndTime,
		Status:      resp.Status,
		AmountMinor: resp.AmountMinor,
		PriceMinor:  resp.PriceMinor,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
