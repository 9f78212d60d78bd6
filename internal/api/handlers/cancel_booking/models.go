package cancel_booking

import (
	"time"

	cancelBooking "github.com/deskhive/space-booking-service/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason         string `json:"reason"`
	IsForceMajeure bool   `json:"isForceMajeure,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID            int64   `json:"bookingId"`
	Status               string  `json:"status"`
	RefundAmountMinor    int64   `json:"refundAmountMinor"`
	CancellationFeeMinor int64   `json:"cancellationFeeMinor"`
	RefundPercentage     float64 `json:"refundPercentage"`
	IsRefundable         bool    `json:"isRefundable"`
	Reason               string  `json:"reason"`
	DryRun               bool    `json:"dryRun"`
	CancelledAt          *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		BookingID:            resp.BookingID,
		Status:               resp.Status,
		RefundAmountMinor:    resp.RefundAmountMinor,
		CancellationFeeMinor: resp.CancellationFeeMinor,
		RefundPercentage:     resp.RefundPercentage,
		IsRefundable:         resp.IsRefundable,
		Reason:               resp.Reason,
		DryRun:               resp.DryRun,
	}

	if resp.CancelledAt != nil {
		cancelled := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelled
	}

	return out
}
