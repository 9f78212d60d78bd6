package get_availability

import (
	"github.com/deskhive/space-booking-service/internal/domain"
	getAvailability "github.com/deskhive/space-booking-service/internal/usecase/get_availability"
)

// SlotResponse свободный интервал в HTTP ответе
type SlotResponse struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceMinor int64  `json:"priceMinor"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SpaceID     int64          `json:"spaceId"`
	Date        string         `json:"date"`
	IsAvailable bool           `json:"isAvailable"`
	Reason      string         `json:"reason,omitempty"`
	FreeSlots   []SlotResponse `json:"freeSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.FreeSlots))
	for i, slot := range resp.FreeSlots {
		slots[i] = SlotResponse{
			Start:      slot.Start,
			End:        slot.End,
			PriceMinor: slot.PriceMinor,
		}
	}

	return &AvailabilityResponse{
		SpaceID:     resp.SpaceID,
		Date:        resp.Date.Format(domain.DateFormat),
		IsAvailable: resp.IsAvailable,
		Reason:      resp.Reason,
		FreeSlots:   slots,
	}
}
