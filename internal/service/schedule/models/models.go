package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

var (
	// ErrUnknownWeekday возвращается при неизвестном ключе дня недели
	ErrUnknownWeekday = errors.New("unknown weekday key")

	// ErrInvalidSlot возвращается при некорректном слоте расписания
	ErrInvalidSlot = errors.New("invalid schedule slot")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// SlotRequest слот в запросе на установку расписания
type SlotRequest struct {
	Start      string `json:"start"` // "09:00"
	End        string `json:"end"`   // "13:00"
	PriceMinor int64  `json:"priceMinor"`
}

// DayRequest день недели в запросе на установку расписания
type DayRequest struct {
	IsAvailable bool          `json:"isAvailable"`
	Slots       []SlotRequest `json:"slots"`
}

// SetScheduleRequest запрос на установку недельного паттерна
// Паттерн заменяется целиком - все семь дней обязательны
type SetScheduleRequest struct {
	PartnerID int64                 `json:"partnerId"`
	SpaceID   int64                 `json:"spaceId"`
	Days      map[string]DayRequest `json:"days"` // ключи: monday..sunday
}

// ToDomainPattern конвертирует запрос в domain модель с валидацией
func (r *SetScheduleRequest) ToDomainPattern() (*domain.WeeklyPattern, error) {
	days := make(map[time.Weekday]domain.DaySchedule, len(r.Days))

	for key, day := range r.Days {
		weekday, ok := weekdayByKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekday, key)
		}

		slots := make([]domain.PricedSlot, len(day.Slots))
		for i, slot := range day.Slots {
			interval, err := domain.ParseTimeInterval(slot.Start, slot.End)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s-%s: %v", ErrInvalidSlot, key, slot.Start, slot.End, err)
			}
			slots[i] = domain.PricedSlot{Interval: interval, PriceMinor: slot.PriceMinor}
		}

		days[weekday] = domain.DaySchedule{IsAvailable: day.IsAvailable, Slots: slots}
	}

	pattern := &domain.WeeklyPattern{SpaceID: r.SpaceID, Days: days}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}

	return pattern, nil
}

// SetOverrideRequest запрос на установку override'а для конкретной даты
type SetOverrideRequest struct {
	PartnerID   int64  `json:"partnerId"`
	SpaceID     int64  `json:"spaceId"`
	Date        string `json:"date"` // "2026-03-14"
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason"`

	// Интервал и цена для повторного открытия закрытого дня
	OpenStart  *string `json:"openStart,omitempty"` // "10:00"
	OpenEnd    *string `json:"openEnd,omitempty"`   // "16:00"
	PriceMinor *int64  `json:"priceMinor,omitempty"`

	// Заменить существующий override вместо создания нового
	Replace bool `json:"-"`
}

// ToDomainOverride конвертирует запрос в domain модель с валидацией
func (r *SetOverrideRequest) ToDomainOverride() (*domain.AvailabilityOverride, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}

	override := &domain.AvailabilityOverride{
		SpaceID:     r.SpaceID,
		Date:        date,
		IsAvailable: r.IsAvailable,
		Reason:      r.Reason,
		PriceMinor:  r.PriceMinor,
	}

	if r.OpenStart != nil && r.OpenEnd != nil {
		interval, err := domain.ParseTimeInterval(*r.OpenStart, *r.OpenEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %s-%s: %v", ErrInvalidSlot, *r.OpenStart, *r.OpenEnd, err)
		}
		override.OpenInterval = &interval
	} else if r.OpenStart != nil || r.OpenEnd != nil {
		return nil, fmt.Errorf("%w: openStart and openEnd must be set together", ErrInvalidSlot)
	}

	return override, nil
}

// Response модели

// SlotResponse слот расписания в ответе
type SlotResponse struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceMinor int64  `json:"priceMinor"`
}

// DayResponse день недели в ответе
type DayResponse struct {
	IsAvailable bool           `json:"isAvailable"`
	Slots       []SlotResponse `json:"slots"`
}

// ScheduleResponse ответ с недельным паттерном
type ScheduleResponse struct {
	SpaceID   int64                  `json:"spaceId"`
	Days      map[string]DayResponse `json:"days"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// OverrideResponse ответ с данными override'а
type OverrideResponse struct {
	ID          int64   `json:"id"`
	SpaceID     int64   `json:"spaceId"`
	Date        string  `json:"date"`
	IsAvailable bool    `json:"isAvailable"`
	Reason      string  `json:"reason"`
	OpenStart   *string `json:"openStart,omitempty"`
	OpenEnd     *string `json:"openEnd,omitempty"`
	PriceMinor  *int64  `json:"priceMinor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainPattern конвертирует domain модель в DTO
func FromDomainPattern(p *domain.WeeklyPattern) *ScheduleResponse {
	if p == nil {
		return nil
	}

	days := make(map[string]DayResponse, len(p.Days))
	for weekday, day := range p.Days {
		key, ok := domain.WeekdayKeys[weekday]
		if !ok {
			continue
		}

		slots := make([]SlotResponse, len(day.Slots))
		for i, slot := range day.Slots {
			slots[i] = SlotResponse{
				Start:      domain.FormatClock(slot.Interval.Start),
				End:        domain.FormatClock(slot.Interval.End),
				PriceMinor: slot.PriceMinor,
			}
		}

		days[key] = DayResponse{IsAvailable: day.IsAvailable, Slots: slots}
	}

	return &ScheduleResponse{
		SpaceID:   p.SpaceID,
		Days:      days,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.AvailabilityOverride) *OverrideResponse {
	if o == nil {
		return nil
	}

	resp := &OverrideResponse{
		ID:          o.ID,
		SpaceID:     o.SpaceID,
		Date:        o.Date.Format(domain.DateFormat),
		IsAvailable: o.IsAvailable,
		Reason:      o.Reason,
		PriceMinor:  o.PriceMinor,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	if o.OpenInterval != nil {
		start := domain.FormatClock(o.OpenInterval.Start)
		end := domain.FormatClock(o.OpenInterval.End)
		resp.OpenStart = &start
		resp.OpenEnd = &end
	}

	return resp
}

func weekdayByKey(key string) (time.Weekday, bool) {
	for weekday, k := range domain.WeekdayKeys {
		if k == key {
			return weekday, true
		}
	}
	return 0, false
}
