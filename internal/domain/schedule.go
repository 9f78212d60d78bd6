package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
var ErrInvalidSchedule = errors.New("domain: invalid schedule")

// WeekdayKeys канонические ключи дней недели для хранения паттерна
var WeekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// PricedSlot is a bookable interval with its price in minor currency units.
type PricedSlot struct {
	Interval   TimeInterval
	PriceMinor int64
}

// DaySchedule is the bookable layout of a single day: either closed, or a
// sorted list of non-overlapping priced slots.
type DaySchedule struct {
	IsAvailable bool
	Slots       []PricedSlot
}

// Validate проверяет инварианты дневного расписания:
// слоты отсортированы по началу, не пересекаются; у закрытого дня слотов нет
func (d DaySchedule) Validate() error {
	if !d.IsAvailable {
		if len(d.Slots) != 0 {
			return fmt.Errorf("%w: unavailable day must have no slots", ErrInvalidSchedule)
		}
		return nil
	}

	for idx, slot := range d.Slots {
		if slot.Interval.Start >= slot.Interval.End {
			return fmt.Errorf("%w: slot %d has malformed interval %s", ErrInvalidSchedule, idx, slot.Interval)
		}
		if slot.PriceMinor < 0 {
			return fmt.Errorf("%w: slot %d has negative price", ErrInvalidSchedule, idx)
		}
		if idx == 0 {
			continue
		}
		prev := d.Slots[idx-1]
		if slot.Interval.Start < prev.Interval.Start {
			return fmt.Errorf("%w: slots are not sorted by start", ErrInvalidSchedule)
		}
		if prev.Interval.Overlaps(slot.Interval) {
			return fmt.Errorf("%w: slots %s and %s overlap", ErrInvalidSchedule, prev.Interval, slot.Interval)
		}
	}

	return nil
}

// WeeklyPattern is the recurring weekly availability of a space: one
// DaySchedule per weekday. A pattern is replaced wholesale on update,
// individual days are never merged.
type WeeklyPattern struct {
	SpaceID   int64
	Days      map[time.Weekday]DaySchedule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleFor returns the day schedule for the given weekday.
// The second return value is false when the pattern has a gap for that
// weekday, which signals corrupted data.
func (p *WeeklyPattern) ScheduleFor(weekday time.Weekday) (DaySchedule, bool) {
	day, ok := p.Days[weekday]
	return day, ok
}

// Validate проверяет, что паттерн покрывает все 7 дней недели
// и каждое дневное расписание корректно
func (p *WeeklyPattern) Validate() error {
	if len(p.Days) != 7 {
		return fmt.Errorf("%w: pattern must cover all 7 weekdays, got %d", ErrInvalidSchedule, len(p.Days))
	}
	for weekday, key := range WeekdayKeys {
		day, ok := p.Days[weekday]
		if !ok {
			return fmt.Errorf("%w: pattern has no entry for %s", ErrInvalidSchedule, key)
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
