package availability

import (
	"errors"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
)

// ErrScheduleGap возвращается, когда у паттерна нет записи для дня недели
// Структурно такого быть не должно - это признак повреждённых данных
var ErrScheduleGap = errors.New("availability: weekly pattern has no entry for weekday")

// ResolveNominal возвращает номинальное дневное расписание для даты:
// дневное расписание паттерна для соответствующего дня недели, как есть,
// без учёта override и существующих бронирований
func ResolveNominal(pattern *domain.WeeklyPattern, date time.Time) (domain.DaySchedule, error) {
	day, ok := pattern.ScheduleFor(date.Weekday())
	if !ok {
		return domain.DaySchedule{}, ErrScheduleGap
	}
	return day, nil
}

// ApplyOverride применяет override к номинальному расписанию.
//
// Правила:
//   - override отсутствует: номинальное расписание возвращается без изменений
//   - блокирующий override (isAvailable = false): день полностью закрыт,
//     независимо от паттерна
//   - переоткрывающий override (isAvailable = true): день, закрытый паттерном,
//     становится доступным на интервал override; если интервал на override
//     не задан, используется переданный fallback (дефолтные часы из конфига).
//     День, и так открытый паттерном, остаётся с номинальным расписанием
func ApplyOverride(nominal domain.DaySchedule, override *domain.AvailabilityOverride, fallback domain.PricedSlot) domain.DaySchedule {
	if override == nil {
		return nominal
	}

	if override.Blocks() {
		return domain.DaySchedule{IsAvailable: false}
	}

	// Переоткрытие имеет смысл только для закрытого паттерном дня
	if nominal.IsAvailable {
		return nominal
	}

	slot := fallback
	if override.OpenInterval != nil {
		slot.Interval = *override.OpenInterval
	}
	if override.PriceMinor != nil {
		slot.PriceMinor = *override.PriceMinor
	}

	return domain.DaySchedule{
		IsAvailable: true,
		Slots:       []domain.PricedSlot{slot},
	}
}
