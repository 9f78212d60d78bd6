package availability

import (
	"errors"

	"github.com/deskhive/space-booking-service/internal/domain"
)

var (
	// ErrOutsideHours возвращается, когда запрошенный интервал не попадает
	// в рабочие часы пространства
	ErrOutsideHours = errors.New("availability: requested interval is outside working hours")

	// ErrOverlapsBooking возвращается, когда интервал попадает в рабочие часы,
	// но пересекается с существующим бронированием
	ErrOverlapsBooking = errors.New("availability: requested interval overlaps an existing booking")
)

// FreeIntervals вычитает активные бронирования из эффективного расписания
// и возвращает оставшиеся свободные фрагменты. Фрагмент наследует цену слота,
// из которого он вырезан: если бронирование делит слот пополам, обе половины
// сохраняют исходную цену
func FreeIntervals(effective domain.DaySchedule, bookings []*domain.Booking) []domain.PricedSlot {
	if !effective.IsAvailable {
		return []domain.PricedSlot{}
	}

	occupied := make([]domain.TimeInterval, 0, len(bookings))
	for _, b := range bookings {
		// Отменённые бронирования время не занимают
		if !b.OccupiesTime() {
			continue
		}
		occupied = append(occupied, b.Interval)
	}

	free := make([]domain.PricedSlot, 0, len(effective.Slots))
	for _, slot := range effective.Slots {
		for _, fragment := range slot.Interval.Subtract(occupied) {
			free = append(free, domain.PricedSlot{
				Interval:   fragment,
				PriceMinor: slot.PriceMinor,
			})
		}
	}

	return free
}

// ValidateRequest проверяет, что запрошенный интервал можно забронировать.
// Запрос валиден, только если он целиком помещается в один непрерывный
// свободный фрагмент - частичного пересечения со свободным окном недостаточно.
//
// Две причины отказа различаются для пользовательских сообщений:
//   - ErrOutsideHours: пространство закрыто в это время
//   - ErrOverlapsBooking: пространство открыто, но время уже занято
func ValidateRequest(effective domain.DaySchedule, free []domain.PricedSlot, requested domain.TimeInterval) (domain.PricedSlot, error) {
	for _, f := range free {
		if f.Interval.Contains(requested) {
			return f, nil
		}
	}

	// Запрос не поместился ни в один свободный фрагмент.
	// Если он не помещается даже в номинальные слоты - дело в рабочих часах
	for _, slot := range effective.Slots {
		if slot.Interval.Contains(requested) {
			return domain.PricedSlot{}, ErrOverlapsBooking
		}
	}

	return domain.PricedSlot{}, ErrOutsideHours
}
