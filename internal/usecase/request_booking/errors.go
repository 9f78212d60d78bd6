package request_booking

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("request_booking: space not found")

	// ErrScheduleNotFound возвращается, когда у пространства нет недельного паттерна
	ErrScheduleNotFound = errors.New("request_booking: schedule not found")

	// ErrScheduleGap возвращается, когда в паттерне отсутствует день недели
	ErrScheduleGap = errors.New("request_booking: schedule has no entry for this weekday")

	// ErrSpaceClosed возвращается, когда пространство закрыто в указанную дату
	ErrSpaceClosed = errors.New("request_booking: space is closed on this date")

	// ErrOutsideHours возвращается, когда интервал выходит за рамки рабочих часов
	ErrOutsideHours = errors.New("request_booking: interval is outside operating hours")

	// ErrOverlapsBooking возвращается, когда интервал пересекается с активным бронированием
	ErrOverlapsBooking = errors.New("request_booking: interval overlaps an existing booking")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("request_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
