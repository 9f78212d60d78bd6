package get_availability

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("get_availability: space not found")

	// ErrScheduleNotFound возвращается, когда у пространства нет недельного паттерна
	ErrScheduleNotFound = errors.New("get_availability: schedule not found")

	// ErrScheduleGap возвращается, когда в паттерне отсутствует день недели
	// Это ошибка целостности данных, а не пользовательская
	ErrScheduleGap = errors.New("get_availability: schedule has no entry for this weekday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
