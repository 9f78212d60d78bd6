package schedule

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("space not found")

	// ErrScheduleNotFound возвращается, когда у пространства нет недельного паттерна
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrOverrideNotFound возвращается, когда override для даты не найден
	ErrOverrideNotFound = errors.New("override not found")

	// ErrOverrideExists возвращается при попытке создать второй override на ту же дату
	ErrOverrideExists = errors.New("override already exists for this date")

	// ErrAccessDenied возвращается, когда пространство принадлежит другому партнёру
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
