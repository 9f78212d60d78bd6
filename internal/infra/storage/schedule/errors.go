package schedule

import "errors"

var (
	// ErrPatternNotFound возвращается, когда у пространства нет недельного паттерна
	ErrPatternNotFound = errors.New("schedule.repository: weekly pattern not found")

	// ErrOverrideNotFound возвращается, когда override для даты не найден
	ErrOverrideNotFound = errors.New("schedule.repository: override not found")

	// ErrOverrideExists возвращается при попытке создать второй override
	// для той же пары (space, date) - замена возможна только явным обновлением
	ErrOverrideExists = errors.New("schedule.repository: override already exists for this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации паттерна в JSON
	ErrEncode = errors.New("schedule.repository: failed to encode pattern")

	// ErrDecode возвращается при ошибке десериализации паттерна из JSON
	ErrDecode = errors.New("schedule.repository: failed to decode pattern")
)
