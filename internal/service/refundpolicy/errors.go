package refundpolicy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика возврата не найдена
	ErrPolicyNotFound = errors.New("refund policy not found")

	// ErrAccessDenied возвращается, когда политика принадлежит другому партнёру
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
