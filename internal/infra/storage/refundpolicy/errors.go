package refundpolicy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика возврата не найдена
	ErrPolicyNotFound = errors.New("refundpolicy.repository: policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("refundpolicy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("refundpolicy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("refundpolicy.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации tiers в JSON
	ErrEncode = errors.New("refundpolicy.repository: failed to encode tiers")

	// ErrDecode возвращается при ошибке десериализации tiers из JSON
	ErrDecode = errors.New("refundpolicy.repository: failed to decode tiers")
)
