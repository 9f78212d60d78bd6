package domain

// Time and date format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Time arithmetic constants
const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// Business validation constants
const (
	MaxOverrideReasonLength     = 500
	MaxCancellationReasonLength = 500
	MaxPolicyNameLength         = 200
	MaxRefundTiers              = 20
)

// ActiveStatuses список статусов бронирований, занимающих время
// Используется при подсчёте свободных интервалов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
