package domain

import "time"

// AvailabilityOverride is a full-day exception to the weekly pattern for
// one (space, date). A blocking override closes the date entirely; a
// re-opening override makes a normally-closed date bookable for an
// explicit interval and price. At most one override may exist per
// (space, date) - replacing it is an explicit operation, never an
// implicit last-write-wins.
type AvailabilityOverride struct {
	ID          int64
	SpaceID     int64
	Date        time.Time
	IsAvailable bool
	Reason      string

	// Заполняются только для переоткрывающего override (IsAvailable = true).
	// Если не заданы, фасад подставляет дефолтные часы из конфигурации
	OpenInterval *TimeInterval
	PriceMinor   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocks returns true if the override closes the date entirely.
func (o *AvailabilityOverride) Blocks() bool {
	return !o.IsAvailable
}
