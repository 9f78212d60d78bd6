package domain

import "time"

// Space represents a bookable coworking space owned by a partner.
// RefundPolicyID, when set, pins a specific policy to the space;
// otherwise cancellations fall back to the partner's default policy.
type Space struct {
	ID             int64
	PartnerID      int64
	Name           string
	BasePriceMinor int64 // цена по умолчанию для переоткрытых дней
	RefundPolicyID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
