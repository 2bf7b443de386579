package models

// Premium tiers. FREE means no active subscription.
const (
	TierFree          = "FREE"
	TierBasic         = "BASIC"
	TierPro           = "PRO"
	TierUltra         = "ULTRA"
	TierGrandfathered = "GRANDFATHERED"
)

// Subscription is one guild's entry in the premium data file.
type Subscription struct {
	Tier          string `json:"tier"`
	ExpiresAt     string `json:"expires_at,omitempty"` // RFC 3339, empty = permanent
	PurchasedBy   string `json:"purchased_by,omitempty"`
	PurchasedAt   string `json:"purchased_at,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// PremiumData is the full contents of data/premium.json.
type PremiumData struct {
	Subscriptions map[string]Subscription `json:"subscriptions"`
	Grandfathered []string                `json:"grandfathered"`
}

// TierRoleLimit returns how many vanity triggers a tier may configure.
// A negative value means unlimited.
func TierRoleLimit(tier string) int {
	switch tier {
	case TierBasic:
		return 1
	case TierPro:
		return 3
	case TierUltra:
		return 5
	case TierGrandfathered:
		return -1
	default:
		return 0
	}
}
