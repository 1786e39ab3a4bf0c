package domain

// SegmentTier classifies a customer by value. Ordering by lifetime value is
// strictly elite > premium > standard > low_value.
type SegmentTier string

const (
	TierElite    SegmentTier = "elite"
	TierPremium  SegmentTier = "premium"
	TierStandard SegmentTier = "standard"
	TierLowValue SegmentTier = "low_value"
)

// AllTiers lists tiers in descending value order.
func AllTiers() []SegmentTier {
	return []SegmentTier{TierElite, TierPremium, TierStandard, TierLowValue}
}

// Rank returns a comparable ordering: higher means more valuable.
func (t SegmentTier) Rank() int {
	switch t {
	case TierElite:
		return 3
	case TierPremium:
		return 2
	case TierStandard:
		return 1
	default:
		return 0
	}
}

// SegmentDistribution counts customers per tier for one month.
type SegmentDistribution map[SegmentTier]int
