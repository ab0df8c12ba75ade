package domain

// FeeTier is a marketplace commission bracket over combo grand price.
// MaxPrice nil means an open upper bound.
type FeeTier struct {
	ID       string
	MinPrice int64
	MaxPrice *int64
	RateBP   int32
}

// Matches reports whether price falls inside this tier: MinPrice inclusive,
// MaxPrice exclusive when set.
func (t FeeTier) Matches(price int64) bool {
	if price < t.MinPrice {
		return false
	}
	if t.MaxPrice != nil && price >= *t.MaxPrice {
		return false
	}
	return true
}

// RateFor returns the basis-point rate of the first matching tier. With no
// match the rate is zero, so settlement proceeds without a marketplace cut
// rather than blocking the seller's payout.
func RateFor(tiers []FeeTier, price int64) int32 {
	for _, tier := range tiers {
		if tier.Matches(price) {
			return tier.RateBP
		}
	}
	return 0
}

// Settlement is the realized revenue split for one completed combo.
type Settlement struct {
	TotalAmount   int64
	FeeRateBP     int32
	FeeAmount     int64
	SellerRevenue int64
}

// Settle computes the marketplace fee (half-up) and the seller's net revenue
// for a combo grand price at the given rate.
func Settle(grandPrice int64, rateBP int32) Settlement {
	fee := ApplyRate(grandPrice, rateBP)
	return Settlement{
		TotalAmount:   grandPrice,
		FeeRateBP:     rateBP,
		FeeAmount:     fee,
		SellerRevenue: grandPrice - fee,
	}
}
