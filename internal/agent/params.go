package agent

// Params carries the tuned ratios of the offer policy and estimator
// for one role. The values are empirically tuned constants, kept as
// configuration rather than baked into the policy code.
type Params struct {
	// MinStep is the smallest offer increment, and the floor of any
	// opening price.
	MinStep int

	// AggressiveOpenRatio anchors the opening offer: applied to the
	// budget for a buyer, to the market price for a seller.
	AggressiveOpenRatio float64
	// MarketOpenRatio is the market-anchored opening ratio.
	MarketOpenRatio float64

	// WalkawayRatio of market price bounds how far the policy will
	// concede, capped by the hard constraint.
	WalkawayRatio float64

	// SavingsThreshold shapes the immediate-acceptance bound relative
	// to the hard constraint (buyer accepts below budget×(1−s), seller
	// above floor×(1+s)).
	SavingsThreshold float64
	// MarketProxyRatio is the market-anchored immediate-accept proxy.
	MarketProxyRatio float64

	// ProxyMargin scales an observed counterpart price into a rough
	// floor/ceiling proxy for the decayed estimate.
	ProxyMargin float64
	// EstimateDecay is the weight of the previous decayed estimate.
	EstimateDecay float64
	// ExtremeMargin shades the running extreme when deriving the
	// closing target.
	ExtremeMargin float64
	// ProfitMargin is the minimum-profitability margin applied to the
	// closing target.
	ProfitMargin float64

	// Gap-tiered bargaining steps, as fractions of market price.
	FarStepRatio  float64
	NearStepRatio float64
	// Relative-gap boundaries selecting the step tier.
	FarGapPct  float64
	NearGapPct float64

	// AccelAfterRound multiplies the step by AccelFactor once the
	// round counter passes it, forcing convergence under time
	// pressure.
	AccelAfterRound int
	AccelFactor     float64

	// SelfNudge is the fractional self-increment proposed when the
	// counterpart supplies no numeric signal.
	SelfNudge float64

	// Easing is the exponent of the time-pressure curve.
	Easing float64

	// FinalRound is the round at which the policy enters FINALIZING.
	FinalRound int
	// MaxRounds is the session round cap.
	MaxRounds int
}

// BuyerParams returns the tuned buyer-side policy constants.
func BuyerParams() Params {
	return Params{
		MinStep:             1000,
		AggressiveOpenRatio: 0.78,
		MarketOpenRatio:     0.72,
		WalkawayRatio:       0.96,
		SavingsThreshold:    0.10,
		MarketProxyRatio:    0.82,
		ProxyMargin:         0.85,
		EstimateDecay:       0.6,
		ExtremeMargin:       0.98,
		ProfitMargin:        1.10,
		FarStepRatio:        0.06,
		NearStepRatio:       0.02,
		FarGapPct:           0.18,
		NearGapPct:          0.07,
		AccelAfterRound:     5,
		AccelFactor:         1.5,
		SelfNudge:           0.08,
		Easing:              0.9,
		FinalRound:          9,
		MaxRounds:           10,
	}
}

// SellerParams returns the buyer constants mirrored around the price
// axis, with the seller's own opening and walk-away anchors.
func SellerParams() Params {
	return Params{
		MinStep:             1000,
		AggressiveOpenRatio: 1.25,
		MarketOpenRatio:     1.15,
		WalkawayRatio:       0.90,
		SavingsThreshold:    0.08,
		MarketProxyRatio:    1.18,
		ProxyMargin:         1.10,
		EstimateDecay:       0.6,
		ExtremeMargin:       1.02,
		ProfitMargin:        0.92,
		FarStepRatio:        0.06,
		NearStepRatio:       0.02,
		FarGapPct:           0.18,
		NearGapPct:          0.07,
		AccelAfterRound:     5,
		AccelFactor:         1.5,
		SelfNudge:           0.08,
		Easing:              0.9,
		FinalRound:          9,
		MaxRounds:           10,
	}
}
