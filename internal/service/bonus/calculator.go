package bonus

import (
	"sort"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/shopspring/decimal"
)

var (
	hundred   = decimal.NewFromInt(100)
	twelve    = decimal.NewFromInt(12)
	vatFactor = decimal.NewFromInt(100).Div(decimal.NewFromInt(119)) // strip 19% VAT
)

// NetRevenue converts gross to net revenue by removing VAT.
func NetRevenue(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(vatFactor)
}

// MonthlyTarget is one twelfth of the annual revenue target.
func MonthlyTarget(annualTarget decimal.Decimal) decimal.Decimal {
	return annualTarget.Div(twelve)
}

// ValidateScheme checks the structural invariants of a bonus scheme:
// thresholds strictly increasing and positive, a known kind.
func ValidateScheme(scheme bonus.Scheme) error {
	switch scheme.Kind {
	case bonus.SchemeLinear:
		return nil
	case bonus.SchemeStepped:
		prev := decimal.Zero
		for _, tier := range scheme.Tiers {
			if tier.Threshold.LessThanOrEqual(decimal.Zero) {
				return bonus.ErrInvalidTierThreshold
			}
			if tier.Threshold.LessThanOrEqual(prev) {
				return bonus.ErrTiersNotIncreasing
			}
			prev = tier.Threshold
		}
		return nil
	default:
		return bonus.ErrInvalidSchemeKind
	}
}

// Calculate computes the bonus on the net revenue exceeding the monthly
// target. Stepped schemes apply progressive marginal rates: each tier's
// percent covers the band up to its threshold, the last tier's percent
// extends beyond it.
func Calculate(overTarget decimal.Decimal, scheme bonus.Scheme) (decimal.Decimal, error) {
	if err := ValidateScheme(scheme); err != nil {
		return decimal.Zero, err
	}
	if overTarget.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	if scheme.Kind == bonus.SchemeLinear {
		return overTarget.Mul(scheme.Percent).Div(hundred), nil
	}

	tiers := make([]bonus.Tier, len(scheme.Tiers))
	copy(tiers, scheme.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Threshold.LessThan(tiers[j].Threshold) })

	total := decimal.Zero
	lower := decimal.Zero
	for i, tier := range tiers {
		upper := tier.Threshold
		if i == len(tiers)-1 && overTarget.GreaterThan(upper) {
			upper = overTarget
		}
		if overTarget.LessThan(upper) {
			upper = overTarget
		}
		if upper.GreaterThan(lower) {
			band := upper.Sub(lower)
			total = total.Add(band.Mul(tier.Percent).Div(hundred))
		}
		lower = tier.Threshold
		if overTarget.LessThanOrEqual(lower) {
			break
		}
	}

	return total, nil
}

// Available is the amount payable this month: last month's carry plus this
// month's bonus minus what was already paid out, floored at zero.
func Available(carryIn, calculated, paidOut decimal.Decimal) decimal.Decimal {
	available := carryIn.Add(calculated).Sub(paidOut)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}
