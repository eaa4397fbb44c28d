package bond

import "fmt"

// RefractionIndex is the maturity-tier value consumed by the fee
// redistribution collaborator. The tier table mixes whole and half-integer
// values, so the index is fixed-point with one decimal place, stored as
// tenths. It is never truncated to a whole integer.
type RefractionIndex uint64

// Tenths returns the raw fixed-point value.
func (r RefractionIndex) Tenths() uint64 { return uint64(r) }

// String renders the index with its decimal place only when needed.
func (r RefractionIndex) String() string {
	if r%10 == 0 {
		return fmt.Sprintf("%d", r/10)
	}
	return fmt.Sprintf("%d.%d", r/10, r%10)
}

// interestTier maps a minimum maturity (days) to a yield percentage.
type interestTier struct {
	MinDays uint64
	Percent uint64
}

// refractionTier maps a minimum maturity (days) to a refraction index.
type refractionTier struct {
	MinDays uint64
	Index   RefractionIndex
}

// Tier tables are ordered descending and evaluated first-match, so the
// tie-break order is auditable. The last entry is the floor.
var (
	interestTiers = []interestTier{
		{360, 15},
		{320, 14},
		{280, 13},
		{240, 12},
		{200, 11},
		{160, 10},
		{120, 9},
		{80, 8},
		{40, 7},
		{0, 6},
	}

	refractionTiers = []refractionTier{
		{360, 460},
		{180, 280},
		{90, 190},
		{60, 160},
		{30, 130},
		{20, 120},
		{15, 115},
		{10, 110},
		{5, 105},
		{0, 100},
	}
)

// InterestRate returns the yield percentage for a bond of the given maturity.
func InterestRate(maturityDays uint64) uint64 {
	for _, t := range interestTiers {
		if maturityDays >= t.MinDays {
			return t.Percent
		}
	}
	return interestTiers[len(interestTiers)-1].Percent
}

// RefractionIndexFor returns the refraction index for a bond of the given
// maturity.
func RefractionIndexFor(maturityDays uint64) RefractionIndex {
	for _, t := range refractionTiers {
		if maturityDays >= t.MinDays {
			return t.Index
		}
	}
	return refractionTiers[len(refractionTiers)-1].Index
}

// InterestTiers returns a copy of the (threshold, percent) table, highest
// threshold first. Used by inspection tooling.
func InterestTiers() [][2]uint64 {
	out := make([][2]uint64, len(interestTiers))
	for i, t := range interestTiers {
		out[i] = [2]uint64{t.MinDays, t.Percent}
	}
	return out
}

// RefractionTiers returns a copy of the (threshold, index) table, highest
// threshold first. Used by inspection tooling.
func RefractionTiers() []struct {
	MinDays uint64
	Index   RefractionIndex
} {
	out := make([]struct {
		MinDays uint64
		Index   RefractionIndex
	}, len(refractionTiers))
	for i, t := range refractionTiers {
		out[i].MinDays = t.MinDays
		out[i].Index = t.Index
	}
	return out
}
