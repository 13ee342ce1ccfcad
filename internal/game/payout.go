package game

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var defaultIncrementPercent = map[int]float64{
	1: 5.0,
	2: 8.0,
	3: 12.0,
	4: 15.0,
	5: 18.0,
	6: 22.0,
	7: 25.0,
	8: 30.0,
}

// MaxMineCount bounds every risk profile.
const MaxMineCount = 8

// fallbackIncrement is returned for mine counts missing from the table.
var fallbackIncrement = decimal.New(12, -2)

// MineRiskProfile maps a mine count to the multiplier increment earned per
// safe reveal, stored as a fraction (12% is 0.12).
type MineRiskProfile struct {
	increments map[int]decimal.Decimal
	counts     []int
}

func DefaultRiskProfile() MineRiskProfile {
	p, _ := NewRiskProfile(defaultIncrementPercent)
	return p
}

// NewRiskProfile builds a profile from percentages keyed by mine count.
// Counts must lie in [1, MaxMineCount]; increments must be positive and
// strictly increase with the mine count.
func NewRiskProfile(percent map[int]float64) (MineRiskProfile, error) {
	if len(percent) == 0 {
		return MineRiskProfile{}, fmt.Errorf("%w: empty risk profile", ErrInvalidConfiguration)
	}
	counts := make([]int, 0, len(percent))
	for c := range percent {
		counts = append(counts, c)
	}
	sort.Ints(counts)

	inc := make(map[int]decimal.Decimal, len(percent))
	prev := decimal.Zero
	for _, c := range counts {
		if c < 1 || c > MaxMineCount {
			return MineRiskProfile{}, fmt.Errorf("%w: mine count %d", ErrInvalidConfiguration, c)
		}
		d := decimal.NewFromFloat(percent[c]).Shift(-2)
		if !d.GreaterThan(prev) {
			return MineRiskProfile{}, fmt.Errorf("%w: increment for %d mines must exceed %s", ErrInvalidConfiguration, c, prev)
		}
		inc[c] = d
		prev = d
	}
	return MineRiskProfile{increments: inc, counts: counts}, nil
}

func (p MineRiskProfile) Supports(mineCount int) bool {
	_, ok := p.increments[mineCount]
	return ok
}

// MineCounts lists the supported mine counts in ascending order.
func (p MineRiskProfile) MineCounts() []int {
	return append([]int(nil), p.counts...)
}

func (p MineRiskProfile) Increment(mineCount int) decimal.Decimal {
	if d, ok := p.increments[mineCount]; ok {
		return d
	}
	return fallbackIncrement
}

func (p MineRiskProfile) IncrementPercent(mineCount int) float64 {
	return p.Increment(mineCount).Shift(2).InexactFloat64()
}

// Multiplier is 1 + safeClicks·increment.
func Multiplier(safeClicks int, increment decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(increment.Mul(decimal.NewFromInt(int64(safeClicks))))
}

// Winnings truncates stake×multiplier toward zero. Free sessions win nothing.
func Winnings(stake int64, multiplier decimal.Decimal, free bool) int64 {
	if free {
		return 0
	}
	return decimal.NewFromInt(stake).Mul(multiplier).Truncate(0).IntPart()
}
