package hsr

import (
	"fmt"
	"sort"
)

// Table is an ascending step table. A value earns one point per band it
// clears, capped at the last band.
type Table []float64

// Points returns the number of bands below the value. A nil table scores
// zero, which is how disabled components (beverage fiber) are expressed.
func (t Table) Points(v float64) int {
	if len(t) == 0 {
		return 0
	}
	idx := sort.SearchFloat64s(t, v)
	if idx > len(t)-1 {
		return len(t) - 1
	}
	return idx
}

func (t Table) validate(name string) error {
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return fmt.Errorf("%s thresholds not ascending at index %d: %v < %v", name, i, t[i], t[i-1])
		}
	}
	return nil
}

// Minimum amounts a nutrient must reach before earning any beneficial
// credit, so trace amounts cannot offset risk points.
const (
	MinQualifyingProtein = 3.0 // g/100g
	MinQualifyingFibre   = 1.0 // g/100g
)

// Thresholds holds the step tables for one category.
type Thresholds struct {
	EnergyDensity Table `mapstructure:"energy_density"` // kcal/100g
	SugarNatural  Table `mapstructure:"sugar_natural"`  // g/100g
	SugarAdded    Table `mapstructure:"sugar_added"`    // g/100g
	SaturatedFat  Table `mapstructure:"saturated_fat"`  // g/100g
	Sodium        Table `mapstructure:"sodium"`         // mg/100g
	FVNL          Table `mapstructure:"fvnl"`           // %
	Protein       Table `mapstructure:"protein"`        // g/100g
	Fibre         Table `mapstructure:"fibre"`          // g/100g
	StarCuts      Table `mapstructure:"star_cuts"`      // score cut points, 5.0 stars downward
}

// DefaultThresholds returns the base tables shared by all categories.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EnergyDensity: Table{0, 50, 100, 150, 200, 250, 300, 400, 500, 600, 700},
		SugarNatural:  Table{0, 5, 8, 12, 15, 18, 22, 25, 28, 32, 35},
		SugarAdded:    Table{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 15},
		SaturatedFat:  Table{0, 1, 2, 3, 4, 5, 7, 9, 12, 15, 20},
		Sodium:        Table{0, 100, 200, 300, 400, 500, 600, 800, 1000, 1200, 1500},
		FVNL:          Table{0, 25, 40, 50, 60, 67, 75, 80, 90, 95, 100},
		Protein:       Table{0, 3, 6, 10, 15, 20, 25, 30, 35, 40, 50},
		Fibre:         Table{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 15},
		StarCuts:      Table{0, 5, 10, 15, 20, 25, 30, 35, 40},
	}
}

func (t Thresholds) Validate() error {
	for _, tc := range []struct {
		name  string
		table Table
	}{
		{"energy_density", t.EnergyDensity},
		{"sugar_natural", t.SugarNatural},
		{"sugar_added", t.SugarAdded},
		{"saturated_fat", t.SaturatedFat},
		{"sodium", t.Sodium},
		{"fvnl", t.FVNL},
		{"protein", t.Protein},
		{"fibre", t.Fibre},
		{"star_cuts", t.StarCuts},
	} {
		if len(tc.table) == 0 && tc.name != "fibre" {
			return fmt.Errorf("%s thresholds are empty", tc.name)
		}
		if err := tc.table.validate(tc.name); err != nil {
			return err
		}
	}
	return nil
}

// Stars converts a final score to a star rating (0.5 to 5.0 in half-star
// steps) using the category's cut points.
func (t Thresholds) Stars(score int) float64 {
	idx := sort.SearchFloat64s(t.StarCuts, float64(score))
	return 5.0 - 0.5*float64(idx)
}

// ThresholdSet holds per-category tables precomputed once from the base
// tables plus the documented category adjustments.
type ThresholdSet struct {
	byCategory map[Category]Thresholds
}

// NewThresholdSet validates the base tables and derives each category's
// tables: cheese expects more protein (bands shifted down 2g), beverages
// earn no fiber credit, and oils/spreads get 50 kcal of energy headroom.
func NewThresholdSet(base Thresholds) (*ThresholdSet, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	set := &ThresholdSet{byCategory: make(map[Category]Thresholds, len(Categories))}
	for _, cat := range Categories {
		t := base.clone()
		switch {
		case cat == CategoryCheese:
			for i, v := range t.Protein {
				t.Protein[i] = maxF(0, v-2)
			}
		case cat.IsBeverage():
			t.Fibre = nil
		case cat == CategoryOilsSpreads:
			for i, v := range t.EnergyDensity {
				t.EnergyDensity[i] = v + 50
			}
		}
		set.byCategory[cat] = t
	}
	return set, nil
}

// MustDefaultThresholdSet builds the set from the built-in tables. The
// defaults are static and always valid.
func MustDefaultThresholdSet() *ThresholdSet {
	set, err := NewThresholdSet(DefaultThresholds())
	if err != nil {
		panic(err)
	}
	return set
}

// For returns the tables for a category. Unknown categories score under
// general food rules.
func (s *ThresholdSet) For(cat Category) Thresholds {
	if t, ok := s.byCategory[cat]; ok {
		return t
	}
	return s.byCategory[CategoryFood]
}

func (t Thresholds) clone() Thresholds {
	out := t
	out.EnergyDensity = append(Table(nil), t.EnergyDensity...)
	out.SugarNatural = append(Table(nil), t.SugarNatural...)
	out.SugarAdded = append(Table(nil), t.SugarAdded...)
	out.SaturatedFat = append(Table(nil), t.SaturatedFat...)
	out.Sodium = append(Table(nil), t.Sodium...)
	out.FVNL = append(Table(nil), t.FVNL...)
	out.Protein = append(Table(nil), t.Protein...)
	out.Fibre = append(Table(nil), t.Fibre...)
	out.StarCuts = append(Table(nil), t.StarCuts...)
	return out
}
