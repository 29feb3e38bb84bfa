package hsr

import "testing"

func TestTablePoints(t *testing.T) {
	table := Table{0, 50, 100, 150}

	tests := []struct {
		value float64
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{50, 1},
		{51, 2},
		{149, 3},
		{150, 3},
		{9999, 3},
	}
	for _, tc := range tests {
		if got := table.Points(tc.value); got != tc.want {
			t.Errorf("Points(%v) got: %v want: %v", tc.value, got, tc.want)
		}
	}
}

func TestTablePointsNil(t *testing.T) {
	var table Table
	if got := table.Points(50); got != 0 {
		t.Errorf("nil table Points got: %v want: 0", got)
	}
}

func TestThresholdsValidate(t *testing.T) {
	good := DefaultThresholds()
	if err := good.Validate(); err != nil {
		t.Fatalf("default thresholds invalid: %v", err)
	}

	bad := DefaultThresholds()
	bad.Sodium = Table{0, 200, 100}
	if err := bad.Validate(); err == nil {
		t.Error("descending sodium table passed validation")
	}

	empty := DefaultThresholds()
	empty.Protein = nil
	if err := empty.Validate(); err == nil {
		t.Error("empty protein table passed validation")
	}
}

func TestStars(t *testing.T) {
	base := DefaultThresholds()

	tests := []struct {
		score int
		want  float64
	}{
		{0, 5.0},
		{4, 4.5},
		{5, 4.5},
		{6, 4.0},
		{14, 3.5},
		{28, 2.0},
		{40, 1.0},
		{41, 0.5},
		{100, 0.5},
	}
	for _, tc := range tests {
		if got := base.Stars(tc.score); got != tc.want {
			t.Errorf("Stars(%d) got: %v want: %v", tc.score, got, tc.want)
		}
	}
}

func TestThresholdSetCategoryAdjustments(t *testing.T) {
	set := MustDefaultThresholdSet()

	cheese := set.For(CategoryCheese)
	// Protein bands shift down 2g, floored at zero.
	if got := cheese.Protein[0]; got != 0 {
		t.Errorf("cheese protein band 0 got: %v want: 0", got)
	}
	if got := cheese.Protein[1]; got != 1 {
		t.Errorf("cheese protein band 1 got: %v want: 1", got)
	}

	bev := set.For(CategoryBeverage)
	if got := bev.Fibre.Points(10); got != 0 {
		t.Errorf("beverage fibre points got: %v want: 0", got)
	}

	oils := set.For(CategoryOilsSpreads)
	if got := oils.EnergyDensity[1]; got != 100 {
		t.Errorf("oils energy band 1 got: %v want: 100", got)
	}

	// Base tables must stay untouched by the per-category copies.
	food := set.For(CategoryFood)
	if got := food.EnergyDensity[1]; got != 50 {
		t.Errorf("food energy band 1 got: %v want: 50", got)
	}
}

func TestThresholdSetUnknownCategory(t *testing.T) {
	set := MustDefaultThresholdSet()
	got := set.For(Category("99"))
	want := set.For(CategoryFood)
	if got.EnergyDensity[1] != want.EnergyDensity[1] {
		t.Errorf("unknown category got energy band %v want %v", got.EnergyDensity[1], want.EnergyDensity[1])
	}
}

func TestNewThresholdSetRejectsInvalid(t *testing.T) {
	bad := DefaultThresholds()
	bad.StarCuts = Table{10, 5}
	if _, err := NewThresholdSet(bad); err == nil {
		t.Error("invalid star cuts passed NewThresholdSet")
	}
}
