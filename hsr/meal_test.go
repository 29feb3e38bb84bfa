package hsr

import (
	"errors"
	"math"
	"testing"
)

func spinach(serving float64) Food {
	return NewFood(2, "Spinach, raw", 11, serving, NutrientProfile{
		EnergyKcal:   23,
		Protein:      2.9,
		Carbohydrate: 3.6,
		SugarsTotal:  0.4,
		Fibre:        2.2,
		FatTotal:     0.4,
		SaturatedFat: 0.1,
		SodiumMg:     79,
	})
}

func chickenBreast(serving float64) Food {
	return NewFood(3, "Chicken, broiler, breast, grilled", 5, serving, NutrientProfile{
		EnergyKcal:   165,
		Protein:      31,
		FatTotal:     3.6,
		SaturatedFat: 1.0,
		SodiumMg:     74,
	})
}

func milkChocolate(serving float64) Food {
	return NewFood(4, "Candy, milk chocolate", 19, serving, NutrientProfile{
		EnergyKcal:   535,
		Protein:      7.7,
		Carbohydrate: 59,
		SugarsTotal:  52,
		Fibre:        3.4,
		FatTotal:     30,
		SaturatedFat: 19,
		SodiumMg:     79,
	})
}

func TestNewMealValidation(t *testing.T) {
	if _, err := NewMeal(nil); !errors.Is(err, ErrEmptyMeal) {
		t.Errorf("empty meal got: %v want: %v", err, ErrEmptyMeal)
	}

	f := spinach(0)
	if _, err := NewMeal([]Food{f}); !errors.Is(err, ErrInvalidServing) {
		t.Errorf("zero serving got: %v want: %v", err, ErrInvalidServing)
	}

	f = spinach(-10)
	if _, err := NewMeal([]Food{f}); !errors.Is(err, ErrInvalidServing) {
		t.Errorf("negative serving got: %v want: %v", err, ErrInvalidServing)
	}
}

func TestSingleFoodAggregationIdentity(t *testing.T) {
	f := spinach(85)
	m, err := NewMeal([]Food{f})
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}

	if m.TotalWeight != 85 {
		t.Errorf("total weight got: %v want: 85", m.TotalWeight)
	}
	// A single food's per-100g profile passes through unchanged regardless
	// of serving size.
	if math.Abs(m.Per100g.EnergyKcal-f.Per100g.EnergyKcal) > 1e-9 {
		t.Errorf("energy got: %v want: %v", m.Per100g.EnergyKcal, f.Per100g.EnergyKcal)
	}
	if math.Abs(m.Per100g.Protein-f.Per100g.Protein) > 1e-9 {
		t.Errorf("protein got: %v want: %v", m.Per100g.Protein, f.Per100g.Protein)
	}
	if math.Abs(m.FVNLPercent-f.FVNLPercent) > 1e-9 {
		t.Errorf("fvnl got: %v want: %v", m.FVNLPercent, f.FVNLPercent)
	}
}

func TestMealAggregationWeighted(t *testing.T) {
	a := spinach(100)
	b := chickenBreast(100)
	m, err := NewMeal([]Food{a, b})
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}

	wantEnergy := (23.0 + 165.0) / 2
	if math.Abs(m.Per100g.EnergyKcal-wantEnergy) > 1e-9 {
		t.Errorf("energy got: %v want: %v", m.Per100g.EnergyKcal, wantEnergy)
	}
	wantProtein := (2.9 + 31.0) / 2
	if math.Abs(m.Per100g.Protein-wantProtein) > 1e-9 {
		t.Errorf("protein got: %v want: %v", m.Per100g.Protein, wantProtein)
	}
	// Spinach is 100% FVNL, chicken 0%, equal weights.
	if math.Abs(m.FVNLPercent-50) > 1e-9 {
		t.Errorf("fvnl got: %v want: 50", m.FVNLPercent)
	}
}

func TestMealAggregationUnequalServings(t *testing.T) {
	a := spinach(50)
	b := chickenBreast(150)
	m, err := NewMeal([]Food{a, b})
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}

	wantEnergy := (23*0.5 + 165*1.5) / 2.0
	if math.Abs(m.Per100g.EnergyKcal-wantEnergy) > 1e-9 {
		t.Errorf("energy got: %v want: %v", m.Per100g.EnergyKcal, wantEnergy)
	}
}

func TestLiquidFraction(t *testing.T) {
	solid := chickenBreast(100)
	soup := NewFood(5, "Soup, chicken noodle, prepared", 6, 100, NutrientProfile{EnergyKcal: 30})
	juice := NewFood(6, "Orange juice, raw", 9, 100, NutrientProfile{EnergyKcal: 45, SugarsTotal: 8.4})

	tests := []struct {
		name  string
		foods []Food
		want  float64
	}{
		{"all solid", []Food{solid}, 0},
		{"all liquid", []Food{juice}, 1.0},
		{"semi-liquid counts at 70%", []Food{soup, solid}, 0.35},
		{"mixed", []Food{juice, solid}, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMeal(tc.foods)
			if err != nil {
				t.Fatalf("NewMeal: %v", err)
			}
			if got := m.LiquidFraction(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("got: %v want: %v", got, tc.want)
			}
		})
	}
}

func TestGroupDistribution(t *testing.T) {
	m, err := NewMeal([]Food{spinach(50), chickenBreast(150)})
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}

	shares := m.GroupDistribution()
	if len(shares) != 2 {
		t.Fatalf("got %d shares want 2", len(shares))
	}
	if shares[0].GroupID != 5 {
		t.Errorf("heaviest group got: %v want: 5", shares[0].GroupID)
	}
	if math.Abs(shares[0].Percent-75) > 1e-9 {
		t.Errorf("heaviest percent got: %v want: 75", shares[0].Percent)
	}
	if shares[1].Name != "Vegetables and Vegetable Products" {
		t.Errorf("second group name got: %v", shares[1].Name)
	}

	top := m.DominantGroups(1)
	if len(top) != 1 || top[0].GroupID != 5 {
		t.Errorf("DominantGroups(1) got: %+v", top)
	}
}

func TestMissingNutrients(t *testing.T) {
	a := spinach(100)
	a.Missing = []string{"sodium", "fibre"}
	b := chickenBreast(100)
	b.Missing = []string{"fibre"}

	m, err := NewMeal([]Food{a, b})
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}
	got := m.MissingNutrients()
	want := []string{"fibre", "sodium"}
	if len(got) != len(want) {
		t.Fatalf("got: %v want: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got: %v want: %v", got, want)
		}
	}
}

func TestNewMealWithCategoryMismatchWarning(t *testing.T) {
	m, err := NewMealWithCategory([]Food{spinach(100)}, CategoryBeverage)
	if err != nil {
		t.Fatalf("NewMealWithCategory: %v", err)
	}
	if m.Category != CategoryBeverage {
		t.Errorf("category got: %v want: %v", m.Category, CategoryBeverage)
	}
	if len(m.Assignment.Warnings) == 0 {
		t.Error("expected a category mismatch warning")
	}
}
