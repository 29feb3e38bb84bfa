package hsr

import (
	"math"
	"testing"
)

func mustMeal(t *testing.T, foods ...Food) *Meal {
	t.Helper()
	m, err := NewMeal(foods)
	if err != nil {
		t.Fatalf("NewMeal: %v", err)
	}
	return m
}

func TestRateRawVegetable(t *testing.T) {
	c := NewCalculator(nil)
	r := c.Rate(mustMeal(t, spinach(100)))

	if r.Breakdown.FinalScore != 0 {
		t.Errorf("final score got: %v want: 0", r.Breakdown.FinalScore)
	}
	if r.Breakdown.BaselinePoints != 3 {
		t.Errorf("baseline got: %v want: 3", r.Breakdown.BaselinePoints)
	}
	if r.Breakdown.ModifyingPoints != 13 {
		t.Errorf("modifying got: %v want: 13", r.Breakdown.ModifyingPoints)
	}
	if r.Rating.Stars != 5.0 {
		t.Errorf("stars got: %v want: 5.0", r.Rating.Stars)
	}
	if r.Rating.Level != LevelExcellent {
		t.Errorf("level got: %v want: %v", r.Rating.Level, LevelExcellent)
	}
	if r.Confidence != 1.0 {
		t.Errorf("confidence got: %v want: 1.0", r.Confidence)
	}
}

func TestRateUltraProcessedConfectionery(t *testing.T) {
	c := NewCalculator(nil)
	r := c.Rate(mustMeal(t, milkChocolate(100)))

	if r.Breakdown.BaselinePoints != 34 {
		t.Errorf("baseline got: %v want: 34", r.Breakdown.BaselinePoints)
	}
	if r.Breakdown.ModifyingPoints != 7 {
		t.Errorf("modifying got: %v want: 7", r.Breakdown.ModifyingPoints)
	}
	if r.Breakdown.ProcessingPenalty != 2.5 {
		t.Errorf("processing penalty got: %v want: 2.5", r.Breakdown.ProcessingPenalty)
	}
	if r.Breakdown.FinalScore != 28 {
		t.Errorf("final score got: %v want: 28", r.Breakdown.FinalScore)
	}
	if r.Rating.Stars != 2.0 {
		t.Errorf("stars got: %v want: 2.0", r.Rating.Stars)
	}
	if r.Rating.Level != LevelBelowAverage {
		t.Errorf("level got: %v want: %v", r.Rating.Level, LevelBelowAverage)
	}
}

func TestRateSugarSplit(t *testing.T) {
	c := NewCalculator(nil)
	r := c.Rate(mustMeal(t, milkChocolate(100)))

	// Confectionery sugars are treated as 10% natural.
	if math.Abs(r.Context.NaturalSugars-5.2) > 1e-9 {
		t.Errorf("natural sugars got: %v want: 5.2", r.Context.NaturalSugars)
	}
	if math.Abs(r.Context.AddedSugars-46.8) > 1e-9 {
		t.Errorf("added sugars got: %v want: 46.8", r.Context.AddedSugars)
	}
	if math.Abs(r.Context.NaturalSugarPct-10) > 1e-9 {
		t.Errorf("natural percentage got: %v want: 10", r.Context.NaturalSugarPct)
	}
	// Added sugar points dominate the combined sugar component.
	if r.Breakdown.SugarPoints <= r.Breakdown.SugarNaturalPoints {
		t.Errorf("sugar points %d should exceed natural-only points %d",
			r.Breakdown.SugarPoints, r.Breakdown.SugarNaturalPoints)
	}
}

func TestRateSodiumMonotonic(t *testing.T) {
	c := NewCalculator(nil)
	prev := -1
	for _, sodium := range []float64{0, 200, 400, 800, 1200, 1600} {
		f := NewFood(10, "Crackers, plain", 18, 100, NutrientProfile{
			EnergyKcal:   420,
			Protein:      9,
			Carbohydrate: 70,
			SugarsTotal:  1,
			Fibre:        2.5,
			FatTotal:     9,
			SaturatedFat: 2,
			SodiumMg:     sodium,
		})
		r := c.Rate(mustMeal(t, f))
		if r.Breakdown.FinalScore < prev {
			t.Errorf("score dropped from %d to %d when sodium rose to %v",
				prev, r.Breakdown.FinalScore, sodium)
		}
		prev = r.Breakdown.FinalScore
	}
}

func TestRateScoreAndStarBounds(t *testing.T) {
	c := NewCalculator(nil)
	foods := []Food{
		spinach(100),
		chickenBreast(150),
		milkChocolate(50),
		NewFood(11, "Oil, olive", 4, 15, NutrientProfile{
			EnergyKcal: 884, FatTotal: 100, SaturatedFat: 13.8,
		}),
		NewFood(12, "Cola, carbonated", 14, 355, NutrientProfile{
			EnergyKcal: 42, Carbohydrate: 10.6, SugarsTotal: 10.6, SodiumMg: 4,
		}),
	}
	for _, f := range foods {
		r := c.Rate(mustMeal(t, f))
		if r.Breakdown.FinalScore < 0 {
			t.Errorf("%s: negative final score %d", f.Name, r.Breakdown.FinalScore)
		}
		if r.Rating.Stars < 0.5 || r.Rating.Stars > 5.0 {
			t.Errorf("%s: stars out of range: %v", f.Name, r.Rating.Stars)
		}
		if steps := r.Rating.Stars * 2; steps != math.Trunc(steps) {
			t.Errorf("%s: stars not a half-star step: %v", f.Name, r.Rating.Stars)
		}
	}
}

func TestRateDeterministic(t *testing.T) {
	c := NewCalculator(nil)
	m := mustMeal(t, spinach(100), chickenBreast(150), milkChocolate(50))

	first := c.Rate(m)
	for i := 0; i < 5; i++ {
		again := c.Rate(m)
		if again.Rating.Stars != first.Rating.Stars {
			t.Fatalf("stars unstable: %v then %v", first.Rating.Stars, again.Rating.Stars)
		}
		if again.Breakdown.FinalScore != first.Breakdown.FinalScore {
			t.Fatalf("score unstable: %d then %d", first.Breakdown.FinalScore, again.Breakdown.FinalScore)
		}
	}
}

func TestRateConfidencePenalties(t *testing.T) {
	c := NewCalculator(nil)
	f := NewFood(13, "Crackers, plain", 18, 100, NutrientProfile{
		EnergyKcal: 420, Carbohydrate: 70,
	})
	r := c.Rate(mustMeal(t, f))

	// Zero protein, fibre and sodium each reduce confidence.
	if math.Abs(r.Confidence-0.75) > 1e-9 {
		t.Errorf("confidence got: %v want: 0.75", r.Confidence)
	}
}

func TestRateMissingNutrientConfidence(t *testing.T) {
	c := NewCalculator(nil)
	f := spinach(100)
	f.Missing = []string{"sugars"}
	r := c.Rate(mustMeal(t, f))

	// A defaulted nutrient lowers confidence even when the remaining
	// profile looks complete.
	if r.Confidence >= 1.0 {
		t.Errorf("confidence got: %v want: < 1.0", r.Confidence)
	}
	if math.Abs(r.Confidence-0.95) > 1e-9 {
		t.Errorf("confidence got: %v want: 0.95", r.Confidence)
	}

	f.Missing = []string{"sugars", "saturated fat"}
	r2 := c.Rate(mustMeal(t, f))
	if math.Abs(r2.Confidence-0.9) > 1e-9 {
		t.Errorf("two defaulted nutrients: confidence got: %v want: 0.9", r2.Confidence)
	}
}

func TestRateCategoryConfidenceShortfall(t *testing.T) {
	c := NewCalculator(nil)
	m := mustMeal(t, chickenBreast(150), spinach(100))
	if m.Assignment.Confidence >= 0.5 {
		t.Fatalf("assignment confidence got: %v want: < 0.5", m.Assignment.Confidence)
	}

	r := c.Rate(m)
	if math.Abs(r.Confidence-0.9) > 1e-9 {
		t.Errorf("confidence got: %v want: 0.9", r.Confidence)
	}
}

func TestRateConfidenceFloor(t *testing.T) {
	c := NewCalculator(nil)
	// A protein-heavy beverage with no data triggers every penalty.
	f := NewFood(14, "Protein drink, flavoured", 14, 500, NutrientProfile{
		EnergyKcal: 80, Protein: 20,
	})
	r := c.Rate(mustMeal(t, f))
	if r.Confidence < 0.5 {
		t.Errorf("confidence below floor: %v", r.Confidence)
	}
}

func TestRateMissingNutrientWarnings(t *testing.T) {
	c := NewCalculator(nil)
	f := spinach(100)
	f.Missing = []string{"sodium"}
	r := c.Rate(mustMeal(t, f))

	found := false
	for _, w := range r.Warnings {
		if w == "sodium missing from source data, defaulted to zero" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-nutrient warning absent, got: %v", r.Warnings)
	}
}

func TestRateBeverageNoFibreCredit(t *testing.T) {
	c := NewCalculator(nil)
	// Identical profiles, one scored as beverage, one as food.
	profile := NutrientProfile{
		EnergyKcal: 60, Protein: 1, Carbohydrate: 12, SugarsTotal: 9, Fibre: 4, SodiumMg: 10,
	}
	bev := NewFood(15, "Cola, carbonated", 14, 250, profile)
	mb, err := NewMealWithCategory([]Food{bev}, CategoryBeverage)
	if err != nil {
		t.Fatalf("NewMealWithCategory: %v", err)
	}
	rb := c.Rate(mb)
	if rb.Breakdown.FibrePoints != 0 {
		t.Errorf("beverage fibre points got: %v want: 0", rb.Breakdown.FibrePoints)
	}

	mf, err := NewMealWithCategory([]Food{bev}, CategoryFood)
	if err != nil {
		t.Fatalf("NewMealWithCategory: %v", err)
	}
	rf := c.Rate(mf)
	if rf.Breakdown.FibrePoints == 0 {
		t.Errorf("food-category fibre points got: 0 want: > 0")
	}
}

func TestLevelForStars(t *testing.T) {
	tests := []struct {
		stars float64
		want  Level
	}{
		{5.0, LevelExcellent},
		{4.5, LevelExcellent},
		{4.0, LevelGood},
		{3.5, LevelGood},
		{3.0, LevelAverage},
		{2.5, LevelAverage},
		{2.0, LevelBelowAverage},
		{1.5, LevelBelowAverage},
		{1.0, LevelPoor},
		{0.5, LevelPoor},
	}
	for _, tc := range tests {
		if got := LevelForStars(tc.stars); got != tc.want {
			t.Errorf("LevelForStars(%v) got: %v want: %v", tc.stars, got, tc.want)
		}
	}
}
