package hsr

import (
	"math"
	"strings"
	"testing"
)

func TestCompareRanksBestFirst(t *testing.T) {
	c := NewCalculator(nil)
	cmp, err := c.Compare([]Food{milkChocolate(100), spinach(100)})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if len(cmp.Entries) != 2 {
		t.Fatalf("entries got: %d want: 2", len(cmp.Entries))
	}
	if cmp.Entries[0].FoodName != "Spinach, raw" {
		t.Errorf("top entry got: %v want: Spinach, raw", cmp.Entries[0].FoodName)
	}
	if cmp.Entries[0].Stars != 5.0 {
		t.Errorf("top stars got: %v want: 5.0", cmp.Entries[0].Stars)
	}
	if cmp.Entries[1].Stars != 2.0 {
		t.Errorf("bottom stars got: %v want: 2.0", cmp.Entries[1].Stars)
	}
}

func TestCompareSummary(t *testing.T) {
	c := NewCalculator(nil)
	cmp, err := c.Compare([]Food{spinach(100), milkChocolate(100)})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	s := cmp.Summary
	if s.HighestRated != "Spinach, raw" {
		t.Errorf("highest got: %v", s.HighestRated)
	}
	if s.LowestRated != "Candy, milk chocolate" {
		t.Errorf("lowest got: %v", s.LowestRated)
	}
	if math.Abs(s.AverageRating-3.5) > 1e-9 {
		t.Errorf("average got: %v want: 3.5", s.AverageRating)
	}
	if s.Distribution.Excellent != 1 || s.Distribution.BelowAverage != 1 {
		t.Errorf("distribution got: %+v", s.Distribution)
	}
}

func TestCompareRecommendations(t *testing.T) {
	c := NewCalculator(nil)
	cmp, err := c.Compare([]Food{spinach(100), milkChocolate(100)})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	var swap, excellent bool
	for _, r := range cmp.Recommendations {
		if strings.HasPrefix(r, "Consider choosing Spinach, raw over Candy, milk chocolate") {
			swap = true
		}
		if strings.HasPrefix(r, "Excellent choices: Spinach, raw") {
			excellent = true
		}
	}
	if !swap {
		t.Errorf("swap recommendation missing: %v", cmp.Recommendations)
	}
	if !excellent {
		t.Errorf("excellent-choices recommendation missing: %v", cmp.Recommendations)
	}
}

func TestCompareEntryDetail(t *testing.T) {
	c := NewCalculator(nil)
	cmp, err := c.Compare([]Food{milkChocolate(45)})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	e := cmp.Entries[0]
	if e.FoodGroup != "Sweets" {
		t.Errorf("food group got: %v want: Sweets", e.FoodGroup)
	}
	if e.Category != "Food" {
		t.Errorf("category got: %v want: Food", e.Category)
	}
	if e.ServingSize != 45 {
		t.Errorf("serving got: %v want: 45", e.ServingSize)
	}
	if math.Abs(e.EnergyKJ-535*4.184) > 1e-9 {
		t.Errorf("energy kJ got: %v want: %v", e.EnergyKJ, 535*4.184)
	}
	if e.KeyNutrients.Sugar != 52 {
		t.Errorf("sugar got: %v want: 52", e.KeyNutrients.Sugar)
	}
	if e.TopConcern != "Ultra-Processed Foods" {
		t.Errorf("top concern got: %v", e.TopConcern)
	}
}

func TestCompareEmpty(t *testing.T) {
	c := NewCalculator(nil)
	if _, err := c.Compare(nil); err == nil {
		t.Error("empty comparison did not error")
	}
}
