package hsr

import (
	"fmt"
	"sort"
	"strings"
)

// KeyNutrients is the per-100g nutrient summary shown beside each compared
// food.
type KeyNutrients struct {
	Protein      float64 `json:"protein"`
	SaturatedFat float64 `json:"saturated_fat"`
	Sugar        float64 `json:"sugar"`
	SodiumMg     float64 `json:"sodium"`
	Fibre        float64 `json:"fibre"`
	FVNLPercent  float64 `json:"fvnl_percent"`
}

// ComparisonEntry is one food's scored row in a comparison, ranked best
// first.
type ComparisonEntry struct {
	FoodID      int     `json:"food_id"`
	FoodName    string  `json:"food_name"`
	ServingSize float64 `json:"serving_size"`
	FoodGroup   string  `json:"food_group"`

	Stars    float64 `json:"hsr_rating"`
	Level    Level   `json:"hsr_level"`
	Category string  `json:"category"`
	EnergyKJ float64 `json:"energy_kj"`

	KeyNutrients KeyNutrients `json:"key_nutrients"`
	TopStrength  string       `json:"top_strength,omitempty"`
	TopConcern   string       `json:"top_concern,omitempty"`
}

// RatingDistribution buckets compared foods by level.
type RatingDistribution struct {
	Excellent    int `json:"excellent"`
	Good         int `json:"good"`
	Average      int `json:"average"`
	BelowAverage int `json:"below_average"`
	Poor         int `json:"poor"`
}

// ComparisonSummary aggregates the ranked entries.
type ComparisonSummary struct {
	HighestRated  string             `json:"highest_rated"`
	LowestRated   string             `json:"lowest_rated"`
	AverageRating float64            `json:"average_rating"`
	Distribution  RatingDistribution `json:"rating_distribution"`
}

// Comparison ranks foods against each other, each scored on its own.
type Comparison struct {
	Entries         []ComparisonEntry `json:"comparison"`
	Summary         ComparisonSummary `json:"summary"`
	Recommendations []string          `json:"recommendations"`
}

// Compare rates each food individually and ranks them best to worst.
func (c *Calculator) Compare(foods []Food) (*Comparison, error) {
	if len(foods) == 0 {
		return nil, ErrEmptyMeal
	}

	entries := make([]ComparisonEntry, 0, len(foods))
	for _, f := range foods {
		m, err := NewMeal([]Food{f})
		if err != nil {
			return nil, fmt.Errorf("food %d: %w", f.ID, err)
		}
		r := c.Rate(m)

		entry := ComparisonEntry{
			FoodID:      f.ID,
			FoodName:    f.Name,
			ServingSize: f.ServingSize,
			FoodGroup:   FoodGroupName(f.FoodGroupID),
			Stars:       r.Rating.Stars,
			Level:       r.Rating.Level,
			Category:    r.Rating.Category.DisplayName(),
			EnergyKJ:    r.EnergyKJ,
			KeyNutrients: KeyNutrients{
				Protein:      f.Per100g.Protein,
				SaturatedFat: f.Per100g.SaturatedFat,
				Sugar:        f.Per100g.SugarsTotal,
				SodiumMg:     f.Per100g.SodiumMg,
				Fibre:        f.Per100g.Fibre,
				FVNLPercent:  f.FVNLPercent,
			},
		}
		if len(r.Strengths) > 0 {
			entry.TopStrength = r.Strengths[0].Title
		}
		if len(r.Concerns) > 0 {
			entry.TopConcern = r.Concerns[0].Title
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Stars > entries[j].Stars
	})

	return &Comparison{
		Entries:         entries,
		Summary:         summarize(entries),
		Recommendations: comparisonRecommendations(entries),
	}, nil
}

func summarize(entries []ComparisonEntry) ComparisonSummary {
	s := ComparisonSummary{
		HighestRated: entries[0].FoodName,
		LowestRated:  entries[len(entries)-1].FoodName,
	}
	total := 0.0
	for _, e := range entries {
		total += e.Stars
		switch e.Level {
		case LevelExcellent:
			s.Distribution.Excellent++
		case LevelGood:
			s.Distribution.Good++
		case LevelAverage:
			s.Distribution.Average++
		case LevelBelowAverage:
			s.Distribution.BelowAverage++
		default:
			s.Distribution.Poor++
		}
	}
	s.AverageRating = total / float64(len(entries))
	return s
}

func comparisonRecommendations(entries []ComparisonEntry) []string {
	var recs []string
	best, worst := entries[0], entries[len(entries)-1]
	if best.Stars-worst.Stars >= 1.0 {
		recs = append(recs, fmt.Sprintf(
			"Consider choosing %s over %s for better nutritional value",
			best.FoodName, worst.FoodName))
	}

	var excellent []string
	for _, e := range entries {
		if e.Stars >= 4.5 {
			excellent = append(excellent, e.FoodName)
		}
		if len(excellent) == 3 {
			break
		}
	}
	if len(excellent) > 0 {
		recs = append(recs, "Excellent choices: "+strings.Join(excellent, ", "))
	}
	return recs
}
