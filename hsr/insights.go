package hsr

import (
	"fmt"
	"strings"
)

// Impact grades how a nutrient moved the score.
type Impact string

const (
	ImpactPositiveHigh   Impact = "positive_high"
	ImpactPositiveMedium Impact = "positive_medium"
	ImpactPositiveLow    Impact = "positive_low"
	ImpactNeutral        Impact = "neutral"
	ImpactNegativeLow    Impact = "negative_low"
	ImpactNegativeMedium Impact = "negative_medium"
	ImpactNegativeHigh   Impact = "negative_high"
)

// NutrientAnalysis explains one nutrient's contribution to the score.
type NutrientAnalysis struct {
	Nutrient       string  `json:"nutrient"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	Points         int     `json:"points"`
	Impact         Impact  `json:"impact"`
	Recommendation string  `json:"recommendation"`
}

// Insight is a single strength, concern or recommendation with a priority
// tag. Actionable insights carry a concrete follow-up.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"category"`
	Priority    string `json:"priority"`
	Actionable  bool   `json:"actionable"`
	Action      string `json:"action_text,omitempty"`
}

func nutrientAnalyses(m *Meal, ctx MealContext, t Thresholds, b ScoreBreakdown) []NutrientAnalysis {
	analyses := []NutrientAnalysis{
		{
			Nutrient:       "Sugars (Total)",
			Value:          m.Per100g.SugarsTotal,
			Unit:           "g",
			Points:         b.SugarPoints,
			Impact:         sugarImpact(ctx),
			Recommendation: sugarRecommendation(ctx),
		},
	}

	for _, row := range []struct {
		name   string
		value  float64
		unit   string
		table  Table
		risk   bool
		points int
	}{
		{"Energy Density", m.Per100g.EnergyKcal, "kcal/100g", t.EnergyDensity, true, b.EnergyPoints},
		{"Saturated Fat", m.Per100g.SaturatedFat, "g", t.SaturatedFat, true, b.SaturatedFatPoints},
		{"Sodium", m.Per100g.SodiumMg, "mg", t.Sodium, true, b.SodiumPoints},
		{"Protein", m.Per100g.Protein, "g", t.Protein, false, b.ProteinPoints},
		{"Fibre", m.Per100g.Fibre, "g", t.Fibre, false, b.FibrePoints},
		{"FVNL", m.FVNLPercent, "%", t.FVNL, false, b.FVNLPoints},
	} {
		analyses = append(analyses, NutrientAnalysis{
			Nutrient:       row.name,
			Value:          row.value,
			Unit:           row.unit,
			Points:         row.points,
			Impact:         nutrientImpact(row.risk, row.points),
			Recommendation: nutrientRecommendation(row.name, row.value),
		})
	}
	return analyses
}

func sugarImpact(ctx MealContext) Impact {
	switch {
	case ctx.AddedSugars > 10:
		return ImpactNegativeHigh
	case ctx.AddedSugars > 5:
		return ImpactNegativeMedium
	case ctx.NaturalSugarPct > 70:
		return ImpactNeutral
	}
	return ImpactNegativeLow
}

func sugarRecommendation(ctx MealContext) string {
	switch {
	case ctx.AddedSugars > 10:
		return "Significantly reduce added sugar intake"
	case ctx.AddedSugars > 5:
		return "Consider reducing added sugars"
	case ctx.NaturalSugarPct > 80:
		return "Good choice - mostly natural sugars"
	}
	return "Balance natural and added sugar sources"
}

func nutrientImpact(risk bool, points int) Impact {
	if risk {
		switch {
		case points >= 8:
			return ImpactNegativeHigh
		case points >= 5:
			return ImpactNegativeMedium
		case points >= 2:
			return ImpactNegativeLow
		}
		return ImpactNeutral
	}
	switch {
	case points >= 6:
		return ImpactPositiveHigh
	case points >= 4:
		return ImpactPositiveMedium
	case points >= 2:
		return ImpactPositiveLow
	}
	return ImpactNeutral
}

func nutrientRecommendation(nutrient string, value float64) string {
	level := "low"
	if value > 15 {
		level = "high"
	} else if value > 5 {
		level = "medium"
	}

	recs := map[string]map[string]string{
		"Energy Density": {
			"high":   "Consider portion control and pairing with low-energy foods",
			"medium": "Moderate energy content - suitable as part of a balanced diet",
			"low":    "Excellent for weight management and satiety",
		},
		"Protein": {
			"high":   "Excellent protein source for muscle health",
			"medium": "Good protein contribution",
			"low":    "Consider adding protein sources",
		},
		"Fibre": {
			"high":   "Excellent for digestive health and satiety",
			"medium": "Good fibre contribution",
			"low":    "Add fruits, vegetables, or whole grains",
		},
	}
	if byLevel, ok := recs[nutrient]; ok {
		return byLevel[level]
	}
	return "Standard nutritional guidelines apply"
}

// insights derives the meal's strengths and concerns from its context.
func insights(ctx MealContext) (strengths, concerns []Insight) {
	if ctx.NaturalSugarPct > 70 {
		strengths = append(strengths, Insight{
			Title:       "Predominantly Natural Sugars",
			Description: fmt.Sprintf("%.1f%% of sugars are from natural sources like fruits", ctx.NaturalSugarPct),
			Kind:        "strength",
			Priority:    "medium",
		})
	}
	if ctx.SatietyIndex > 1.1 {
		strengths = append(strengths, Insight{
			Title:       "High Satiety Potential",
			Description: "This food combination is likely to be more filling and satisfying",
			Kind:        "strength",
			Priority:    "high",
		})
	}
	switch ctx.Processing {
	case ProcessingMinimal:
		strengths = append(strengths, Insight{
			Title:       "Minimally Processed",
			Description: "Foods are in their natural or lightly processed state",
			Kind:        "strength",
			Priority:    "medium",
		})
	case ProcessingUltra:
		concerns = append(concerns, Insight{
			Title:       "Ultra-Processed Foods",
			Description: "Contains highly processed foods which may be less nutritious",
			Kind:        "concern",
			Priority:    "high",
		})
	}
	return strengths, concerns
}

func recommendations(ctx MealContext) []Insight {
	var recs []Insight
	if ctx.AddedSugars > 5 {
		recs = append(recs, Insight{
			Title:       "Reduce Added Sugars",
			Description: "Consider alternatives with less added sugar",
			Kind:        "recommendation",
			Priority:    "high",
			Actionable:  true,
			Action:      "Look for unsweetened versions or add natural sweetness with fruits",
		})
	}
	if ctx.SatietyIndex < 0.9 {
		recs = append(recs, Insight{
			Title:       "Improve Satiety",
			Description: "Add protein or fibre to make this meal more filling",
			Kind:        "recommendation",
			Priority:    "medium",
			Actionable:  true,
			Action:      "Consider adding nuts, seeds, or high-fibre vegetables",
		})
	}
	if ctx.Processing == ProcessingUltra {
		recs = append(recs, Insight{
			Title:       "Choose Less Processed Options",
			Description: "Opt for minimally processed alternatives when possible",
			Kind:        "recommendation",
			Priority:    "medium",
			Actionable:  true,
			Action:      "Look for whole food alternatives or prepare from scratch",
		})
	}
	return recs
}

// Highlights summarize what a single food is notably high or low in.
type Highlights struct {
	HighIn       []string `json:"high_in"`
	LowIn        []string `json:"low_in"`
	GoodSourceOf []string `json:"good_source_of"`
}

// FoodHighlights inspects a food's per-100g profile for notable nutrients.
func FoodHighlights(f Food) Highlights {
	h := Highlights{HighIn: []string{}, LowIn: []string{}, GoodSourceOf: []string{}}

	switch {
	case f.Per100g.Protein > 15:
		h.GoodSourceOf = append(h.GoodSourceOf, "protein")
	case f.Per100g.Protein > 10:
		h.HighIn = append(h.HighIn, "protein")
	}
	switch {
	case f.Per100g.Fibre > 8:
		h.GoodSourceOf = append(h.GoodSourceOf, "fibre")
	case f.Per100g.Fibre > 5:
		h.HighIn = append(h.HighIn, "fibre")
	}

	if f.FVNLPercent > 67 {
		switch f.FoodGroupID {
		case 9:
			h.GoodSourceOf = append(h.GoodSourceOf, "vitamin C and natural fruit nutrients")
		case 11:
			h.GoodSourceOf = append(h.GoodSourceOf, "vitamins, minerals, and fibre")
		case 12:
			h.GoodSourceOf = append(h.GoodSourceOf, "healthy fats and protein")
		case 16:
			h.GoodSourceOf = append(h.GoodSourceOf, "plant protein and fibre")
		default:
			h.GoodSourceOf = append(h.GoodSourceOf, "nutrients from plant foods")
		}
	}

	if f.Per100g.SaturatedFat > 5 {
		h.HighIn = append(h.HighIn, "saturated fat")
	}
	if f.Per100g.SugarsTotal > 15 {
		h.HighIn = append(h.HighIn, "sugar")
	}
	if f.Per100g.SodiumMg > 600 {
		h.HighIn = append(h.HighIn, "sodium")
	}
	return h
}

// UsageRecommendations suggests how a rated food fits into a diet.
func UsageRecommendations(f Food, stars float64) []string {
	var recs []string
	switch {
	case stars >= 4.0:
		recs = append(recs, "Great choice for regular consumption")
	case stars >= 3.0:
		recs = append(recs, "Good as part of a balanced diet")
	default:
		recs = append(recs, "Enjoy in moderation")
	}
	if f.Per100g.SodiumMg > 600 {
		recs = append(recs, "Consider pairing with low-sodium foods")
	}
	if f.Per100g.Fibre > 5 {
		recs = append(recs, "Great for digestive health")
	}
	return recs
}

// HealthierAlternative suggests swaps for a food, keyed by its CNF group.
type HealthierAlternative struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

var alternativeSuggestions = map[string][]string{
	"Dairy and Egg Products": {"Choose low-fat dairy options", "Try plant-based alternatives"},
	"Baked Products":         {"Choose whole grain versions", "Look for products with less added sugar"},
	"Sweets":                 {"Try fresh fruits", "Choose dark chocolate with less sugar"},
	"Fast Foods":             {"Prepare homemade versions", "Choose grilled over fried options"},
	"Beverages":              {"Choose water or unsweetened drinks", "Try herbal teas"},
}

func HealthierAlternatives(f Food) HealthierAlternative {
	group := FoodGroupName(f.FoodGroupID)
	if suggestions, ok := alternativeSuggestions[group]; ok {
		return HealthierAlternative{Category: group, Suggestions: suggestions}
	}
	return HealthierAlternative{Category: group, Suggestions: []string{"Choose less processed alternatives"}}
}

// ImprovementOpportunity is a measurable gap between the meal and a
// nutritional target.
type ImprovementOpportunity struct {
	Area       string  `json:"area"`
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Suggestion string  `json:"suggestion"`
}

// ImprovementOpportunities flags fibre, sodium and FVNL gaps in a meal.
func ImprovementOpportunities(m *Meal) []ImprovementOpportunity {
	opportunities := []ImprovementOpportunity{}
	if m.Per100g.Fibre < 5 {
		opportunities = append(opportunities, ImprovementOpportunity{
			Area:       "fibre",
			Current:    m.Per100g.Fibre,
			Target:     5,
			Suggestion: "Add fruits, vegetables, or whole grains",
		})
	}
	if m.Per100g.SodiumMg > 600 {
		opportunities = append(opportunities, ImprovementOpportunity{
			Area:       "sodium",
			Current:    m.Per100g.SodiumMg,
			Target:     400,
			Suggestion: "Choose lower-sodium alternatives",
		})
	}
	if m.FVNLPercent < 40 {
		opportunities = append(opportunities, ImprovementOpportunity{
			Area:       "fvnl",
			Current:    m.FVNLPercent,
			Target:     67,
			Suggestion: "Add more fruits, vegetables, nuts, or legumes",
		})
	}
	return opportunities
}

// MacronutrientBalance expresses protein/carbohydrate/fat as shares of the
// meal's energy.
type MacronutrientBalance struct {
	ProteinPercent      float64 `json:"protein_percent"`
	CarbohydratePercent float64 `json:"carbohydrate_percent"`
	FatPercent          float64 `json:"fat_percent"`
}

func MealMacronutrientBalance(m *Meal) MacronutrientBalance {
	kcal := m.Per100g.EnergyKcal
	if kcal <= 0 {
		return MacronutrientBalance{}
	}
	return MacronutrientBalance{
		ProteinPercent:      m.Per100g.Protein * 4 / kcal * 100,
		CarbohydratePercent: m.Per100g.Carbohydrate * 4 / kcal * 100,
		FatPercent:          m.Per100g.FatTotal * 9 / kcal * 100,
	}
}

// QualityFlags are threshold checks on the aggregated meal profile.
type QualityFlags struct {
	HighProtein bool `json:"high_protein"`
	HighFibre   bool `json:"high_fibre"`
	HighFVNL    bool `json:"high_fvnl"`
	LowSodium   bool `json:"low_sodium"`
	LowSugar    bool `json:"low_sugar"`
}

func MealQualityFlags(m *Meal) QualityFlags {
	return QualityFlags{
		HighProtein: m.Per100g.Protein >= 15,
		HighFibre:   m.Per100g.Fibre >= 5,
		HighFVNL:    m.FVNLPercent >= 67,
		LowSodium:   m.Per100g.SodiumMg <= 400,
		LowSugar:    m.Per100g.SugarsTotal <= 10,
	}
}

// MealSuitability scores a meal against the expectations for one meal of
// the day.
type MealSuitability struct {
	MealType       string          `json:"meal_type"`
	Score          float64         `json:"suitability_score"`
	CriteriaMet    map[string]bool `json:"criteria_met"`
	Recommendation string          `json:"recommendation"`
}

// AssessMealSuitability checks the meal against per-meal-type criteria.
// Returns nil for unrecognized meal types.
func AssessMealSuitability(m *Meal, mealType string) *MealSuitability {
	kcal := m.Per100g.EnergyKcal
	var criteria map[string]bool
	switch strings.ToLower(mealType) {
	case "breakfast":
		criteria = map[string]bool{
			"energy_suitable":  kcal >= 200 && kcal <= 400,
			"protein_adequate": m.Per100g.Protein >= 15,
			"fibre_good":       m.Per100g.Fibre >= 3,
			"sugar_moderate":   m.Per100g.SugarsTotal <= 20,
		}
	case "lunch":
		criteria = map[string]bool{
			"energy_suitable":  kcal >= 300 && kcal <= 600,
			"protein_adequate": m.Per100g.Protein >= 20,
			"fibre_good":       m.Per100g.Fibre >= 5,
			"sodium_moderate":  m.Per100g.SodiumMg <= 800,
		}
	case "dinner":
		criteria = map[string]bool{
			"energy_suitable":  kcal >= 400 && kcal <= 700,
			"protein_adequate": m.Per100g.Protein >= 25,
			"fibre_good":       m.Per100g.Fibre >= 5,
			"sodium_moderate":  m.Per100g.SodiumMg <= 600,
		}
	case "snack":
		criteria = map[string]bool{
			"energy_suitable":     kcal >= 50 && kcal <= 200,
			"protein_adequate":    m.Per100g.Protein >= 5,
			"portion_appropriate": m.TotalWeight <= 100,
		}
	default:
		return nil
	}

	met := 0
	for _, ok := range criteria {
		if ok {
			met++
		}
	}
	score := float64(met) / float64(len(criteria))

	recommendation := "Poor fit"
	switch {
	case score >= 0.8:
		recommendation = "Excellent fit"
	case score >= 0.6:
		recommendation = "Good fit"
	case score >= 0.4:
		recommendation = "Moderate fit"
	}

	return &MealSuitability{
		MealType:       mealType,
		Score:          score,
		CriteriaMet:    criteria,
		Recommendation: recommendation,
	}
}

// GoalAlignment scores a meal against one dietary goal.
type GoalAlignment struct {
	Goal     string          `json:"goal"`
	Score    float64         `json:"score"`
	Criteria map[string]bool `json:"criteria"`
}

// AssessGoalAlignment evaluates the recognized dietary goals: weight_loss,
// heart_health and diabetes_management. Unknown goals are skipped.
func AssessGoalAlignment(m *Meal, goals []string) []GoalAlignment {
	var out []GoalAlignment
	for _, goal := range goals {
		switch goal {
		case "weight_loss":
			energyOK := m.Per100g.EnergyKcal <= 400
			proteinOK := m.Per100g.Protein >= 15
			fibreOK := m.Per100g.Fibre >= 5
			score := 0.3
			if energyOK && proteinOK {
				score = 0.8
			} else if energyOK || proteinOK {
				score = 0.6
			}
			out = append(out, GoalAlignment{
				Goal:  goal,
				Score: score,
				Criteria: map[string]bool{
					"energy_appropriate": energyOK,
					"protein_adequate":   proteinOK,
					"fibre_high":         fibreOK,
				},
			})
		case "heart_health":
			satFatOK := m.Per100g.SaturatedFat <= 3
			sodiumOK := m.Per100g.SodiumMg <= 400
			fibreOK := m.Per100g.Fibre >= 5
			score := 0.3
			switch {
			case satFatOK && sodiumOK && fibreOK:
				score = 0.9
			case satFatOK && sodiumOK:
				score = 0.7
			case satFatOK:
				score = 0.5
			}
			out = append(out, GoalAlignment{
				Goal:  goal,
				Score: score,
				Criteria: map[string]bool{
					"low_saturated_fat": satFatOK,
					"low_sodium":        sodiumOK,
					"high_fibre":        fibreOK,
				},
			})
		case "diabetes_management":
			sugarOK := m.Per100g.SugarsTotal <= 10
			fibreOK := m.Per100g.Fibre >= 5
			carbsOK := m.Per100g.Carbohydrate <= 30
			score := 0.2
			switch {
			case sugarOK && fibreOK:
				score = 0.8
			case sugarOK:
				score = 0.6
			case fibreOK:
				score = 0.4
			}
			out = append(out, GoalAlignment{
				Goal:  goal,
				Score: score,
				Criteria: map[string]bool{
					"low_sugar":      sugarOK,
					"high_fibre":     fibreOK,
					"moderate_carbs": carbsOK,
				},
			})
		}
	}
	return out
}

// SuggestMealTiming places a meal by weight and energy content.
func SuggestMealTiming(m *Meal) string {
	switch {
	case m.TotalWeight < 50:
		return "Suitable as a snack"
	case m.Per100g.EnergyKcal < 200:
		return "Suitable as a light meal or snack"
	case m.Per100g.EnergyKcal < 400:
		return "Suitable as a light meal"
	}
	return "Suitable as a main meal"
}
