package hsr

import (
	"fmt"
	"sort"
)

// Expected nutritional profile per category, used to score how well a meal
// fits each one.
type categoryProfile struct {
	energyMin, energyMax   float64 // kcal/100g
	proteinMin, proteinMax float64 // g/100g
	fatMin, fatMax         float64 // g/100g
	liquidMin              float64 // -1 when unconstrained
	liquidMax              float64 // -1 when unconstrained
	anyProcessing          bool    // tolerates ultra-processed without penalty
}

var categoryProfiles = map[Category]categoryProfile{
	CategoryBeverage:      {0, 200, 0, 3, 0, 1, 0.8, -1, false},
	CategoryDairyBeverage: {30, 150, 2, 8, 0, 6, 0.7, -1, false},
	CategoryFood:          {50, 800, 0, 50, 0, 50, -1, 0.3, true},
	CategoryDairyFood:     {50, 400, 3, 30, 0, 25, -1, 0.2, false},
	CategoryCheese:        {200, 450, 10, 35, 15, 35, -1, 0.1, false},
	CategoryOilsSpreads:   {300, 900, 0, 5, 30, 100, -1, 0.2, true},
}

// Alternative is a non-winning category that still fits the meal.
type Alternative struct {
	Category Category `json:"category"`
	Fitness  float64  `json:"fitness_score"`
	Reason   string   `json:"explanation"`
}

// CategoryAssignment is the outcome of classifying a meal.
type CategoryAssignment struct {
	Category     Category             `json:"category"`
	Confidence   float64              `json:"confidence"`
	Fitness      map[Category]float64 `json:"-"`
	Reasoning    []string             `json:"reasoning"`
	Alternatives []Alternative        `json:"alternative_categories"`
	Warnings     []string             `json:"warnings,omitempty"`
}

// Classify assigns an HSR category. A single food keeps its food-group
// derived category; multi-food meals are scored against each category's
// expected profile, with fixed tie-break rules when scores are close.
func Classify(foods []Food, per100g NutrientProfile, liquidFraction float64) CategoryAssignment {
	if len(foods) == 0 {
		return CategoryAssignment{
			Category:   CategoryFood,
			Confidence: 0,
			Reasoning:  []string{"empty meal defaults to general food category"},
		}
	}

	if len(foods) == 1 {
		return CategoryAssignment{
			Category:   foods[0].Category,
			Confidence: 1.0,
			Reasoning:  []string{"single food keeps its food group category"},
		}
	}

	processing := overallProcessing(foods)
	fitness := make(map[Category]float64, len(Categories))
	for _, cat := range Categories {
		fitness[cat] = categoryFitness(categoryProfiles[cat], cat, per100g, liquidFraction, processing)
	}

	ranked := rankCategories(fitness)
	winner, winnerScore := ranked[0].cat, ranked[0].score
	runnerUp := ranked[1].score

	reasoning := []string{fmt.Sprintf("best nutritional profile match (fitness %.2f)", winnerScore)}

	// Close scores get resolved by fixed rules rather than raw fitness.
	var conflicts []Category
	for _, r := range ranked[1:] {
		if winnerScore-r.score < 0.15 {
			conflicts = append(conflicts, r.cat)
		}
	}
	if len(conflicts) > 0 {
		if resolved, reason := breakTie(winner, conflicts, per100g, liquidFraction); resolved != winner {
			winner = resolved
			reasoning = append(reasoning, reason)
		} else if reason != "" {
			reasoning = append(reasoning, reason)
		}
	}

	assignment := CategoryAssignment{
		Category:     winner,
		Confidence:   clamp(winnerScore-runnerUp, 0, 1),
		Fitness:      fitness,
		Reasoning:    reasoning,
		Alternatives: alternatives(winner, fitness),
	}

	if dominant := dominantGroupShare(foods); dominant < 0.4 {
		assignment.Warnings = append(assignment.Warnings,
			fmt.Sprintf("heterogeneous meal: largest food group holds only %.0f%% of weight", dominant*100))
	}
	return assignment
}

func categoryFitness(p categoryProfile, cat Category, n NutrientProfile, liquid float64, processing ProcessingLevel) float64 {
	score, maxScore := 0.0, 0.0

	// Energy fit: 20 points in range, scaled penalty outside.
	if n.EnergyKcal >= p.energyMin && n.EnergyKcal <= p.energyMax {
		score += 20
	} else if n.EnergyKcal < p.energyMin {
		score += maxF(0, 20-(p.energyMin-n.EnergyKcal)/10)
	} else {
		score += maxF(0, 20-(n.EnergyKcal-p.energyMax)/20)
	}
	maxScore += 20

	// Protein fit: 15 points.
	if n.Protein >= p.proteinMin && n.Protein <= p.proteinMax {
		score += 15
	} else if n.Protein < p.proteinMin {
		score += maxF(0, 15-(p.proteinMin-n.Protein)*2)
	} else {
		score += maxF(0, 15-(n.Protein-p.proteinMax)/2)
	}
	maxScore += 15

	// Fat fit: 15 points.
	if n.FatTotal >= p.fatMin && n.FatTotal <= p.fatMax {
		score += 15
	} else if n.FatTotal < p.fatMin {
		score += maxF(0, 15-(p.fatMin-n.FatTotal)*2)
	} else {
		score += maxF(0, 15-(n.FatTotal-p.fatMax)/3)
	}
	maxScore += 15

	// Liquid fit: 25 points.
	if p.liquidMin >= 0 {
		if liquid >= p.liquidMin {
			score += 25
		} else {
			score += liquid / p.liquidMin * 25
		}
	} else if p.liquidMax >= 0 {
		if liquid <= p.liquidMax {
			score += 25
		} else {
			score += maxF(0, 25-(liquid-p.liquidMax)*50)
		}
	}
	maxScore += 25

	// Processing tolerance: 15 points, partial credit for ultra-processed
	// in processed-tolerant categories.
	switch {
	case p.anyProcessing:
		score += 15
	case processing != ProcessingUltra:
		score += 15
	default:
		score += 10
	}
	maxScore += 15

	// Category-specific bonuses.
	switch {
	case cat == CategoryCheese && n.Protein >= 15 && n.FatTotal >= 15:
		score += 10
		maxScore += 10
	case cat.IsBeverage() && liquid > 0.8:
		score += 10
		maxScore += 10
	case cat == CategoryOilsSpreads && n.FatTotal > 50:
		score += 10
		maxScore += 10
	}

	return score / maxScore
}

type rankedCategory struct {
	cat   Category
	score float64
}

func rankCategories(fitness map[Category]float64) []rankedCategory {
	ranked := make([]rankedCategory, 0, len(fitness))
	for cat, score := range fitness {
		ranked = append(ranked, rankedCategory{cat, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].cat < ranked[j].cat
	})
	return ranked
}

// breakTie applies the fixed resolution order: liquid dominance, then
// protein/fat profile, then energy density, then the general food default.
func breakTie(top Category, conflicts []Category, n NutrientProfile, liquid float64) (Category, string) {
	inConflict := func(want ...Category) (Category, bool) {
		for _, c := range conflicts {
			for _, w := range want {
				if c == w {
					return c, true
				}
			}
		}
		return "", false
	}

	if liquid > 0.6 {
		if cat, ok := inConflict(CategoryBeverage, CategoryDairyBeverage); ok {
			return cat, fmt.Sprintf("liquid content (%.0f%%) favors beverage categories", liquid*100)
		}
	}
	if n.Protein >= 15 && n.FatTotal >= 15 {
		if cat, ok := inConflict(CategoryCheese, CategoryDairyFood); ok {
			return cat, "high protein and fat indicate a dairy or cheese profile"
		}
	}
	if n.EnergyKcal > 500 && n.FatTotal > 40 {
		if cat, ok := inConflict(CategoryOilsSpreads); ok {
			return cat, "very high energy density and fat indicate oils/spreads"
		}
	}
	if cat, ok := inConflict(CategoryFood); ok {
		return cat, "mixed meal defaults to the general food category"
	}
	return top, ""
}

func alternatives(winner Category, fitness map[Category]float64) []Alternative {
	winnerScore := fitness[winner]
	var alts []Alternative
	for _, r := range rankCategories(fitness) {
		if r.cat == winner || r.score < 0.5 {
			continue
		}
		diff := winnerScore - r.score
		strength := "possible alternative"
		if diff < 0.2 {
			strength = "strong alternative"
		} else if diff < 0.4 {
			strength = "viable alternative"
		}
		alts = append(alts, Alternative{
			Category: r.cat,
			Fitness:  r.score,
			Reason:   strength + ": " + alternativeReason(r.cat),
		})
		if len(alts) == 3 {
			break
		}
	}
	return alts
}

func alternativeReason(cat Category) string {
	switch cat {
	case CategoryBeverage:
		return "if liquid characteristics are considered primary"
	case CategoryDairyBeverage:
		return "if dairy content is significant"
	case CategoryFood:
		return "if treated as a general food product"
	case CategoryDairyFood:
		return "if dairy solids are the primary component"
	case CategoryCheese:
		return "if the high protein and fat content is emphasized"
	case CategoryOilsSpreads:
		return "if fat content dominates the profile"
	}
	return "based on nutritional fitness"
}

// dominantGroupShare is the weight share of the heaviest CNF food group.
func dominantGroupShare(foods []Food) float64 {
	total := 0.0
	weights := map[int]float64{}
	for _, f := range foods {
		total += f.ServingSize
		weights[f.FoodGroupID] += f.ServingSize
	}
	if total == 0 {
		return 0
	}
	best := 0.0
	for _, w := range weights {
		if w > best {
			best = w
		}
	}
	return best / total
}
