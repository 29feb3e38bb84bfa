package hsr

// MealContext captures composition characteristics that adjust scoring:
// how satiating the meal is, how processed it is, how much of it is liquid,
// the quality of its protein sources, and how its sugars split between
// natural and added.
type MealContext struct {
	SatietyIndex    float64         `json:"satiety_index"`
	Processing      ProcessingLevel `json:"processing_level"`
	LiquidFraction  float64         `json:"liquid_fraction"`
	ProteinQuality  float64         `json:"protein_quality"`
	FVNLNaturalness float64         `json:"fvnl_naturalness"`

	// Sugar split, per 100g of meal.
	NaturalSugars     float64  `json:"natural_sugars"`
	AddedSugars       float64  `json:"added_sugars"`
	NaturalSugarPct   float64  `json:"natural_percentage"`
	SugarSources      []string `json:"sugar_sources"`
	HasAddedSugars    bool     `json:"has_added_sugars"`
	NaturalSugarFoods int      `json:"-"`
}

// Complete protein sources: poultry, soups/sauces (stock based), luncheon
// meats, breakfast cereals (fortified), fish, legumes.
var highQualityProteinGroups = map[int]bool{5: true, 6: true, 7: true, 8: true, 15: true, 16: true}

// AnalyzeContext derives the scoring context from a meal's composition.
func AnalyzeContext(m *Meal) MealContext {
	ctx := MealContext{
		LiquidFraction:  m.LiquidFraction(),
		Processing:      overallProcessing(m.Foods),
		ProteinQuality:  proteinQuality(m.Foods),
		FVNLNaturalness: fvnlNaturalness(m.Foods),
	}
	ctx.SatietyIndex = satietyIndex(m.Per100g, ctx.LiquidFraction, m.Foods)
	analyzeSugars(m, &ctx)
	return ctx
}

// satietyIndex starts at 1.0 and is boosted by protein and fiber, penalized
// for liquid and ultra-processed content. Clamped to [0.5, 1.5].
func satietyIndex(p NutrientProfile, liquidFraction float64, foods []Food) float64 {
	s := 1.0

	switch {
	case p.Protein >= 20:
		s *= 1.2
	case p.Protein >= 15:
		s *= 1.15
	case p.Protein >= 10:
		s *= 1.1
	}

	switch {
	case p.Fibre >= 10:
		s *= 1.2
	case p.Fibre >= 6:
		s *= 1.15
	case p.Fibre >= 3:
		s *= 1.1
	}

	switch {
	case liquidFraction > 0.5:
		s *= 0.7
	case liquidFraction > 0.2:
		s *= 0.85
	}

	ultra := 0
	for _, f := range foods {
		if f.Processing() == ProcessingUltra {
			ultra++
		}
	}
	if ultra*2 > len(foods) {
		s *= 0.9
	}

	return clamp(s, 0.5, 1.5)
}

// overallProcessing averages the per-food levels: >=2.5 ultra, >=1.5
// processed, else minimal.
func overallProcessing(foods []Food) ProcessingLevel {
	if len(foods) == 0 {
		return ProcessingMinimal
	}
	score := 0
	for _, f := range foods {
		switch f.Processing() {
		case ProcessingUltra:
			score += 3
		case ProcessingModest:
			score += 2
		default:
			score++
		}
	}
	avg := float64(score) / float64(len(foods))
	switch {
	case avg >= 2.5:
		return ProcessingUltra
	case avg >= 1.5:
		return ProcessingModest
	}
	return ProcessingMinimal
}

// proteinQuality weights protein mass by source: complete protein groups
// earn up to a 20% bonus.
func proteinQuality(foods []Food) float64 {
	total := 0.0
	highQuality := 0.0
	for _, f := range foods {
		mass := f.ServingSize * f.Per100g.Protein / 100
		total += mass
		if highQualityProteinGroups[f.FoodGroupID] {
			highQuality += mass
		}
	}
	if total == 0 {
		return 1.0
	}
	return 1.0 + highQuality/total*0.2
}

// fvnlNaturalness is the share of the meal's FVNL foods that are minimally
// processed. 1.0 when the meal has no FVNL foods.
func fvnlNaturalness(foods []Food) float64 {
	whole, total := 0, 0
	for _, f := range foods {
		if !IsFVNLGroup(f.FoodGroupID) {
			continue
		}
		total++
		if f.Processing() == ProcessingMinimal {
			whole++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(whole) / float64(total)
}

// analyzeSugars splits the meal's total sugars into natural and added
// per-100g amounts using per-food source estimates.
func analyzeSugars(m *Meal, ctx *MealContext) {
	natural, added := 0.0, 0.0
	for _, f := range m.Foods {
		sugars := f.Per100g.SugarsTotal * f.ServingSize / 100
		if f.IsNaturalSugarSource() {
			natural += sugars
			ctx.SugarSources = append(ctx.SugarSources, f.Name+" (natural)")
			ctx.NaturalSugarFoods++
			continue
		}
		ratio := f.NaturalSugarRatio()
		natural += sugars * ratio
		added += sugars * (1 - ratio)
		if ratio > 0.5 {
			ctx.SugarSources = append(ctx.SugarSources, f.Name+" (mostly natural)")
		} else {
			ctx.SugarSources = append(ctx.SugarSources, f.Name+" (mostly added)")
		}
		if f.HasAddedSugars() {
			ctx.HasAddedSugars = true
		}
	}

	scale := 100 / m.TotalWeight
	ctx.NaturalSugars = natural * scale
	ctx.AddedSugars = added * scale
	if natural+added > 0 {
		ctx.NaturalSugarPct = natural / (natural + added) * 100
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
