package hsr

import "fmt"

// Level buckets a star rating for presentation.
type Level string

const (
	LevelExcellent    Level = "excellent"
	LevelGood         Level = "good"
	LevelAverage      Level = "average"
	LevelBelowAverage Level = "below_average"
	LevelPoor         Level = "poor"
)

func LevelForStars(stars float64) Level {
	switch {
	case stars >= 4.5:
		return LevelExcellent
	case stars >= 3.5:
		return LevelGood
	case stars >= 2.5:
		return LevelAverage
	case stars >= 1.5:
		return LevelBelowAverage
	}
	return LevelPoor
}

func (l Level) Description() string {
	switch l {
	case LevelExcellent:
		return "Excellent nutritional quality"
	case LevelGood:
		return "Good nutritional quality"
	case LevelAverage:
		return "Average nutritional quality"
	case LevelBelowAverage:
		return "Below average nutritional quality"
	}
	return "Poor nutritional quality"
}

// ScoreBreakdown itemizes how a final score was reached: risk points,
// beneficial points, and the additive adjustments.
type ScoreBreakdown struct {
	FinalScore      int `json:"final_score"`
	BaselinePoints  int `json:"baseline_points"`
	ModifyingPoints int `json:"modifying_points"`

	EnergyPoints       int `json:"energy"`
	SaturatedFatPoints int `json:"saturated_fat"`
	SugarPoints        int `json:"sugar"`
	SodiumPoints       int `json:"sodium"`
	ProteinPoints      int `json:"protein"`
	FibrePoints        int `json:"fibre"`
	FVNLPoints         int `json:"fvnl"`

	SugarNaturalPoints int     `json:"sugar_natural"`
	SugarAddedPoints   int     `json:"sugar_added"`
	SatietyAdjustment  float64 `json:"satiety_adjustment"`
	ProcessingPenalty  float64 `json:"processing_penalty"`
	NaturalnessBonus   float64 `json:"naturalness_bonus"`
}

// Rating is the headline result.
type Rating struct {
	Stars       float64  `json:"star_rating"`
	Level       Level    `json:"level"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

// Result is a complete scored meal: rating, score breakdown, the context
// the adjustments came from, and derived analyses.
type Result struct {
	Rating     Rating
	Breakdown  ScoreBreakdown
	Context    MealContext
	Confidence float64
	Warnings   []string

	NutrientAnalyses []NutrientAnalysis
	Strengths        []Insight
	Concerns         []Insight
	Recommendations  []Insight

	TotalWeight float64
	EnergyKcal  float64
	EnergyKJ    float64
}

// Calculator scores meals against a threshold set.
type Calculator struct {
	tables *ThresholdSet
}

func NewCalculator(tables *ThresholdSet) *Calculator {
	if tables == nil {
		tables = MustDefaultThresholdSet()
	}
	return &Calculator{tables: tables}
}

// Rate scores a meal. Deterministic: the same meal always produces the
// same result.
func (c *Calculator) Rate(m *Meal) *Result {
	ctx := AnalyzeContext(m)
	t := c.tables.For(m.Category)
	b := c.scoreComponents(m, ctx, t)

	stars := t.Stars(b.FinalScore)
	level := LevelForStars(stars)

	r := &Result{
		Rating: Rating{
			Stars:       stars,
			Level:       level,
			Description: fmt.Sprintf("%.1f star rating", stars),
			Category:    m.Category,
		},
		Breakdown:   b,
		Context:     ctx,
		TotalWeight: m.TotalWeight,
		EnergyKcal:  m.Per100g.EnergyKcal,
		EnergyKJ:    m.Per100g.EnergyKJ(),
	}
	r.Confidence = c.confidence(m, ctx)
	r.Warnings = c.warnings(m)
	r.NutrientAnalyses = nutrientAnalyses(m, ctx, t, b)
	r.Strengths, r.Concerns = insights(ctx)
	r.Recommendations = recommendations(ctx)
	return r
}

func (c *Calculator) scoreComponents(m *Meal, ctx MealContext, t Thresholds) ScoreBreakdown {
	n := m.Per100g

	// Contextual adjustments are applied to the measured value, never the
	// tables, so each factor counts exactly once.
	energy := n.EnergyKcal / ctx.SatietyIndex
	naturalSugar := ctx.NaturalSugars
	addedSugar := ctx.AddedSugars
	if ctx.LiquidFraction > 0.3 {
		// Liquid calories and liquid sugars are less satiating.
		liquidFactor := 1.0 - ctx.LiquidFraction*0.3
		energy /= liquidFactor
		naturalSugar /= liquidFactor
	}
	if ctx.Processing == ProcessingUltra {
		// Added sugar is judged more strictly in ultra-processed food.
		addedSugar *= 1.25
	}

	b := ScoreBreakdown{
		EnergyPoints:       t.EnergyDensity.Points(energy),
		SaturatedFatPoints: t.SaturatedFat.Points(n.SaturatedFat),
		SodiumPoints:       t.Sodium.Points(n.SodiumMg),
		SugarNaturalPoints: t.SugarNatural.Points(naturalSugar),
		SugarAddedPoints:   t.SugarAdded.Points(addedSugar),
	}
	b.SugarPoints = int(float64(b.SugarNaturalPoints)*0.7 + float64(b.SugarAddedPoints)*1.3)
	b.BaselinePoints = b.EnergyPoints + b.SaturatedFatPoints + b.SugarPoints + b.SodiumPoints

	if n.Protein >= MinQualifyingProtein {
		b.ProteinPoints = t.Protein.Points(n.Protein * ctx.ProteinQuality)
	}
	if n.Fibre >= MinQualifyingFibre {
		b.FibrePoints = t.Fibre.Points(n.Fibre)
	}
	b.FVNLPoints = t.FVNL.Points(m.FVNLPercent * ctx.FVNLNaturalness)
	b.ModifyingPoints = b.ProteinPoints + b.FibrePoints + b.FVNLPoints

	b.SatietyAdjustment = clamp((ctx.SatietyIndex-1.0)*2.0, -3, 3)
	b.ProcessingPenalty = processingPenalty(ctx.Processing)
	b.NaturalnessBonus = naturalnessBonus(ctx)

	base := maxF(0, float64(b.BaselinePoints-b.ModifyingPoints))
	adjusted := base + b.SatietyAdjustment + b.ProcessingPenalty + b.NaturalnessBonus
	if adjusted < 0 {
		adjusted = 0
	}
	b.FinalScore = int(adjusted)
	return b
}

func processingPenalty(level ProcessingLevel) float64 {
	switch level {
	case ProcessingModest:
		return 1.0
	case ProcessingUltra:
		return 2.5
	}
	return 0
}

// naturalnessBonus is negative: natural FVNL content and natural sugars
// lower the score.
func naturalnessBonus(ctx MealContext) float64 {
	bonus := 0.0
	if ctx.FVNLNaturalness > 0.8 {
		bonus += 1.0
	} else if ctx.FVNLNaturalness > 0.6 {
		bonus += 0.5
	}
	if ctx.NaturalSugarPct > 80 {
		bonus += 0.5
	}
	return -bonus
}

// confidence starts at 1.0 and drops for missing data, uncertain
// categorization and unusual composition, floored at 0.5.
func (c *Calculator) confidence(m *Meal, ctx MealContext) float64 {
	confidence := 1.0
	confidence -= 0.05 * float64(len(m.MissingNutrients()))
	if m.Per100g.Protein == 0 {
		confidence -= 0.1
	}
	if m.Per100g.Fibre == 0 {
		confidence -= 0.1
	}
	if m.Per100g.SodiumMg == 0 {
		confidence -= 0.05
	}
	if ctx.Processing == ProcessingUltra && ctx.LiquidFraction > 0.5 {
		confidence -= 0.1
	}
	if m.Category == CategoryBeverage && m.Per100g.Protein > 10 {
		confidence -= 0.15
	}
	if m.Assignment.Confidence < 0.5 {
		confidence -= 0.1
	}
	return maxF(0.5, confidence)
}

func (c *Calculator) warnings(m *Meal) []string {
	var warnings []string
	for _, name := range m.MissingNutrients() {
		warnings = append(warnings, fmt.Sprintf("%s missing from source data, defaulted to zero", name))
	}
	warnings = append(warnings, m.Assignment.Warnings...)
	return warnings
}
