package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Amankrah/ecodish365/hsr"
)

// ErrInvalidRequest marks client input errors so controllers can answer 400.
var ErrInvalidRequest = errors.New("invalid request")

const (
	maxFoodsPerRequest = 20
	maxServingGrams    = 2000.0
)

// HSRService runs the Health Star Rating operations on CNF-resolved foods.
type HSRService struct {
	cnf  *CNFService
	calc *hsr.Calculator
}

func NewHSRService(cnf *CNFService, tables *hsr.ThresholdSet) *HSRService {
	return &HSRService{cnf: cnf, calc: hsr.NewCalculator(tables)}
}

func validateFoodRequest(foodIDs []int, servingSizes []float64) error {
	if len(foodIDs) == 0 {
		return fmt.Errorf("%w: at least one food is required", ErrInvalidRequest)
	}
	if len(foodIDs) > maxFoodsPerRequest {
		return fmt.Errorf("%w: at most %d foods per request", ErrInvalidRequest, maxFoodsPerRequest)
	}
	if len(foodIDs) != len(servingSizes) {
		return fmt.Errorf("%w: food_ids and serving_sizes counts must match", ErrInvalidRequest)
	}
	for i, size := range servingSizes {
		if size <= 0 || size > maxServingGrams {
			return fmt.Errorf("%w: serving size %.1fg for food %d must be in (0, %.0f]",
				ErrInvalidRequest, size, foodIDs[i], maxServingGrams)
		}
	}
	return nil
}

// ---- calculate ----

type CalculateRequest struct {
	FoodIDs             []int     `json:"food_ids" binding:"required"`
	ServingSizes        []float64 `json:"serving_sizes" binding:"required"`
	AnalysisLevel       string    `json:"analysis_level"`
	IncludeAlternatives bool      `json:"include_alternatives"`
	IncludeMealInsights bool      `json:"include_meal_insights"`
}

type RatingInfo struct {
	Stars        float64 `json:"star_rating"`
	Level        string  `json:"level"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	EnergyKcal   float64 `json:"energy_kcal"`
	EnergyKJ     float64 `json:"energy_kj"`
}

type ValidationInfo struct {
	ConfidenceScore float64  `json:"confidence_score"`
	Warnings        []string `json:"warnings"`
}

type KeyInsights struct {
	StrengthCount       int      `json:"strength_count"`
	ConcernCount        int      `json:"concern_count"`
	RecommendationCount int      `json:"recommendation_count"`
	TopStrengths        []string `json:"top_strengths"`
	TopConcerns         []string `json:"top_concerns"`
}

type ComponentPoints struct {
	Energy       int `json:"energy"`
	SaturatedFat int `json:"saturated_fat"`
	Sugar        int `json:"sugar"`
	Sodium       int `json:"sodium"`
	Protein      int `json:"protein"`
	Fibre        int `json:"fibre"`
	FVNL         int `json:"fvnl"`
}

type EnhancedComponents struct {
	SugarNatural      int     `json:"sugar_natural"`
	SugarAdded        int     `json:"sugar_added"`
	SatietyAdjustment float64 `json:"satiety_adjustment"`
	ProcessingPenalty float64 `json:"processing_penalty"`
	NaturalnessBonus  float64 `json:"naturalness_bonus"`
}

type ScoreBreakdownInfo struct {
	FinalScore      int                `json:"final_score"`
	BaselinePoints  int                `json:"baseline_points"`
	ModifyingPoints int                `json:"modifying_points"`
	Components      ComponentPoints    `json:"components"`
	Enhanced        EnhancedComponents `json:"enhanced_components"`
}

type HealthInsights struct {
	Strengths       []hsr.Insight `json:"strengths"`
	Concerns        []hsr.Insight `json:"concerns"`
	Recommendations []hsr.Insight `json:"recommendations"`
}

type SugarSourceAnalysis struct {
	NaturalSugars     float64  `json:"natural_sugars"`
	AddedSugars       float64  `json:"added_sugars"`
	NaturalPercentage float64  `json:"natural_percentage"`
	Sources           []string `json:"sources"`
}

type SatietyAnalysis struct {
	SatietyIndex     float64 `json:"satiety_index"`
	ProcessingLevel  string  `json:"processing_level"`
	LiquidPercentage float64 `json:"liquid_percentage"`
}

type FoodDetail struct {
	FoodID      int     `json:"food_id"`
	FoodName    string  `json:"food_name"`
	FoodGroup   string  `json:"food_group"`
	ServingSize float64 `json:"serving_size"`
	Category    string  `json:"category"`
	FVNLPercent float64 `json:"fvnl_percent"`
}

type MealCategorization struct {
	Category     string            `json:"category"`
	CategoryName string            `json:"category_name"`
	Confidence   float64           `json:"confidence"`
	Reasoning    []string          `json:"reasoning"`
	Alternatives []hsr.Alternative `json:"alternative_categories,omitempty"`
}

type CalculateResponse struct {
	Rating     RatingInfo     `json:"rating"`
	Validation ValidationInfo `json:"validation"`

	// Simple analysis only.
	KeyInsights *KeyInsights `json:"key_insights,omitempty"`

	// Detailed analysis only.
	ScoreBreakdown      *ScoreBreakdownInfo    `json:"score_breakdown,omitempty"`
	NutritionalAnalysis []hsr.NutrientAnalysis `json:"nutritional_analysis,omitempty"`
	HealthInsights      *HealthInsights        `json:"health_insights,omitempty"`
	SugarSourceAnalysis *SugarSourceAnalysis   `json:"sugar_source_analysis,omitempty"`
	SatietyAnalysis     *SatietyAnalysis       `json:"satiety_analysis,omitempty"`
	Foods               []FoodDetail           `json:"foods,omitempty"`
	MealCategorization  *MealCategorization    `json:"meal_categorization,omitempty"`
	MealInsights        *MealInsightsResponse  `json:"meal_insights,omitempty"`
}

func (s *HSRService) Calculate(req CalculateRequest) (*CalculateResponse, error) {
	if err := validateFoodRequest(req.FoodIDs, req.ServingSizes); err != nil {
		return nil, err
	}

	foods, err := s.cnf.ResolveFoods(req.FoodIDs, req.ServingSizes)
	if err != nil {
		return nil, err
	}
	meal, err := hsr.NewMeal(foods)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	result := s.calc.Rate(meal)

	resp := &CalculateResponse{
		Rating:     ratingInfo(result),
		Validation: ValidationInfo{ConfidenceScore: result.Confidence, Warnings: warnings(result)},
	}

	if req.AnalysisLevel != "detailed" {
		resp.KeyInsights = &KeyInsights{
			StrengthCount:       len(result.Strengths),
			ConcernCount:        len(result.Concerns),
			RecommendationCount: len(result.Recommendations),
			TopStrengths:        insightTitles(result.Strengths, 2),
			TopConcerns:         insightTitles(result.Concerns, 2),
		}
		return resp, nil
	}

	resp.ScoreBreakdown = scoreBreakdownInfo(result.Breakdown)
	resp.NutritionalAnalysis = result.NutrientAnalyses
	resp.HealthInsights = &HealthInsights{
		Strengths:       result.Strengths,
		Concerns:        result.Concerns,
		Recommendations: result.Recommendations,
	}
	resp.SugarSourceAnalysis = &SugarSourceAnalysis{
		NaturalSugars:     result.Context.NaturalSugars,
		AddedSugars:       result.Context.AddedSugars,
		NaturalPercentage: result.Context.NaturalSugarPct,
		Sources:           result.Context.SugarSources,
	}
	resp.SatietyAnalysis = &SatietyAnalysis{
		SatietyIndex:     result.Context.SatietyIndex,
		ProcessingLevel:  string(result.Context.Processing),
		LiquidPercentage: result.Context.LiquidFraction * 100,
	}
	resp.Foods = foodDetails(foods)
	resp.MealCategorization = categorization(meal, req.IncludeAlternatives)

	if req.IncludeMealInsights {
		resp.MealInsights = mealInsights(meal, "", nil)
	}
	return resp, nil
}

func ratingInfo(r *hsr.Result) RatingInfo {
	return RatingInfo{
		Stars:        r.Rating.Stars,
		Level:        string(r.Rating.Level),
		Description:  r.Rating.Level.Description(),
		Category:     string(r.Rating.Category),
		CategoryName: r.Rating.Category.DisplayName(),
		EnergyKcal:   r.EnergyKcal,
		EnergyKJ:     r.EnergyKJ,
	}
}

func warnings(r *hsr.Result) []string {
	if r.Warnings == nil {
		return []string{}
	}
	return r.Warnings
}

func insightTitles(insights []hsr.Insight, n int) []string {
	titles := []string{}
	for _, in := range insights {
		titles = append(titles, in.Title)
		if len(titles) == n {
			break
		}
	}
	return titles
}

func scoreBreakdownInfo(b hsr.ScoreBreakdown) *ScoreBreakdownInfo {
	return &ScoreBreakdownInfo{
		FinalScore:      b.FinalScore,
		BaselinePoints:  b.BaselinePoints,
		ModifyingPoints: b.ModifyingPoints,
		Components: ComponentPoints{
			Energy:       b.EnergyPoints,
			SaturatedFat: b.SaturatedFatPoints,
			Sugar:        b.SugarPoints,
			Sodium:       b.SodiumPoints,
			Protein:      b.ProteinPoints,
			Fibre:        b.FibrePoints,
			FVNL:         b.FVNLPoints,
		},
		Enhanced: EnhancedComponents{
			SugarNatural:      b.SugarNaturalPoints,
			SugarAdded:        b.SugarAddedPoints,
			SatietyAdjustment: b.SatietyAdjustment,
			ProcessingPenalty: b.ProcessingPenalty,
			NaturalnessBonus:  b.NaturalnessBonus,
		},
	}
}

func foodDetails(foods []hsr.Food) []FoodDetail {
	details := make([]FoodDetail, 0, len(foods))
	for _, f := range foods {
		details = append(details, FoodDetail{
			FoodID:      f.ID,
			FoodName:    f.Name,
			FoodGroup:   hsr.FoodGroupName(f.FoodGroupID),
			ServingSize: f.ServingSize,
			Category:    f.Category.DisplayName(),
			FVNLPercent: f.FVNLPercent,
		})
	}
	return details
}

func categorization(m *hsr.Meal, includeAlternatives bool) *MealCategorization {
	c := &MealCategorization{
		Category:     string(m.Category),
		CategoryName: m.Category.DisplayName(),
		Confidence:   m.Assignment.Confidence,
		Reasoning:    m.Assignment.Reasoning,
	}
	if includeAlternatives {
		c.Alternatives = m.Assignment.Alternatives
	}
	return c
}

// ---- compare ----

type CompareRequest struct {
	FoodIDs     []int   `json:"food_ids" binding:"required"`
	ServingSize float64 `json:"serving_size"`
	SortBy      string  `json:"sort_by"`
}

type CompareResponse struct {
	Comparison      []hsr.ComparisonEntry `json:"comparison"`
	Summary         hsr.ComparisonSummary `json:"summary"`
	Recommendations []string              `json:"recommendations"`
}

func (s *HSRService) Compare(req CompareRequest) (*CompareResponse, error) {
	if req.ServingSize == 0 {
		req.ServingSize = 100
	}
	servings := make([]float64, len(req.FoodIDs))
	for i := range servings {
		servings[i] = req.ServingSize
	}
	if err := validateFoodRequest(req.FoodIDs, servings); err != nil {
		return nil, err
	}
	if len(req.FoodIDs) < 2 {
		return nil, fmt.Errorf("%w: comparison needs at least two foods", ErrInvalidRequest)
	}

	foods, err := s.cnf.ResolveFoods(req.FoodIDs, servings)
	if err != nil {
		return nil, err
	}
	cmp, err := s.calc.Compare(foods)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	entries := cmp.Entries
	switch req.SortBy {
	case "", "rating":
		// Already ranked best first.
	case "name":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].FoodName < entries[j].FoodName
		})
	case "energy":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].EnergyKJ < entries[j].EnergyKJ
		})
	default:
		return nil, fmt.Errorf("%w: sort_by must be rating, name or energy", ErrInvalidRequest)
	}

	return &CompareResponse{
		Comparison:      entries,
		Summary:         cmp.Summary,
		Recommendations: cmp.Recommendations,
	}, nil
}

// ---- food profile ----

type FoodProfileResponse struct {
	BasicInfo struct {
		FoodID      int     `json:"food_id"`
		FoodName    string  `json:"food_name"`
		ServingSize float64 `json:"serving_size"`
		FoodGroup   string  `json:"food_group"`
		HSRCategory string  `json:"hsr_category"`
		FVNLPercent float64 `json:"fvnl_percent"`
	} `json:"basic_info"`
	Rating               RatingInfo                `json:"rating"`
	Highlights           hsr.Highlights            `json:"nutritional_highlights"`
	UsageRecommendations []string                  `json:"usage_recommendations"`
	Alternatives         *hsr.HealthierAlternative `json:"healthier_alternatives,omitempty"`
	Validation           ValidationInfo            `json:"validation"`
}

func (s *HSRService) FoodProfile(foodID int, servingSize float64, includeAlternatives bool) (*FoodProfileResponse, error) {
	if err := validateFoodRequest([]int{foodID}, []float64{servingSize}); err != nil {
		return nil, err
	}

	food, err := s.cnf.ResolveFood(foodID, servingSize)
	if err != nil {
		return nil, err
	}
	meal, err := hsr.NewMeal([]hsr.Food{food})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	result := s.calc.Rate(meal)

	resp := &FoodProfileResponse{
		Rating:               ratingInfo(result),
		Highlights:           hsr.FoodHighlights(food),
		UsageRecommendations: hsr.UsageRecommendations(food, result.Rating.Stars),
		Validation:           ValidationInfo{ConfidenceScore: result.Confidence, Warnings: warnings(result)},
	}
	resp.BasicInfo.FoodID = food.ID
	resp.BasicInfo.FoodName = food.Name
	resp.BasicInfo.ServingSize = food.ServingSize
	resp.BasicInfo.FoodGroup = hsr.FoodGroupName(food.FoodGroupID)
	resp.BasicInfo.HSRCategory = food.Category.DisplayName()
	resp.BasicInfo.FVNLPercent = food.FVNLPercent

	if includeAlternatives {
		alt := hsr.HealthierAlternatives(food)
		resp.Alternatives = &alt
	}
	return resp, nil
}

// ---- meal insights ----

type MealInsightsRequest struct {
	FoodIDs      []int     `json:"food_ids" binding:"required"`
	ServingSizes []float64 `json:"serving_sizes" binding:"required"`
	MealType     string    `json:"meal_type"`
	DietaryGoals []string  `json:"dietary_goals"`
}

type MealComposition struct {
	TotalFoods   int              `json:"total_foods"`
	TotalWeight  float64          `json:"total_weight"`
	Distribution []hsr.GroupShare `json:"food_group_distribution"`
	Dominant     []hsr.GroupShare `json:"dominant_groups"`
}

type NutrientDensity struct {
	ProteinPer100g float64 `json:"protein_per_100g"`
	FibrePer100g   float64 `json:"fibre_per_100g"`
	SodiumPer100g  float64 `json:"sodium_per_100g"`
	FVNLPercent    float64 `json:"fvnl_percent"`
}

type NutritionalBalance struct {
	Macronutrients  hsr.MacronutrientBalance `json:"macronutrient_distribution"`
	NutrientDensity NutrientDensity          `json:"nutrient_density"`
	Quality         hsr.QualityFlags         `json:"nutritional_quality"`
}

type MealInsightsResponse struct {
	Rating             *RatingInfo                  `json:"rating,omitempty"`
	Composition        MealComposition              `json:"meal_composition"`
	NutritionalBalance NutritionalBalance           `json:"nutritional_balance"`
	Improvements       []hsr.ImprovementOpportunity `json:"improvement_opportunities"`
	MealTiming         string                       `json:"meal_timing"`
	Suitability        *hsr.MealSuitability         `json:"meal_type_suitability,omitempty"`
	GoalAlignment      []hsr.GoalAlignment          `json:"dietary_goal_alignment,omitempty"`
}

func (s *HSRService) MealInsights(req MealInsightsRequest) (*MealInsightsResponse, error) {
	if err := validateFoodRequest(req.FoodIDs, req.ServingSizes); err != nil {
		return nil, err
	}

	foods, err := s.cnf.ResolveFoods(req.FoodIDs, req.ServingSizes)
	if err != nil {
		return nil, err
	}
	meal, err := hsr.NewMeal(foods)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	resp := mealInsights(meal, req.MealType, req.DietaryGoals)
	rating := ratingInfo(s.calc.Rate(meal))
	resp.Rating = &rating
	return resp, nil
}

func mealInsights(meal *hsr.Meal, mealType string, goals []string) *MealInsightsResponse {
	resp := &MealInsightsResponse{
		Composition: MealComposition{
			TotalFoods:   len(meal.Foods),
			TotalWeight:  meal.TotalWeight,
			Distribution: meal.GroupDistribution(),
			Dominant:     meal.DominantGroups(3),
		},
		NutritionalBalance: NutritionalBalance{
			Macronutrients: hsr.MealMacronutrientBalance(meal),
			NutrientDensity: NutrientDensity{
				ProteinPer100g: meal.Per100g.Protein,
				FibrePer100g:   meal.Per100g.Fibre,
				SodiumPer100g:  meal.Per100g.SodiumMg,
				FVNLPercent:    meal.FVNLPercent,
			},
			Quality: hsr.MealQualityFlags(meal),
		},
		Improvements: hsr.ImprovementOpportunities(meal),
		MealTiming:   hsr.SuggestMealTiming(meal),
	}
	if mealType != "" {
		if suitability := hsr.AssessMealSuitability(meal, mealType); suitability != nil {
			resp.Suitability = suitability
		}
	}
	if len(goals) > 0 {
		resp.GoalAlignment = hsr.AssessGoalAlignment(meal, goals)
	}
	return resp
}
