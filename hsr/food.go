package hsr

import "strings"

// NutrientProfile holds the nutrients HSR scoring needs, normalized to
// per-100g of food (sodium in mg, everything else in g or kcal).
type NutrientProfile struct {
	EnergyKcal   float64 `json:"energy_kcal"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	SugarsTotal  float64 `json:"sugars_total"`
	Fibre        float64 `json:"fibre"`
	FatTotal     float64 `json:"fat_total"`
	SaturatedFat float64 `json:"saturated_fat"`
	SodiumMg     float64 `json:"sodium_mg"`
}

// EnergyKJ converts the energy density to kilojoules per 100g.
func (n NutrientProfile) EnergyKJ() float64 { return n.EnergyKcal * 4.184 }

// Food is a single scored item: a CNF food with its per-100g nutrient
// profile, its serving weight within the meal, and its HSR category.
type Food struct {
	ID          int
	Name        string
	FoodGroupID int
	ServingSize float64 // grams
	Per100g     NutrientProfile
	FVNLPercent float64
	Category    Category

	// Missing lists nutrients absent from the source data and defaulted
	// to zero. Scoring still runs but confidence is reduced.
	Missing []string
}

// NewFood builds a Food and auto-assigns its category from the CNF food
// group and description.
func NewFood(id int, name string, foodGroupID int, servingSize float64, per100g NutrientProfile) Food {
	return Food{
		ID:          id,
		Name:        name,
		FoodGroupID: foodGroupID,
		ServingSize: servingSize,
		Per100g:     per100g,
		FVNLPercent: EstimateFVNL(foodGroupID, name),
		Category:    CategoryForFood(foodGroupID, name),
	}
}

// FoodForm describes the physical form of a food, which drives satiety and
// liquid handling.
type FoodForm string

const (
	FormSolid      FoodForm = "solid"
	FormSemiLiquid FoodForm = "semi_liquid"
	FormLiquid     FoodForm = "liquid"
)

// Form classifies the food as liquid, semi-liquid or solid from its CNF
// group and description.
func (f *Food) Form() FoodForm {
	if f.FoodGroupID == 14 || f.FoodGroupID == 20 {
		return FormLiquid
	}
	name := strings.ToLower(f.Name)
	if strings.Contains(name, "juice") || strings.Contains(name, "drink") {
		return FormLiquid
	}
	if strings.Contains(name, "soup") || strings.Contains(name, "smoothie") {
		return FormSemiLiquid
	}
	return FormSolid
}

// ProcessingLevel follows the NOVA-style three-tier split.
type ProcessingLevel string

const (
	ProcessingMinimal ProcessingLevel = "minimally_processed"
	ProcessingModest  ProcessingLevel = "processed"
	ProcessingUltra   ProcessingLevel = "ultra_processed"
)

var ultraProcessedTerms = []string{
	"flavoured", "flavored", "artificial", "enriched", "fortified",
	"instant", "ready-to-eat", "frozen meal", "snack", "candy",
	"soft drink", "energy drink",
}

var processedTerms = []string{
	"canned", "packaged", "preserved", "smoked", "cured",
	"bread", "cheese", "yogurt",
}

// Processing estimates the processing level from CNF description terms.
func (f *Food) Processing() ProcessingLevel {
	name := strings.ToLower(f.Name)
	if containsAny(name, ultraProcessedTerms) {
		return ProcessingUltra
	}
	if containsAny(name, processedTerms) {
		return ProcessingModest
	}
	return ProcessingMinimal
}

var addedSugarTerms = []string{
	"sweetened", "sugar", "syrup", "honey", "flavoured",
	"dessert", "candy", "chocolate", "cake", "cookie",
}

// HasAddedSugars reports whether the description suggests added sugars.
func (f *Food) HasAddedSugars() bool {
	return containsAny(strings.ToLower(f.Name), addedSugarTerms)
}

var wholeFruitTerms = []string{"apple", "banana", "orange", "grape", "berry", "peach", "pear"}

// IsNaturalSugarSource reports whether the food's sugars come from intrinsic
// sources (whole fruit or vegetable) rather than added sweeteners.
func (f *Food) IsNaturalSugarSource() bool {
	if f.FoodGroupID == 9 || f.FoodGroupID == 11 {
		return true
	}
	name := strings.ToLower(f.Name)
	return containsAny(name, wholeFruitTerms) && !strings.Contains(name, "juice")
}

// NaturalSugarRatio estimates what fraction of the food's sugars is
// intrinsic rather than added, from its group and description.
func (f *Food) NaturalSugarRatio() float64 {
	name := strings.ToLower(f.Name)
	switch {
	case f.FoodGroupID == 9 || f.FoodGroupID == 11:
		return 0.9
	case strings.Contains(name, "fruit") && !strings.Contains(name, "juice"):
		return 0.8
	case f.FoodGroupID == 1:
		// Lactose is intrinsic.
		return 0.7
	case strings.Contains(name, "whole") || strings.Contains(name, "raw"):
		return 0.8
	case containsAny(name, []string{"candy", "dessert", "cake", "cookie"}):
		return 0.1
	case strings.Contains(name, "sweetened"):
		return 0.3
	}
	return 0.5
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
