package hsr

import "sort"

// Meal is one or more foods scored together as a single unit. Aggregation
// combines the foods into a per-100g equivalent profile weighted by serving
// size, so a meal scores exactly like a food with the combined composition.
type Meal struct {
	Foods       []Food
	Category    Category
	Assignment  CategoryAssignment
	TotalWeight float64
	Per100g     NutrientProfile
	FVNLPercent float64
}

// NewMeal aggregates foods and auto-classifies the meal category.
func NewMeal(foods []Food) (*Meal, error) {
	m, err := newMeal(foods)
	if err != nil {
		return nil, err
	}
	m.Assignment = Classify(m.Foods, m.Per100g, m.LiquidFraction())
	m.Category = m.Assignment.Category
	return m, nil
}

// NewMealWithCategory aggregates foods under a caller-chosen category. The
// classifier still runs so the assignment records whether the choice agrees
// with the nutritional profile.
func NewMealWithCategory(foods []Food, category Category) (*Meal, error) {
	m, err := newMeal(foods)
	if err != nil {
		return nil, err
	}
	m.Assignment = Classify(m.Foods, m.Per100g, m.LiquidFraction())
	if m.Assignment.Category != category {
		m.Assignment.Warnings = append(m.Assignment.Warnings,
			"assigned category "+string(category)+" differs from calculated "+string(m.Assignment.Category))
	}
	m.Category = category
	return m, nil
}

func newMeal(foods []Food) (*Meal, error) {
	if len(foods) == 0 {
		return nil, ErrEmptyMeal
	}
	total := 0.0
	for _, f := range foods {
		if f.ServingSize <= 0 {
			return nil, ErrInvalidServing
		}
		total += f.ServingSize
	}
	if total == 0 {
		return nil, ErrZeroWeight
	}

	m := &Meal{Foods: foods, TotalWeight: total}
	m.aggregate()
	return m, nil
}

// aggregate computes the serving-weighted per-100g equivalent profile.
// For a single food this is the identity.
func (m *Meal) aggregate() {
	var sum NutrientProfile
	fvnlWeight := 0.0
	for _, f := range m.Foods {
		w := f.ServingSize / 100
		sum.EnergyKcal += f.Per100g.EnergyKcal * w
		sum.Protein += f.Per100g.Protein * w
		sum.Carbohydrate += f.Per100g.Carbohydrate * w
		sum.SugarsTotal += f.Per100g.SugarsTotal * w
		sum.Fibre += f.Per100g.Fibre * w
		sum.FatTotal += f.Per100g.FatTotal * w
		sum.SaturatedFat += f.Per100g.SaturatedFat * w
		sum.SodiumMg += f.Per100g.SodiumMg * w
		fvnlWeight += f.ServingSize * f.FVNLPercent / 100
	}

	scale := 100 / m.TotalWeight
	m.Per100g = NutrientProfile{
		EnergyKcal:   sum.EnergyKcal * scale,
		Protein:      sum.Protein * scale,
		Carbohydrate: sum.Carbohydrate * scale,
		SugarsTotal:  sum.SugarsTotal * scale,
		Fibre:        sum.Fibre * scale,
		FatTotal:     sum.FatTotal * scale,
		SaturatedFat: sum.SaturatedFat * scale,
		SodiumMg:     sum.SodiumMg * scale,
	}
	m.FVNLPercent = fvnlWeight / m.TotalWeight * 100
}

// LiquidFraction is the share of meal weight in liquid form. Semi-liquid
// foods (soups, smoothies) count at 70%.
func (m *Meal) LiquidFraction() float64 {
	if m.TotalWeight == 0 {
		return 0
	}
	liquid := 0.0
	for _, f := range m.Foods {
		switch f.Form() {
		case FormLiquid:
			liquid += f.ServingSize
		case FormSemiLiquid:
			liquid += f.ServingSize * 0.7
		}
	}
	return liquid / m.TotalWeight
}

// GroupShare is one CNF food group's weight share of the meal.
type GroupShare struct {
	GroupID int     `json:"food_group_id"`
	Name    string  `json:"food_group"`
	Weight  float64 `json:"weight"`
	Percent float64 `json:"percent"`
}

// GroupDistribution returns the meal's food group weight shares, heaviest
// first.
func (m *Meal) GroupDistribution() []GroupShare {
	weights := map[int]float64{}
	for _, f := range m.Foods {
		weights[f.FoodGroupID] += f.ServingSize
	}

	shares := make([]GroupShare, 0, len(weights))
	for id, w := range weights {
		shares = append(shares, GroupShare{
			GroupID: id,
			Name:    FoodGroupName(id),
			Weight:  w,
			Percent: w / m.TotalWeight * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Weight != shares[j].Weight {
			return shares[i].Weight > shares[j].Weight
		}
		return shares[i].GroupID < shares[j].GroupID
	})
	return shares
}

// DominantGroups returns up to n of the heaviest food groups.
func (m *Meal) DominantGroups(n int) []GroupShare {
	shares := m.GroupDistribution()
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// MissingNutrients collects the distinct nutrient names defaulted to zero
// across the meal's foods.
func (m *Meal) MissingNutrients() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range m.Foods {
		for _, name := range f.Missing {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
