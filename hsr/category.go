package hsr

import (
	"regexp"
	"strings"
)

// Category is the regulatory Health Star Rating category a food or meal is
// scored under. Dairy variants carry a "D" suffix.
type Category string

const (
	CategoryBeverage      Category = "1"
	CategoryDairyBeverage Category = "1D"
	CategoryFood          Category = "2"
	CategoryDairyFood     Category = "2D"
	CategoryOilsSpreads   Category = "3"
	CategoryCheese        Category = "3D"
)

// Categories lists all HSR categories in the fixed evaluation order used by
// the classifier.
var Categories = []Category{
	CategoryBeverage,
	CategoryDairyBeverage,
	CategoryFood,
	CategoryDairyFood,
	CategoryCheese,
	CategoryOilsSpreads,
}

func (c Category) DisplayName() string {
	switch c {
	case CategoryBeverage:
		return "Beverage"
	case CategoryDairyBeverage:
		return "Dairy Beverage"
	case CategoryFood:
		return "Food"
	case CategoryDairyFood:
		return "Dairy Food"
	case CategoryOilsSpreads:
		return "Oils and Spreads"
	case CategoryCheese:
		return "Cheese"
	}
	return string(c)
}

// IsBeverage reports whether the category is scored under beverage rules
// (no fiber credit, stricter liquid handling).
func (c Category) IsBeverage() bool {
	return c == CategoryBeverage || c == CategoryDairyBeverage
}

func (c Category) Valid() bool {
	switch c {
	case CategoryBeverage, CategoryDairyBeverage, CategoryFood,
		CategoryDairyFood, CategoryOilsSpreads, CategoryCheese:
		return true
	}
	return false
}

// FoodGroups maps Canadian Nutrient File food group IDs to their names.
var FoodGroups = map[int]string{
	1:  "Dairy and Egg Products",
	2:  "Spices and Herbs",
	3:  "Baby Foods",
	4:  "Fats and Oils",
	5:  "Poultry Products",
	6:  "Soups, Sauces and Gravies",
	7:  "Sausages and Luncheon Meats",
	8:  "Breakfast Cereals",
	9:  "Fruits and Fruit Juices",
	10: "Pork Products",
	11: "Vegetables and Vegetable Products",
	12: "Nuts and Seeds",
	13: "Beef Products",
	14: "Beverages",
	15: "Finfish and Shellfish Products",
	16: "Legumes and Legume Products",
	17: "Lamb, Veal and Game",
	18: "Baked Products",
	19: "Sweets",
	20: "Cereals, Grains and Pasta",
	21: "Fast Foods",
	22: "Mixed Dishes",
	25: "Snacks",
}

func FoodGroupName(id int) string {
	if name, ok := FoodGroups[id]; ok {
		return name
	}
	return "Unknown"
}

// fvnlGroups are the CNF groups counted as fruit, vegetable, nut or legume.
var fvnlGroups = map[int]bool{9: true, 11: true, 12: true, 16: true}

func IsFVNLGroup(id int) bool { return fvnlGroups[id] }

// Base category per CNF food group. Groups not listed default to FOOD.
var foodGroupCategories = map[int]Category{
	1:  CategoryDairyFood,
	4:  CategoryOilsSpreads,
	14: CategoryBeverage,
}

var (
	cheesePattern = keywordPattern(
		"cheese", "cheddar", "mozzarella", "parmesan", "brie", "camembert",
		"gouda", "swiss", "blue", "feta", "cottage cheese", "cream cheese",
		"ricotta", "provolone", "gruyere",
	)
	beveragePattern = keywordPattern(
		"juice", "drink", "beverage", "soda", "cola", "water", "tea", "coffee",
		"smoothie", "shake", "lemonade", "cocktail", "beer", "wine", "alcohol",
	)
	dairyBeveragePattern = keywordPattern(
		"milk", "yogurt drink", "kefir", "buttermilk", "chocolate milk",
		"flavoured milk", "milk shake", "dairy drink",
	)
	oilSpreadPattern = keywordPattern(
		"oil", "butter", "margarine", "spread", "shortening", "lard",
		"ghee", "cooking fat", "vegetable oil", "olive oil",
	)
)

// keywordPattern builds a word-boundary alternation so "boiled" never
// matches "oil".
func keywordPattern(words ...string) *regexp.Regexp {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(escaped, "|") + `)\b`)
}

// CategoryForFood maps a CNF food group plus the food description to an HSR
// category. Name detection refines the group default: cheeses and dairy
// beverages inside the dairy group, juices inside the fruit group, and
// oil/spread products anywhere.
func CategoryForFood(foodGroupID int, foodName string) Category {
	name := strings.ToLower(foodName)

	if foodGroupID == 1 && cheesePattern.MatchString(name) {
		return CategoryCheese
	}
	if foodGroupID == 1 && dairyBeveragePattern.MatchString(name) {
		return CategoryDairyBeverage
	}
	if foodGroupID == 9 && beveragePattern.MatchString(name) {
		return CategoryBeverage
	}
	if foodGroupID == 14 && dairyBeveragePattern.MatchString(name) {
		return CategoryDairyBeverage
	}
	if oilSpreadPattern.MatchString(name) {
		return CategoryOilsSpreads
	}

	if cat, ok := foodGroupCategories[foodGroupID]; ok {
		return cat
	}
	return CategoryFood
}
