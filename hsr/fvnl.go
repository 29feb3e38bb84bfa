package hsr

import (
	"regexp"
	"strings"
)

// FVNL estimation follows Canadian Nutrient File naming conventions. Pure
// fruit/vegetable/nut/legume groups start from a base percentage and are
// discounted by processing terms in the description; mixed dishes are
// estimated from named ingredients.

var (
	highProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(battered|breaded|fried|deep.?fried)\b`),
		regexp.MustCompile(`\b(candied|sweetened.*syrup|extra heavy syrup)\b`),
		regexp.MustCompile(`\b(jam|jelly|preserve|marmalade)\b`),
	}
	mediumProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcanned.*(?:heavy syrup|light syrup|syrup pack)\b`),
		regexp.MustCompile(`\b(canned|preserved|pickled)\b`),
		regexp.MustCompile(`\b(dried|dehydrated|freeze.?dried)\b`),
		regexp.MustCompile(`\b(frozen.*sweetened|frozen.*heated)\b`),
	}
	lightProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcanned.*(?:water pack|juice pack|no.*sugar)\b`),
		regexp.MustCompile(`\b(frozen.*unsweetened|frozen.*unprepared)\b`),
		regexp.MustCompile(`\bunsweetened\b`),
		regexp.MustCompile(`\b(cooked|boiled|steamed|baked|roasted|grilled|drained)\b`),
	}
	minimalProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(raw|fresh)\b`),
		regexp.MustCompile(`\bwith skin\b`),
		regexp.MustCompile(`\bunprepared\b`),
	}
)

// Ingredient patterns for mixed foods, with the FVNL percentage each implies.
var mixedFVNLPatterns = []struct {
	re    *regexp.Regexp
	value float64
}{
	{regexp.MustCompile(`\b(apple|apricot|banana|berry|blueberry|blackberry|cherry|cranberry|grape|grapefruit|lemon|lime|orange|peach|pear|pineapple|plum|strawberry|watermelon|melon)\b`), 45},
	{regexp.MustCompile(`\bfruit\b`), 35},
	{regexp.MustCompile(`\b(tomato|carrot|broccoli|spinach|lettuce|onion|pepper|potato|sweet potato|corn|peas|beans|bean|celery|mushroom|cabbage|cucumber|asparagus)\b`), 40},
	{regexp.MustCompile(`\bvegetable\b`), 35},
	{regexp.MustCompile(`\b(almond|walnut|peanut|cashew|pecan|hazelnut|pine nut|coconut|sesame|sunflower)\b`), 25},
	{regexp.MustCompile(`\bnut\b`), 20},
	{regexp.MustCompile(`\b(lentil|chickpea|kidney bean|lima bean|navy bean|black bean|soy|tofu)\b`), 30},
	{regexp.MustCompile(`\bsalad\b`), 70},
	{regexp.MustCompile(`\bsoup.*(?:vegetable|tomato|pea|bean|lentil)\b`), 45},
	{regexp.MustCompile(`\bstir.?fry\b`), 35},
	{regexp.MustCompile(`\bchow mein\b`), 25},
	{regexp.MustCompile(`\bpot roast.*(?:potato|peas|corn)\b`), 30},
	{regexp.MustCompile(`\bsauce.*(?:tomato|onion|pepper|mushroom)\b`), 40},
}

var withVegetablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwith.*(?:potato|peas|corn|carrot|onion|pepper|tomato|mushroom|vegetable)\b`),
	regexp.MustCompile(`\band.*(?:potato|peas|corn|carrot|onion|pepper|tomato|mushroom|vegetable)\b`),
}

// EstimateFVNL returns the fruit/vegetable/nut/legume content percentage
// (0-100) for a CNF food.
func EstimateFVNL(foodGroupID int, foodName string) float64 {
	name := strings.ToLower(foodName)

	if IsFVNLGroup(foodGroupID) {
		return baseFVNL(foodGroupID, name) * processingFactor(name)
	}
	return mixedFoodFVNL(foodGroupID, name)
}

func baseFVNL(foodGroupID int, name string) float64 {
	switch foodGroupID {
	case 9:
		// "Apple juice, canned" vs "Apple, raw, with skin"
		if containsAny(name, []string{"juice", "nectar", "drink", "cocktail"}) {
			if strings.Contains(name, "concentrate") {
				return 50
			}
			return 67
		}
		if containsAny(name, []string{"dried", "dehydrated"}) {
			return 90
		}
		return 100
	case 11, 12, 16:
		return 100
	}
	return 0
}

func processingFactor(name string) float64 {
	for _, re := range highProcessingPatterns {
		if re.MatchString(name) {
			return 0.5
		}
	}
	for _, re := range mediumProcessingPatterns {
		if re.MatchString(name) {
			return 0.75
		}
	}
	for _, re := range lightProcessingPatterns {
		if re.MatchString(name) {
			return 0.95
		}
	}
	for _, re := range minimalProcessingPatterns {
		if re.MatchString(name) {
			return 1.0
		}
	}
	return 0.9
}

func mixedFoodFVNL(foodGroupID int, name string) float64 {
	maxFVNL := 0.0
	for _, p := range mixedFVNLPatterns {
		if p.value > maxFVNL && p.re.MatchString(name) {
			maxFVNL = p.value
		}
	}
	for _, re := range withVegetablePatterns {
		if re.MatchString(name) && maxFVNL < 25 {
			maxFVNL = 25
		}
	}

	switch foodGroupID {
	case 22: // Mixed Dishes
		if maxFVNL == 0 {
			return 5
		}
		return minF(maxFVNL*1.2, 80)
	case 6: // Soups, Sauces and Gravies
		if containsAny(name, []string{"vegetable", "tomato", "onion", "mushroom", "celery"}) {
			return maxF(maxFVNL, 35)
		}
		if strings.Contains(name, "soup") && maxFVNL == 0 {
			return 10
		}
	case 18: // Baked Products
		if maxFVNL > 0 {
			return minF(maxFVNL*0.7, 60)
		}
	case 21: // Fast Foods
		if maxFVNL > 0 {
			return minF(maxFVNL*0.8, 50)
		}
	}
	return maxFVNL
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
