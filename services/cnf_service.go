package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
	"gorm.io/gorm"

	"github.com/Amankrah/ecodish365/hsr"
	"github.com/Amankrah/ecodish365/models"
	"github.com/Amankrah/ecodish365/utils"
)

// FoodCache is the read-through cache policy for resolved foods. Cached
// entries hold the per-100g profile; serving size is applied per request.
type FoodCache interface {
	Get(foodID int) (hsr.Food, bool)
	Set(foodID int, f hsr.Food)
}

// MapCache is the default cache, safe for concurrent request handling.
type MapCache struct {
	m cmap.ConcurrentMap[string, hsr.Food]
}

func NewMapCache() *MapCache {
	return &MapCache{m: cmap.New[hsr.Food]()}
}

func (c *MapCache) Get(foodID int) (hsr.Food, bool) {
	return c.m.Get(strconv.Itoa(foodID))
}

func (c *MapCache) Set(foodID int, f hsr.Food) {
	c.m.Set(strconv.Itoa(foodID), f)
}

// NopCache disables caching. Used in tests.
type NopCache struct{}

func (NopCache) Get(int) (hsr.Food, bool) { return hsr.Food{}, false }
func (NopCache) Set(int, hsr.Food)        {}

// CNFService resolves Canadian Nutrient File records into scoreable foods.
type CNFService struct {
	db    *gorm.DB
	cache FoodCache
}

func NewCNFService(db *gorm.DB, cache FoodCache) *CNFService {
	if cache == nil {
		cache = NewMapCache()
	}
	return &CNFService{db: db, cache: cache}
}

// CNF nutrient names the scoring core consumes.
const (
	nutrientEnergyKcal   = "ENERGY (KILOCALORIES)"
	nutrientEnergyKJ     = "ENERGY (KILOJOULES)"
	nutrientProtein      = "PROTEIN"
	nutrientCarbohydrate = "CARBOHYDRATE, TOTAL"
	nutrientFibre        = "FIBRE, TOTAL DIETARY"
	nutrientSugars       = "SUGARS, TOTAL"
	nutrientFatTotal     = "FAT, TOTAL"
	nutrientSaturatedFat = "FATTY ACIDS, SATURATED, TOTAL"
	nutrientSodium       = "SODIUM"
)

// ResolveFood looks up a CNF food and returns it with the given serving
// size. Profiles are cached per food id; the serving is applied per call.
func (s *CNFService) ResolveFood(foodID int, servingSize float64) (hsr.Food, error) {
	if cached, ok := s.cache.Get(foodID); ok {
		cached.ServingSize = servingSize
		return cached, nil
	}

	var record models.CNFFood
	if err := s.db.First(&record, "food_id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hsr.Food{}, fmt.Errorf("food %d: %w", foodID, hsr.ErrFoodNotFound)
		}
		return hsr.Food{}, fmt.Errorf("food %d: %w", foodID, err)
	}

	profile, missing, err := s.loadProfile(foodID)
	if err != nil {
		return hsr.Food{}, fmt.Errorf("food %d nutrients: %w", foodID, err)
	}

	food := hsr.NewFood(foodID, record.FoodDescription, record.FoodGroupID, servingSize, profile)
	food.Missing = missing

	cached := food
	cached.ServingSize = 0
	s.cache.Set(foodID, cached)
	return food, nil
}

// ResolveFoods resolves each food id with its serving size, in order.
func (s *CNFService) ResolveFoods(foodIDs []int, servingSizes []float64) ([]hsr.Food, error) {
	foods := make([]hsr.Food, 0, len(foodIDs))
	for i, id := range foodIDs {
		f, err := s.ResolveFood(id, servingSizes[i])
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, nil
}

// loadProfile reads the per-100g nutrient amounts for one food and maps
// them onto the scoring profile, recording any defaulted nutrient.
func (s *CNFService) loadProfile(foodID int) (hsr.NutrientProfile, []string, error) {
	type row struct {
		NutrientName  string
		NutrientValue float64
	}
	var rows []row
	err := s.db.Model(&models.CNFNutrientAmount{}).
		Select("cnf_nutrient_name.nutrient_name, cnf_nutrient_amount.nutrient_value").
		Joins("JOIN cnf_nutrient_name ON cnf_nutrient_name.nutrient_id = cnf_nutrient_amount.nutrient_id").
		Where("cnf_nutrient_amount.food_id = ?", foodID).
		Scan(&rows).Error
	if err != nil {
		return hsr.NutrientProfile{}, nil, err
	}

	values := make(map[string]float64, len(rows))
	for _, r := range rows {
		values[r.NutrientName] = r.NutrientValue
	}

	var profile hsr.NutrientProfile
	var missing []string

	kcal, hasKcal := values[nutrientEnergyKcal]
	kj, hasKJ := values[nutrientEnergyKJ]
	if energy, err := utils.NormalizeEnergy(kcal, kj, hasKcal, hasKJ); err == nil {
		profile.EnergyKcal = energy
	} else {
		missing = append(missing, "energy")
	}

	for _, field := range []struct {
		cnfName string
		label   string
		dst     *float64
	}{
		{nutrientProtein, "protein", &profile.Protein},
		{nutrientCarbohydrate, "carbohydrate", &profile.Carbohydrate},
		{nutrientSugars, "sugars", &profile.SugarsTotal},
		{nutrientFibre, "fibre", &profile.Fibre},
		{nutrientFatTotal, "fat", &profile.FatTotal},
		{nutrientSaturatedFat, "saturated fat", &profile.SaturatedFat},
		{nutrientSodium, "sodium", &profile.SodiumMg},
	} {
		if v, ok := values[field.cnfName]; ok {
			*field.dst = v
		} else {
			missing = append(missing, field.label)
		}
	}
	return profile, missing, nil
}

// Search finds CNF foods by description substring, case-insensitive.
func (s *CNFService) Search(query string, limit int) ([]models.CNFFood, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	var foods []models.CNFFood
	err := s.db.
		Where("food_description ILIKE ?", "%"+query+"%").
		Order("food_description").
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// FoodGroup returns the CNF group row for display purposes.
func (s *CNFService) FoodGroup(groupID int) (models.CNFFoodGroup, error) {
	var group models.CNFFoodGroup
	if err := s.db.First(&group, "food_group_id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CNFFoodGroup{
				FoodGroupID:   groupID,
				FoodGroupName: hsr.FoodGroupName(groupID),
			}, nil
		}
		return models.CNFFoodGroup{}, err
	}
	return group, nil
}
