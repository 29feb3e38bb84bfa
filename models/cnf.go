package models

// Canadian Nutrient File reference tables. Loaded from the official CNF
// distribution into Postgres; the application never writes to them, so
// there is no AutoMigrate for these.

type CNFFood struct {
	FoodID          int    `gorm:"column:food_id;primaryKey" json:"food_id"`
	FoodCode        int    `gorm:"column:food_code" json:"food_code"`
	FoodGroupID     int    `gorm:"column:food_group_id" json:"food_group_id"`
	FoodDescription string `gorm:"column:food_description" json:"food_description"`
	ScientificName  string `gorm:"column:scientific_name" json:"scientific_name,omitempty"`
}

func (CNFFood) TableName() string { return "cnf_food_name" }

type CNFFoodGroup struct {
	FoodGroupID   int    `gorm:"column:food_group_id;primaryKey" json:"food_group_id"`
	FoodGroupCode int    `gorm:"column:food_group_code" json:"food_group_code"`
	FoodGroupName string `gorm:"column:food_group_name" json:"food_group_name"`
}

func (CNFFoodGroup) TableName() string { return "cnf_food_group" }

type CNFNutrientName struct {
	NutrientID     int    `gorm:"column:nutrient_id;primaryKey" json:"nutrient_id"`
	NutrientCode   int    `gorm:"column:nutrient_code" json:"nutrient_code"`
	NutrientSymbol string `gorm:"column:nutrient_symbol" json:"nutrient_symbol"`
	NutrientUnit   string `gorm:"column:nutrient_unit" json:"nutrient_unit"`
	NutrientName   string `gorm:"column:nutrient_name" json:"nutrient_name"`
}

func (CNFNutrientName) TableName() string { return "cnf_nutrient_name" }

type CNFNutrientAmount struct {
	FoodID        int     `gorm:"column:food_id;primaryKey" json:"food_id"`
	NutrientID    int     `gorm:"column:nutrient_id;primaryKey" json:"nutrient_id"`
	NutrientValue float64 `gorm:"column:nutrient_value" json:"nutrient_value"`
}

func (CNFNutrientAmount) TableName() string { return "cnf_nutrient_amount" }
