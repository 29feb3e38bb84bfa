package hsr

import "errors"

var (
	ErrFoodNotFound   = errors.New("food not found")
	ErrEmptyMeal      = errors.New("meal must contain at least one food")
	ErrInvalidServing = errors.New("serving size must be a positive number of grams")
	ErrZeroWeight     = errors.New("meal has zero total weight")
)
