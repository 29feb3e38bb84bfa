package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amankrah/ecodish365/hsr"
	"github.com/Amankrah/ecodish365/services"
)

type HSRController struct {
	svc *services.HSRService
}

func NewHSRController(svc *services.HSRService) *HSRController {
	return &HSRController{svc: svc}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hsr.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /api/hsr/calculate
func (ctl *HSRController) Calculate(c *gin.Context) {
	var req services.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid body"})
		return
	}
	out, err := ctl.svc.Calculate(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/hsr/compare
func (ctl *HSRController) Compare(c *gin.Context) {
	var req services.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid body"})
		return
	}
	out, err := ctl.svc.Compare(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/hsr/foods/:id/profile?serving_size=100&include_alternatives=true
func (ctl *HSRController) FoodProfile(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid food id"})
		return
	}

	servingSize := 100.0
	if raw := c.Query("serving_size"); raw != "" {
		servingSize, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid serving_size"})
			return
		}
	}
	includeAlternatives := c.Query("include_alternatives") == "true"

	out, err := ctl.svc.FoodProfile(foodID, servingSize, includeAlternatives)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/hsr/meal-insights
func (ctl *HSRController) MealInsights(c *gin.Context) {
	var req services.MealInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid body"})
		return
	}
	out, err := ctl.svc.MealInsights(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
