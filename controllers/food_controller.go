package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amankrah/ecodish365/services"
)

type FoodController struct {
	cnf *services.CNFService
}

func NewFoodController(cnf *services.CNFService) *FoodController {
	return &FoodController{cnf: cnf}
}

// GET /api/foods/search?q=apple&limit=25
func (ctl *FoodController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(400, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid limit"})
			return
		}
	}

	out, err := ctl.cnf.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}
