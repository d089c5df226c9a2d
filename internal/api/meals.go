package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/service"
)

// MealsHandler exposes the finder as a JSON API
type MealsHandler struct {
	finder *service.FinderService
}

// NewMealsHandler creates a new MealsHandler
func NewMealsHandler(finder *service.FinderService) *MealsHandler {
	return &MealsHandler{finder: finder}
}

// SearchResponse is the body of a search
type SearchResponse struct {
	Term   string            `json:"term"`
	Count  int               `json:"count"`
	Groups []mealdb.HitGroup `json:"groups"`
}

// MealResponse is the body of a single meal
type MealResponse struct {
	Meal        *mealdb.MealDetail  `json:"meal"`
	Ingredients []mealdb.RecipeLine `json:"ingredients"`
}

// RegisterRoutes registers the meal routes on an API group
func (h *MealsHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/search", h.Search)
	router.GET("/random", h.Random)
	router.GET("/meals/:id", h.GetMeal)
	router.GET("/areas", h.ListAreas)
	router.GET("/areas/:area", h.GetArea)
}

// Search runs the four-way search for ?q=
func (h *MealsHandler) Search(c *gin.Context) {
	term := c.Query("q")
	groups, err := h.finder.SearchGroups(c.Request.Context(), nil, term)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if groups == nil {
		groups = []mealdb.HitGroup{}
	}

	c.JSON(http.StatusOK, SearchResponse{
		Term:   term,
		Count:  mealdb.CountMeals(groups),
		Groups: groups,
	})
}

// GetMeal returns one meal with its ingredient lines
func (h *MealsHandler) GetMeal(c *gin.Context) {
	meal, err := h.finder.Meal(c.Request.Context(), nil, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MealResponse{Meal: meal, Ingredients: meal.RecipeLines()})
}

// Random returns one random meal
func (h *MealsHandler) Random(c *gin.Context) {
	meal, err := h.finder.RandomMeal(c.Request.Context(), nil)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MealResponse{Meal: meal, Ingredients: meal.RecipeLines()})
}

// ListAreas returns the regions the start page picks from
func (h *MealsHandler) ListAreas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"areas": service.Areas})
}

// GetArea returns the meals of one region
func (h *MealsHandler) GetArea(c *gin.Context) {
	group, err := h.finder.AreaGroup(c.Request.Context(), nil, c.Param("area"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, group)
}
