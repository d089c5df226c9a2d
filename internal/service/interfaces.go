package service

import (
	"context"

	"github.com/pageza/mealfinder/internal/mealdb"
)

// MealDB defines the recipe API calls the finder relies on
type MealDB interface {
	SearchByName(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error)
	FilterByIngredient(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error)
	FilterByCategory(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error)
	FilterByArea(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error)
	Lookup(ctx context.Context, hw mealdb.HeadingWriter, id string) (*mealdb.MealsResponse[mealdb.MealDetail], error)
	Random(ctx context.Context, hw mealdb.HeadingWriter) (*mealdb.MealsResponse[mealdb.MealDetail], error)
}

var _ MealDB = (*mealdb.Client)(nil)
