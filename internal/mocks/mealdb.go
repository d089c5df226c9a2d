package mocks

import (
	"context"
	"strconv"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealfinder/internal/mealdb"
)

// MockMealDB is a mock implementation of the recipe API client
type MockMealDB struct {
	mock.Mock
}

func (m *MockMealDB) summaries(args mock.Arguments) (*mealdb.MealsResponse[mealdb.MealSummary], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealdb.MealsResponse[mealdb.MealSummary]), args.Error(1)
}

func (m *MockMealDB) details(args mock.Arguments) (*mealdb.MealsResponse[mealdb.MealDetail], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealdb.MealsResponse[mealdb.MealDetail]), args.Error(1)
}

// SearchByName mocks the SearchByName method
func (m *MockMealDB) SearchByName(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error) {
	return m.summaries(m.Called(ctx, hw, term))
}

// FilterByIngredient mocks the FilterByIngredient method
func (m *MockMealDB) FilterByIngredient(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error) {
	return m.summaries(m.Called(ctx, hw, term))
}

// FilterByCategory mocks the FilterByCategory method
func (m *MockMealDB) FilterByCategory(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error) {
	return m.summaries(m.Called(ctx, hw, term))
}

// FilterByArea mocks the FilterByArea method
func (m *MockMealDB) FilterByArea(ctx context.Context, hw mealdb.HeadingWriter, term string) (*mealdb.MealsResponse[mealdb.MealSummary], error) {
	return m.summaries(m.Called(ctx, hw, term))
}

// Lookup mocks the Lookup method
func (m *MockMealDB) Lookup(ctx context.Context, hw mealdb.HeadingWriter, id string) (*mealdb.MealsResponse[mealdb.MealDetail], error) {
	return m.details(m.Called(ctx, hw, id))
}

// Random mocks the Random method
func (m *MockMealDB) Random(ctx context.Context, hw mealdb.HeadingWriter) (*mealdb.MealsResponse[mealdb.MealDetail], error) {
	return m.details(m.Called(ctx, hw))
}

// Summaries builds a response with n meals whose ids start at first
func Summaries(prefix string, first, n int) *mealdb.MealsResponse[mealdb.MealSummary] {
	meals := make([]mealdb.MealSummary, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		meals = append(meals, mealdb.MealSummary{
			ID:    strconv.Itoa(id),
			Name:  prefix + " " + strconv.Itoa(id),
			Thumb: "https://www.themealdb.com/images/media/meals/" + strconv.Itoa(id) + ".jpg",
		})
	}
	return &mealdb.MealsResponse[mealdb.MealSummary]{Meals: meals}
}

// NoMeals is the response for "meals": null
func NoMeals() *mealdb.MealsResponse[mealdb.MealSummary] {
	return &mealdb.MealsResponse[mealdb.MealSummary]{}
}

// Detail wraps one meal into a lookup response
func Detail(meal mealdb.MealDetail) *mealdb.MealsResponse[mealdb.MealDetail] {
	return &mealdb.MealsResponse[mealdb.MealDetail]{Meals: []mealdb.MealDetail{meal}}
}
