package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/mocks"
	"github.com/pageza/mealfinder/internal/page"
)

var anything = mock.Anything

func tileIDs(t *testing.T, p *page.Page) []string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(p.Meals)))
	require.NoError(t, err)
	var ids []string
	doc.Find(".meal-info").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-mealid")
		ids = append(ids, id)
	})
	return ids
}

func TestSearchChickenScenario(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("SearchByName", anything, anything, "chicken").Return(mocks.Summaries("Name", 100, 3), nil).Once()
	db.On("FilterByIngredient", anything, anything, "chicken").Return(mocks.Summaries("Ingredient", 200, 2), nil).Once()
	db.On("FilterByCategory", anything, anything, "chicken").Return(mocks.NoMeals(), nil).Once()
	db.On("FilterByArea", anything, anything, "chicken").Return(mocks.NoMeals(), nil).Once()

	finder := NewFinderService(db)
	p := page.New()
	p.SearchBox = "chicken"

	require.NoError(t, finder.Search(context.Background(), p, "chicken"))

	assert.Equal(t, []string{"100", "101", "102", "200", "201"}, tileIDs(t, p))
	assert.Contains(t, string(p.Heading), "Search results for 'chicken'")
	assert.Empty(t, p.SearchBox)
	assert.Empty(t, p.Alert)
	db.AssertExpectations(t)
}

func TestSearchGroupsOrder(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("SearchByName", anything, anything, "Seafood").Return(mocks.NoMeals(), nil)
	db.On("FilterByIngredient", anything, anything, "Seafood").Return(mocks.Summaries("I", 1, 1), nil)
	db.On("FilterByCategory", anything, anything, "Seafood").Return(mocks.Summaries("C", 1, 2), nil)
	db.On("FilterByArea", anything, anything, "Seafood").Return(mocks.Summaries("A", 1, 1), nil)

	groups, err := NewFinderService(db).SearchGroups(context.Background(), nil, "Seafood")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, mealdb.SourceIngredient, groups[0].Source)
	assert.Equal(t, mealdb.SourceCategory, groups[1].Source)
	assert.Equal(t, mealdb.SourceRegion, groups[2].Source)
	// the same meal id in several groups is kept once per group
	assert.Equal(t, "1", groups[0].Meals[0].ID)
	assert.Equal(t, "1", groups[1].Meals[0].ID)
	assert.Equal(t, 4, mealdb.CountMeals(groups))
}

func TestSearchKeepsEmptyArrayGroups(t *testing.T) {
	db := new(mocks.MockMealDB)
	empty := &mealdb.MealsResponse[mealdb.MealSummary]{Meals: []mealdb.MealSummary{}}
	db.On("SearchByName", anything, anything, "x").Return(empty, nil)
	db.On("FilterByIngredient", anything, anything, "x").Return(mocks.NoMeals(), nil)
	db.On("FilterByCategory", anything, anything, "x").Return(mocks.NoMeals(), nil)
	db.On("FilterByArea", anything, anything, "x").Return(mocks.NoMeals(), nil)

	groups, err := NewFinderService(db).SearchGroups(context.Background(), nil, "x")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, mealdb.SourceName, groups[0].Source)
}

func TestSearchNoResults(t *testing.T) {
	for _, term := range []string{"zzz", "desert"} {
		t.Run(term, func(t *testing.T) {
			db := new(mocks.MockMealDB)
			db.On("SearchByName", anything, anything, term).Return(mocks.NoMeals(), nil)
			db.On("FilterByIngredient", anything, anything, term).Return(mocks.NoMeals(), nil)
			db.On("FilterByCategory", anything, anything, term).Return(mocks.NoMeals(), nil)
			db.On("FilterByArea", anything, anything, term).Return(mocks.NoMeals(), nil)

			p := page.New()
			p.SearchBox = term
			p.Meals = "<div class=\"meal\"></div>"

			require.NoError(t, NewFinderService(db).Search(context.Background(), p, term))

			assert.Empty(t, p.Meals)
			assert.Contains(t, string(p.Heading), "No search results for")
			assert.Equal(t, term, p.SearchBox)
			if term == "desert" {
				assert.Contains(t, string(p.Heading), "dessert")
			} else {
				assert.Contains(t, string(p.Heading), "Please try again!")
			}
		})
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	db := new(mocks.MockMealDB)
	p := page.New()

	err := NewFinderService(db).Search(context.Background(), p, "")

	assert.ErrorIs(t, err, ErrEmptyTerm)
	assert.Equal(t, EmptyTermMessage, p.Alert)
	db.AssertNotCalled(t, "SearchByName", anything, anything, anything)
	db.AssertNotCalled(t, "FilterByIngredient", anything, anything, anything)
	db.AssertNotCalled(t, "FilterByCategory", anything, anything, anything)
	db.AssertNotCalled(t, "FilterByArea", anything, anything, anything)
}

func TestSearchWhitespaceTermIsSent(t *testing.T) {
	db := new(mocks.MockMealDB)
	for _, method := range []string{"SearchByName", "FilterByIngredient", "FilterByCategory", "FilterByArea"} {
		db.On(method, anything, anything, " ").Return(mocks.NoMeals(), nil).Once()
	}

	require.NoError(t, NewFinderService(db).Search(context.Background(), page.New(), " "))
	db.AssertExpectations(t)
}

func TestSearchAbortsOnStatusError(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("SearchByName", anything, anything, "beef").Return(mocks.Summaries("Name", 1, 3), nil)
	db.On("FilterByIngredient", anything, anything, "beef").
		Run(func(args mock.Arguments) {
			args.Get(1).(mealdb.HeadingWriter).ShowError()
		}).
		Return(nil, &mealdb.StatusError{Label: mealdb.DefaultErrorLabel, StatusCode: 500})

	p := page.New()
	p.SearchBox = "beef"
	err := NewFinderService(db).Search(context.Background(), p, "beef")

	var statusErr *mealdb.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Something went wrong (500)", p.Alert)
	assert.Equal(t, page.ErrorHeading, p.Heading)
	assert.Empty(t, p.Meals)
	assert.Equal(t, "beef", p.SearchBox)
	db.AssertNotCalled(t, "FilterByCategory", anything, anything, anything)
	db.AssertNotCalled(t, "FilterByArea", anything, anything, anything)
}

func TestSearchGroupsDiscardsPartialResults(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("SearchByName", anything, anything, "pie").Return(mocks.Summaries("Name", 1, 2), nil)
	db.On("FilterByIngredient", anything, anything, "pie").Return(mocks.Summaries("Ing", 5, 2), nil)
	db.On("FilterByCategory", anything, anything, "pie").Return(nil, &mealdb.TransportError{Err: errors.New("connection reset")})

	groups, err := NewFinderService(db).SearchGroups(context.Background(), nil, "pie")
	assert.Nil(t, groups)
	assert.EqualError(t, err, "connection reset")
	db.AssertNotCalled(t, "FilterByArea", anything, anything, anything)
}

func TestInit(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("FilterByArea", anything, anything, "British").Return(mocks.Summaries("British", 10, 4), nil).Once()

	finder := NewFinderService(db)
	finder.intn = func(n int) int {
		assert.Equal(t, len(Areas), n)
		return 2
	}

	p := page.New()
	require.NoError(t, finder.Init(context.Background(), p))

	assert.Equal(t, "<h2> Search results for 'British'</h2>", string(p.Heading))
	assert.Equal(t, []string{"10", "11", "12", "13"}, tileIDs(t, p))
	db.AssertExpectations(t)
}

func TestInitNullResult(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("FilterByArea", anything, anything, "French").Return(mocks.NoMeals(), nil)

	finder := NewFinderService(db)
	finder.intn = func(int) int { return 0 }

	p := page.New()
	require.NoError(t, finder.Init(context.Background(), p))
	assert.Empty(t, tileIDs(t, p))
	assert.Contains(t, string(p.Heading), "French")
}

func TestInitError(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("FilterByArea", anything, anything, "Chinese").Return(nil, &mealdb.StatusError{Label: mealdb.DefaultErrorLabel, StatusCode: 502})

	finder := NewFinderService(db)
	finder.intn = func(int) int { return 4 }

	p := page.New()
	err := finder.Init(context.Background(), p)
	assert.Error(t, err)
	assert.Empty(t, p.Alert)
}

func TestRandomArea(t *testing.T) {
	finder := NewFinderService(new(mocks.MockMealDB))
	for i := 0; i < 50; i++ {
		assert.Contains(t, Areas, finder.RandomArea())
	}
}

func mealDetail() mealdb.MealDetail {
	meal := mealdb.MealDetail{
		ID:           "52874",
		Name:         "Beef and Mustard Pie",
		Category:     "Beef",
		Area:         "British",
		Instructions: "Preheat the oven;Make the filling",
	}
	meal.Ingredients[0] = "Beef"
	meal.Measures[0] = "1kg"
	return meal
}

func TestShowMeal(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("Lookup", anything, anything, "52874").Return(mocks.Detail(mealDetail()), nil)

	p := page.New()
	p.Meals = "<div class=\"meal\"></div>"
	require.NoError(t, NewFinderService(db).ShowMeal(context.Background(), p, "52874"))

	assert.Contains(t, string(p.SingleMeal), "Beef and Mustard Pie")
	assert.Contains(t, string(p.SingleMeal), "Beef: 1kg")
	assert.Equal(t, page.SingleMealID, p.ScrollTo)
	assert.NotEmpty(t, p.Meals)
}

func TestShowMealNotFound(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("Lookup", anything, anything, "0").Return(&mealdb.MealsResponse[mealdb.MealDetail]{}, nil)

	err := NewFinderService(db).ShowMeal(context.Background(), page.New(), "0")
	assert.ErrorIs(t, err, mealdb.ErrMealNotFound)
}

func TestShowRandomMealClearsResults(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("Random", anything, anything).Return(mocks.Detail(mealDetail()), nil)

	p := page.New()
	p.Heading = "<h2> Search results for 'beef'</h2>"
	p.Meals = "<div class=\"meal\"></div>"

	require.NoError(t, NewFinderService(db).ShowRandomMeal(context.Background(), p))
	assert.Empty(t, p.Heading)
	assert.Empty(t, p.Meals)
	assert.Contains(t, string(p.SingleMeal), "Beef and Mustard Pie")
}

func TestShowRandomMealError(t *testing.T) {
	db := new(mocks.MockMealDB)
	db.On("Random", anything, anything).Return(nil, &mealdb.TransportError{Err: errors.New("dial tcp: no route to host")})

	p := page.New()
	err := NewFinderService(db).ShowRandomMeal(context.Background(), p)
	assert.True(t, mealdb.IsUpstream(err))
	assert.Empty(t, p.SingleMeal)
}
