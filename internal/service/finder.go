package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/metrics"
	"github.com/pageza/mealfinder/internal/page"
	"github.com/pageza/mealfinder/internal/render"
)

// EmptyTermMessage is the alert shown when a search is submitted without a term
const EmptyTermMessage = "Please enter a search term"

// ErrEmptyTerm is returned when a search is requested with an empty term
var ErrEmptyTerm = errors.New(EmptyTermMessage)

// Areas are the regions the start page picks from
var Areas = []string{"French", "American", "British", "Italian", "Chinese"}

// FinderService searches the recipe API and writes the results into a page
type FinderService struct {
	mealDB MealDB
	intn   func(n int) int
}

// NewFinderService creates a new FinderService instance
func NewFinderService(mealDB MealDB) *FinderService {
	return &FinderService{
		mealDB: mealDB,
		intn:   rand.IntN,
	}
}

// SearchGroups runs the name, ingredient, category and region queries one
// after another with the same term and keeps every response that carried a
// result list. The first failure aborts the remaining queries and nothing
// collected so far is returned.
func (s *FinderService) SearchGroups(ctx context.Context, hw mealdb.HeadingWriter, term string) ([]mealdb.HitGroup, error) {
	if term == "" {
		return nil, ErrEmptyTerm
	}

	queries := []struct {
		source mealdb.Source
		fetch  func(context.Context, mealdb.HeadingWriter, string) (*mealdb.MealsResponse[mealdb.MealSummary], error)
	}{
		{mealdb.SourceName, s.mealDB.SearchByName},
		{mealdb.SourceIngredient, s.mealDB.FilterByIngredient},
		{mealdb.SourceCategory, s.mealDB.FilterByCategory},
		{mealdb.SourceRegion, s.mealDB.FilterByArea},
	}

	var groups []mealdb.HitGroup
	for _, q := range queries {
		resp, err := q.fetch(ctx, hw, term)
		if err != nil {
			return nil, err
		}
		if resp.Found() {
			groups = append(groups, mealdb.HitGroup{Source: q.source, Meals: resp.Meals})
		}
	}
	return groups, nil
}

// Search handles a submitted search on p. Failures are reported on the page
// as an alert; the error is also returned so the caller can log it.
func (s *FinderService) Search(ctx context.Context, p *page.Page, term string) error {
	if term == "" {
		p.SetAlert(EmptyTermMessage)
		metrics.Searches.WithLabelValues(metrics.SearchInvalid).Inc()
		return ErrEmptyTerm
	}

	groups, err := s.SearchGroups(ctx, p, term)
	if err != nil {
		p.SetAlert(err.Error())
		metrics.Searches.WithLabelValues(metrics.SearchError).Inc()
		return err
	}

	p.Heading = render.SearchHeading(term)
	if len(groups) == 0 {
		p.Heading = render.NoResultsHeading(term)
		p.Meals = ""
		metrics.Searches.WithLabelValues(metrics.SearchEmpty).Inc()
		return nil
	}

	list, err := render.MealList(groups)
	if err != nil {
		p.SetAlert(err.Error())
		return err
	}
	p.Meals = list
	p.SearchBox = ""
	metrics.Searches.WithLabelValues(metrics.SearchHits).Inc()
	return nil
}

// RandomArea picks one of Areas uniformly
func (s *FinderService) RandomArea() string {
	return Areas[s.intn(len(Areas))]
}

// AreaGroup fetches the meals of one region as a single hit group. A null
// result yields a group without meals.
func (s *FinderService) AreaGroup(ctx context.Context, hw mealdb.HeadingWriter, area string) (mealdb.HitGroup, error) {
	resp, err := s.mealDB.FilterByArea(ctx, hw, area)
	if err != nil {
		return mealdb.HitGroup{}, err
	}
	return mealdb.HitGroup{Source: mealdb.SourceRegion, Meals: resp.Meals}, nil
}

// Init fills a fresh page with the meals of a random region. A null result
// for the region leaves an empty list under its heading instead of failing.
// Errors are returned to the caller untouched.
func (s *FinderService) Init(ctx context.Context, p *page.Page) error {
	area := s.RandomArea()
	group, err := s.AreaGroup(ctx, p, area)
	if err != nil {
		return err
	}
	p.Heading = render.SearchHeading(area)

	list, err := render.MealList([]mealdb.HitGroup{group})
	if err != nil {
		return err
	}
	p.Meals = list
	return nil
}

// Meal looks up a single meal by id
func (s *FinderService) Meal(ctx context.Context, hw mealdb.HeadingWriter, id string) (*mealdb.MealDetail, error) {
	resp, err := s.mealDB.Lookup(ctx, hw, id)
	if err != nil {
		return nil, err
	}
	return firstMeal(resp, id)
}

// RandomMeal fetches one random meal
func (s *FinderService) RandomMeal(ctx context.Context, hw mealdb.HeadingWriter) (*mealdb.MealDetail, error) {
	resp, err := s.mealDB.Random(ctx, hw)
	if err != nil {
		return nil, err
	}
	return firstMeal(resp, "random")
}

// ShowMeal renders the meal with the given id into the detail region
func (s *FinderService) ShowMeal(ctx context.Context, p *page.Page, id string) error {
	meal, err := s.Meal(ctx, p, id)
	if err != nil {
		return err
	}
	return showDetail(p, meal)
}

// ShowRandomMeal clears the result list and renders a random meal
func (s *FinderService) ShowRandomMeal(ctx context.Context, p *page.Page) error {
	p.ClearResults()
	meal, err := s.RandomMeal(ctx, p)
	if err != nil {
		return err
	}
	return showDetail(p, meal)
}

func showDetail(p *page.Page, meal *mealdb.MealDetail) error {
	detail, err := render.MealDetail(meal)
	if err != nil {
		return err
	}
	p.SingleMeal = detail
	p.ScrollToMeal()
	return nil
}

func firstMeal(resp *mealdb.MealsResponse[mealdb.MealDetail], id string) (*mealdb.MealDetail, error) {
	if len(resp.Meals) == 0 {
		return nil, fmt.Errorf("%w: %s", mealdb.ErrMealNotFound, id)
	}
	return &resp.Meals[0], nil
}
