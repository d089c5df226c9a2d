package mealdb

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MaxIngredients is the number of ingredient/measure slots a meal record carries
const MaxIngredients = 20

// MealsResponse is the envelope every endpoint returns. Meals is nil when the
// API answers with "meals": null.
type MealsResponse[T any] struct {
	Meals []T `json:"meals"`
}

// Found reports whether the API returned a result list
func (r *MealsResponse[T]) Found() bool {
	return r != nil && r.Meals != nil
}

// MealSummary is the short record returned by search and filter calls
type MealSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// MealDetail is the full record returned by lookup and random calls
type MealDetail struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Thumb        string `json:"strMealThumb"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	YouTube      string `json:"strYoutube"`

	Ingredients [MaxIngredients]string `json:"-"`
	Measures    [MaxIngredients]string `json:"-"`
}

// UnmarshalJSON decodes the fixed fields and then reads the numbered
// strIngredientN / strMeasureN slots in positional order.
func (m *MealDetail) UnmarshalJSON(data []byte) error {
	type plain MealDetail
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for i := 0; i < MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		var err error
		if p.Ingredients[i], err = slot(raw, "strIngredient"+n); err != nil {
			return err
		}
		if p.Measures[i], err = slot(raw, "strMeasure"+n); err != nil {
			return err
		}
	}

	*m = MealDetail(p)
	return nil
}

// slot reads an optional string field; a missing key and null both decode as ""
func slot(raw map[string]json.RawMessage, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", nil
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("field %s: %w", key, err)
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}

// RecipeLine is one "ingredient: quantity" entry of a meal
type RecipeLine struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
}

// RecipeLines pairs the non-empty ingredients with the non-empty measures by
// position. When the two counts differ the result is cut to the shorter one.
func (m *MealDetail) RecipeLines() []RecipeLine {
	ingredients := nonEmpty(m.Ingredients[:])
	measures := nonEmpty(m.Measures[:])

	n := min(len(ingredients), len(measures))
	lines := make([]RecipeLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, RecipeLine{Ingredient: ingredients[i], Quantity: measures[i]})
	}
	return lines
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Source names the query that produced a hit group
type Source string

const (
	SourceName       Source = "name"
	SourceIngredient Source = "ingredient"
	SourceCategory   Source = "category"
	SourceRegion     Source = "region"
)

// HitGroup is one endpoint's result list for a search, kept as a unit
type HitGroup struct {
	Source Source        `json:"source"`
	Meals  []MealSummary `json:"meals"`
}

// CountMeals returns the number of tiles the groups render to
func CountMeals(groups []HitGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Meals)
	}
	return n
}
