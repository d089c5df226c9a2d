package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/internal/mealdb"
)

const lookupJSON = `{"meals":[{
	"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strCategory":"Chicken","strArea":"Japanese",
	"strInstructions":"Preheat oven to 350;;Serve hot","strMealThumb":"https://example.com/t.jpg","strYoutube":"",
	"strIngredient1":"soy sauce","strIngredient2":"water","strIngredient3":"",
	"strMeasure1":"3/4 cup","strMeasure2":"1/2 cup","strMeasure3":""
}]}`

func fakeMealDB(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case strings.HasSuffix(r.URL.Path, "/search.php") && q.Get("s") == "chicken":
			w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Chicken Handi","strMealThumb":"https://example.com/1.jpg"}]}`))
		case strings.HasSuffix(r.URL.Path, "/filter.php") && q.Get("i") == "chicken":
			w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Chicken Handi","strMealThumb":"https://example.com/1.jpg"},{"idMeal":"2","strMeal":"Kung Pao Chicken","strMealThumb":"https://example.com/2.jpg"}]}`))
		case strings.HasSuffix(r.URL.Path, "/filter.php") && q.Get("a") == "Italian":
			w.Write([]byte(`{"meals":[{"idMeal":"3","strMeal":"Lasagne","strMealThumb":"https://example.com/3.jpg"}]}`))
		case strings.HasSuffix(r.URL.Path, "/lookup.php"), strings.HasSuffix(r.URL.Path, "/random.php"):
			w.Write([]byte(lookupJSON))
		case strings.HasSuffix(r.URL.Path, "/search.php") && q.Get("s") == "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`{"meals":null}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	srv := fakeMealDB(t)
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{name, "--base-url", srv.URL}, args...))
	return out.String(), err
}

func TestSearchText(t *testing.T) {
	out, err := run(t, "search", "chicken")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Chicken Handi")
	assert.True(t, strings.HasPrefix(lines[0], "name"))
	assert.True(t, strings.HasPrefix(lines[1], "ingredient"))
	assert.Contains(t, lines[2], "Kung Pao Chicken")
}

func TestSearchNoResults(t *testing.T) {
	out, err := run(t, "search", "desert")
	require.NoError(t, err)
	assert.Contains(t, out, `Try "dessert"!`)
}

func TestSearchEmptyTerm(t *testing.T) {
	_, err := run(t, "search")
	assert.EqualError(t, err, "Please enter a search term")
}

func TestSearchUpstreamError(t *testing.T) {
	_, err := run(t, "search", "broken")
	assert.EqualError(t, err, "Something went wrong (500)")
}

func TestSearchFormats(t *testing.T) {
	out, err := run(t, "search", "--format", "json", "chicken")
	require.NoError(t, err)
	var groups []mealdb.HitGroup
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	assert.Equal(t, 3, mealdb.CountMeals(groups))

	out, err = run(t, "search", "-f", "csv", "chicken")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = run(t, "search", "--format", "yaml", "chicken")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "52772")
	require.NoError(t, err)
	assert.Contains(t, out, "Teriyaki Chicken Casserole (52772)")
	assert.Contains(t, out, "Japanese")
	assert.Contains(t, out, "Preheat oven to 350.\nServe hot.\n")
	assert.Contains(t, out, "- soy sauce: 3/4 cup")
	assert.NotContains(t, out, "YouTube")

	_, err = run(t, "show")
	assert.Error(t, err)
}

func TestRandomJSON(t *testing.T) {
	out, err := run(t, "random", "--json")
	require.NoError(t, err)

	var resp struct {
		Meal        mealdb.MealDetail   `json:"meal"`
		Ingredients []mealdb.RecipeLine `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "52772", resp.Meal.ID)
	assert.Len(t, resp.Ingredients, 2)
}

func TestFlagsDoNotLeakBetweenCommands(t *testing.T) {
	out, err := run(t, "random", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)))

	out, err = run(t, "random")
	require.NoError(t, err)
	assert.False(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "Teriyaki Chicken Casserole (52772)")

	out, err = run(t, "show", "52772")
	require.NoError(t, err)
	assert.Contains(t, out, "Ingredients")
}

func TestArea(t *testing.T) {
	out, err := run(t, "area", "Italian")
	require.NoError(t, err)
	assert.Contains(t, out, "Search results for 'Italian'")
	assert.Contains(t, out, "Lasagne")
}
