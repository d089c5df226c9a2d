// Package render turns recipe API records into page markup.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/page"
)

//go:embed templates/*.html
var tmplFS embed.FS

var templates = template.Must(template.ParseFS(tmplFS, "templates/*.html"))

type detailView struct {
	*mealdb.MealDetail
	Instructions []string
	Lines        []mealdb.RecipeLine
}

// MealList renders one tile per meal across all groups, in group order and
// then in the API's item order. Duplicates across groups are kept.
func MealList(groups []mealdb.HitGroup) (template.HTML, error) {
	return execute("meal_list", groups)
}

// MealDetail renders the full recipe block for one meal
func MealDetail(meal *mealdb.MealDetail) (template.HTML, error) {
	if meal == nil {
		return "", fmt.Errorf("render meal detail: nil meal")
	}
	return execute("meal_detail", detailView{
		MealDetail:   meal,
		Instructions: InstructionSteps(meal.Instructions),
		Lines:        meal.RecipeLines(),
	})
}

// Page writes the whole document for p
func Page(w io.Writer, p *page.Page) error {
	return templates.ExecuteTemplate(w, "page", p)
}

// InstructionSteps splits instructions on ';' and drops empty segments.
// Whitespace-only segments are kept as steps.
func InstructionSteps(instructions string) []string {
	var steps []string
	for _, segment := range strings.Split(instructions, ";") {
		if segment == "" {
			continue
		}
		steps = append(steps, segment)
	}
	return steps
}

// SearchHeading is the heading shown above a result list
func SearchHeading(term string) template.HTML {
	return template.HTML(fmt.Sprintf("<h2> Search results for '%s'</h2>", template.HTMLEscapeString(term)))
}

// NoResultsText is the message shown when a search found nothing. The
// common misspelling "desert" gets a hint.
func NoResultsText(term string) string {
	if term == "desert" {
		return fmt.Sprintf(`No search results for '%s'. Try "dessert"!`, term)
	}
	return fmt.Sprintf("No search results for '%s'. Please try again!", term)
}

// NoResultsHeading wraps NoResultsText for the heading region
func NoResultsHeading(term string) template.HTML {
	return template.HTML("<p> " + template.HTMLEscapeString(NoResultsText(term)) + "</p>")
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
