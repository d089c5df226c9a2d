package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/render"
)

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the meal as JSON",
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one meal by id",
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{jsonFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("meal id is required")
			}
			meal, err := newFinder(cmd).Meal(ctx, nil, id)
			if err != nil {
				return err
			}
			return printMeal(cmd, meal)
		},
	}
}

func randomCmd() *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Show a random meal",
		Flags: []cli.Flag{jsonFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			meal, err := newFinder(cmd).RandomMeal(ctx, nil)
			if err != nil {
				return err
			}
			return printMeal(cmd, meal)
		},
	}
}

func areaCmd() *cli.Command {
	return &cli.Command{
		Name:      "area",
		Usage:     "List the meals of a region, or of a random one when none is given",
		ArgsUsage: "[region]",
		Flags:     []cli.Flag{outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			finder := newFinder(cmd)
			area := cmd.Args().First()
			if area == "" {
				area = finder.RandomArea()
			}

			group, err := finder.AreaGroup(ctx, nil, area)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "Search results for '%s'\n", area)
			if err == nil {
				err = writeGroups(w, formatText, area, []mealdb.HitGroup{group})
			}
			return errors.Join(err, closeFn())
		},
	}
}

func printMeal(cmd *cli.Command, meal *mealdb.MealDetail) error {
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(struct {
			Meal        *mealdb.MealDetail  `json:"meal"`
			Ingredients []mealdb.RecipeLine `json:"ingredients"`
		}{meal, meal.RecipeLines()})
	} else {
		err = writeMealText(w, meal)
	}
	return errors.Join(err, closeFn())
}

// writeMealText prints the detail view with the same gating as the page:
// the region line only appears when a category is present.
func writeMealText(w io.Writer, meal *mealdb.MealDetail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", meal.Name, meal.ID)
	if meal.Category != "" {
		fmt.Fprintf(&b, "%s\n%s\n", meal.Category, meal.Area)
	}
	if meal.YouTube != "" {
		fmt.Fprintf(&b, "YouTube: %s\n", meal.YouTube)
	}
	b.WriteString("\n")
	for _, step := range render.InstructionSteps(meal.Instructions) {
		fmt.Fprintf(&b, "%s.\n", strings.TrimSpace(step))
	}
	b.WriteString("\nIngredients\n")
	for _, line := range meal.RecipeLines() {
		fmt.Fprintf(&b, "  - %s: %s\n", line.Ingredient, line.Quantity)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
