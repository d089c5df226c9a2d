package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/pageza/mealfinder/internal/export"
	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/render"
)

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search meals by name, ingredient, category and region",
		ArgsUsage: "<term>",
		Description: `Runs the four lookups one after another with the same term and prints
every result list that was not empty, in the order name, ingredient,
category, region. Meals found by more than one lookup are listed once per
lookup.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   formatText,
				Usage:   "Output format (text, json, csv, xlsx)",
			},
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			switch format {
			case formatText, formatJSON, formatCSV, formatXLSX:
			default:
				return fmt.Errorf("unknown output format: %q", format)
			}

			term := cmd.Args().First()
			groups, err := newFinder(cmd).SearchGroups(ctx, nil, term)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(cmd)
			if err != nil {
				return err
			}

			err = writeGroups(w, format, term, groups)
			return errors.Join(err, closeFn())
		},
	}
}

func writeGroups(w io.Writer, format, term string, groups []mealdb.HitGroup) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case formatCSV:
		return export.WriteCSV(w, groups)
	case formatXLSX:
		return export.WriteXLSX(w, groups)
	}

	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, render.NoResultsText(term))
		return err
	}
	for _, g := range groups {
		for _, m := range g.Meals {
			if _, err := fmt.Fprintf(w, "%-10s %-6s %s\n", g.Source, m.ID, m.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
