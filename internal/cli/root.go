// Package cli implements the mealfinder command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/service"
)

const name = "mealfinder"

var (
	// overridden during build with ldflags
	version = "dev"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// Flags keep their parsed value, so every command gets its own instance.
func baseURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "base-url",
		Value:   mealdb.DefaultBaseURL,
		Usage:   "Recipe API base URL",
		Sources: cli.EnvVars("MEALDB_BASE_URL"),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write to this file instead of stdout",
	}
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand builds the root command
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Find recipes on TheMealDB",
		Version: version,
		Flags:   []cli.Flag{baseURLFlag()},
		Commands: []*cli.Command{
			searchCmd(),
			showCmd(),
			randomCmd(),
			areaCmd(),
			serveCmd(),
		},
	}
}

func newFinder(cmd *cli.Command) *service.FinderService {
	return service.NewFinderService(mealdb.NewClient(cmd.String("base-url"), nil))
}

// openOutput returns the --output file or the command's writer
func openOutput(cmd *cli.Command) (io.Writer, func() error, error) {
	path := cmd.String("output")
	if path == "" {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %q: %w", path, err)
	}
	return f, f.Close, nil
}
