package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	"github.com/vsinha/takeoff/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		outputDir   = flag.String("output", "", "Output directory for results (optional)")
		format      = flag.String("format", "text", "Output format: text, json, csv, xlsx, svg")
		startDate   = flag.String("start", "", "Schedule start date (YYYY-MM-DD)")
		endDate     = flag.String("end", "", "Schedule end date (YYYY-MM-DD)")
		concurrency = flag.Int("concurrency", 4, "Number of proposals estimated in parallel")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New("dev", level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	config := commands.Config{
		ScenarioDir: *scenarioDir,
		OutputDir:   *outputDir,
		Format:      *format,
		StartDate:   *startDate,
		EndDate:     *endDate,
		Concurrency: *concurrency,
		Verbose:     *verbose,
		Help:        *help,
	}

	cmd := commands.NewEstimateCommand(config, log)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Sync()
		os.Exit(1)
	}
}
