package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/qualitysim/pkg/infrastructure/config"
	"github.com/vsinha/qualitysim/pkg/infrastructure/logging"
	"github.com/vsinha/qualitysim/pkg/interfaces/cli/commands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Command line flags
	var (
		days      = flag.String("days", "", "Number of days to simulate")
		products  = flag.String("products", "", "Number of products in the batch")
		price     = flag.String("price", "", "Total price of the batch")
		seed      = flag.Uint64("seed", uint64(cfg.Seed), "Random seed")
		interval  = flag.Duration("interval", cfg.StepInterval, "Wait between simulated days, e.g. 1s")
		currency  = flag.String("currency", cfg.Currency, "Currency label for amounts")
		outputDir = flag.String("output", "", "Output directory for results (optional)")
		format    = flag.String("format", "text", "Output format: text, json, csv, html, svg")
		verbose   = flag.Bool("verbose", false, "Print every simulated day")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *seed > math.MaxUint32 {
		fmt.Fprintf(os.Stderr, "Error: seed must fit in 32 bits\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	config := commands.Config{
		Days:      *days,
		Products:  *products,
		Price:     *price,
		Seed:      uint32(*seed),
		Interval:  *interval,
		Currency:  *currency,
		OutputDir: *outputDir,
		Format:    *format,
		Verbose:   *verbose,
		Help:      *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewSimulateCommand(config, logger)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
