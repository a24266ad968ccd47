package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vsinha/qualitysim/pkg/application/services/simulation"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
	"github.com/vsinha/qualitysim/pkg/infrastructure/events"
	"github.com/vsinha/qualitysim/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/qualitysim/pkg/interfaces/cli/output"
)

// Config holds configuration for the simulate command
type Config struct {
	Days      string
	Products  string
	Price     string
	Seed      uint32
	Interval  time.Duration
	Currency  string
	OutputDir string
	Format    string
	Verbose   bool
	Help      bool
	// Out receives user-facing output; defaults to os.Stdout
	Out io.Writer
}

// UsageError is an input problem reported to the user with a fixed message
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// usageMessage keeps the single user-facing message except for grids that are too large
func usageMessage(err error) string {
	var paramErr *entities.ParameterError
	if errors.As(err, &paramErr) && paramErr.Field == "size" {
		return fmt.Sprintf("Simulation too large: %s", paramErr.Reason)
	}
	return entities.InvalidParameterMessage
}

// SimulateCommand runs one simulation from the command line
type SimulateCommand struct {
	config Config
	logger zerolog.Logger
}

// NewSimulateCommand creates a new simulate command with the given configuration
func NewSimulateCommand(config Config, logger zerolog.Logger) *SimulateCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &SimulateCommand{
		config: config,
		logger: logger,
	}
}

// Execute runs the simulation to completion and renders the report
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	params, err := entities.ParseSimulationParameters(c.config.Days, c.config.Products, c.config.Price)
	if err != nil {
		c.logger.Debug().Err(err).Msg("rejected simulation parameters")
		return &UsageError{Message: usageMessage(err), Err: err}
	}

	if c.config.Verbose {
		c.printHeader(params)
	}

	eventStore := events.NewInMemoryEventStore(c.logger)
	logHandler := events.NewLogHandler(c.logger)
	if err := eventStore.Subscribe(events.AllSimulationEventTypes(), logHandler); err != nil {
		return fmt.Errorf("failed to subscribe event logger: %w", err)
	}
	defer func() {
		eventStore.Wait()
		if err := eventStore.Unsubscribe(logHandler); err != nil {
			c.logger.Warn().Err(err).Msg("failed to unsubscribe event logger")
		}
	}()

	service := simulation.NewService(memory.NewRunRepository(), eventStore, c.logger, c.config.Currency)

	run, err := service.Start(params, c.config.Seed)
	if err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}

	startTime := time.Now()
	runErr := service.Run(ctx, run.ID, c.config.Interval, func(result entities.DayResult) {
		if c.config.Verbose {
			c.printDay(result)
		}
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return fmt.Errorf("simulation failed: %w", runErr)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "⏱️  Simulated %d days in %v\n\n", run.Snapshot(false).CurrentDay, time.Since(startTime))
	}

	report, err := service.Report(run.ID, true)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	// An interrupted run still shows what was simulated so far
	if err := output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Out:       c.config.Out,
	}); err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	return runErr
}

// printHeader prints the command header information
func (c *SimulateCommand) printHeader(params entities.SimulationParameters) {
	w := c.config.Out
	fmt.Fprintf(w, "🏭 Product Quality Simulation\n")
	fmt.Fprintf(w, "=============================\n")
	fmt.Fprintf(w, "Days: %d\n", params.Days)
	fmt.Fprintf(w, "Products: %d\n", params.NumProducts)
	fmt.Fprintf(w, "Total price: $%.2f %s\n", params.TotalPrice, c.config.Currency)
	fmt.Fprintf(w, "Cost per day per unit: $%.2f\n", params.CostPerDayPerUnit())
	fmt.Fprintf(w, "Seed: %d\n", c.config.Seed)
	if c.config.Interval > 0 {
		fmt.Fprintf(w, "Interval: %v per day\n", c.config.Interval)
	}
	fmt.Fprintln(w)
}

// printDay prints one line of the live view
func (c *SimulateCommand) printDay(result entities.DayResult) {
	parts := make([]string, 0, entities.NumQualityStates)
	for _, state := range entities.AllQualityStates() {
		parts = append(parts, fmt.Sprintf("%s=%d", state, result.Counts[state]))
	}
	fmt.Fprintf(c.config.Out, "📅 Day %d: %s | accumulated cost $%.2f %s\n",
		result.Day, strings.Join(parts, " "), result.TotalCost, c.config.Currency)
}

// showHelp displays the help message
func (c *SimulateCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `Quality Simulator CLI - Markov simulation of product quality degradation

USAGE:
    qualitysim -days <n> -products <n> -price <amount> [options]

OPTIONS:
    -days <n>           Number of days to simulate (integer > 0)
    -products <n>       Number of products in the batch (integer > 0)
    -price <amount>     Total price of the batch (> 0)
    -seed <n>           Random seed (default: 42, or QUALITYSIM_SEED)
    -interval <dur>     Wait between days, e.g. 1s (default: 0s, or QUALITYSIM_STEP_INTERVAL)
    -currency <code>    Currency label for amounts (default: COP, or QUALITYSIM_CURRENCY)
    -output <dir>       Output directory for results (required for csv, html, svg)
    -format <fmt>       Output format: text, json, csv, html, svg (default: text)
    -verbose            Print every simulated day as it is produced
    -help               Show this help message

QUALITY STATES:
    Excellent, Good, Fair, Defective, Poor
    Every product starts Excellent and moves between states once per day.

COST MODEL:
    cost per day per unit = price / (days * products)
    each day a product pays that amount scaled by its state's multiplier:
    Excellent 1.00, Good 0.95, Fair 0.85, Defective 0.50, Poor 0.30
    the remainder accumulates as that state's discount

EXAMPLES:
    qualitysim -days 30 -products 100 -price 2500000
    qualitysim -days 3 -products 10 -price 1000 -verbose
    qualitysim -days 60 -products 500 -price 1e6 -format html -output ./report
    qualitysim -days 10 -products 20 -price 5000 -interval 1s -verbose
`)
}
