package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

// Output file names written under Config.OutputDir
const (
	ReportJSONFile    = "simulation_report.json"
	SummaryTextFile   = "simulation_summary.txt"
	DailyCountsFile   = "daily_counts.csv"
	FinalSummaryFile  = "final_summary.csv"
	StateGridFile     = "state_grid.csv"
	HTMLReportFile    = "simulation_report.html"
	LineChartFile     = "state_distribution.svg"
	FinalChartFile    = "final_distribution.svg"
	StackedChartFile  = "stacked_distribution.svg"
	outputPermissions = 0644
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Out receives everything printed to the terminal; defaults to os.Stdout
	Out io.Writer
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Generate creates output in the specified format
func Generate(report *dto.SimulationReport, config Config) error {
	if report == nil {
		return fmt.Errorf("no report to render")
	}

	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	case "html":
		return generateHTMLOutput(report, config)
	case "svg":
		return generateSVGOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteSummary prints the final distribution, one state per line with its accumulated discount
func WriteSummary(w io.Writer, report *dto.SimulationReport) {
	fmt.Fprintf(w, "Final Summary:\n")
	for _, s := range report.States {
		fmt.Fprintf(w, "- %s: %d products (%.1f%%)\n", s.State, s.Count, s.Fraction*100)
		fmt.Fprintf(w, "  Accumulated discount: $%s\n", s.Discount.StringFixed(2))
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.SimulationReport, config Config) error {
	w := config.out()

	fmt.Fprintf(w, "📊 Quality Simulation Summary\n")
	fmt.Fprintf(w, "=============================\n\n")

	fmt.Fprintf(w, "Run: %s\n", report.RunID)
	fmt.Fprintf(w, "Status: %s (%d/%d days)\n", report.Status, report.CurrentDay, report.Params.Days)
	fmt.Fprintf(w, "Products: %d\n", report.Params.NumProducts)
	fmt.Fprintf(w, "Seed: %d\n", report.Seed)
	fmt.Fprintf(w, "Cost per day per unit: $%s %s\n", report.CostPerDayPerUnit.StringFixed(2), report.Currency)
	fmt.Fprintf(w, "Accumulated cost: $%s %s\n", report.TotalCost.StringFixed(2), report.Currency)
	fmt.Fprintf(w, "Total discount: $%s %s\n\n", report.TotalDiscount.StringFixed(2), report.Currency)

	if config.Verbose && len(report.History) > 0 {
		fmt.Fprintf(w, "📅 Daily Distribution:\n")
		fmt.Fprintf(w, "%-6s", "Day")
		for _, state := range entities.AllQualityStates() {
			fmt.Fprintf(w, " %-10s", state)
		}
		fmt.Fprintf(w, " %-14s\n", "Total Cost")
		for _, day := range report.History {
			fmt.Fprintf(w, "%-6d", day.Day)
			for _, n := range day.Counts {
				fmt.Fprintf(w, " %-10d", n)
			}
			fmt.Fprintf(w, " %-14.2f\n", day.TotalCost)
		}
		fmt.Fprintln(w)
	}

	WriteSummary(w, report)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, SummaryTextFile)
		if err := writeSummaryFile(filename, report); err != nil {
			return fmt.Errorf("failed to write summary file: %w", err)
		}
		if config.Verbose {
			fmt.Fprintf(w, "💾 Summary saved to: %s\n", filename)
		}
	}

	return nil
}

func writeSummaryFile(filename string, report *dto.SimulationReport) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	WriteSummary(&buf, report)
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.SimulationReport, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, ReportJSONFile)
	if err := os.WriteFile(filename, jsonData, outputPermissions); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 JSON report saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(report *dto.SimulationReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dailyFile := filepath.Join(config.OutputDir, DailyCountsFile)
	if err := writeCSVFile(dailyFile, dailyCountsRecords(report)); err != nil {
		return fmt.Errorf("failed to write daily counts CSV: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, FinalSummaryFile)
	if err := writeCSVFile(summaryFile, finalSummaryRecords(report)); err != nil {
		return fmt.Errorf("failed to write final summary CSV: %w", err)
	}

	gridFile := filepath.Join(config.OutputDir, StateGridFile)
	if err := writeCSVFile(gridFile, stateGridRecords(report)); err != nil {
		return fmt.Errorf("failed to write state grid CSV: %w", err)
	}

	if config.Verbose {
		w := config.out()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Daily counts: %s\n", dailyFile)
		fmt.Fprintf(w, "  Final summary: %s\n", summaryFile)
		fmt.Fprintf(w, "  State grid: %s\n", gridFile)
	}

	return nil
}

func writeCSVFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func dailyCountsRecords(report *dto.SimulationReport) [][]string {
	header := []string{"day"}
	for _, state := range entities.AllQualityStates() {
		header = append(header, state.String())
	}
	header = append(header, "daily_cost", "total_cost")

	records := [][]string{header}
	for _, day := range report.History {
		record := []string{strconv.Itoa(day.Day)}
		for _, n := range day.Counts {
			record = append(record, strconv.Itoa(n))
		}
		record = append(record,
			strconv.FormatFloat(day.DailyCost, 'f', -1, 64),
			strconv.FormatFloat(day.TotalCost, 'f', -1, 64))
		records = append(records, record)
	}
	return records
}

func finalSummaryRecords(report *dto.SimulationReport) [][]string {
	records := [][]string{{"state", "count", "fraction", "discount"}}
	for _, s := range report.States {
		records = append(records, []string{
			s.State,
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.Fraction, 'f', 4, 64),
			s.Discount.StringFixed(2),
		})
	}
	records = append(records, []string{"total", strconv.Itoa(report.Params.NumProducts), "", report.TotalDiscount.StringFixed(2)})
	return records
}

// stateGridRecords writes one row per day with the state name of every product
func stateGridRecords(report *dto.SimulationReport) [][]string {
	header := []string{"day"}
	for i := 0; i < report.Params.NumProducts; i++ {
		header = append(header, fmt.Sprintf("product_%d", i))
	}

	records := [][]string{header}
	for d, row := range report.StateGrid {
		record := []string{strconv.Itoa(d)}
		for _, state := range row {
			record = append(record, entities.QualityState(state).String())
		}
		records = append(records, record)
	}
	return records
}

// generateSVGOutput writes the three charts as standalone files
func generateSVGOutput(report *dto.SimulationReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for SVG format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	chart := NewChart()
	files := []struct {
		name string
		svg  string
	}{
		{LineChartFile, chart.LineChartSVG(report)},
		{FinalChartFile, chart.FinalBarChartSVG(report)},
		{StackedChartFile, chart.StackedChartSVG(report)},
	}

	for _, f := range files {
		filename := filepath.Join(config.OutputDir, f.name)
		if err := os.WriteFile(filename, []byte(f.svg), outputPermissions); err != nil {
			return fmt.Errorf("failed to write SVG file %s: %w", f.name, err)
		}
		if config.Verbose {
			fmt.Fprintf(config.out(), "📈 Chart saved to: %s\n", filename)
		}
	}
	return nil
}
