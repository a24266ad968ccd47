package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/application/services/simulation"
	domain "github.com/vsinha/qualitysim/pkg/domain/services"
	testhelpers "github.com/vsinha/qualitysim/pkg/infrastructure/testing"
)

// buildGoldenReport runs the reference scenario to completion
func buildGoldenReport(t *testing.T, steps int) *dto.SimulationReport {
	t.Helper()
	golden := testhelpers.BuildGoldenScenario()

	engine, err := domain.NewDefaultMarkovEngine(golden.Params, golden.Seed)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	run := domain.NewRun(engine, golden.Seed)
	for i := 0; i < steps; i++ {
		if _, err := run.Step(); err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}
	return simulation.BuildReport(run.Snapshot(true), "COP")
}

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()
	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", filename, err)
	}
	return records
}

func TestGenerate_TextSummary(t *testing.T) {
	report := buildGoldenReport(t, 3)

	var buf bytes.Buffer
	if err := Generate(report, Config{Format: "text", Out: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	text := buf.String()

	expectedLines := []string{
		"Final Summary:",
		"- Excellent: 4 products (40.0%)",
		"- Good: 3 products (30.0%)",
		"- Fair: 0 products (0.0%)",
		"- Defective: 2 products (20.0%)",
		"- Poor: 1 products (10.0%)",
		"  Accumulated discount: $46.67",
		"  Accumulated discount: $33.33",
		"Accumulated cost: $913.33 COP",
		"Total discount: $86.67 COP",
	}
	for _, line := range expectedLines {
		if !strings.Contains(text, line) {
			t.Errorf("Expected output to contain %q, got:\n%s", line, text)
		}
	}

	if strings.Contains(text, "Daily Distribution") {
		t.Error("Expected daily table only in verbose mode")
	}
}

func TestGenerate_TextVerboseWritesSummaryFile(t *testing.T) {
	report := buildGoldenReport(t, 3)
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := Generate(report, Config{Format: "text", OutputDir: dir, Verbose: true, Out: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Daily Distribution") {
		t.Errorf("Expected verbose daily table, got:\n%s", buf.String())
	}

	saved, err := os.ReadFile(filepath.Join(dir, SummaryTextFile))
	if err != nil {
		t.Fatalf("Expected summary file: %v", err)
	}
	if !strings.HasPrefix(string(saved), "Final Summary:\n- Excellent: 4 products (40.0%)\n") {
		t.Errorf("Unexpected summary file:\n%s", saved)
	}
}

func TestGenerate_TextReportsSummaryWriteFailure(t *testing.T) {
	report := buildGoldenReport(t, 3)
	dir := t.TempDir()

	// A directory in place of the summary file makes the write fail
	if err := os.Mkdir(filepath.Join(dir, SummaryTextFile), 0755); err != nil {
		t.Fatalf("Failed to set up directory: %v", err)
	}

	err := Generate(report, Config{Format: "text", OutputDir: dir, Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "failed to write summary file") {
		t.Errorf("Expected summary write error, got %v", err)
	}
}

func TestGenerate_JSON(t *testing.T) {
	report := buildGoldenReport(t, 3)

	var buf bytes.Buffer
	if err := Generate(report, Config{Format: "json", Out: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if decoded["status"] != "complete" {
		t.Errorf("Expected status complete, got %v", decoded["status"])
	}
	if decoded["total_cost"] != "913.33" {
		t.Errorf("Expected total_cost 913.33, got %v", decoded["total_cost"])
	}
	if history, ok := decoded["history"].([]any); !ok || len(history) != 3 {
		t.Errorf("Expected 3 history entries, got %v", decoded["history"])
	}

	dir := t.TempDir()
	if err := Generate(report, Config{Format: "json", OutputDir: dir}); err != nil {
		t.Fatalf("Generate to file failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ReportJSONFile)); err != nil {
		t.Errorf("Expected %s to be written: %v", ReportJSONFile, err)
	}
}

func TestGenerate_CSV(t *testing.T) {
	report := buildGoldenReport(t, 3)
	dir := t.TempDir()

	if err := Generate(report, Config{Format: "csv", OutputDir: dir}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	daily := readCSV(t, filepath.Join(dir, DailyCountsFile))
	if len(daily) != 4 {
		t.Fatalf("Expected header plus 3 days, got %d records", len(daily))
	}
	if strings.Join(daily[0][:6], ",") != "day,Excellent,Good,Fair,Defective,Poor" {
		t.Errorf("Unexpected header %v", daily[0])
	}
	if strings.Join(daily[2][:6], ",") != "1,8,1,0,0,1" {
		t.Errorf("Expected day 1 counts 8,1,0,0,1, got %v", daily[2])
	}

	summary := readCSV(t, filepath.Join(dir, FinalSummaryFile))
	if len(summary) != 7 {
		t.Fatalf("Expected header, 5 states and a total, got %d records", len(summary))
	}
	if summary[4][0] != "Defective" || summary[4][3] != "33.33" {
		t.Errorf("Expected Defective discount 33.33, got %v", summary[4])
	}
	if summary[6][3] != "86.67" {
		t.Errorf("Expected total discount 86.67, got %v", summary[6])
	}

	grid := readCSV(t, filepath.Join(dir, StateGridFile))
	if len(grid) != 4 || len(grid[0]) != 11 {
		t.Fatalf("Expected 4x11 grid, got %dx%d", len(grid), len(grid[0]))
	}
	if grid[2][9] != "Good" || grid[2][10] != "Poor" {
		t.Errorf("Expected day 1 to end with Good, Poor; got %v", grid[2])
	}
}

func TestGenerate_HTMLAndSVG(t *testing.T) {
	report := buildGoldenReport(t, 3)
	dir := t.TempDir()

	if err := Generate(report, Config{Format: "html", OutputDir: dir}); err != nil {
		t.Fatalf("HTML generation failed: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(dir, HTMLReportFile))
	if err != nil {
		t.Fatalf("Expected HTML file: %v", err)
	}
	if n := strings.Count(string(page), "<svg"); n != 3 {
		t.Errorf("Expected 3 embedded charts, got %d", n)
	}
	if !strings.Contains(string(page), "Accumulated cost: $913.33 COP") {
		t.Error("Expected line chart title with accumulated cost")
	}

	if err := Generate(report, Config{Format: "svg", OutputDir: dir}); err != nil {
		t.Fatalf("SVG generation failed: %v", err)
	}
	for _, name := range []string{LineChartFile, FinalChartFile, StackedChartFile} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Expected %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(content), "<svg") {
			t.Errorf("Expected %s to start with <svg", name)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	report := buildGoldenReport(t, 3)

	testCases := []struct {
		name   string
		config Config
	}{
		{"unsupported format", Config{Format: "xml"}},
		{"csv without directory", Config{Format: "csv"}},
		{"html without directory", Config{Format: "html"}},
		{"svg without directory", Config{Format: "svg"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Generate(report, tc.config); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if err := Generate(nil, Config{Format: "text"}); err == nil {
		t.Error("Expected error for nil report")
	}
}
