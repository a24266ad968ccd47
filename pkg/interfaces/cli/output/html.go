package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/vsinha/qualitysim/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport renders a single page with the summary and the three charts
type HTMLReport struct {
	chart *Chart
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	*dto.SimulationReport
	LineChart    template.HTML
	FinalChart   template.HTML
	StackedChart template.HTML
	GeneratedAt  string
}

// NewHTMLReport creates a new HTML report generator
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{chart: NewChart()}
}

// GenerateHTML renders the report page
func (hr *HTMLReport) GenerateHTML(report *dto.SimulationReport) (string, error) {
	// Chart markup is produced by this package from numeric data and escaped labels
	data := &TemplateData{
		SimulationReport: report,
		LineChart:        template.HTML(hr.chart.LineChartSVG(report)),
		FinalChart:       template.HTML(hr.chart.FinalBarChartSVG(report)),
		StackedChart:     template.HTML(hr.chart.StackedChartSVG(report)),
		GeneratedAt:      report.GeneratedAt.Format("2006-01-02 15:04:05"),
	}

	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"percent": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// generateHTMLOutput creates HTML output file
func generateHTMLOutput(report *dto.SimulationReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "  🎨 Rendering charts for %d days...\n", len(report.History))
	}

	page, err := NewHTMLReport().GenerateHTML(report)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, HTMLReportFile)
	if err := os.WriteFile(filename, []byte(page), outputPermissions); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "🌐 HTML report saved to: %s\n", filename)
	}

	return nil
}
