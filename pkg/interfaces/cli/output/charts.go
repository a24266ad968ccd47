package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

// stateColors follows the first five entries of the tab20c palette
var stateColors = [entities.NumQualityStates]string{
	"#3182bd", // Excellent
	"#6baed6", // Good
	"#9ecae1", // Fair
	"#c6dbef", // Defective
	"#e6550d", // Poor
}

// Chart holds the canvas geometry shared by every chart
type Chart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
}

// NewChart creates a chart canvas with room for a legend on the right
func NewChart() *Chart {
	return &Chart{
		Width:        900,
		Height:       500,
		MarginLeft:   70,
		MarginTop:    70,
		MarginRight:  190,
		MarginBottom: 60,
	}
}

func (c *Chart) plotWidth() int {
	return c.Width - c.MarginLeft - c.MarginRight
}

func (c *Chart) plotHeight() int {
	return c.Height - c.MarginTop - c.MarginBottom
}

// LineChartSVG plots the number of products in each state per day, titled with the running cost
func (c *Chart) LineChartSVG(report *dto.SimulationReport) string {
	if len(report.History) == 0 {
		return c.generateEmptyChart("No simulated days yet")
	}

	var svg strings.Builder
	c.writeHeader(&svg)
	c.writeTitle(&svg,
		"State Distribution Over Time",
		fmt.Sprintf("Accumulated cost: $%s %s", report.TotalCost.StringFixed(2), report.Currency))

	maxDay := report.Params.Days - 1
	if maxDay < 1 {
		maxDay = 1
	}
	maxCount := report.Params.NumProducts

	x := func(day int) float64 {
		return float64(c.MarginLeft) + float64(day)/float64(maxDay)*float64(c.plotWidth())
	}
	y := func(count int) float64 {
		return float64(c.MarginTop+c.plotHeight()) - float64(count)/float64(maxCount)*float64(c.plotHeight())
	}

	c.drawValueAxis(&svg, maxCount, "Number of products")
	c.drawDayAxis(&svg, maxDay, x)

	last := report.History[len(report.History)-1]
	legend := make([]string, entities.NumQualityStates)
	for _, state := range entities.AllQualityStates() {
		points := make([]string, 0, len(report.History))
		for _, day := range report.History {
			points = append(points, fmt.Sprintf("%.1f,%.1f", x(day.Day), y(day.Counts[state])))
		}
		svg.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`,
			strings.Join(points, " "), stateColors[state]))
		for _, day := range report.History {
			svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>Day %d, %s: %d</title></circle>`,
				x(day.Day), y(day.Counts[state]), stateColors[state], day.Day, state, day.Counts[state]))
		}
		legend[state] = fmt.Sprintf("%s (n=%d)", state, last.Counts[state])
	}

	c.drawLegend(&svg, legend)
	svg.WriteString(`</svg>`)
	return svg.String()
}

// FinalBarChartSVG draws one horizontal bar per state for the last processed day
func (c *Chart) FinalBarChartSVG(report *dto.SimulationReport) string {
	if len(report.States) == 0 {
		return c.generateEmptyChart("No summary available")
	}

	var svg strings.Builder
	c.writeHeader(&svg)
	c.writeTitle(&svg, "Final State Distribution", "")

	maxCount := report.Params.NumProducts
	rowHeight := c.plotHeight() / len(report.States)
	barHeight := rowHeight * 7 / 10

	for i, s := range report.States {
		rowY := c.MarginTop + i*rowHeight
		width := 0
		if maxCount > 0 {
			width = s.Count * c.plotWidth() / maxCount
		}

		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="end">%s</text>`,
			c.MarginLeft-10, rowY+rowHeight/2+4, html.EscapeString(s.State)))
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="black"><title>%s: %d (%.1f%%)</title></rect>`,
			c.MarginLeft, rowY+(rowHeight-barHeight)/2, width, barHeight, stateColors[i%len(stateColors)],
			html.EscapeString(s.State), s.Count, s.Fraction*100))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="value-label">%d</text>`,
			c.MarginLeft+width+6, rowY+rowHeight/2+4, s.Count))
	}

	// Vertical grid lines at quarters of the batch size
	for q := 0; q <= 4; q++ {
		gx := c.MarginLeft + q*c.plotWidth()/4
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line" stroke-dasharray="4,3"/>`,
			gx, c.MarginTop, gx, c.MarginTop+c.plotHeight()))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">%d</text>`,
			gx, c.MarginTop+c.plotHeight()+18, q*maxCount/4))
	}
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">Count</text>`,
		c.MarginLeft+c.plotWidth()/2, c.Height-15))

	svg.WriteString(`</svg>`)
	return svg.String()
}

// StackedChartSVG draws one stacked column per sampled day
func (c *Chart) StackedChartSVG(report *dto.SimulationReport) string {
	if len(report.SampledDays) == 0 {
		return c.generateEmptyChart("No simulated days yet")
	}

	var svg strings.Builder
	c.writeHeader(&svg)
	c.writeTitle(&svg, "State Distribution (Stacked Columns)", "")

	maxCount := report.Params.NumProducts
	c.drawValueAxis(&svg, maxCount, "Number of products")

	slot := c.plotWidth() / len(report.SampledDays)
	barWidth := slot * 7 / 10
	baseline := c.MarginTop + c.plotHeight()

	for i, sample := range report.SampledDays {
		barX := c.MarginLeft + i*slot + (slot-barWidth)/2
		bottom := baseline
		for _, state := range entities.AllQualityStates() {
			n := sample.Counts[state]
			if n == 0 {
				continue
			}
			h := n * c.plotHeight() / maxCount
			svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="white"><title>%s, %s: %d</title></rect>`,
				barX, bottom-h, barWidth, h, stateColors[state], sample.Label, state, n))
			bottom -= h
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">%s</text>`,
			barX+barWidth/2, baseline+18, sample.Label))
	}
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">Days</text>`,
		c.MarginLeft+c.plotWidth()/2, c.Height-15))

	legend := make([]string, entities.NumQualityStates)
	for _, state := range entities.AllQualityStates() {
		legend[state] = state.String()
	}
	c.drawLegend(&svg, legend)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (c *Chart) writeHeader(svg *strings.Builder) {
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, c.Width, c.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.subtitle { font-family: Arial, sans-serif; font-size: 13px; fill: #555; }`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 11px; fill: #444; }`)
	svg.WriteString(`.value-label { font-family: Arial, sans-serif; font-size: 10px; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, c.Width, c.Height))
}

func (c *Chart) writeTitle(svg *strings.Builder, title, subtitle string) {
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="28" class="title" text-anchor="middle">%s</text>`,
		c.Width/2, html.EscapeString(title)))
	if subtitle != "" {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="48" class="subtitle" text-anchor="middle">%s</text>`,
			c.Width/2, html.EscapeString(subtitle)))
	}
}

// drawValueAxis draws horizontal grid lines for product counts
func (c *Chart) drawValueAxis(svg *strings.Builder, maxCount int, label string) {
	ticks := 5
	if maxCount < ticks {
		ticks = maxCount
	}
	for i := 0; i <= ticks; i++ {
		value := i * maxCount / ticks
		gy := c.MarginTop + c.plotHeight() - value*c.plotHeight()/maxCount
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			c.MarginLeft, gy, c.MarginLeft+c.plotWidth(), gy))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="end">%d</text>`,
			c.MarginLeft-8, gy+4, value))
	}
	svg.WriteString(fmt.Sprintf(`<text x="18" y="%d" class="axis-label" text-anchor="middle" transform="rotate(-90 18 %d)">%s</text>`,
		c.MarginTop+c.plotHeight()/2, c.MarginTop+c.plotHeight()/2, html.EscapeString(label)))
}

// drawDayAxis labels the x axis with at most ten day ticks
func (c *Chart) drawDayAxis(svg *strings.Builder, maxDay int, x func(int) float64) {
	step := 1
	if maxDay > 10 {
		step = (maxDay + 9) / 10
	}
	baseline := c.MarginTop + c.plotHeight()
	for day := 0; day <= maxDay; day += step {
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" class="grid-line"/>`,
			x(day), c.MarginTop, x(day), baseline))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="axis-label" text-anchor="middle">%d</text>`,
			x(day), baseline+18, day))
	}
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">Time (days)</text>`,
		c.MarginLeft+c.plotWidth()/2, c.Height-15))
}

// drawLegend lists one colored entry per state
func (c *Chart) drawLegend(svg *strings.Builder, labels []string) {
	legendX := c.Width - c.MarginRight + 20
	legendY := c.MarginTop

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="160" height="%d" fill="white" stroke="#ccc" stroke-width="1"/>`,
		legendX, legendY, 20+len(labels)*18))

	for i, label := range labels {
		itemY := legendY + 12 + i*18
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="10" fill="%s"/>`,
			legendX+10, itemY, stateColors[i%len(stateColors)]))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label">%s</text>`,
			legendX+30, itemY+9, html.EscapeString(label)))
	}
}

// generateEmptyChart creates a placeholder when there is nothing to plot
func (c *Chart) generateEmptyChart(message string) string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">%s</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, c.Width, c.Height, c.Width, c.Height, c.Width/2, c.Height/2, html.EscapeString(message))
}
