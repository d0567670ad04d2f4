package handler

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tradedeck-server/internal/middleware"
)

const (
	chartPoints     = 50
	chartStartPrice = 19500.0
	chartStepRange  = 150.0
	chartDrift      = 0.48
)

// ChartHandler renders the decorative overview chart. The series is a
// synthetic random walk with no relationship to market data or to the
// user's trades; the title says so.
type ChartHandler struct{}

// NewChartHandler creates a new ChartHandler
func NewChartHandler() *ChartHandler {
	return &ChartHandler{}
}

// RenderChart renders the synthetic line chart as a standalone HTML page
// GET /api/v1/overview/chart
func (h *ChartHandler) RenderChart(c *gin.Context) {
	xAxis := make([]string, chartPoints)
	series := make([]opts.LineData, chartPoints)

	price := chartStartPrice
	for i := 0; i < chartPoints; i++ {
		price += (rand.Float64() - chartDrift) * chartStepRange
		xAxis[i] = fmt.Sprintf("T%d", i+1)
		series[i] = opts.LineData{Value: price}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "NIFTY (illustrative only)",
			Subtitle: "Synthetic random-walk data, not a live market feed",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)
	line.SetXAxis(xAxis)
	line.AddSeries("Price", series,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#10b981", Width: 2}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), Smooth: opts.Bool(true)}),
	)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	// The status line is already written; a render failure mid-body can only
	// be logged, not turned into an error response.
	if err := line.Render(c.Writer); err != nil {
		middleware.LogError("chart render failed: %v", err)
	}
}
