package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/application/services/simulation"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
	"github.com/vsinha/qualitysim/pkg/domain/repositories"
	domain "github.com/vsinha/qualitysim/pkg/domain/services"
	"github.com/vsinha/qualitysim/pkg/interfaces/cli/output"
)

type SimulationHandler struct {
	service     *simulation.Service
	defaultSeed uint32
}

func NewSimulationHandler(service *simulation.Service, defaultSeed uint32) *SimulationHandler {
	return &SimulationHandler{
		service:     service,
		defaultSeed: defaultSeed,
	}
}

type StartSimulationRequest struct {
	Days     int     `json:"days"`
	Products int     `json:"products"`
	Price    float64 `json:"price"`
	Seed     *uint32 `json:"seed"`
}

// RunStatusResponse describes a run without its full history
type RunStatusResponse struct {
	ID                string                `json:"id"`
	Status            string                `json:"status"`
	Days              int                   `json:"days"`
	Products          int                   `json:"products"`
	Price             float64               `json:"price"`
	Seed              uint32                `json:"seed"`
	CurrentDay        int                   `json:"current_day"`
	Counts            *entities.StateCounts `json:"counts,omitempty"`
	TotalCost         float64               `json:"total_cost"`
	CostPerDayPerUnit float64               `json:"cost_per_day_per_unit"`
	Currency          string                `json:"currency"`
	CreatedAt         time.Time             `json:"created_at"`
}

func newRunStatusResponse(snapshot domain.RunSnapshot, currency string) RunStatusResponse {
	resp := RunStatusResponse{
		ID:                snapshot.ID.String(),
		Status:            snapshot.Status.String(),
		Days:              snapshot.Params.Days,
		Products:          snapshot.Params.NumProducts,
		Price:             snapshot.Params.TotalPrice,
		Seed:              snapshot.Seed,
		CurrentDay:        snapshot.CurrentDay,
		TotalCost:         snapshot.TotalCost,
		CostPerDayPerUnit: snapshot.CostPerDayPerUnit,
		Currency:          currency,
		CreatedAt:         snapshot.CreatedAt,
	}
	if last, ok := snapshot.LastResult(); ok {
		resp.Counts = &last.Counts
	}
	return resp
}

// POST /api/v1/simulations
func (sh *SimulationHandler) StartSimulation(c *gin.Context) {
	var req StartSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  entities.InvalidParameterMessage,
			"detail": err.Error(),
		})
		return
	}

	params, err := entities.NewSimulationParameters(req.Days, req.Products, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	seed := sh.defaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	run, err := sh.service.Start(params, seed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRunStatusResponse(run.Snapshot(false), sh.service.Currency()))
}

// GET /api/v1/simulations
func (sh *SimulationHandler) ListSimulations(c *gin.Context) {
	snapshots, err := sh.service.List()
	if err != nil {
		respondError(c, err)
		return
	}

	runs := make([]RunStatusResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		runs = append(runs, newRunStatusResponse(snapshot, sh.service.Currency()))
	}
	c.JSON(http.StatusOK, gin.H{"simulations": runs})
}

// GET /api/v1/simulations/:id
func (sh *SimulationHandler) GetSimulation(c *gin.Context) {
	run, ok := sh.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newRunStatusResponse(run.Snapshot(false), sh.service.Currency()))
}

// POST /api/v1/simulations/:id/step
func (sh *SimulationHandler) StepSimulation(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	result, err := sh.service.Step(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/v1/simulations/:id/run
func (sh *SimulationHandler) RunSimulation(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	if err := sh.service.Run(c.Request.Context(), id, 0, nil); err != nil {
		respondError(c, err)
		return
	}

	report, err := sh.service.Report(id, c.Query("grid") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/simulations/:id/summary
func (sh *SimulationHandler) GetSummary(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	report, err := sh.service.Summary(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("grid") != "true" {
		report.StateGrid = nil
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/simulations/:id/events
func (sh *SimulationHandler) GetEvents(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	stream, err := sh.service.Events(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(stream) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": repositories.ErrRunNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": stream})
}

// GET /api/v1/events?from=N
func (sh *SimulationHandler) GetAllEvents(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a non-negative integer"})
			return
		}
		from = parsed
	}

	all, err := sh.service.AllEvents(from)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": all})
}

// GET /api/v1/simulations/:id/charts/:chart
func (sh *SimulationHandler) GetChart(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	report, err := sh.service.Report(id, false)
	if err != nil {
		respondError(c, err)
		return
	}

	svg, ok := renderChart(c.Param("chart"), report)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart, expected line, final or stacked"})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// DELETE /api/v1/simulations/:id
func (sh *SimulationHandler) DeleteSimulation(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	if err := sh.service.Abort(id, "deleted through the API"); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Simulation aborted", "id": id.String()})
}

func (sh *SimulationHandler) lookup(c *gin.Context) (*domain.Run, bool) {
	id, ok := parseRunID(c)
	if !ok {
		return nil, false
	}
	run, err := sh.service.Get(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return run, true
}

func renderChart(name string, report *dto.SimulationReport) (string, bool) {
	chart := output.NewChart()
	switch name {
	case "line":
		return chart.LineChartSVG(report), true
	case "final":
		return chart.FinalBarChartSVG(report), true
	case "stacked":
		return chart.StackedChartSVG(report), true
	default:
		return "", false
	}
}

// parseRunID treats a malformed id like an unknown one
func parseRunID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": repositories.ErrRunNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	var paramErr *entities.ParameterError
	switch {
	case errors.As(err, &paramErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  entities.InvalidParameterMessage,
			"field":  paramErr.Field,
			"detail": paramErr.Reason,
		})
	case errors.Is(err, repositories.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSimulationComplete), errors.Is(err, domain.ErrSimulationRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// RegisterSimulationRoutes registers all simulation routes
func RegisterSimulationRoutes(router *gin.RouterGroup, handler *SimulationHandler) {
	simulations := router.Group("/simulations")
	{
		simulations.POST("", handler.StartSimulation)
		simulations.GET("", handler.ListSimulations)
		simulations.GET("/:id", handler.GetSimulation)
		simulations.DELETE("/:id", handler.DeleteSimulation)
		simulations.POST("/:id/step", handler.StepSimulation)
		simulations.POST("/:id/run", handler.RunSimulation)
		simulations.GET("/:id/summary", handler.GetSummary)
		simulations.GET("/:id/events", handler.GetEvents)
		simulations.GET("/:id/charts/:chart", handler.GetChart)
	}
	router.GET("/events", handler.GetAllEvents)
}
