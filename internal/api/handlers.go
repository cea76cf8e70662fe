package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/leaderboard"
	"github.com/chrisdamba/foodwaste/internal/models"
)

const (
	ServiceName    = "Efficiency-Waste Correlation API"
	ServiceVersion = "1.0.0"
)

// Analyzer produces the analysis envelope. It must not panic.
type Analyzer interface {
	AnalyzeResponse(ctx context.Context) models.AnalysisResponse
}

// APIHandler serves the analysis and leaderboard endpoints
type APIHandler struct {
	analyzer        Analyzer
	leaderboardPath string
	timeout         time.Duration
}

func NewAPIHandler(analyzer Analyzer, leaderboardPath string, timeout time.Duration) *APIHandler {
	return &APIHandler{
		analyzer:        analyzer,
		leaderboardPath: leaderboardPath,
		timeout:         timeout,
	}
}

// SetupRoutes configures the API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/efficiency-waste-correlation", h.EfficiencyWasteCorrelation)
		api.GET("/restaurant-points", h.RestaurantPoints)
	}
}

func (h *APIHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": ServiceName,
		"version": ServiceVersion,
		"endpoints": gin.H{
			"/api/efficiency-waste-correlation": "GET - Correlation and regression analysis results",
			"/api/health":                       "GET - Health check",
			"/api/restaurant-points":            "GET - Restaurant points leaderboard",
			"/metrics":                          "GET - Prometheus metrics",
		},
	})
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": models.StatusHealthy})
}

// EfficiencyWasteCorrelation runs the analysis over the persisted tables
func (h *APIHandler) EfficiencyWasteCorrelation(c *gin.Context) {
	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp := h.analyzer.AnalyzeResponse(ctx)
	if resp.Status != models.StatusSuccess {
		log.Error().Str("message", resp.Message).Msg("analysis request failed")
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RestaurantPoints returns the leaderboard sorted by points, then name
func (h *APIHandler) RestaurantPoints(c *gin.Context) {
	entries, err := leaderboard.Load(h.leaderboardPath)
	if err != nil {
		log.Error().Err(err).Str("path", h.leaderboardPath).Msg("error loading leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
