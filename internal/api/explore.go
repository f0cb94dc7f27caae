// Package api provides HTTP handlers for the exploration service.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opencurricula/explorer/internal/middleware"
	"github.com/opencurricula/explorer/internal/models"
)

// ExploreHandler serves the exploration and pathfinding endpoints.
type ExploreHandler struct {
	engine ExplorationService
	log    *logrus.Logger
}

// NewExploreHandler creates an ExploreHandler.
func NewExploreHandler(engine ExplorationService, log *logrus.Logger) *ExploreHandler {
	return &ExploreHandler{engine: engine, log: log}
}

// Explore handles GET /api/v1/explore/:id.
func (h *ExploreHandler) Explore(c *gin.Context) {
	q, ok := h.parseExplorationQuery(c)
	if !ok {
		return
	}

	view, err := h.engine.Explore(c.Request.Context(), middleware.CallerID(c), q)
	if err != nil {
		handleError(c, err, func(err error) {
			h.log.WithError(err).Error("exploring neighborhood")
		})

		return
	}

	c.JSON(http.StatusOK, view)
}

// Cost handles GET /api/v1/explore/:id/cost.
func (h *ExploreHandler) Cost(c *gin.Context) {
	q, ok := h.parseExplorationQuery(c)
	if !ok {
		return
	}

	cost, err := h.engine.EstimateExploreCost(c.Request.Context(), middleware.CallerID(c), q)
	if err != nil {
		handleError(c, err, func(err error) {
			h.log.WithError(err).Error("estimating query cost")
		})

		return
	}

	c.JSON(http.StatusOK, cost)
}

// Path handles GET /api/v1/path/:from/:to.
func (h *ExploreHandler) Path(c *gin.Context) {
	q := models.PathfindingQuery{
		FromID:    c.Param("from"),
		ToID:      c.Param("to"),
		Algorithm: models.PathAlgorithm(c.DefaultQuery("algorithm", string(models.AlgorithmShortest))),
	}

	maxHops, ok := parseIntParam(c, "max_hops", 0)
	if !ok {
		return
	}
	q.MaxHops = maxHops

	preferred, ok := parseRelationshipList(c, "prefer")
	if !ok {
		return
	}
	q.PreferredRelationships = preferred

	result, err := h.engine.FindPath(c.Request.Context(), middleware.CallerID(c), q)
	if err != nil {
		handleError(c, err, func(err error) {
			h.log.WithError(err).Error("finding path")
		})

		return
	}

	c.JSON(http.StatusOK, result)
}

// Limits handles GET /api/v1/limits. Works for unauthenticated callers too,
// so clients can discover policy before acquiring credentials.
func (h *ExploreHandler) Limits(c *gin.Context) {
	status, err := h.engine.GetRateLimitStatus(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.log.WithError(err).Error("getting rate limit status")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, status)
}

// parseExplorationQuery reads the common exploration parameters. Returns
// ok=false after writing an error response.
func (h *ExploreHandler) parseExplorationQuery(c *gin.Context) (models.ExplorationQuery, bool) {
	q := models.ExplorationQuery{FocusID: c.Param("id")}

	depth, ok := parseIntParam(c, "depth", 1)
	if !ok {
		return q, false
	}
	q.Depth = depth

	maxNodes, ok := parseIntParam(c, "max_nodes", 0)
	if !ok {
		return q, false
	}
	q.MaxNodes = maxNodes

	filter, ok := parseRelationshipList(c, "types")
	if !ok {
		return q, false
	}
	q.RelationshipFilter = filter

	return q, true
}

// parseIntParam reads an integer query parameter, responding with 400 on
// garbage input.
func parseIntParam(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" must be an integer")

		return 0, false
	}

	return v, true
}

// parseRelationshipList reads a comma-separated relationship type parameter.
func parseRelationshipList(c *gin.Context, name string) ([]models.RelationshipType, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	types := make([]models.RelationshipType, 0, len(parts))

	for _, p := range parts {
		rt, err := models.ParseRelationshipType(strings.TrimSpace(p))
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return nil, false
		}

		types = append(types, rt)
	}

	return types, true
}
