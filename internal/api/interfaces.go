package api

import (
	"context"

	"github.com/opencurricula/explorer/internal/models"
)

// ExplorationService is the engine surface the handlers depend on.
type ExplorationService interface {
	Explore(ctx context.Context, callerID string, q models.ExplorationQuery) (*models.GraphView, error)
	EstimateExploreCost(ctx context.Context, callerID string, q models.ExplorationQuery) (models.QueryCost, error)
	FindPath(ctx context.Context, callerID string, q models.PathfindingQuery) (*models.PathResult, error)
	GetRateLimitStatus(ctx context.Context, callerID string) (models.RateLimitStatus, error)
}
