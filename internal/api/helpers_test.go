package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opencurricula/explorer/internal/middleware"
	"github.com/opencurricula/explorer/internal/models"
)

const testCallerID = "caller-1"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// newTestRouter creates a gin engine with a fixed resolved caller for testing.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CallerIDKey, testCallerID)
		c.Next()
	})

	return r
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

// mockEngine implements api.ExplorationService with function fields.
type mockEngine struct {
	exploreFn  func(ctx context.Context, callerID string, q models.ExplorationQuery) (*models.GraphView, error)
	estimateFn func(ctx context.Context, callerID string, q models.ExplorationQuery) (models.QueryCost, error)
	findPathFn func(ctx context.Context, callerID string, q models.PathfindingQuery) (*models.PathResult, error)
	statusFn   func(ctx context.Context, callerID string) (models.RateLimitStatus, error)
}

func (m *mockEngine) Explore(ctx context.Context, callerID string, q models.ExplorationQuery) (*models.GraphView, error) {
	return m.exploreFn(ctx, callerID, q)
}

func (m *mockEngine) EstimateExploreCost(ctx context.Context, callerID string, q models.ExplorationQuery) (models.QueryCost, error) {
	return m.estimateFn(ctx, callerID, q)
}

func (m *mockEngine) FindPath(ctx context.Context, callerID string, q models.PathfindingQuery) (*models.PathResult, error) {
	return m.findPathFn(ctx, callerID, q)
}

func (m *mockEngine) GetRateLimitStatus(ctx context.Context, callerID string) (models.RateLimitStatus, error) {
	return m.statusFn(ctx, callerID)
}
