package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 3 * time.Second

// Checker reports whether one dependency is reachable.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type mongoChecker struct{ client *mongo.Client }

// MongoChecker pings the primary, which is where every write and transaction goes.
func MongoChecker(client *mongo.Client) Checker { return mongoChecker{client: client} }

func (m mongoChecker) Name() string { return "mongodb" }

func (m mongoChecker) Check(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

type redisChecker struct{ client *redis.Client }

func RedisChecker(client *redis.Client) Checker { return redisChecker{client: client} }

func (r redisChecker) Name() string { return "redis" }

func (r redisChecker) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// HealthHandler serves GET /health (liveness) and GET /health/ready (readiness).
type HealthHandler struct {
	checkers []Checker
}

func NewHealthHandler(checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Pings MongoDB and Redis. Responds 503 when any is unreachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checkers))
	healthy := true
	for _, chk := range h.checkers {
		if err := chk.Check(ctx); err != nil {
			deps[chk.Name()] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[chk.Name()] = dependencyStatus{Status: "ok"}
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

// Names lists the registered dependencies, sorted.
func (h *HealthHandler) Names() []string {
	names := make([]string, 0, len(h.checkers))
	for _, chk := range h.checkers {
		names = append(names, chk.Name())
	}
	sort.Strings(names)
	return names
}
