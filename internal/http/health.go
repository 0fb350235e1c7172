package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/readhub/library/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger is an optional dependency checked by Status.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db      *database.Database
	redis   Pinger
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// WithRedis adds a Redis check to Status.
func (h *HealthController) WithRedis(redis Pinger) *HealthController {
	h.redis = redis
	return h
}

// Root answers GET / with a banner.
func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Library API is running"})
}

// Ping is a liveness probe that never touches the database.
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "pong"})
}

// Status reports readiness, including database connectivity.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// redis is advisory: the login limiter fails open without it
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "error: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
