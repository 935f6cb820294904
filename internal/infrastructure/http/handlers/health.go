package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

// HealthHandler serves /health. It probes Postgres and Redis when they are configured and
// answers 503 if any check fails.
type HealthHandler struct {
	storage string
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler takes a nil pool in memory mode and a nil client when no queue is configured.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client, storage string) *HealthHandler {
	h := &HealthHandler{storage: storage, timeout: 3 * time.Second}
	if pool != nil {
		h.checks = append(h.checks, healthCheck{name: "database", ping: pool.Ping})
	}
	if redisClient != nil {
		h.checks = append(h.checks, healthCheck{name: "redis", ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}
	return h
}

type healthResponse struct {
	Status  string            `json:"status"`
	Storage string            `json:"storage,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Storage: h.storage}
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for _, c := range h.checks {
		if err := c.ping(ctx); err != nil {
			resp.Checks[c.name] = "down: " + err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[c.name] = "ok"
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
