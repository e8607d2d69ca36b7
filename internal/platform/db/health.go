package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	status := http.StatusOK
	if err := h.pool.Ping(ctx); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	stats := h.pool.Stat()
	return c.JSON(status, map[string]interface{}{
		"status":   dbStatus,
		"database": dbStatus,
		"pool": map[string]interface{}{
			"total_conns": stats.TotalConns(),
			"idle_conns":  stats.IdleConns(),
			"max_conns":   stats.MaxConns(),
		},
	})
}
