package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/observability"
)

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheStats reports staff cache state.
type CacheStats interface {
	Len() int
	BuiltAt() time.Time
}

// HealthHandler responds to liveness, readiness and metrics probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    Pinger
	redis       Pinger
	cache       CacheStats
	metrics     *observability.Metrics
}

// HealthDependencies bundles what the probes inspect. A nil Redis is skipped.
type HealthDependencies struct {
	ServiceName string
	Version     string
	Postgres    Pinger
	Redis       Pinger
	Cache       CacheStats
	Metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		serviceName: deps.ServiceName,
		version:     deps.Version,
		postgres:    deps.Postgres,
		redis:       deps.Redis,
		cache:       deps.Cache,
		metrics:     deps.Metrics,
	}
}

// Welcome handles GET /.
func (h *HealthHandler) Welcome(c *fiber.Ctx) error {
	return c.SendString("Welcome to the main page!")
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.postgres.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		ready = false
	} else {
		depStatus["postgres"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = err.Error()
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	cache := fiber.Map{"entries": 0}
	if h.cache != nil {
		cache["entries"] = h.cache.Len()
		if built := h.cache.BuiltAt(); !built.IsZero() {
			cache["built_at"] = built.UTC()
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
			"staff_cache":  cache,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics exposes the in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
