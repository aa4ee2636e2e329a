package handlers

import (
	"investplus/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewHealthHandler(db *gorm.DB, cacheSvc *cache.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheSvc}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	services := fiber.Map{"database": "connected", "redis": "connected"}
	status := "ok"

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
		services["database"] = "unreachable"
		status = "degraded"
	}
	if h.cache == nil {
		services["redis"] = "disabled"
	} else if err := h.cache.HealthCheck(c.Context()); err != nil {
		services["redis"] = "unreachable"
		status = "degraded"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": services,
	})
}
