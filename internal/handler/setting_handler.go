package handler

import (
	"net/http"

	"kennel-service/internal/settings"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SettingHandler exposes the tenant settings store over HTTP
type SettingHandler struct {
	store *settings.Store
}

func NewSettingHandler(store *settings.Store) *SettingHandler {
	return &SettingHandler{store: store}
}

// List handles GET /api/settings
func (h *SettingHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	all, err := h.store.GetAll(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve settings"})
	}

	return c.JSON(http.StatusOK, all)
}

// Put handles PUT /api/settings, upserting every key in the body
func (h *SettingHandler) Put(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var body map[string]string
	if err := c.Bind(&body); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no settings provided"})
	}

	for key, value := range body {
		if key == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "setting key must not be empty"})
		}
		if err := h.store.Set(c.Request().Context(), tenantID, key, value); err != nil {
			log.Error("Failed to save setting", zap.String("key", key), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
		}
	}

	log.Info("Settings updated", zap.Uint("tenant_id", tenantID), zap.Int("count", len(body)))

	all, err := h.store.GetAll(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to reload settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve settings"})
	}
	return c.JSON(http.StatusOK, all)
}
