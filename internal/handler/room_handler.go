package handler

import (
	"net/http"
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/database"
	"kennel-service/pkg/logger"
	"kennel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoomRequest defines the structure for room creation requests
type RoomRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	MaxCapacity int    `json:"max_capacity"`
}

// ListRooms handles retrieving all rooms for the active tenant
func ListRooms(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var rooms []model.Room
	result := database.GetDB().
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&rooms)
	if result.Error != nil {
		log.Error("Failed to list rooms", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve rooms"})
	}

	return c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles creating a new room
func CreateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.MaxCapacity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_capacity must be at least 1"})
	}

	room := model.Room{
		TenantID:    tenantID,
		Name:        req.Name,
		DisplayName: req.DisplayName,
		MaxCapacity: req.MaxCapacity,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&room); result.Error != nil {
		log.Error("Failed to create room", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room creation failed"})
	}

	log.Info("Room created", zap.Uint("tenant_id", tenantID), zap.Uint("id", room.ID))
	return c.JSON(http.StatusCreated, room)
}
