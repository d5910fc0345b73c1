package handler

import (
	"net/http"
	"strconv"
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/database"
	"kennel-service/pkg/logger"
	"kennel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OwnerRequest defines the structure for owner creation/update requests
type OwnerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ListOwners handles retrieving all owners for the active tenant
func ListOwners(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var owners []model.Owner
	result := database.GetDB().
		Where("tenant_id = ?", tenantID).
		Preload("Dogs").
		Order("name ASC").
		Find(&owners)
	if result.Error != nil {
		log.Error("Failed to list owners", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve owners"})
	}

	return c.JSON(http.StatusOK, owners)
}

// GetOwner handles retrieving a single owner with dogs
func GetOwner(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid owner ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var owner model.Owner
	result := database.GetDB().
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Dogs").
		First(&owner)
	if result.Error != nil {
		log.Warn("Owner not found", zap.Uint64("id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "owner not found"})
	}

	return c.JSON(http.StatusOK, owner)
}

// CreateOwner handles creating a new owner
func CreateOwner(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var req OwnerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
	}

	owner := model.Owner{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&owner); result.Error != nil {
		log.Error("Failed to create owner", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "owner creation failed"})
	}

	log.Info("Owner created", zap.Uint("tenant_id", tenantID), zap.Uint("id", owner.ID))
	return c.JSON(http.StatusCreated, owner)
}
