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

// DogRequest defines the structure for dog creation requests
type DogRequest struct {
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	SpecialNeeds string `json:"special_needs"`
	OwnerID      uint   `json:"owner_id"`
}

// ListDogs handles retrieving all dogs for the active tenant,
// optionally filtered by owner
func ListDogs(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	query := database.GetDB().Where("tenant_id = ?", tenantID).Preload("Owner")
	if ownerID := c.QueryParam("owner_id"); ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var dogs []model.Dog
	if result := query.Order("name ASC").Find(&dogs); result.Error != nil {
		log.Error("Failed to list dogs", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve dogs"})
	}

	return c.JSON(http.StatusOK, dogs)
}

// CreateDog handles creating a new dog for an existing owner
func CreateDog(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var req DogRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.OwnerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and owner_id are required"})
	}

	// The owner must exist within the same tenant.
	defer prometheus.TrackDBOperation("insert")(time.Now())
	var count int64
	if result := database.GetDB().Model(&model.Owner{}).
		Where("tenant_id = ? AND id = ?", tenantID, req.OwnerID).
		Count(&count); result.Error != nil {
		log.Error("Failed to verify owner", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify owner"})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "owner not found"})
	}

	dog := model.Dog{
		TenantID:     tenantID,
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Breed:        req.Breed,
		SpecialNeeds: req.SpecialNeeds,
	}

	if result := database.GetDB().Create(&dog); result.Error != nil {
		log.Error("Failed to create dog", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dog creation failed"})
	}

	log.Info("Dog created", zap.Uint("tenant_id", tenantID), zap.Uint("id", dog.ID))
	return c.JSON(http.StatusCreated, dog)
}
