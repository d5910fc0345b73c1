package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kennel-service/internal/booking"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP
type BookingHandler struct {
	svc *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// List handles GET /api/bookings?month=&year=
func (h *BookingHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))

	res, err := h.svc.List(c.Request().Context(), tenantID, time.Month(month), year)
	if err != nil {
		log.Error("Failed to list bookings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve bookings"})
	}

	return c.JSON(http.StatusOK, res)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var req booking.CreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse booking creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	res, err := h.svc.Create(c.Request().Context(), tenantID, &req)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			log.Warn("Booking creation rejected", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create booking", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	log.Info("Bookings created",
		zap.Uint("tenant_id", tenantID),
		zap.Int("count", len(res.Bookings)),
		zap.Int("warnings", len(res.Warnings)))

	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /api/bookings/:id
func (h *BookingHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking ID"})
	}

	b, err := h.svc.Get(c.Request().Context(), tenantID, uint(id))
	if err != nil {
		log.Error("Failed to get booking", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve booking"})
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	return c.JSON(http.StatusOK, b)
}

// Update handles PATCH/PUT /api/bookings/:id
func (h *BookingHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking ID"})
	}

	var patch booking.Patch
	if err := c.Bind(&patch); err != nil {
		log.Error("Failed to parse booking update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	res, err := h.svc.Update(c.Request().Context(), tenantID, uint(id), &patch)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to update booking", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if res == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /api/bookings?id=
func (h *BookingHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 32)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id query parameter is required"})
	}

	deleted, err := h.svc.Delete(c.Request().Context(), tenantID, uint(id))
	if err != nil {
		log.Error("Failed to delete booking", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if deleted == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	log.Info("Booking deleted", zap.Uint("tenant_id", tenantID), zap.Uint64("id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// ListUnpaid handles GET /api/bookings/unpaid
func (h *BookingHandler) ListUnpaid(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	unpaid, err := h.svc.ListUnpaid(c.Request().Context(), tenantID, time.Now())
	if err != nil {
		log.Error("Failed to list unpaid bookings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve unpaid bookings"})
	}

	return c.JSON(http.StatusOK, unpaid)
}
