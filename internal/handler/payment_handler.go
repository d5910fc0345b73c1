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

// PaymentRequest defines the structure for payment creation requests
type PaymentRequest struct {
	BookingID uint                `json:"booking_id"`
	Amount    float64             `json:"amount"`
	Method    model.PaymentMethod `json:"method"`
}

// ListPayments handles retrieving payments, optionally filtered by booking
func ListPayments(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	query := database.GetDB().Where("tenant_id = ?", tenantID)
	if bookingID := c.QueryParam("booking_id"); bookingID != "" {
		query = query.Where("booking_id = ?", bookingID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var payments []model.Payment
	if result := query.Order("created_at DESC").Find(&payments); result.Error != nil {
		log.Error("Failed to list payments", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve payments"})
	}

	return c.JSON(http.StatusOK, payments)
}

// CreatePayment handles recording a payment against a booking
func CreatePayment(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id is required"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}
	if req.Method == "" {
		req.Method = model.PaymentMethodCash
	}

	// The booking must exist within the same tenant.
	defer prometheus.TrackDBOperation("insert")(time.Now())
	var count int64
	if result := database.GetDB().Model(&model.Booking{}).
		Where("tenant_id = ? AND id = ?", tenantID, req.BookingID).
		Count(&count); result.Error != nil {
		log.Error("Failed to verify booking", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify booking"})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	payment := model.Payment{
		TenantID:  tenantID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    req.Method,
	}

	if result := database.GetDB().Create(&payment); result.Error != nil {
		log.Error("Failed to create payment", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment creation failed"})
	}

	log.Info("Payment recorded",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("booking_id", req.BookingID),
		zap.Float64("amount", req.Amount))
	return c.JSON(http.StatusCreated, payment)
}
