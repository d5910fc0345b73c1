package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kennel-service/internal/model"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/database"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newHandlerDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func postJSON(t *testing.T, path, body string, tenantID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(tenant.ContextKey, tenantID)
	return c, rec
}

func TestCreatePayment_UnknownBookingIsNotFound(t *testing.T) {
	newHandlerDB(t, &model.Booking{}, &model.Payment{})

	c, rec := postJSON(t, "/api/payments", `{"booking_id":123,"amount":50}`, 1)
	if err := CreatePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing booking, got %d", rec.Code)
	}
}

func TestCreatePayment_StorageFailureIsServerError(t *testing.T) {
	// Only the payments table exists, so the booking-existence check
	// fails at the storage layer. That must surface as a 5xx, not be
	// read as "booking not found".
	newHandlerDB(t, &model.Payment{})

	c, rec := postJSON(t, "/api/payments", `{"booking_id":123,"amount":50}`, 1)
	if err := CreatePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on storage failure, got %d", rec.Code)
	}
}

func TestCreatePayment_ScopedToTenant(t *testing.T) {
	db := newHandlerDB(t, &model.Booking{}, &model.Payment{})

	b := model.Booking{TenantID: 2, DogID: 1, OwnerID: 1, RoomID: 1,
		Status: model.BookingStatusConfirmed, PriceType: model.PriceTypeFixed,
		PaymentMethod: model.PaymentMethodCash}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	c, rec := postJSON(t, "/api/payments", `{"booking_id":1,"amount":50}`, 1)
	if err := CreatePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected another tenant's booking to be invisible, got %d", rec.Code)
	}
}
