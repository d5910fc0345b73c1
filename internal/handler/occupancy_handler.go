package handler

import (
	"net/http"
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/occupancy"
	"kennel-service/internal/pricing"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/logger"
	"kennel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OccupancyHandler serves the per-room calendar view
type OccupancyHandler struct {
	db *gorm.DB
}

func NewOccupancyHandler(db *gorm.DB) *OccupancyHandler {
	return &OccupancyHandler{db: db}
}

// RoomOccupancy is one room's slice of the calendar day
type RoomOccupancy struct {
	Room model.Room         `json:"room"`
	Load occupancy.RoomLoad `json:"load"`
	Dogs []model.Booking    `json:"dogs"`
}

// Day handles GET /api/occupancy?date=&include_all=. The default mode
// lists dogs physically present on the date; include_all also lists
// same-day departures for the day-detail view.
func (h *OccupancyHandler) Day(c echo.Context) error {
	log := logger.FromContext(c)
	tenantID := tenant.FromEcho(c)

	day, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	includeAll := c.QueryParam("include_all") == "true"

	defer prometheus.TrackDBOperation("query")(time.Now())
	var rooms []model.Room
	if err := h.db.Where("tenant_id = ?", tenantID).Find(&rooms).Error; err != nil {
		log.Error("Failed to load rooms", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}

	// Every booking whose range can touch the day; the per-day
	// predicates do the precise filtering.
	nextDay := pricing.DateOnly(day).AddDate(0, 0, 1)
	var bookings []model.Booking
	if err := h.db.Where("tenant_id = ? AND start_date < ? AND end_date >= ?",
		tenantID, nextDay, pricing.DateOnly(day)).
		Preload("Dog").
		Find(&bookings).Error; err != nil {
		log.Error("Failed to load bookings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}

	out := make([]RoomOccupancy, 0, len(rooms))
	for _, room := range rooms {
		entry := RoomOccupancy{
			Room: room,
			Load: occupancy.LoadForRoom(bookings, room, day),
			Dogs: make([]model.Booking, 0),
		}
		for _, b := range bookings {
			if b.RoomID != room.ID {
				continue
			}
			if includeAll && occupancy.Touches(b, day) {
				entry.Dogs = append(entry.Dogs, b)
			} else if !includeAll && occupancy.Occupies(b, day) {
				entry.Dogs = append(entry.Dogs, b)
			}
		}
		out = append(out, entry)
	}

	return c.JSON(http.StatusOK, out)
}
