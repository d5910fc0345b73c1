// Package booking implements the booking lifecycle: creation
// (including first-time client onboarding), reads with relations,
// whitelisted updates with status-transition side effects, ordered
// deletes, and the list/unpaid views.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/notify"
	"kennel-service/internal/occupancy"
	"kennel-service/internal/pricing"
	"kennel-service/internal/settings"
	"kennel-service/prometheus"

	"gorm.io/gorm"
)

// Balances below this are treated as settled. It is a rounding
// tolerance, not a minimum-debt rule.
const unpaidTolerance = 10.0

// Service is the booking lifecycle manager. Every method takes the
// caller's resolved tenant id explicitly; there is no ambient tenant
// state.
type Service struct {
	db         *gorm.DB
	dispatcher notify.Dispatcher
	settings   *settings.Store
}

func NewService(db *gorm.DB, dispatcher notify.Dispatcher, settings *settings.Store) *Service {
	return &Service{db: db, dispatcher: dispatcher, settings: settings}
}

// Result carries the rows a mutation produced plus any side-effect
// failures. Warnings never imply the primary operation failed; they
// exist so callers and tests can observe dispatch failures that are
// otherwise swallowed.
type Result struct {
	Bookings []model.Booking `json:"bookings"`
	Warnings []string        `json:"warnings,omitempty"`
}

// UpdateResult is Result's single-row counterpart
type UpdateResult struct {
	Booking  *model.Booking `json:"booking"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ListResult partitions a tenant's bookings around now. All is the
// authoritative ordering (start date descending); Upcoming and Past
// are convenience shapes for the calendar UI.
type ListResult struct {
	All      []model.Booking `json:"all"`
	Upcoming []model.Booking `json:"upcoming"`
	Past     []model.Booking `json:"past"`
}

// UnpaidBooking is a finished booking with an outstanding balance
type UnpaidBooking struct {
	model.Booking
	occupancy.Balance
}

// Create validates the request, then inserts the owner (for new
// clients), the dogs, and one booking row per dog/room pair inside a
// single transaction, finishing with the unconditional overwrite of
// each dog's current room. Notification side effects run only after
// commit and report failures as warnings.
func (s *Service) Create(ctx context.Context, tenantID uint, req *CreateRequest) (*Result, error) {
	prometheus.RecordBookingOperation("create")

	if err := req.Validate(); err != nil {
		prometheus.RecordError("validation")
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.BookingStatusConfirmed
	}

	dogCount := req.DogCount()
	days := pricing.DayCount(req.StartDate, req.EndDate, req.ExemptLastDay)

	// Each persisted row carries the per-dog share of the total.
	var perDogTotal *float64
	if req.TotalPrice != nil && *req.TotalPrice != 0 {
		v := pricing.PerDogShare(*req.TotalPrice, dogCount)
		perDogTotal = &v
	} else if req.PriceType == model.PriceTypeDaily && req.PricePerDay != nil {
		v := *req.PricePerDay * float64(days)
		perDogTotal = &v
	}

	var (
		owner   model.Owner
		created []model.Booking
		pairs   []DogAssignment
	)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsNewClient {
			owner = model.Owner{
				TenantID: tenantID,
				Name:     req.OwnerName,
				Phone:    req.OwnerPhone,
				Email:    req.OwnerEmail,
				Address:  req.OwnerAddress,
			}
			if err := tx.Create(&owner).Error; err != nil {
				return err
			}

			for _, nd := range req.NewDogs {
				dog := model.Dog{
					TenantID:     tenantID,
					OwnerID:      owner.ID,
					Name:         nd.Name,
					Breed:        nd.Breed,
					SpecialNeeds: nd.SpecialNeeds,
				}
				if err := tx.Create(&dog).Error; err != nil {
					return err
				}
				pairs = append(pairs, DogAssignment{DogID: dog.ID, RoomID: nd.RoomID})
			}
		} else {
			if err := tx.Where("tenant_id = ? AND id = ?", tenantID, req.OwnerID).
				First(&owner).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: owner %d not found", ErrValidation, req.OwnerID)
				}
				return err
			}

			for _, da := range req.Dogs {
				var count int64
				if err := tx.Model(&model.Dog{}).
					Where("tenant_id = ? AND id = ? AND owner_id = ?", tenantID, da.DogID, req.OwnerID).
					Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return fmt.Errorf("%w: dog %d not found for owner %d", ErrValidation, da.DogID, req.OwnerID)
				}
			}
			pairs = req.Dogs
		}

		for _, pair := range pairs {
			b := model.Booking{
				TenantID:      tenantID,
				DogID:         pair.DogID,
				OwnerID:       owner.ID,
				RoomID:        pair.RoomID,
				StartDate:     req.StartDate,
				EndDate:       req.EndDate,
				Status:        status,
				PriceType:     req.PriceType,
				PricePerDay:   req.PricePerDay,
				TotalPrice:    perDogTotal,
				PaymentMethod: req.PaymentMethod,
				ExemptLastDay: req.ExemptLastDay,
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
			created = append(created, b)
		}

		// Unconditional overwrite: the dog's current room is the
		// latest assignment, not a history.
		for _, pair := range pairs {
			if err := tx.Model(&model.Dog{}).
				Where("tenant_id = ? AND id = ?", tenantID, pair.DogID).
				Update("current_room_id", pair.RoomID).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrValidation) {
			prometheus.RecordError("db_error")
		}
		return nil, err
	}

	warnings := s.afterCreate(ctx, tenantID, owner, created)

	return &Result{Bookings: created, Warnings: warnings}, nil
}

// afterCreate runs the best-effort side effects for freshly created
// bookings: reminder scheduling, a WhatsApp confirmation, and an email
// when the owner has an address.
func (s *Service) afterCreate(ctx context.Context, tenantID uint, owner model.Owner, created []model.Booking) []string {
	var warnings []string

	for _, b := range created {
		if err := s.dispatcher.ScheduleBookingNotifications(ctx, tenantID, b.ID); err != nil {
			prometheus.RecordSideEffect("schedule", "failed")
			warnings = append(warnings, fmt.Sprintf("schedule notifications for booking %d: %v", b.ID, err))
		} else {
			prometheus.RecordSideEffect("schedule", "ok")
		}
	}

	warnings = append(warnings, s.sendConfirmation(ctx, tenantID, owner, created[0], "")...)

	return warnings
}

// sendConfirmation sends the WhatsApp and (when possible) email
// confirmations for a booking, returning failures as warnings.
func (s *Service) sendConfirmation(ctx context.Context, tenantID uint, owner model.Owner, b model.Booking, note string) []string {
	var warnings []string

	kennelName, err := s.settings.Get(ctx, tenantID, model.SettingKennelName, "the kennel")
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("load kennel name: %v", err))
		kennelName = "the kennel"
	}

	wa := notify.WhatsAppMessage{
		To:       owner.Phone,
		Template: string(model.TriggerBookingConfirmation),
		Variables: map[string]string{
			"owner":      owner.Name,
			"kennel":     kennelName,
			"start_date": b.StartDate.Format("2006-01-02"),
			"end_date":   b.EndDate.Format("2006-01-02"),
		},
	}
	if err := s.dispatcher.SendWhatsApp(ctx, tenantID, wa); err != nil {
		prometheus.RecordSideEffect("whatsapp", "failed")
		warnings = append(warnings, fmt.Sprintf("whatsapp confirmation: %v", err))
	} else {
		prometheus.RecordSideEffect("whatsapp", "ok")
	}

	if owner.Email != "" {
		body := fmt.Sprintf("<p>Hi %s, your booking at %s from %s to %s is confirmed.</p>",
			owner.Name, kennelName, b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"))
		if note != "" {
			body += fmt.Sprintf("<p>%s</p>", note)
		}
		email := notify.EmailMessage{
			To:      owner.Email,
			Subject: fmt.Sprintf("Booking confirmed at %s", kennelName),
			HTML:    body,
		}
		if err := s.dispatcher.SendEmail(ctx, tenantID, email); err != nil {
			prometheus.RecordSideEffect("email", "failed")
			warnings = append(warnings, fmt.Sprintf("email confirmation: %v", err))
		} else {
			prometheus.RecordSideEffect("email", "ok")
		}
	}

	return warnings
}

// Get fetches one booking with its dog, owner, room and payments,
// payments newest first. Absence is not an error: both return values
// are nil when no row matches within the tenant.
func (s *Service) Get(ctx context.Context, tenantID, id uint) (*model.Booking, error) {
	prometheus.RecordBookingOperation("get")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var b model.Booking
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Dog").
		Preload("Owner").
		Preload("Room").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at DESC")
		}).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		prometheus.RecordError("db_error")
		return nil, err
	}
	return &b, nil
}

// Update applies a whitelisted partial update. When any pricing input
// changes the total is recomputed for DAILY bookings. A status change
// into CONFIRMED or CANCELLED triggers the corresponding
// notifications; an unchanged status triggers nothing, and a cancelled
// booking rejects any status change. Side-effect failures come back as
// warnings.
func (s *Service) Update(ctx context.Context, tenantID, id uint, patch *Patch) (*UpdateResult, error) {
	prometheus.RecordBookingOperation("update")

	prev, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, nil
	}

	// CANCELLED is terminal: no transition leads out of it.
	if patch.Status != nil && *patch.Status != prev.Status &&
		prev.Status == model.BookingStatusCancelled {
		prometheus.RecordError("validation")
		return nil, fmt.Errorf("%w: a cancelled booking cannot change status", ErrValidation)
	}

	startDate := prev.StartDate
	endDate := prev.EndDate
	if patch.StartDate != nil {
		startDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		endDate = *patch.EndDate
	}
	if pricing.DateOnly(endDate).Before(pricing.DateOnly(startDate)) {
		prometheus.RecordError("validation")
		return nil, fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}

	updates := map[string]interface{}{}
	if patch.RoomID != nil {
		updates["room_id"] = *patch.RoomID
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.PriceType != nil {
		updates["price_type"] = *patch.PriceType
	}
	if patch.PricePerDay != nil {
		updates["price_per_day"] = *patch.PricePerDay
	}
	if patch.ExemptLastDay != nil {
		updates["exempt_last_day"] = *patch.ExemptLastDay
	}
	if patch.StartDate != nil {
		updates["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updates["end_date"] = *patch.EndDate
	}

	if patch.touchesPricing() {
		priceType := prev.PriceType
		if patch.PriceType != nil {
			priceType = *patch.PriceType
		}
		perDay := prev.PricePerDay
		if patch.PricePerDay != nil {
			perDay = patch.PricePerDay
		}
		exempt := prev.ExemptLastDay
		if patch.ExemptLastDay != nil {
			exempt = *patch.ExemptLastDay
		}
		if priceType == model.PriceTypeDaily && perDay != nil {
			days := pricing.DayCount(startDate, endDate, exempt)
			updates["total_price"] = *perDay * float64(days)
		}
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := s.db.WithContext(ctx).Model(&model.Booking{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Updates(updates).Error; err != nil {
			prometheus.RecordError("db_error")
			return nil, err
		}
	}

	var warnings []string
	if patch.Status != nil && *patch.Status != prev.Status {
		note := ""
		if patch.Note != nil {
			note = *patch.Note
		}
		warnings = s.afterTransition(ctx, tenantID, prev, *patch.Status, note)
	}

	updated, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return &UpdateResult{Booking: updated, Warnings: warnings}, nil
}

// afterTransition runs the side effects of a status change. Only the
// CONFIRMED and CANCELLED targets have any; CANCELLED is terminal.
func (s *Service) afterTransition(ctx context.Context, tenantID uint, prev *model.Booking, to model.BookingStatus, note string) []string {
	prometheus.RecordStatusTransition(string(to))

	owner := model.Owner{}
	if prev.Owner != nil {
		owner = *prev.Owner
	}

	var warnings []string

	switch to {
	case model.BookingStatusConfirmed:
		for _, trigger := range []model.NotificationTrigger{
			model.TriggerBookingConfirmation,
			model.TriggerCheckInReminder,
			model.TriggerCheckOutReminder,
		} {
			if err := s.dispatcher.ScheduleForTrigger(ctx, tenantID, prev.ID, trigger); err != nil {
				prometheus.RecordSideEffect("schedule", "failed")
				warnings = append(warnings, fmt.Sprintf("schedule %s: %v", trigger, err))
			} else {
				prometheus.RecordSideEffect("schedule", "ok")
			}
		}
		warnings = append(warnings, s.sendConfirmation(ctx, tenantID, owner, *prev, note)...)

	case model.BookingStatusCancelled:
		if owner.Email != "" {
			body := fmt.Sprintf("<p>Hi %s, your booking from %s to %s has been cancelled.</p>",
				owner.Name, prev.StartDate.Format("2006-01-02"), prev.EndDate.Format("2006-01-02"))
			if note != "" {
				body += fmt.Sprintf("<p>Reason: %s</p>", note)
			}
			email := notify.EmailMessage{
				To:      owner.Email,
				Subject: "Booking cancelled",
				HTML:    body,
			}
			if err := s.dispatcher.SendEmail(ctx, tenantID, email); err != nil {
				prometheus.RecordSideEffect("email", "failed")
				warnings = append(warnings, fmt.Sprintf("cancellation email: %v", err))
			} else {
				prometheus.RecordSideEffect("email", "ok")
			}
		}
	}

	return warnings
}

// Delete removes a booking and its dependents. The storage layer has
// no cascade; rows go in dependency order inside one transaction:
// scheduled notifications, payments, then the booking. The deleted
// booking (with relations) is returned for the caller's reference;
// nil means nothing matched.
func (s *Service) Delete(ctx context.Context, tenantID, id uint) (*model.Booking, error) {
	prometheus.RecordBookingOperation("delete")

	b, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND booking_id = ?", tenantID, id).
			Delete(&model.ScheduledNotification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND booking_id = ?", tenantID, id).
			Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&model.Booking{}).Error
	})
	if err != nil {
		prometheus.RecordError("db_error")
		return nil, err
	}

	return b, nil
}

// List returns the tenant's bookings ordered by start date
// descending, optionally restricted to those overlapping the given
// calendar month, partitioned into upcoming and past around now.
func (s *Service) List(ctx context.Context, tenantID uint, month time.Month, year int) (*ListResult, error) {
	prometheus.RecordBookingOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	q := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Dog").
		Preload("Owner").
		Preload("Room")

	if year > 0 && month >= time.January && month <= time.December {
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		nextMonth := monthStart.AddDate(0, 1, 0)
		// Overlap: the booking touches at least one day of the month.
		q = q.Where("start_date < ? AND end_date >= ?", nextMonth, monthStart)
	}

	var all []model.Booking
	if err := q.Order("start_date DESC").Find(&all).Error; err != nil {
		prometheus.RecordError("db_error")
		return nil, err
	}

	result := &ListResult{All: all}
	now := time.Now()
	for _, b := range all {
		if b.StartDate.Before(now) {
			result.Past = append(result.Past, b)
		} else {
			result.Upcoming = append(result.Upcoming, b)
		}
	}
	return result, nil
}

// ListUnpaid returns finished bookings (end date before now) whose
// remaining balance exceeds the rounding tolerance, most recently
// ended first. Status is deliberately not filtered, so a cancelled
// booking with an outstanding balance still appears.
func (s *Service) ListUnpaid(ctx context.Context, tenantID uint, now time.Time) ([]UnpaidBooking, error) {
	prometheus.RecordBookingOperation("list_unpaid")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND end_date < ?", tenantID, now).
		Preload("Dog").
		Preload("Owner").
		Preload("Payments").
		Order("end_date DESC").
		Find(&bookings).Error
	if err != nil {
		prometheus.RecordError("db_error")
		return nil, err
	}

	unpaid := make([]UnpaidBooking, 0)
	for _, b := range bookings {
		bal := occupancy.BalanceFor(b)
		if bal.Remaining > unpaidTolerance {
			unpaid = append(unpaid, UnpaidBooking{Booking: b, Balance: bal})
		}
	}
	return unpaid, nil
}
