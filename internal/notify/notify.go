// Package notify is the adapter boundary toward the external
// notification pipeline (scheduled sends, WhatsApp, email). Failures
// here never fail the booking operation that triggered them; callers
// collect them as warnings.
package notify

import (
	"context"

	"kennel-service/internal/model"

	"go.uber.org/zap"
)

// WhatsAppMessage is a templated WhatsApp send request
type WhatsAppMessage struct {
	To        string            `json:"to"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables,omitempty"`
}

// EmailMessage is an email send request
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Dispatcher hands booking events to the external notification
// pipeline. All methods are best-effort fire-and-forget from the
// caller's point of view.
type Dispatcher interface {
	// ScheduleBookingNotifications schedules the full reminder set
	// for a new booking.
	ScheduleBookingNotifications(ctx context.Context, tenantID, bookingID uint) error
	// ScheduleForTrigger schedules a single trigger for a booking.
	ScheduleForTrigger(ctx context.Context, tenantID, bookingID uint, trigger model.NotificationTrigger) error
	SendWhatsApp(ctx context.Context, tenantID uint, msg WhatsAppMessage) error
	SendEmail(ctx context.Context, tenantID uint, msg EmailMessage) error
}

// LogDispatcher logs every dispatch instead of delivering it. Used in
// development and as the fallback when the broker is disabled.
type LogDispatcher struct {
	Log *zap.Logger
}

func (d *LogDispatcher) ScheduleBookingNotifications(ctx context.Context, tenantID, bookingID uint) error {
	d.Log.Info("Would schedule booking notifications",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("booking_id", bookingID))
	return nil
}

func (d *LogDispatcher) ScheduleForTrigger(ctx context.Context, tenantID, bookingID uint, trigger model.NotificationTrigger) error {
	d.Log.Info("Would schedule notification",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("booking_id", bookingID),
		zap.String("trigger", string(trigger)))
	return nil
}

func (d *LogDispatcher) SendWhatsApp(ctx context.Context, tenantID uint, msg WhatsAppMessage) error {
	d.Log.Info("Would send WhatsApp message",
		zap.Uint("tenant_id", tenantID),
		zap.String("to", msg.To),
		zap.String("template", msg.Template))
	return nil
}

func (d *LogDispatcher) SendEmail(ctx context.Context, tenantID uint, msg EmailMessage) error {
	d.Log.Info("Would send email",
		zap.Uint("tenant_id", tenantID),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
