package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kennel-service/internal/model"

	"github.com/IBM/sarama"
)

// Event kinds published to the booking-events topic
const (
	EventScheduleAll     = "notifications.schedule_all"
	EventScheduleTrigger = "notifications.schedule"
	EventSendWhatsApp    = "whatsapp.send"
	EventSendEmail       = "email.send"
)

// Event is the wire format consumed by the notification pipeline
type Event struct {
	Kind      string                    `json:"kind"`
	TenantID  uint                      `json:"tenant_id"`
	BookingID uint                      `json:"booking_id,omitempty"`
	Trigger   model.NotificationTrigger `json:"trigger,omitempty"`
	WhatsApp  *WhatsAppMessage          `json:"whatsapp,omitempty"`
	Email     *EmailMessage             `json:"email,omitempty"`
	At        time.Time                 `json:"at"`
}

// KafkaDispatcher publishes dispatch requests to Kafka for the
// external notification service to consume. Messages are keyed by
// booking id so per-booking ordering is preserved.
type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaDispatcher creates a dispatcher backed by a sync producer
func NewKafkaDispatcher(brokers []string, topic string) (*KafkaDispatcher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaDispatcher{producer: producer, topic: topic}, nil
}

func (d *KafkaDispatcher) publish(ev Event) error {
	ev.At = time.Now().UTC()

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(ev.BookingID), 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("tenant_id"), Value: []byte(strconv.FormatUint(uint64(ev.TenantID), 10))},
		},
	}

	_, _, err = d.producer.SendMessage(msg)
	return err
}

func (d *KafkaDispatcher) ScheduleBookingNotifications(ctx context.Context, tenantID, bookingID uint) error {
	return d.publish(Event{Kind: EventScheduleAll, TenantID: tenantID, BookingID: bookingID})
}

func (d *KafkaDispatcher) ScheduleForTrigger(ctx context.Context, tenantID, bookingID uint, trigger model.NotificationTrigger) error {
	return d.publish(Event{Kind: EventScheduleTrigger, TenantID: tenantID, BookingID: bookingID, Trigger: trigger})
}

func (d *KafkaDispatcher) SendWhatsApp(ctx context.Context, tenantID uint, msg WhatsAppMessage) error {
	return d.publish(Event{Kind: EventSendWhatsApp, TenantID: tenantID, WhatsApp: &msg})
}

func (d *KafkaDispatcher) SendEmail(ctx context.Context, tenantID uint, msg EmailMessage) error {
	return d.publish(Event{Kind: EventSendEmail, TenantID: tenantID, Email: &msg})
}

// Close shuts down the underlying producer
func (d *KafkaDispatcher) Close() error {
	if d.producer == nil {
		return nil
	}
	return d.producer.Close()
}
