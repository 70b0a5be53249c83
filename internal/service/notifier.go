package service

import (
	"context"
	"encoding/json"
	"time"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// AppointmentEventsChannel is the Redis pub/sub channel realtime clients
// subscribe to.
const AppointmentEventsChannel = "clinic:appointments"

const notifyTimeout = 5 * time.Second

// AppointmentEvent is the broadcast payload for a lifecycle change.
type AppointmentEvent struct {
	Event         string                     `json:"event"`
	AppointmentID uuid.UUID                  `json:"appointment_id"`
	PatientID     uuid.UUID                  `json:"patient_id"`
	DoctorID      *uuid.UUID                 `json:"doctor_id,omitempty"`
	Status        entity.AppointmentStatus   `json:"status"`
	Priority      entity.AppointmentPriority `json:"priority"`
	OccurredAt    time.Time                  `json:"occurred_at"`
}

// EventNotifier broadcasts appointment lifecycle events over Redis
// pub/sub. Delivery is fire-and-forget, at-most-once: publish failures are
// logged and never surfaced to the caller, and the publish happens outside
// any database transaction.
type EventNotifier struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewEventNotifier(redisClient *redis.Client, log *logrus.Logger) *EventNotifier {
	return &EventNotifier{
		redisClient: redisClient,
		log:         log,
	}
}

// AppointmentChanged publishes the event asynchronously. Safe to call
// after the transaction commits; never blocks the request for long and
// never returns an error.
func (n *EventNotifier) AppointmentChanged(event string, apt *entity.Appointment) {
	if apt == nil {
		return
	}
	payload := AppointmentEvent{
		Event:         event,
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		Status:        apt.Status,
		Priority:      apt.Priority,
		OccurredAt:    time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		body, err := json.Marshal(payload)
		if err != nil {
			n.log.Warnf("Failed to marshal appointment event (non-fatal): %+v", err)
			return
		}
		if err := n.redisClient.Publish(ctx, AppointmentEventsChannel, body).Err(); err != nil {
			n.log.Warnf("Failed to publish appointment event for %s (non-fatal): %+v", apt.ID, err)
		}
	}()
}
