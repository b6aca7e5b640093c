package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
)

const (
	AppointmentCreated  = "appointment.created"
	AppointmentConflict = "appointment.conflict"
	ClientPhoneUpdated  = "client.phone_updated"
)

var subjects = map[string]string{
	audit.ActionAppointmentCreated:  AppointmentCreated,
	audit.ActionAppointmentConflict: AppointmentConflict,
	audit.ActionClientPhoneUpdated:  ClientPhoneUpdated,
}

type Payload struct {
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink publica os eventos de auditoria no NATS.
type NATSSink struct {
	conn publisher
	nc   *nats.Conn
}

func NewNATSSink(url string) (*NATSSink, error) {
	nc, err := nats.Connect(url, nats.Name("barbershop-bot"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSink{conn: nc, nc: nc}, nil
}

func Subject(action string) (string, bool) {
	s, ok := subjects[action]
	return s, ok
}

func (n *NATSSink) Log(ctx context.Context, ev audit.Event) error {
	subject, ok := Subject(ev.Action)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(Payload{
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		UserID:     ev.UserID,
		Metadata:   ev.Metadata,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject)

	return n.conn.Publish(subject, payload)
}

func (n *NATSSink) Close() {
	if n.nc != nil {
		n.nc.Close()
	}
}

var _ audit.Sink = (*NATSSink)(nil)
