package audit

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
)

const (
	ActionAppointmentCreated  = "appointment_created"
	ActionAppointmentConflict = "appointment_conflict"
	ActionClientPhoneUpdated  = "client_phone_updated"
)

type Event struct {
	UserID   *int64
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink recebe os eventos já fora do caminho da requisição.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Log(ctx, ev); err != nil {
				logger.Error("audit error", "action", ev.Action, "error", err)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila cheia: o evento é descartado, o fluxo nunca bloqueia
		logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// LogSink escreve o evento no log estruturado.
type LogSink struct{}

func (LogSink) Log(ctx context.Context, ev Event) error {
	logger.InfoContext(ctx, "audit",
		"action", ev.Action,
		"entity", ev.Entity,
		"entity_id", ev.EntityID,
		"user_id", ev.UserID,
		"metadata", ev.Metadata,
	)
	return nil
}
