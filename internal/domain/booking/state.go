package booking

import (
	"context"
	"time"
)

type Step string

const (
	StepIdle             Step = ""
	StepChoosingLocation Step = "choosing_location"
	StepChoosingBarber   Step = "choosing_barber"
	StepChoosingDay      Step = "choosing_day"
	StepChoosingTime     Step = "choosing_time"
	StepConfirming       Step = "confirming"
	StepAwaitingPhone    Step = "awaiting_phone"
)

// State é o estado efêmero de uma conversa. O valor zero é Idle.
// MenuID muda a cada menu renderizado num passo novo.
type State struct {
	Step       Step      `json:"step"`
	LocationID uint      `json:"location_id,omitempty"`
	BarberID   uint      `json:"barber_id,omitempty"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	MenuID     string    `json:"menu_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s State) IsIdle() bool {
	return s.Step == StepIdle
}

// StateStore guarda o estado por conversa. Get devolve o valor zero quando
// não há estado salvo.
type StateStore interface {
	Get(ctx context.Context, conversationID int64) (State, error)
	Set(ctx context.Context, conversationID int64, st State) error
	Clear(ctx context.Context, conversationID int64) error
}
