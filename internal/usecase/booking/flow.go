package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	apptdomain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
	ucAppointment "github.com/BruksfildServices01/barbershop-bot/internal/usecase/appointment"
)

// Inbound é um evento já normalizado pelo gateway: texto livre ou o
// token de uma opção de menu.
type Inbound struct {
	UserID      int64
	DisplayName string
	Text        string
	Token       string
}

// Flow é a máquina de estados da reserva. Pode ser usada por várias
// conversas ao mesmo tempo; a ordem dentro de uma conversa fica a cargo
// do gateway.
//
// O estado só é gravado depois que todas as chamadas ao armazenamento do
// passo deram certo. Em erro de armazenamento o estado anterior fica
// intacto e o erro sobe para o gateway.
type Flow struct {
	states    domain.StateStore
	directory apptdomain.DirectoryStore
	slots     apptdomain.AvailabilityStore
	create    *ucAppointment.CreateAppointment
	audit     *audit.Dispatcher
	now       func() time.Time
}

func NewFlow(
	states domain.StateStore,
	directory apptdomain.DirectoryStore,
	slots apptdomain.AvailabilityStore,
	create *ucAppointment.CreateAppointment,
	dispatcher *audit.Dispatcher,
	now func() time.Time,
) *Flow {
	if now == nil {
		now = time.Now
	}
	return &Flow{
		states:    states,
		directory: directory,
		slots:     slots,
		create:    create,
		audit:     dispatcher,
		now:       now,
	}
}

// HandleText trata comandos e texto livre.
func (f *Flow) HandleText(ctx context.Context, in Inbound) ([]Reply, error) {
	text := strings.TrimSpace(in.Text)

	switch command(text) {
	case "/start":
		return f.start(ctx, in)
	case "/cancel":
		return f.cancel(ctx, in)
	}

	st, err := f.states.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if st.Step == domain.StepAwaitingPhone {
		return f.capturePhone(ctx, in, text)
	}

	return []Reply{notice(MsgUseStart)}, nil
}

// HandleSelection trata o toque numa opção de menu. Tokens de um menu
// que não é o atual da conversa são ignorados com um aviso.
func (f *Flow) HandleSelection(ctx context.Context, in Inbound) ([]Reply, error) {
	tok, err := domain.ParseToken(in.Token)
	if err != nil {
		logger.DebugContext(ctx, "unparseable token", "token", in.Token, "error", err)
		return []Reply{notice(MsgStaleMenu)}, nil
	}

	st, err := f.states.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if !tok.Matches(st) {
		logger.DebugContext(ctx, "stale token",
			"token", in.Token,
			"step", st.Step,
			"menu_id", st.MenuID,
		)
		return []Reply{notice(MsgStaleMenu)}, nil
	}

	switch tok.Kind {
	case domain.TokenStart:
		return f.beginBooking(ctx, in)
	case domain.TokenPhone:
		return f.askPhone(ctx, in)
	case domain.TokenCancel:
		return f.cancel(ctx, in)
	case domain.TokenLocation:
		return f.chooseLocation(ctx, in, st, tok.ID)
	case domain.TokenBarber:
		return f.chooseBarber(ctx, in, st, tok.ID)
	case domain.TokenDay:
		return f.chooseDay(ctx, in, st, tok.Value)
	case domain.TokenTime:
		return f.chooseTime(ctx, in, st, tok.Value)
	case domain.TokenConfirm:
		return f.confirm(ctx, in, st)
	}

	return []Reply{notice(MsgStaleMenu)}, nil
}

// command devolve o comando sem argumentos e sem o sufixo @bot.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

func (f *Flow) start(ctx context.Context, in Inbound) ([]Reply, error) {
	if err := f.directory.UpsertClient(ctx, in.UserID, displayName(in)); err != nil {
		return nil, err
	}
	if err := f.states.Clear(ctx, in.UserID); err != nil {
		return nil, err
	}
	return []Reply{mainMenu()}, nil
}

func (f *Flow) cancel(ctx context.Context, in Inbound) ([]Reply, error) {
	if err := f.states.Clear(ctx, in.UserID); err != nil {
		return nil, err
	}
	return []Reply{notice(MsgCancelled)}, nil
}

func displayName(in Inbound) string {
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		return name
	}
	return "Client"
}
