package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
	"github.com/BruksfildServices01/barbershop-bot/internal/usecase/booking"
)

const handleTimeout = 15 * time.Second

// Sender é satisfeito por *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Flow é o núcleo da conversa visto pelo gateway.
type Flow interface {
	HandleText(ctx context.Context, in booking.Inbound) ([]booking.Reply, error)
	HandleSelection(ctx context.Context, in booking.Inbound) ([]booking.Reply, error)
}

// Gateway distribui updates por usuário entre N workers: o mesmo usuário
// cai sempre no mesmo worker, então os eventos de uma conversa são
// processados em ordem.
type Gateway struct {
	sender Sender
	flow   Flow
	shards []chan tgbotapi.Update
	wg     sync.WaitGroup
	once   sync.Once
}

func New(sender Sender, flow Flow, workers int) *Gateway {
	if workers < 1 {
		workers = 1
	}

	g := &Gateway{
		sender: sender,
		flow:   flow,
		shards: make([]chan tgbotapi.Update, workers),
	}

	for i := range g.shards {
		g.shards[i] = make(chan tgbotapi.Update, 64)
		g.wg.Add(1)
		go g.worker(g.shards[i])
	}

	return g
}

// Run consome o canal de long polling até ctx acabar ou o canal fechar.
func (g *Gateway) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			g.Dispatch(u)
		}
	}
}

// Dispatch enfileira o update no worker do usuário. Updates sem
// remetente são ignorados.
func (g *Gateway) Dispatch(u tgbotapi.Update) {
	userID := senderID(u)
	if userID == 0 {
		return
	}

	idx := int(uint64(userID) % uint64(len(g.shards)))
	g.shards[idx] <- u
}

// Close para de aceitar updates e espera os workers esvaziarem as filas.
func (g *Gateway) Close() {
	g.once.Do(func() {
		for _, ch := range g.shards {
			close(ch)
		}
	})
	g.wg.Wait()
}

func (g *Gateway) worker(updates <-chan tgbotapi.Update) {
	defer g.wg.Done()

	for u := range updates {
		g.process(u)
	}
}

func (g *Gateway) process(u tgbotapi.Update) {
	userID := senderID(u)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	ctx = logger.WithRequest(ctx, uuid.NewString(), userID)

	var (
		chatID  int64
		replies []booking.Reply
		err     error
	)

	switch {
	case u.CallbackQuery != nil:
		cb := u.CallbackQuery

		if _, err := g.sender.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			logger.WarnContext(ctx, "callback ack failed", "error", err)
		}

		chatID = cb.From.ID
		if cb.Message != nil && cb.Message.Chat != nil {
			chatID = cb.Message.Chat.ID
		}

		logger.DebugContext(ctx, "selection", "token", cb.Data)
		replies, err = g.flow.HandleSelection(ctx, booking.Inbound{
			UserID:      userID,
			DisplayName: displayName(cb.From),
			Token:       cb.Data,
		})

	case u.Message != nil:
		msg := u.Message
		chatID = msg.Chat.ID

		if msg.Text == "" {
			return
		}

		replies, err = g.flow.HandleText(ctx, booking.Inbound{
			UserID:      userID,
			DisplayName: displayName(msg.From),
			Text:        msg.Text,
		})

	default:
		return
	}

	if err != nil {
		logger.ErrorContext(ctx, "handle update failed", "error", err)
		replies = []booking.Reply{{Text: booking.MsgApology}}
	}

	for _, r := range replies {
		if _, err := g.sender.Send(render(chatID, r)); err != nil {
			logger.ErrorContext(ctx, "send failed", "error", err)
		}
	}
}

func senderID(u tgbotapi.Update) int64 {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		return u.CallbackQuery.From.ID
	case u.Message != nil && u.Message.From != nil && u.Message.Chat != nil:
		return u.Message.From.ID
	}
	return 0
}

func displayName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	return name
}
