package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
)

// UpdateDecoder é satisfeito por *tgbotapi.BotAPI.
type UpdateDecoder interface {
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

type UpdateDispatcher interface {
	Dispatch(u tgbotapi.Update)
}

type WebhookHandler struct {
	decoder    UpdateDecoder
	dispatcher UpdateDispatcher
	secret     string
}

func NewWebhookHandler(decoder UpdateDecoder, dispatcher UpdateDispatcher, secret string) *WebhookHandler {
	return &WebhookHandler{decoder: decoder, dispatcher: dispatcher, secret: secret}
}

// POST /telegram/webhook/:secret
//
// Responde 200 logo após enfileirar; o processamento é assíncrono.
// Segredo vazio no handler recusa tudo.
func (h *WebhookHandler) Receive(c *gin.Context) {
	got := c.Param("secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		logger.WarnContext(c.Request.Context(), "webhook secret mismatch", "remote", c.ClientIP())
		httperr.Forbidden(c, "invalid_webhook_secret", "invalid webhook secret")
		return
	}

	update, err := h.decoder.HandleUpdate(c.Request)
	if err != nil {
		logger.WarnContext(c.Request.Context(), "invalid webhook payload", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	h.dispatcher.Dispatch(*update)
	c.Status(http.StatusOK)
}
