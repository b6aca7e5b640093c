package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type jsonDecoder struct{}

func (jsonDecoder) HandleUpdate(r *http.Request) (*tgbotapi.Update, error) {
	var u tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

type recordingDispatcher struct {
	updates []tgbotapi.Update
}

func (d *recordingDispatcher) Dispatch(u tgbotapi.Update) {
	d.updates = append(d.updates, u)
}

func TestWebhookReceive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	disp := &recordingDispatcher{}
	r := gin.New()
	r.POST("/telegram/webhook/:secret", NewWebhookHandler(jsonDecoder{}, disp, "s3cr3t").Receive)

	const callback = `{"update_id":1,"callback_query":{"id":"q1","from":{"id":42},"data":"confirm:a1b2c3d4"}}`

	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"callback", "/telegram/webhook/s3cr3t", callback, http.StatusOK},
		{"broken", "/telegram/webhook/s3cr3t", `{"update_id":`, http.StatusBadRequest},
		{"wrong secret", "/telegram/webhook/guess", callback, http.StatusForbidden},
		{"secret prefix", "/telegram/webhook/s3cr", callback, http.StatusForbidden},
		{"no secret", "/telegram/webhook", callback, http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.status)
		}
	}

	if len(disp.updates) != 1 || disp.updates[0].CallbackQuery.Data != "confirm:a1b2c3d4" {
		t.Errorf("updates = %+v", disp.updates)
	}
}

func TestWebhookWithoutSecretRejectsAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	disp := &recordingDispatcher{}
	r := gin.New()
	r.POST("/telegram/webhook/:secret", NewWebhookHandler(jsonDecoder{}, disp, "").Receive)

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/x", strings.NewReader(`{"update_id":1}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if len(disp.updates) != 0 {
		t.Errorf("updates = %+v", disp.updates)
	}
}
