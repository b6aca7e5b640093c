package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barbershop-bot/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-bot/internal/db"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/gateway/telegram"
	"github.com/BruksfildServices01/barbershop-bot/internal/handlers"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
	"github.com/BruksfildServices01/barbershop-bot/internal/routes"
	"github.com/BruksfildServices01/barbershop-bot/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-bot/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/usecase/booking"
)

func main() {
	cfg := config.Load()

	if err := run(cfg); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := domain.NewSlotCatalog(cfg.SlotCatalog)
	if err != nil {
		return err
	}

	checks := map[string]handlers.Check{}

	// ======================================================
	// STORAGE
	// ======================================================
	store, err := openStorage(cfg, catalog, checks)
	if err != nil {
		return err
	}

	if cfg.SeedDirectory {
		if err := dbpkg.Seed(ctx, store.seeder, dbpkg.DirectorySeed); err != nil {
			return err
		}
	}

	states, closeStates, err := openStateStore(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeStates()

	dispatcher, closeAudit := openAudit(cfg, store.db)
	defer closeAudit()

	// ======================================================
	// BOOKING FLOW
	// ======================================================
	flow := booking.NewFlow(
		states,
		store.directory,
		store.slots,
		ucAppointment.NewCreateAppointment(store.slots, dispatcher),
		dispatcher,
		timezone.Clock(cfg.ShopTimezone),
	)

	// ======================================================
	// TELEGRAM
	// ======================================================
	var (
		bot     *tgbotapi.BotAPI
		gateway *telegram.Gateway
		webhook *handlers.WebhookHandler
	)

	if cfg.BotToken == "" {
		logger.Warn("BOT_TOKEN not set, running staff API only")
	} else {
		bot, err = tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			return err
		}

		gateway = telegram.New(bot, flow, cfg.GatewayWorkers)
		defer gateway.Close()

		if cfg.WebhookURL != "" {
			if cfg.WebhookSecret == "" {
				return errors.New("WEBHOOK_SECRET is required with WEBHOOK_URL")
			}
			wh, err := tgbotapi.NewWebhook(cfg.WebhookEndpoint())
			if err != nil {
				return err
			}
			if _, err := bot.Request(wh); err != nil {
				return err
			}
			webhook = handlers.NewWebhookHandler(bot, gateway, cfg.WebhookSecret)
			logger.Info("telegram webhook registered", "bot", bot.Self.UserName)
		} else {
			if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
				return err
			}

			u := tgbotapi.NewUpdate(0)
			u.Timeout = 30
			updates := bot.GetUpdatesChan(u)

			polling := make(chan struct{})
			go func() {
				defer close(polling)
				gateway.Run(ctx, updates)
			}()
			defer func() {
				bot.StopReceivingUpdates()
				<-polling
			}()

			logger.Info("telegram long polling started", "bot", bot.Self.UserName)
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Directory:    store.directory,
		Slots:        store.slots,
		AuditDB:      store.db,
		Webhook:      webhook,
		HealthChecks: checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
	}()

	logger.Info("server running", "addr", cfg.Addr(), "storage", cfg.StorageDriver, "state", cfg.StateDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// webhooks em andamento terminam antes do gateway fechar
	<-stopped
	return nil
}
