package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	"github.com/BruksfildServices01/barbershop-bot/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-bot/internal/db"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-bot/internal/events"
	"github.com/BruksfildServices01/barbershop-bot/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-bot/internal/infra/state"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
)

type storage struct {
	directory domain.DirectoryStore
	slots     domain.AvailabilityStore
	seeder    dbpkg.DirectoryWriter
	db        *gorm.DB
}

func openStorage(cfg *config.Config, catalog domain.SlotCatalog, checks map[string]handlers.Check) (*storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		mem := infraRepo.NewMemoryStore(catalog)
		return &storage{directory: mem, slots: mem, seeder: mem}, nil

	case "postgres":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}

		dir := infraRepo.NewDirectoryGormRepository(db)
		checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}

		return &storage{
			directory: dir,
			slots:     infraRepo.NewAppointmentGormRepository(db, catalog),
			seeder:    dir,
			db:        db,
		}, nil
	}

	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

// openStateStore devolve o store e uma função de encerramento.
func openStateStore(ctx context.Context, cfg *config.Config, checks map[string]handlers.Check) (booking.StateStore, func(), error) {
	switch cfg.StateDriver {
	case "memory":
		mem := state.NewMemoryStore(cfg.StateTTL)

		sweeper := cron.New()
		if err := sweeper.AddFunc("@every 10m", func() {
			if n := mem.Sweep(); n > 0 {
				logger.Info("expired conversations removed", "count", n)
			}
		}); err != nil {
			return nil, nil, fmt.Errorf("schedule sweep: %w", err)
		}
		sweeper.Start()

		return mem, sweeper.Stop, nil

	case "redis":
		rdb, err := state.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}

		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}

		return state.NewRedisStore(rdb, cfg.StateTTL), func() { _ = rdb.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown STATE_DRIVER %q", cfg.StateDriver)
}

// openAudit monta os sinks: tabela audit_logs quando há banco, senão o
// log; NATS é opcional e não impede o start.
func openAudit(cfg *config.Config, db *gorm.DB) (*audit.Dispatcher, func()) {
	var sinks []audit.Sink
	closers := []func(){}

	if db != nil {
		sinks = append(sinks, audit.New(db))
	} else {
		sinks = append(sinks, audit.LogSink{})
	}

	if cfg.NATSUrl != "" {
		nsink, err := events.NewNATSSink(cfg.NATSUrl)
		if err != nil {
			logger.Warn("nats unavailable, events disabled", "error", err)
		} else {
			sinks = append(sinks, nsink)
			closers = append(closers, nsink.Close)
		}
	}

	dispatcher := audit.NewDispatcher(sinks...)

	return dispatcher, func() {
		dispatcher.Close()
		for _, c := range closers {
			c()
		}
	}
}
