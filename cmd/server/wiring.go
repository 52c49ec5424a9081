package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/miniature-battle/internal/clients/external"
	"github.com/KirkDiggler/miniature-battle/internal/config"
	"github.com/KirkDiggler/miniature-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/miniature-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/miniature-battle/internal/redis"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
	"github.com/KirkDiggler/miniature-battle/internal/repositories/battles"
	"github.com/KirkDiggler/miniature-battle/internal/services/statblock"
)

// services holds the wired battle service and the resources it owns
type services struct {
	battle     battle.Service
	statBlocks statblock.Provider
	bus        events.EventBus
	closers    []func() error
}

// Close releases resources in reverse order of acquisition
func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
}

// buildServices wires repositories, clients and the orchestrator from cfg.
// A nil roller uses the toolkit's crypto roller.
func buildServices(ctx context.Context, cfg *config.Config, logger *slog.Logger, roller dice.Roller) (*services, error) {
	svc := &services{}

	history, err := openHistory(ctx, cfg, svc)
	if err != nil {
		svc.Close()
		return nil, err
	}

	provider, err := newStatBlockProvider(cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}
	svc.statBlocks = provider

	svc.bus = events.NewBus()
	subscribeBattleLogging(svc.bus, logger)

	orchestrator, err := battle.NewOrchestrator(&battle.Config{
		IDGenerator:   idgen.NewUUID("battle"),
		BattleRepo:    battles.NewInMemory(),
		HistoryRepo:   history,
		StatBlocks:    provider,
		EventBus:      svc.bus,
		Roller:        roller,
		TurnTimer:     cfg.TurnTimer,
		TimeoutPolicy: battle.TimeoutPolicy(cfg.TimeoutPolicy),
	})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to create battle orchestrator: %w", err)
	}
	svc.battle = orchestrator

	return svc, nil
}

func openHistory(ctx context.Context, cfg *config.Config, svc *services) (battlehistory.Repository, error) {
	switch cfg.HistoryBackend {
	case config.HistoryBackendRedis:
		client, err := redis.Open(cfg.RedisAddrs, cfg.RedisMasterName, &redis.Options{
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		svc.closers = append(svc.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %v: %w", cfg.RedisAddrs, err)
		}

		repo, err := battlehistory.NewRedisRepository(&battlehistory.RedisConfig{Client: client})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis history repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := battlehistory.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite history at %s: %w", cfg.SQLitePath, err)
		}
		svc.closers = append(svc.closers, repo.Close)
		return repo, nil
	}
}

func newStatBlockProvider(cfg *config.Config) (statblock.Provider, error) {
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	var weapons external.Client
	if cfg.SRDEnabled {
		weapons, err = external.New(&external.Config{
			BaseURL:     cfg.SRDBaseURL,
			HTTPTimeout: cfg.SRDTimeout,
			CacheTTL:    cfg.SRDCacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SRD client: %w", err)
		}
	}

	provider, err := statblock.NewProvider(&statblock.Config{
		Catalog: catalog,
		Weapons: weapons,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stat block provider: %w", err)
	}
	return provider, nil
}

func loadCatalog(path string) (*statblock.Catalog, error) {
	if path == "" {
		catalog, err := statblock.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return catalog, nil
	}

	catalog, err := statblock.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return catalog, nil
}

// subscribeBattleLogging logs battle lifecycle events
func subscribeBattleLogging(bus events.EventBus, logger *slog.Logger) {
	for _, eventType := range []string{
		battle.EventBattleInitialized,
		battle.EventTimerExpired,
		battle.EventBattleCompleted,
		battle.EventBattleReset,
	} {
		bus.SubscribeFunc(eventType, 0, func(ctx context.Context, e events.Event) error {
			attrs := []any{"event", e.Type()}
			for _, key := range []string{battle.EventKeyBattleID, battle.EventKeyState, battle.EventKeyRound, "winner_id", "reason"} {
				if value, ok := e.Context().Get(key); ok {
					attrs = append(attrs, key, value)
				}
			}
			logger.InfoContext(ctx, "Battle event", attrs...)
			return nil
		})
	}
}
