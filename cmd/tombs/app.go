package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/config"
	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/engine"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/procgen"
	"github.com/cory-johannsen/tombs/internal/observability"
	"github.com/cory-johannsen/tombs/internal/scripting"
	"github.com/cory-johannsen/tombs/internal/storage"
	"github.com/cory-johannsen/tombs/internal/storage/file"
	"github.com/cory-johannsen/tombs/internal/storage/postgres"
	"github.com/cory-johannsen/tombs/internal/storage/redis"
)

// app carries everything a subcommand needs.
type app struct {
	cfg    config.Config
	slot   string
	seed   int64
	logger *zap.Logger
	store  storage.SaveStore
	close  func()
}

// setup loads configuration, builds the logger and opens the save store.
//
// Postcondition: on success the caller must call a.Close.
func setup(ctx context.Context, seedSet bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	slot := cfg.Storage.Slot
	if slotFlag != "" {
		slot = slotFlag
	}
	if err := storage.ValidateSlot(slot); err != nil {
		return nil, err
	}

	seed := cfg.Game.Seed
	if seedSet {
		seed = seedFlag
	}
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return nil, fmt.Errorf("picking seed: %w", err)
		}
	}

	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logger := observability.ForGame(base, slot, seed)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("save store opened", zap.String("driver", cfg.Storage.Driver))

	return &app{
		cfg:    cfg,
		slot:   slot,
		seed:   seed,
		logger: logger,
		store:  store,
		close:  closeStore,
	}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	a.close()
	_ = a.logger.Sync()
}

// openStore builds the SaveStore selected by cfg.Storage.Driver.
func openStore(ctx context.Context, cfg config.Config) (storage.SaveStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		s, err := file.New(cfg.Storage.SaveDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSaveRepository(pool.DB()), pool.Close, nil
	case config.DriverRedis:
		client := redis.NewClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("pinging redis at %s: %w", cfg.Redis.Addr, err)
		}
		s, err := redis.New(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// buildDeps assembles the engine's collaborators from the built-in content,
// overridden by whatever cfg.Game.ContentDir provides.
func (a *app) buildDeps() (engine.Deps, func(), error) {
	game := a.cfg.Game
	src := dice.NewSeededSource(a.seed)

	items, err := inventory.DefaultRegistry()
	if err != nil {
		return engine.Deps{}, nil, err
	}
	templates, err := npc.DefaultRegistry()
	if err != nil {
		return engine.Deps{}, nil, err
	}
	tables, err := procgen.DefaultTables()
	if err != nil {
		return engine.Deps{}, nil, err
	}

	mgr := scripting.NewManager(dice.NewLoggedRoller(src, a.logger), a.logger)
	reg, err := ai.LoadDefaultRegistry(mgr, game.LuaInstructionLimit)
	if err != nil {
		mgr.Close()
		return engine.Deps{}, nil, err
	}

	if dir := game.ContentDir; dir != "" {
		if err := overrideContent(dir, items, templates, &tables, reg, mgr, game.LuaInstructionLimit); err != nil {
			mgr.Close()
			return engine.Deps{}, nil, err
		}
		a.logger.Info("content overrides loaded", zap.String("dir", dir))
	}

	a.logger.Debug("ai domains loaded", zap.Strings("domains", reg.DomainIDs()))

	policies := ai.NewFactory(reg)
	gen, err := procgen.NewRoomsAndCorridors(procgen.Params(game.Map), tables, templates, items, policies, src, a.logger)
	if err != nil {
		mgr.Close()
		return engine.Deps{}, nil, err
	}

	return engine.Deps{
		Generator: gen,
		Templates: templates,
		Items:     items,
		Policies:  policies,
		Scripts:   mgr,
		Dice:      src,
		FOVRadius: game.FOVRadius,
		Logger:    a.logger,
	}, mgr.Close, nil
}

func overrideContent(dir string, items *inventory.Registry, templates *npc.Registry, tables *procgen.Tables, reg *ai.Registry, mgr *scripting.Manager, instLimit int) error {
	if sub := filepath.Join(dir, "items"); isDir(sub) {
		defs, err := inventory.LoadItems(sub)
		if err != nil {
			return err
		}
		for _, d := range defs {
			items.Override(d)
		}
	}
	if sub := filepath.Join(dir, "templates"); isDir(sub) {
		ts, err := npc.LoadTemplates(sub)
		if err != nil {
			return err
		}
		for _, t := range ts {
			templates.Override(t)
		}
	}
	if sub := filepath.Join(dir, "domains"); isDir(sub) {
		scripts := filepath.Join(dir, "scripts")
		if !isDir(scripts) {
			scripts = ""
		}
		if err := ai.LoadRegistry(reg, mgr, sub, scripts, instLimit); err != nil {
			return err
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "tables.yaml"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading spawn tables: %w", err)
	default:
		t, err := procgen.ParseTables(data)
		if err != nil {
			return err
		}
		*tables = t
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
