package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/drummsters/ambientclock/internal/background"
	"github.com/drummsters/ambientclock/internal/config"
	"github.com/drummsters/ambientclock/internal/elements"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/favorites"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/registry"
	"github.com/drummsters/ambientclock/internal/state"
	"github.com/drummsters/ambientclock/internal/tui"
)

// runClock wires every collaborator together and runs the screen until
// the user quits.
func runClock(flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: term.IsTerminal(int(os.Stderr.Fd())),
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	store, err := state.NewFileStore(cfg.Storage().StateFile)
	if err != nil {
		return err
	}

	bus := events.NewBus(log)
	states := state.NewManager(state.Options{
		Store:  store,
		Bus:    bus,
		Logger: log,
	})
	defer states.Close()

	favs, err := favorites.NewService(favorites.Options{
		Path:   cfg.Storage().FavoritesFile,
		States: states,
		Logger: log,
	})
	if err != nil {
		return err
	}

	provider, err := buildProvider(cfg.Background())
	if err != nil {
		return err
	}

	cycler := background.NewCycler(background.CyclerOptions{
		Provider:  provider,
		States:    states,
		Favorites: favs,
		Logger:    log,
		Interval:  time.Duration(cfg.Background().CycleInterval) * time.Second,
	})

	reg := registry.New(log)
	elements.Register(reg)

	model := tui.NewModel(tui.Options{
		Registry:  reg,
		States:    states,
		Bus:       bus,
		Cycler:    cycler,
		Favorites: favs,
		Features:  cfg,
		Logger:    log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	subs := tui.Bridge(bus, program.Send)
	defer func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cycler.Start(ctx)
	defer cycler.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func buildProvider(cfg config.BackgroundConfig) (background.Provider, error) {
	switch cfg.Provider {
	case "", "builtin":
		return background.NewBuiltinProvider(nil), nil
	case "unsplash":
		key := os.Getenv("AMBIENTCLOCK_UNSPLASH_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("unsplash provider requires AMBIENTCLOCK_UNSPLASH_API_KEY")
		}
		return background.NewUnsplashProvider(key, nil), nil
	case "pexels":
		key := os.Getenv("AMBIENTCLOCK_PEXELS_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("pexels provider requires AMBIENTCLOCK_PEXELS_API_KEY")
		}
		return background.NewPexelsProvider(key, nil), nil
	default:
		return nil, fmt.Errorf("unknown background provider %q", cfg.Provider)
	}
}
