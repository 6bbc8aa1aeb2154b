package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pomoday/pomoday/internal/adapters/git"
	"github.com/pomoday/pomoday/internal/adapters/notification"
	"github.com/pomoday/pomoday/internal/adapters/storage"
	"github.com/pomoday/pomoday/internal/config"
	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/engine"
	"github.com/pomoday/pomoday/internal/ports"
	"github.com/pomoday/pomoday/internal/scheduler"
)

// appDeps holds the initialized services shared by all commands.
type appDeps struct {
	config   *config.Config
	store    ports.StateStore
	engine   *engine.Engine
	sched    *scheduler.Scheduler
	notifier *notification.Notifier
}

var app appDeps

// initializeServices wires up storage, the countdown engine, the scheduler
// and notifications. Called by the root command's PersistentPreRunE.
func initializeServices() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	app.config = cfg

	path := dbPath
	if path == "" {
		path = config.GetDBPath(cfg)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.store = store

	// Runtime settings live in the store; the config file only seeds them.
	settings, err := store.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
	}
	if settings == nil {
		seeded := cfg.SeedSettings()
		settings = &seeded
		if err := store.SaveSettings(seeded); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save settings: %v\n", err)
		}
	}
	*settings = settings.Normalize()

	snap, err := store.LoadTimerSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load timer state: %v\n", err)
	}
	if snap != nil {
		app.engine = engine.Restore(*settings, *snap)
	} else {
		app.engine = engine.New(*settings)
	}

	app.sched = scheduler.New(store, git.NewDetector())
	app.notifier = notification.New(settings.NotificationsEnabled, settings.SoundEnabled)

	// Ledger first, then the user-facing ping, then the mirrored snapshot.
	app.engine.Subscribe(app.sched.LogSession)
	app.engine.Subscribe(notifyTransition)
	app.engine.Subscribe(func(domain.SessionEvent) { saveTimer() })

	// Apply any transition that became due while no process was running.
	app.engine.Advance()
	saveTimer()

	return nil
}

// cleanupServices tears down services. Called by PersistentPostRunE.
func cleanupServices() error {
	if app.engine != nil {
		app.engine.Stop()
		saveTimer()
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// saveTimer mirrors the engine snapshot into the store.
func saveTimer() {
	if app.engine == nil || app.store == nil {
		return
	}
	if err := app.store.SaveTimerSnapshot(app.engine.Persist()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist timer state: %v\n", err)
	}
}

// saveSettings mirrors the engine's current settings into the store.
func saveSettings() {
	if app.engine == nil || app.store == nil {
		return
	}
	if err := app.store.SaveSettings(app.engine.Settings()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist settings: %v\n", err)
	}
}

// notifyTransition pings the user when an interval completes on its own.
// Skips are deliberate, so interrupted events stay silent.
func notifyTransition(ev domain.SessionEvent) {
	if ev.Interrupted {
		return
	}
	if err := app.notifier.Chime(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to play chime: %v\n", err)
	}
	var err error
	if ev.IsFocus() {
		next := "short"
		if app.engine.Snapshot().Mode == domain.ModeLongBreak {
			next = "long"
		}
		err = app.notifier.NotifyFocusComplete(next)
	} else {
		err = app.notifier.NotifyBreakComplete()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to send notification: %v\n", err)
	}
}

// toggleNotifications flips the notification setting and returns the new
// value. Wired into the TUI's tab binding.
func toggleNotifications() bool {
	enabled := !app.engine.Settings().NotificationsEnabled
	app.engine.UpdateSettings(domain.SettingsPatch{NotificationsEnabled: &enabled})
	app.notifier.SetEnabled(enabled)
	saveSettings()
	return enabled
}
