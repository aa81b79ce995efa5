package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"skycast/internal/config"
	"skycast/internal/eventbus"
	"skycast/internal/ui"
	"skycast/internal/weather"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "skycast: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before main exits
func run(args []string) error {
	var configPath, logPath string
	fs := flag.NewFlagSet("skycast", flag.ExitOnError)
	fs.StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	fs.StringVar(&configPath, "c", "", "Path to config file (shorthand)")
	fs.StringVar(&logPath, "log", defaultLogPath(), "Path to log file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Set up logging
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := tea.LogToFile(logPath, "skycast"); err != nil {
				fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
			} else {
				defer f.Close()
			}
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Ignoring .env: %v", err)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()
	subscribeDiagnostics(bus)

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configSvc.Path(), err)
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		log.Printf("No API key configured")
		return fmt.Errorf("no API key: set %s or api_key in %s", config.EnvAPIKey, configSvc.Path())
	}

	client := weather.New(apiKey,
		weather.WithBaseURL(cfg.Provider.BaseURL),
		weather.WithIconHost(cfg.Provider.IconHost),
	)
	fetcher := weather.NewRateLimited(client, cfg.Provider.RequestsPerSecond, cfg.Provider.Burst)

	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(ctx, bus, cfg, fetcher)

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		p.Quit()
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// subscribeDiagnostics logs every search lifecycle event
func subscribeDiagnostics(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSearchSubmitted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchSubmittedEvent); ok {
			log.Printf("search #%d %q (superseded previous: %t)", ev.Seq, ev.Location, ev.Superseded)
		}
	})
	bus.Subscribe(eventbus.EventSearchRejected, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchRejectedEvent); ok {
			log.Printf("search rejected: %s", ev.Reason)
		}
	})
	bus.Subscribe(eventbus.EventFetchSucceeded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.FetchSucceededEvent); ok {
			log.Printf("search #%d %q loaded, theme %s", ev.Seq, ev.Location, ev.Theme)
		}
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.FetchFailedEvent); ok {
			log.Printf("search #%d %q failed (%s): %v", ev.Seq, ev.Location, ev.Kind, ev.Err)
		}
	})
	bus.Subscribe(eventbus.EventFetchDiscarded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.FetchDiscardedEvent); ok {
			log.Printf("search #%d settled after being superseded", ev.Seq)
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Loaded config from %s", ev.Path)
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", ev.Path)
		}
	})
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "skycast.log"
	}
	return filepath.Join(dir, "skycast", "skycast.log")
}
