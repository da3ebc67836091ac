// Package cli wires the shopfront command line: the storefront TUI and its
// one-shot helper commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/eventbus"
	"shopfront/internal/ui"
)

var (
	cfgFile string
	apiURL  string
	logFile string
)

// rootCmd runs the storefront TUI
var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Browse the product catalog from the terminal",
	Long: `shopfront is a terminal storefront for the product catalog.

It shows the featured products carousel, a debounced product search and the
product menus of the website.

Examples:
  shopfront                              Start the storefront
  shopfront --api http://localhost:8088/api
  shopfront search "face reader"         Search once and print the matches
  shopfront config init                  Write the default config file`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/shopfront/config.toml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "content API base URL, overrides api.base_url")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file, overrides ui.log_file")
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceWithBus(cfgFile, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logFile != "" {
		cfg.UISettings.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

// setupLogging sends the standard logger to path. The TUI owns the terminal,
// so without a log file logging is discarded.
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}

func newClient(cfg *config.Config) (*catalog.Client, error) {
	return catalog.NewClient(cfg.API.BaseURL, catalog.WithTimeout(cfg.API.Timeout()))
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	cfg, svc, err := loadConfig(bus)
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg.UISettings.LogFile)
	defer closeLog()
	log.Printf("Starting shopfront with config %s, api %s", svc.Path(), cfg.API.BaseURL)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	uiModel := ui.NewModel(bus, cfg, client, catalog.NewCache())

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UISettings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	subscribeLogging(bus)
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventConfigSaved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// subscribeLogging records shop events in the log file
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventProductsLoaded, func(e eventbus.DomainEvent) {
		log.Printf("Products loaded: %d", e.(eventbus.ProductsLoadedEvent).Count)
	})
	bus.Subscribe(eventbus.EventSearchSettled, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SearchSettledEvent)
		if ev.Err != nil {
			log.Printf("Search %q failed: %v", ev.Query, ev.Err)
			return
		}
		log.Printf("Search %q matched %d products", ev.Query, ev.Matches)
	})
	bus.Subscribe(eventbus.EventProductSelected, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ProductSelectedEvent)
		log.Printf("Product %s selected from %s", ev.Product.Slug, ev.Source)
	})
	bus.Subscribe(eventbus.EventCacheInvalidated, func(e eventbus.DomainEvent) {
		log.Printf("Product cache invalidated")
	})
}

// withTimeout bounds one-shot commands by the configured API timeout
func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if d := cfg.API.Timeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
