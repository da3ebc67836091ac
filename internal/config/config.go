package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"shopfront/internal/eventbus"
	"shopfront/internal/menu"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Brand      string           `toml:"brand"`
	API        APISettings      `toml:"api"`
	Search     SearchSettings   `toml:"search"`
	Carousel   CarouselSettings `toml:"carousel"`
	Nav        []NavEntry       `toml:"nav"`
	Social     []SocialLink     `toml:"social"`
	UISettings UISettings       `toml:"ui"`
}

// APISettings configures the content API client
type APISettings struct {
	BaseURL   string `toml:"base_url"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// SearchSettings configures the search box
type SearchSettings struct {
	DebounceMS int `toml:"debounce_ms"`
	MaxResults int `toml:"max_results"`
}

// CarouselSettings configures the featured products carousel
type CarouselSettings struct {
	AutoPlay           bool             `toml:"autoplay"`
	AutoPlayIntervalMS int              `toml:"autoplay_interval_ms"`
	ShowDots           bool             `toml:"show_dots"`
	ShowArrows         bool             `toml:"show_arrows"`
	SlidesToShow       float64          `toml:"slides_to_show"`
	Responsive         []ResponsiveRule `toml:"responsive"`
	Dots               DotStyle         `toml:"dots"`
}

// ResponsiveRule overrides carousel settings below a window width
type ResponsiveRule struct {
	Breakpoint   int     `toml:"breakpoint"`
	SlidesToShow float64 `toml:"slides_to_show"`
	ShowDots     *bool   `toml:"show_dots,omitempty"`
}

// DotStyle is the cosmetic configuration of the dot bar
type DotStyle struct {
	Size        int    `toml:"size"`
	ActiveSize  int    `toml:"active_size"`
	Color       string `toml:"color"`
	ActiveColor string `toml:"active_color"`
	Position    string `toml:"position"` // "inside" or "outside"
}

// NavEntry is one item of the header navigation
type NavEntry struct {
	Title string `toml:"title"`
	Kind  string `toml:"kind"` // "products", "links" or empty
	Links []Link `toml:"links,omitempty"`
}

// Link is a labelled route
type Link struct {
	Label string `toml:"label"`
	Route string `toml:"route"`
}

// SocialLink is a footer social profile
type SocialLink struct {
	Platform string `toml:"platform"`
	URL      string `toml:"url"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Mouse     bool   `toml:"mouse"`
	AltScreen bool   `toml:"alt_screen"`
	LogFile   string `toml:"log_file"`
}

// Timeout returns the API request timeout
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// Debounce returns the search debounce delay
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// AutoPlayInterval returns the carousel autoplay interval
func (c CarouselSettings) AutoPlayInterval() time.Duration {
	return time.Duration(c.AutoPlayIntervalMS) * time.Millisecond
}

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges and rejects responsive rules that can never apply
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.API.TimeoutMS < 0 {
		return fmt.Errorf("%w: api.timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("%w: search.debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.Carousel.SlidesToShow <= 0 {
		return fmt.Errorf("%w: carousel.slides_to_show must be positive", ErrInvalidConfig)
	}
	if c.Carousel.AutoPlay && c.Carousel.AutoPlayIntervalMS <= 0 {
		return fmt.Errorf("%w: carousel.autoplay_interval_ms must be positive", ErrInvalidConfig)
	}
	for i, r := range c.Carousel.Responsive {
		if r.Breakpoint <= 0 || r.SlidesToShow <= 0 {
			return fmt.Errorf("%w: carousel.responsive[%d] needs positive breakpoint and slides_to_show", ErrInvalidConfig, i)
		}
	}
	switch c.Carousel.Dots.Position {
	case "", "inside", "outside":
	default:
		return fmt.Errorf("%w: carousel.dots.position %q", ErrInvalidConfig, c.Carousel.Dots.Position)
	}
	for _, n := range c.Nav {
		if _, err := menu.ParseKind(n.Kind); err != nil {
			return fmt.Errorf("%w: nav %q: %v", ErrInvalidConfig, n.Title, err)
		}
	}
	for _, s := range c.Social {
		if _, err := menu.ParsePlatform(s.Platform); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	sort.SliceStable(c.Carousel.Responsive, func(i, j int) bool {
		return c.Carousel.Responsive[i].Breakpoint > c.Carousel.Responsive[j].Breakpoint
	})
	// The first rule at or above the window width wins, so the widest
	// breakpoint also covers every narrower one.
	if rules := c.Carousel.Responsive; len(rules) > 1 {
		return fmt.Errorf("%w: carousel.responsive breakpoint %d is shadowed by breakpoint %d",
			ErrInvalidConfig, rules[1].Breakpoint, rules[0].Breakpoint)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "shopfront", "config.toml")
}

// NewConfigService creates a config service reading path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Tables decode onto defaults; arrays replace them only when present.
	defaults := DefaultConfig()
	cfg := DefaultConfig()
	cfg.Carousel.Responsive, cfg.Nav, cfg.Social = nil, nil, nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Carousel.Responsive == nil {
		cfg.Carousel.Responsive = defaults.Carousel.Responsive
	}
	if cfg.Nav == nil {
		cfg.Nav = defaults.Nav
	}
	if cfg.Social == nil {
		cfg.Social = defaults.Social
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Brand:   "Sentinel Biometrics",
		API: APISettings{
			BaseURL:   "http://localhost:8088/api",
			TimeoutMS: 8000,
		},
		Search: SearchSettings{
			DebounceMS: 300,
			MaxResults: 8,
		},
		Carousel: CarouselSettings{
			AutoPlay:           true,
			AutoPlayIntervalMS: 5000,
			ShowDots:           true,
			ShowArrows:         true,
			SlidesToShow:       3,
			Responsive: []ResponsiveRule{
				{Breakpoint: 120, SlidesToShow: 2},
			},
			Dots: DotStyle{
				Size:        1,
				ActiveSize:  1,
				Color:       "241",
				ActiveColor: "99",
				Position:    "outside",
			},
		},
		Nav: []NavEntry{
			{Title: "Products", Kind: "products"},
			{Title: "Solutions", Kind: "links", Links: []Link{
				{Label: "Workforce Management", Route: "/solutions/workforce"},
				{Label: "Access Control", Route: "/solutions/access-control"},
				{Label: "Visitor Management", Route: "/solutions/visitors"},
			}},
			{Title: "Company", Kind: "links", Links: []Link{
				{Label: "About Us", Route: "/about"},
				{Label: "Blog", Route: "/blog"},
				{Label: "Contact", Route: "/contact"},
			}},
		},
		Social: []SocialLink{
			{Platform: "linkedin", URL: "https://www.linkedin.com/company/sentinel-biometrics"},
			{Platform: "youtube", URL: "https://www.youtube.com/@sentinelbiometrics"},
			{Platform: "x", URL: "https://x.com/sentinelbio"},
		},
		UISettings: UISettings{
			Mouse:     true,
			AltScreen: true,
			LogFile:   "shopfront.log",
		},
	}
}
