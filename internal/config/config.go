package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend targets the client can be pointed at.
const (
	TargetEmulator = "emulator"
	TargetPhysical = "physical"
	TargetRender   = "render"
)

var targetURLs = map[string]string{
	TargetEmulator: "http://10.0.2.2:8000/",
	TargetPhysical: "http://192.168.18.194:8000/",
	TargetRender:   "https://facerecon-api.onrender.com/",
}

type Config struct {
	// Local control surface
	Port         int    `envconfig:"PORT" default:"3000"`
	Environment  string `envconfig:"ENV" default:"development"`
	RateLimitMax int    `envconfig:"RATE_LIMIT_MAX" default:"60"`

	// Backend
	Target  string        `envconfig:"FACERECON_TARGET" default:"render"`
	APIURL  string        `envconfig:"FACERECON_API_URL"`
	Timeout time.Duration `envconfig:"FACERECON_TIMEOUT" default:"30s"`

	// View state
	NoticeTTL time.Duration `envconfig:"FACERECON_NOTICE_TTL" default:"3s"`

	// Uploads
	MaxImageDim int `envconfig:"FACERECON_MAX_IMAGE_DIM" default:"1024"`
}

// Overrides replaces backend settings read from the environment. Empty fields
// are ignored.
type Overrides struct {
	Target string
	APIURL string
}

func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides reads the environment, applies o and validates the result.
func LoadWithOverrides(o Overrides) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.Target != "" {
		cfg.Target = o.Target
	}
	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		if _, ok := targetURLs[c.Target]; !ok {
			return fmt.Errorf("unknown target %q (want emulator, physical or render)", c.Target)
		}
	} else if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api url %q must use http or https", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("notice ttl must be positive, got %s", c.NoticeTTL)
	}
	if c.MaxImageDim < 0 {
		return fmt.Errorf("max image dimension must not be negative, got %d", c.MaxImageDim)
	}
	return nil
}

// BaseURL is the backend root. An explicit API URL wins over the target.
func (c *Config) BaseURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return targetURLs[c.Target]
}

// TargetName names the backend in logs.
func (c *Config) TargetName() string {
	if c.APIURL != "" {
		return "custom"
	}
	return c.Target
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
