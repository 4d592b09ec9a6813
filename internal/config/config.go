// Package config handles Luna controller configuration loading.
package config

// #region imports
import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/hints"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/livedata"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/router"
)

// #endregion

// #region types

// Config is the full controller configuration. Loaded once and passed
// down as a value; services never reach for a process-global.
type Config struct {
	Router    router.Config   `toml:"router"`
	Hints     HintsConfig     `toml:"hints"`
	Providers ProvidersConfig `toml:"providers"`
	Storage   StorageConfig   `toml:"storage"`
	Turn      TurnConfig      `toml:"turn"`
	LiveData  LiveDataConfig  `toml:"livedata"`
}

// HintsConfig mirrors hints.Config with TOML tags.
type HintsConfig struct {
	SessionLimit int     `toml:"session_limit"`
	UserLimit    int     `toml:"user_limit"`
	CacheTTLSecs int     `toml:"cache_ttl_secs"`
	HighWeight   float64 `toml:"high_weight_mark"`
}

// ProvidersConfig wires the tier providers.
type ProvidersConfig struct {
	RuntimeAddr string  `toml:"runtime_addr"` // local inference runtime (gRPC)
	CloudBase   string  `toml:"cloud_base"`   // chat-completions endpoint
	CloudKeyEnv string  `toml:"cloud_key_env"`
	LightModel  string  `toml:"light_model"`
	MidModel    string  `toml:"mid_model"`
	ToolModel   string  `toml:"tool_model"`
	MaxModel    string  `toml:"max_model"`
	RatePerSec  float64 `toml:"rate_per_sec"`
}

// StorageConfig locates the controller database.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// TurnConfig bounds a single turn.
type TurnConfig struct {
	BudgetSecs int `toml:"budget_secs"` // wall-clock budget per turn
}

// LiveDataConfig configures the current-information fetcher used on
// data-access routes.
type LiveDataConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	KeyEnv      string `toml:"key_env"`
	MaxSnippets int    `toml:"max_snippets"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// #endregion

// #region defaults

// Default returns the default configuration.
func Default() Config {
	return Config{
		Router: router.DefaultConfig(),
		Hints: HintsConfig{
			SessionLimit: 5,
			UserLimit:    5,
			CacheTTLSecs: 30,
			HighWeight:   1.5,
		},
		Providers: ProvidersConfig{
			RuntimeAddr: "localhost:50061",
			CloudBase:   "https://openrouter.ai/api/v1",
			CloudKeyEnv: "LUNA_CLOUD_API_KEY",
			LightModel:  "luna-local-3b",
			MidModel:    "anthropic/claude-3.5-haiku",
			ToolModel:   "anthropic/claude-sonnet-4",
			MaxModel:    "anthropic/claude-opus-4",
			RatePerSec:  2,
		},
		Storage: StorageConfig{DBPath: "luna_controller.db"},
		Turn:    TurnConfig{BudgetSecs: 90},
		LiveData: LiveDataConfig{
			Enabled:     true,
			KeyEnv:      "LUNA_SEARCH_API_KEY",
			MaxSnippets: 3,
			TimeoutSecs: 10,
		},
	}
}

// #endregion

// #region load

// Load reads the configuration from path. A missing file returns the
// defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// #endregion

// #region hint-config

// HintServiceConfig assembles the hints.Config from the router knobs
// (weight bounds, decay) and the hints section (limits, TTL).
func (c Config) HintServiceConfig() hints.Config {
	return hints.Config{
		WeightCap:       c.Router.HintWeightCap,
		WeightFloor:     c.Router.HintWeightFloor,
		WeightIncrement: c.Router.HintWeightIncrement,
		HighWeightMark:  c.Hints.HighWeight,
		SessionLimit:    c.Hints.SessionLimit,
		UserLimit:       c.Hints.UserLimit,
		CacheTTL:        time.Duration(c.Hints.CacheTTLSecs) * time.Second,
	}
}

// #endregion

// #region livedata-config

// LiveDataFetcherConfig assembles the livedata.Config, resolving the
// API key from the configured environment variable.
func (c Config) LiveDataFetcherConfig() livedata.Config {
	return livedata.Config{
		Endpoint:    c.LiveData.Endpoint,
		APIKey:      os.Getenv(c.LiveData.KeyEnv),
		MaxSnippets: c.LiveData.MaxSnippets,
		Timeout:     time.Duration(c.LiveData.TimeoutSecs) * time.Second,
		Enabled:     c.LiveData.Enabled,
	}
}

// #endregion
