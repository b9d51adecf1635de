package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DisplayConfig holds presentation tunables the admin UI reads back from the
// API: where prism thumbnails are served from and how many rows list
// endpoints return by default.
type DisplayConfig struct {
	ThumbnailBaseURL string `mapstructure:"thumbnailBaseUrl"`
	DefaultPageSize  int    `mapstructure:"defaultPageSize"`
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		ThumbnailBaseURL: "",
		DefaultPageSize:  50,
	}
}

type DisplayConfigHolder struct {
	current atomic.Value // holds DisplayConfig
}

func NewDisplayConfigHolder() (*DisplayConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("display")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/prism/config") // Volume-mounted config
	v.AddConfigPath("/etc/prism")            // System config
	v.AddConfigPath(".")                     // Current directory (dev mode)

	v.SetEnvPrefix("PRISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDisplayConfig()
		v.SetDefault("display.thumbnailBaseUrl", defaults.ThumbnailBaseURL)
		v.SetDefault("display.defaultPageSize", defaults.DefaultPageSize)
	}

	var cfg DisplayConfig
	if err := v.UnmarshalKey("display", &cfg); err != nil {
		return nil, err
	}
	if err := validateDisplayConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DisplayConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DisplayConfig
		if err := v.UnmarshalKey("display", &updated); err != nil {
			log.Printf("[display-config] reload failed: %v", err)
			return
		}
		if err := validateDisplayConfig(updated); err != nil {
			log.Printf("[display-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// Current returns the latest valid display config.
func (h *DisplayConfigHolder) Current() DisplayConfig {
	if h == nil {
		return DefaultDisplayConfig()
	}
	if cfg, ok := h.current.Load().(DisplayConfig); ok {
		return cfg
	}
	return DefaultDisplayConfig()
}

func validateDisplayConfig(cfg DisplayConfig) error {
	if cfg.DefaultPageSize < 0 {
		return errors.New("display.defaultPageSize must not be negative")
	}
	if base := strings.TrimSpace(cfg.ThumbnailBaseURL); base != "" {
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			return errors.New("display.thumbnailBaseUrl must be an http(s) URL")
		}
	}
	return nil
}
