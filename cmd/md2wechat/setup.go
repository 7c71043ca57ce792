package main

import (
	"errors"
	"fmt"
	"time"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/dateutil"
)

// ErrInvalidTimeout is returned for malformed or non-positive --timeout values.
var ErrInvalidTimeout = errors.New("invalid timeout")

// loadCommandConfig resolves the configuration for a command.
// The --config flag wins over MD2WECHAT_CONFIG; with neither, defaults apply.
// Environment overrides are applied on top of the loaded file.
func loadCommandConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// resolveTimeout determines the command deadline.
// Priority: flag > env > fallback. A zero result means no deadline.
func resolveTimeout(flagValue string, envValue, fallback time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use e.g. 30s, 5m)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return fallback, nil
}

// applyThemeFlags merges theme flags into cfg (CLI wins).
func applyThemeFlags(f themeFlags, cfg *config.Config) {
	if f.name != "" {
		cfg.Theme.Name = f.name
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// applyPreviewFlags merges preview flags into cfg (CLI wins).
// The date is checked here so a bad format fails before any work starts.
func applyPreviewFlags(f previewFlags, cfg *config.Config) error {
	if f.enabled {
		cfg.Preview.Enabled = true
	}
	if f.date == "" {
		return nil
	}
	if _, err := dateutil.ResolveDate(f.date, time.Now()); err != nil {
		return fmt.Errorf("%w: --date: %v", md2wechat.ErrInvalidDate, err)
	}
	cfg.Preview.Date = f.date
	return nil
}

// converterOptions translates the theme, assets and preview sections of
// cfg into converter options.
func converterOptions(cfg *config.Config) []md2wechat.Option {
	opts := []md2wechat.Option{
		md2wechat.WithThemeName(cfg.Theme.Name),
		md2wechat.WithThemeOverrides(cfg.Theme.Overrides),
		md2wechat.WithAssetPath(cfg.Assets.BasePath),
	}
	if d := cfg.Preview.TimeoutDuration(); d > 0 {
		opts = append(opts, md2wechat.WithTimeout(d))
	}
	return opts
}
