package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-catcher/internal/config"
	"github.com/vovakirdan/star-catcher/internal/games/stars"
)

var (
	flagConfig      string
	flagWatchConfig bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom stars config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload the config file when it changes (applies on restart)")
}

// setupStars loads the stars configuration and installs it for every game
// created afterwards. With --watch-config the file is followed until ctx
// is cancelled; a new configuration applies from the next round.
func setupStars(ctx context.Context, logger *log.Logger) error {
	cfg, source, err := config.LoadStarsWithSource(flagConfig)
	if err != nil {
		return err
	}
	if source == "" {
		logger.Debug("using built-in stars config")
	} else {
		logger.Info("stars config loaded", "path", source)
	}

	live := config.NewLive(cfg, source)
	stars.SetConfigSource(live)

	if !flagWatchConfig {
		return nil
	}
	if source == "" {
		logger.Warn("--watch-config ignored, no config file in use")
		return nil
	}
	return live.Watch(ctx, func(_ config.StarsConfig, err error) {
		if err != nil {
			logger.Warn("config reload failed, keeping previous", "path", source, "error", err)
			return
		}
		logger.Info("config reloaded, applies on next round", "path", source)
	})
}
