package commands

import (
	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
	"github.com/bankfeed-dev/bankfeed/internal/reaper"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// env bundles what every command needs after startup.
type env struct {
	cfg *config.Config
	st  *store.Store
	log zerolog.Logger
}

// openEnv loads the config and connects to storage. When startupSweep is set
// and a retention window is configured, stale drafts are reaped before the
// command runs; the sweep command opens without it to report its own count.
func openEnv(configPath string, startupSweep bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	log := logger.New()
	e := &env{cfg: cfg, st: st, log: log}

	if startupSweep && cfg.Retention() > 0 {
		n, err := reaper.New(st, log).Sweep(cfg.Retention())
		if err != nil {
			log.Warn().Err(err).Msg("startup sweep failed")
		} else if n > 0 {
			log.Info().Int("sessions", n).Msg("startup sweep removed stale drafts")
		}
	}
	return e, nil
}
