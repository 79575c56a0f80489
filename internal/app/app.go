package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/ledgerdeck/internal/config"
	"github.com/five82/ledgerdeck/internal/ledger"
	"github.com/five82/ledgerdeck/internal/logging"
	"github.com/five82/ledgerdeck/internal/prefs"
	"github.com/five82/ledgerdeck/internal/resources"
	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/state"
	"github.com/five82/ledgerdeck/internal/ui"
)

// Options configure the ledgerdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ledgerdeck/prefs.toml
	PollEvery  int    // seconds; zero uses config
	LogLevel   string // empty uses config
}

// Run boots the ledgerdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, closer, err := logging.Open(cfg.LogPath(), level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "err", err)
	}
	if userPrefs.PageSize > 0 {
		cfg.PageSize = userPrefs.PageSize
	}
	userPrefs = checkLastResource(userPrefs, logger)

	client, err := ledger.NewClient(cfg.APIURL, ledger.Options{Token: cfg.APIToken})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	sources, err := buildSources(client, cfg.CacheSize)
	if err != nil {
		return err
	}

	store := &state.Store{}
	StartPoller(ctx, store, sources, cfg.PollInterval, logger)

	logger.Info("starting", "api", cfg.APIURL, "page_size", cfg.PageSize, "poll", cfg.PollInterval)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Sources:   sources,
		Records:   client,
		Config:    &cfg,
		Logger:    logger,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}

// checkLastResource canonicalizes the saved list name and drops it when no
// such resource exists any more.
func checkLastResource(p prefs.Prefs, logger logging.Logger) prefs.Prefs {
	if p.LastResource == "" {
		return p
	}
	r, err := resources.Lookup(p.LastResource)
	if err != nil {
		logger.Warn("forgetting last list", "resource", p.LastResource, "err", err)
		p.LastResource = ""
		return p
	}
	p.LastResource = r.Name
	return p
}

func buildSources(store ledger.RecordStore, cacheSize int) (map[string]source.Source, error) {
	sources := make(map[string]source.Source)
	for _, r := range resources.All() {
		src, err := r.NewSource(store, cacheSize)
		if err != nil {
			return nil, fmt.Errorf("init %s source: %w", r.Name, err)
		}
		sources[r.Name] = src
	}
	return sources, nil
}
