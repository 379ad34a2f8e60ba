package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/config"
	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/fetch"
	"github.com/abhisek/studyiz/internal/llm"
	"github.com/abhisek/studyiz/internal/logging"
	"github.com/abhisek/studyiz/internal/store"
)

// services is everything a command may need, built from config.
type services struct {
	cfg     *config.Config
	logger  *log.Logger
	catalog *curriculum.Catalog
	records *store.Records
	cache   *contentcache.Manager

	// orch is nil unless setup was asked for content.
	orch *fetch.Orchestrator
	// llmErr is why content falls back to offline defaults, if it does.
	llmErr error

	closers []io.Closer
}

type setupOpts struct {
	// logToFile sends logs to the log file instead of stderr.
	logToFile bool
	// content builds the LLM provider and fetch orchestrator.
	content bool
}

// loadConfig reads config and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, opts setupOpts) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	s := &services{cfg: cfg}

	if opts.logToFile {
		logger, closer, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.closers = append(s.closers, closer)
	} else {
		if s.logger, err = logging.New(os.Stderr, cfg.Log.Level); err != nil {
			return nil, err
		}
	}
	log.SetDefault(s.logger)

	if s.catalog, err = curriculum.Load(cfg.Curriculum); err != nil {
		s.Close()
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	kvStore, err := cfg.OpenKV(cmd.Context())
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	s.records = store.New(kvStore, s.logger)
	s.closers = append(s.closers, s.records)
	s.cache = contentcache.New(kvStore,
		contentcache.WithMaxBytes(cfg.Cache.MaxBytes),
		contentcache.WithLogger(s.logger))

	if opts.content {
		s.orch = fetch.New(s.contentProvider(cmd), s.cache, s.logger)
	}
	return s, nil
}

// contentProvider builds the LLM-backed provider, or an offline stand-in
// when no provider is configured.
func (s *services) contentProvider(cmd *cobra.Command) content.Provider {
	llmCfg, err := llm.ResolveConfig()
	if err == nil {
		var p llm.Provider
		if p, err = llm.NewProvider(cmd.Context(), llmCfg, s.records, s.logger); err == nil {
			genCfg := content.DefaultConfig()
			genCfg.Timeout = llmCfg.Timeout
			s.logger.Debug("content provider ready", "provider", llmCfg.Provider, "model", p.ModelID())
			return content.NewGenerator(p, genCfg)
		}
	}
	s.llmErr = err
	s.logger.Warn("LLM provider not configured, using offline fallbacks", "err", err)
	return content.Unavailable{Err: err}
}

// Close releases storage and log files.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
