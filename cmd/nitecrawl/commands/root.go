// Package commands implements the nitecrawl CLI, which plays the game
// directly against the configured store without the API.
package commands

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/nitecrawlers/internal/config"
	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/internal/logger"
	"github.com/jwebster45206/nitecrawlers/internal/services"
	"github.com/jwebster45206/nitecrawlers/internal/storage"
	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

// app is the state shared by every subcommand for one invocation.
type app struct {
	backend    string
	sqlitePath string
	redisURL   string
	asJSON     bool
	verbose    bool

	cfg        *config.Config
	store      *storage.KVStore
	controller *engine.Controller
	catalog    *recognition.Catalog
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "nitecrawl",
		Short:         "Play NiteCrawlers from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: redis or sqlite (default from STORAGE_BACKEND)")
	root.PersistentFlags().StringVar(&a.sqlitePath, "sqlite-path", "", "sqlite database file (default from SQLITE_PATH)")
	root.PersistentFlags().StringVar(&a.redisURL, "redis", "", "redis address or URL (default from REDIS_URL)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print JSON instead of text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level to stderr")

	root.AddCommand(
		statusCmd(a),
		onboardCmd(a),
		allowanceCmd(a),
		decideCmd(a),
		scanCmd(a),
		similarCmd(a),
		dictionaryCmd(a),
		ledgerCmd(a),
		resetCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.StorageBackend = a.backend
	}
	if a.sqlitePath != "" {
		cfg.SQLitePath = a.sqlitePath
	}
	if a.redisURL != "" {
		cfg.RedisURL = a.redisURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	cfg.LogLevel = slog.LevelWarn
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	log := logger.New(cfg, cmd.ErrOrStderr())

	store, err := storage.Open(cfg, log)
	if err != nil {
		return err
	}
	a.store = store

	var opts []engine.Option
	if cfg.AdviceURL != "" {
		opts = append(opts, engine.WithAdvice(services.NewHTTPAdviceService(cfg.AdviceURL, cfg.AdviceTimeout, log), cfg.AdviceTimeout))
	}
	a.controller = engine.New(cmd.Context(), store, log, opts...)

	a.catalog, err = recognition.LoadCatalog(cfg.CatalogPath)
	if errors.Is(err, fs.ErrNotExist) {
		a.catalog, err = recognition.DefaultCatalog(), nil
	}
	return err
}

// print writes v as indented JSON when --json is set, otherwise calls text.
func (a *app) print(w io.Writer, v any, text func(w io.Writer)) error {
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
