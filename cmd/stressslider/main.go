package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/accesstechnology-mike/stressslider/internal/config"
	"github.com/accesstechnology-mike/stressslider/internal/logging"
	"github.com/accesstechnology-mike/stressslider/internal/regulator"
	"github.com/accesstechnology-mike/stressslider/internal/store"
	"github.com/accesstechnology-mike/stressslider/internal/strategy"
	"github.com/accesstechnology-mike/stressslider/internal/tui"
)

type flags struct {
	configPath string
	backend    string
	dbPath     string
	level      int
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "stressslider",
		Short:         "Report your stress level and see the coping strategies for it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), f)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default .stressslider/config.yaml, then ~/.stressslider/config.yaml)")
	cmd.PersistentFlags().StringVar(&f.backend, "backend", "", "storage backend: sqlite, file or memory")
	cmd.PersistentFlags().StringVar(&f.dbPath, "db", "", "SQLite database path")
	cmd.Flags().IntVar(&f.level, "level", 0, "initial stress level (1-9)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "show the debug panel")

	cmd.AddCommand(newStrategiesCmd(f), newConfigCmd(f))
	return cmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(f *flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.backend != "" {
		cfg.Backend = config.Backend(f.backend)
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.level != 0 {
		cfg.InitialLevel = f.level
	}
	if f.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBackend opens the configured backend
func openBackend(cfg *config.Config, logger *slog.Logger) (strategy.Backend, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
		}
		logger.Debug("using sqlite backend", "path", cfg.DBPath)
		return store.NewKVStore(db), db, nil
	case config.BackendFile:
		logger.Debug("using file backend", "path", cfg.FilePath)
		return store.NewFileStore(cfg.FilePath), nopCloser{}, nil
	default:
		return store.NewMemoryStore(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func runTUI(ctx context.Context, f *flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	var ring *logging.Ring
	if f.debug {
		ring = logging.NewRing(100)
	}
	logger, logCloser, err := logging.Open(cfg.LogPath, cfg.LogLevel, ring)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	// The session still runs when storage is unavailable, it just won't persist
	backend, closer, err := openBackend(cfg, logger)
	if err != nil {
		logger.Warn("backend unavailable, strategies will not persist", "backend", string(cfg.Backend), "error", err)
		backend, closer = store.NewMemoryStore(), nopCloser{}
	}
	defer closer.Close()

	reg := regulator.New(strategy.NewStore(backend, logger), logger)
	reg.SetLevel(cfg.InitialLevel)

	logger.Info("stressslider starting", "backend", string(cfg.Backend), "level", cfg.InitialLevel)

	p := tea.NewProgram(
		tui.NewRootModel(ctx, reg, logger, tui.NewDebugPanel(ring)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	logger.Info("stressslider stopped")
	return nil
}
