package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cli/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/config"
	"github.com/wdylt/wdylt/internal/library"
	"github.com/wdylt/wdylt/internal/logging"
	"github.com/wdylt/wdylt/internal/metrics"
	"github.com/wdylt/wdylt/internal/storage"
)

// Commands annotated with noLibrary run without opening storage.
const noLibrary = "noLibrary"

// cli carries state shared by all subcommands.
type cli struct {
	configPath string
	logFile    string

	cfg      *config.Config
	logger   *zap.Logger
	lib      *library.Library
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "wdylt",
		Short: "wdylt - bookmark library with nested folders",
		Long: `wdylt keeps bookmarks in a folder tree.

Run without arguments to open the interactive tree view.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: c.teardown,
		RunE:              c.runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.config/wdylt/config.yaml)")
	flags.String("backend", "", "storage backend: json, sqlite or redis")
	flags.String("data", "", "data file for the json and sqlite backends")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFile, "log-file", "", "write logs to this file (the tree view logs nowhere otherwise)")

	root.AddCommand(
		c.tuiCmd(),
		c.serveCmd(),
		c.tokenCmd(),
		c.searchCmd(),
		c.addCmd(),
		c.folderCmd(),
		c.importCmd(),
		c.exportCmd(),
		c.checkCmd(),
		c.configCmd(),
	)
	return root
}

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"backend":   "storage.backend",
	"data":      "storage.path",
	"log-level": "log.level",
}

// setup loads config, builds the logger and opens the library.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[noLibrary] == "true" {
		return nil
	}

	v, err := config.New(c.configPath)
	if err != nil {
		return err
	}
	for flag, key := range flagBindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	if c.cfg, err = config.Load(v); err != nil {
		return err
	}

	if c.logger, err = c.newLogger(cmd); err != nil {
		return err
	}

	st, err := storage.Open(cmd.Context(), storage.Options{
		Backend:       c.cfg.Storage.Backend,
		Path:          c.cfg.Storage.Path,
		RedisAddr:     c.cfg.Redis.Addr,
		RedisPassword: c.cfg.Redis.Password,
		RedisDB:       c.cfg.Redis.DB,
		RedisPrefix:   c.cfg.Redis.Prefix,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	c.registry = prometheus.NewRegistry()
	c.metrics = metrics.New(c.registry)

	c.lib, err = library.Open(cmd.Context(), st,
		library.WithLogger(c.logger),
		library.WithHook(c.metrics.ObserveMutation),
	)
	if err != nil {
		_ = st.Close()
		return fmt.Errorf("load library: %w", err)
	}

	c.logger.Debug("library opened",
		zap.String("backend", c.cfg.Storage.Backend),
		zap.String("command", cmd.Name()))
	return nil
}

// newLogger logs to stderr, except for the tree view which owns the
// terminal and only logs when --log-file is given.
func (c *cli) newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	interactive := cmd.Name() == "wdylt" || cmd.Name() == "tui"
	if interactive && c.logFile == "" {
		return zap.NewNop(), nil
	}
	return logging.New(logging.Options{
		Level:      c.cfg.Log.Level,
		Dev:        c.cfg.Log.Dev,
		OutputPath: c.logFile,
	})
}

func (c *cli) teardown(_ *cobra.Command, _ []string) {
	if c.lib != nil {
		if err := c.lib.Close(); err != nil {
			c.logger.Warn("close storage", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func main() {
	// Browser launchers print to stdout; keep the terminal clean
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
