package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/hark/internal/adapters/boltcache"
	"github.com/corey/hark/internal/adapters/memcache"
	"github.com/corey/hark/internal/app"
	"github.com/corey/hark/internal/config"
	"github.com/corey/hark/internal/domain/catalog"
	"github.com/corey/hark/internal/ports"
)

var (
	flagConfig       string
	flagVerbose      bool
	flagJSON         bool
	flagSession      string
	flagPersistCache bool
	flagCachePath    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hark",
	Short: "hark — natural-language command interpreter",
	Long:  "Turns free-form utterances into structured, typed commands with confidence scores. Deterministic rule matching, no models.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagVerbose {
			zcfg := zap.NewDevelopmentConfig()
			logger, err = zcfg.Build()
		} else {
			zcfg := zap.NewProductionConfig()
			zcfg.OutputPaths = []string{"stderr"}
			logger, err = zcfg.Build()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync() //nolint:errcheck
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", defaultConfigPath(), "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "session ID scoping history and context boosts")
	rootCmd.PersistentFlags().BoolVar(&flagPersistCache, "persist-cache", false, "keep the result cache on disk across runs")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache-path", defaultCachePath(), "path to the persistent cache database")

	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// harkDir returns the per-user state directory, created on demand.
func harkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".hark")
	os.MkdirAll(dir, 0755) //nolint:errcheck
	return dir
}

func defaultConfigPath() string {
	return filepath.Join(harkDir(), "config.yaml")
}

func defaultCachePath() string {
	return filepath.Join(harkDir(), "cache.db")
}

// newInterpreter loads the config and assembles the interpreter with the
// selected cache backend.
func newInterpreter() (*app.Interpreter, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	var cache ports.ResultCache
	if flagPersistCache {
		// The persistent cache keys on the catalog fingerprint; build the
		// same catalog the interpreter will use to obtain it.
		cat := catalog.BuiltinWith(cfg.Synonyms, cfg.Triggers)
		cache, err = boltcache.New(flagCachePath, cfg.CacheCapacity, cat.Fingerprint(), logger)
		if err != nil {
			return nil, err
		}
	} else {
		cache = memcache.New(cfg.CacheCapacity)
	}

	return app.New(cfg, cache, logger)
}
