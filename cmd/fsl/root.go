package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/cache"
)

// app bundles the state every subcommand needs, assembled once in
// PersistentPreRunE. Library packages stay pure functions returning
// errors per spec.md §5's host-driven model; only this CLI, the cache
// package and the ffi layer log, and only this CLI exits the process.
type app struct {
	cfg   *Config
	log   hclog.Logger
	cache *cache.Store
}

var (
	flagConfigPath string
	flagLogLevel   string
	flagKeepGoing  bool

	a app
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fsl",
		Short:         "fsl is the FSL schema toolchain: parse, canonicalize, link, and transform .fsl files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupApp()
		},
	}

	root.PersistentFlags().StringVar(&flagConfigPath, "config", ".fsltool.yaml", "path to project config")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override the configured hclog level")
	root.PersistentFlags().BoolVar(&flagKeepGoing, "keep-going", false, "aggregate per-file errors instead of stopping at the first")

	root.AddCommand(
		newParseCmd(),
		newCanonicalCmd(),
		newLinkCmd(),
		newMergeRolesCmd(),
		newFilterCmd(),
		newRemoveCmd(),
		newStripResourceCmd(),
		newListCmd(),
		newSortCmd(),
		newTSDefsCmd(),
		newDiffCmd(),
	)
	return root
}

func setupApp() error {
	_ = godotenv.Load() // a missing .env is the common case, not an error

	cfg, err := loadConfig(flagConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if v := os.Getenv("FSLTOOL_LOG_LEVEL"); v != "" {
		level = v
	}
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	a.log = hclog.New(&hclog.LoggerOptions{
		Name:  "fsl",
		Level: hclog.LevelFromString(level),
	})

	cacheFile := cfg.CacheFile
	if v := os.Getenv("FSLTOOL_CACHE_DIR"); v != "" {
		cacheFile = v + string(os.PathSeparator) + "fsltool-cache.json.gz"
	}
	store, err := cache.Load(cacheFile, a.log.Named("cache"))
	if err != nil {
		return err
	}
	a.cache = store
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		hclog.Default().Error(err.Error())
		os.Exit(1)
	}
}
