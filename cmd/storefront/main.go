package main

import (
	"fmt"
	"os"

	"github.com/ctrl-sourav/Nexus-cart/internal/auth"
	"github.com/ctrl-sourav/Nexus-cart/internal/cart"
	"github.com/ctrl-sourav/Nexus-cart/internal/catalog"
	"github.com/ctrl-sourav/Nexus-cart/internal/config"
	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"
	"github.com/ctrl-sourav/Nexus-cart/internal/wishlist"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile   string
	ephemeral bool
	verbose   bool

	logger *zap.Logger
	deps   *appDeps
)

// appDeps is the explicit wiring of the client core: every store is an
// injected instance with its own lifecycle, no package-level singletons.
type appDeps struct {
	cfg      config.Config
	store    storage.Store
	bus      *events.Bus
	catalog  *catalog.Client
	cart     cart.Service
	wishlist wishlist.Service
	auth     auth.Service
}

func (d *appDeps) close() {
	if d != nil && d.store != nil {
		_ = d.store.Close()
	}
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal storefront over the fakestore demo API",
	Long: `storefront browses the public demo product catalog and keeps a local
cart, wishlist and demo login on this machine. Nothing leaves your computer
except catalog fetches; the login is a mock that accepts any email with a
password of six or more characters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		deps, err = buildDeps()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		deps.close()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func buildDeps() (*appDeps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var store storage.Store
	if ephemeral {
		store = storage.NewMemoryStore()
	} else {
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, fmt.Errorf("resolve storage path: %w", err)
		}
		store, err = storage.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open local storage: %w", err)
		}
	}

	bus := events.NewBus()
	bus.Subscribe(events.LogSubscriber(logger))
	bus.Subscribe(toastSubscriber(os.Stdout))

	return &appDeps{
		cfg:      cfg,
		store:    store,
		bus:      bus,
		catalog:  catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout.Std(), logger),
		cart:     cart.NewService(store, bus, logger),
		wishlist: wishlist.NewService(store, bus, logger),
		auth:     auth.NewService(store, bus, logger, cfg.Auth.LoginDelay.Std()),
	}, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to yaml config file")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only (no local storage)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(wishlistCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
