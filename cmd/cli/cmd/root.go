// Package cmd provides the CLI commands for shadecost.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shadecost/internal/config"
	"shadecost/internal/logging"
	"shadecost/store"
	"shadecost/store/memory"
	"shadecost/store/postgres"
)

var (
	cfgFile     string
	verbose     bool
	catalogPath string
	ownerID     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shadecost",
	Short: "Price window coverings from supplier grids",
	Long: `shadecost is the pricing engine for window-covering retailers.

It resolves the right supplier pricing grid for a product configuration
and calculates quote prices across every supported pricing method.

Examples:
  shadecost quote --method per-meter --base-cost 10 --width 3000
  shadecost grids match --product-type roller_blinds --price-group "Group A"
  shadecost groups --product-type roller_blinds`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shadecost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file for the memory store")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "default", "catalog owner scope")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(gridsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openStore builds the configured catalog store
func openStore(ctx context.Context) (store.Store, error) {
	cfg := config.Get()

	switch cfg.Store.Backend {
	case "postgres":
		return postgres.Open(ctx, cfg.Store.DatabaseURL)
	default:
		path := catalogPath
		if path == "" {
			path = cfg.Store.CatalogPath
		}
		return memory.Load(path)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shadecost version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("currency:  %s (%s)\n", cfg.Pricing.DefaultCurrency, cfg.Pricing.CurrencySymbol)
		fmt.Printf("store:     %s\n", cfg.Store.Backend)
		if cfg.Store.Backend == "postgres" {
			fmt.Printf("database:  %s\n", cfg.Store.DatabaseURL)
		} else {
			fmt.Printf("catalog:   %s\n", cfg.Store.CatalogPath)
		}
		fmt.Printf("log level: %s\n", cfg.Logging.Level)
		return nil
	},
}
