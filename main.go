package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/repositories"
	"artisan/internal/services"
	"artisan/pkg/config"
	"artisan/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the artisan command tree. Configuration is read once
// per invocation, before any subcommand runs.
func newRootCmd() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:   "artisan",
		Short: "Artisan Market storefront service",
		Long: `Artisan Market serves a handmade goods catalog with per-session carts,
a simulated account store and a simulated checkout.

Configuration comes from the environment (or a .env file).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if err := logger.Init(cfg.Environment); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newProductsCmd(func() *config.Config { return cfg }))
	rootCmd.AddCommand(newProductCmd(func() *config.Config { return cfg }))
	return rootCmd
}

func runServe(cfg *config.Config) error {
	a, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.startConsumer()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s", cfg.AppPort)
		errCh <- a.app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	a.Close()
	logger.Info("Server gracefully stopped")
	return nil
}

// loadCatalog opens the configured catalog for a one-shot command. release
// closes any database it opened.
func loadCatalog(c *config.Config) (repositories.ProductRepository, func(), error) {
	var dbs []*gorm.DB
	release := func() {
		for _, db := range dbs {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
	}

	repo, err := openCatalog(c, func(dialect string) (*gorm.DB, error) {
		db, err := openDatabase(dialect, c.DatabaseDSN)
		if err == nil {
			dbs = append(dbs, db)
		}
		return db, err
	})
	if err != nil {
		release()
		return nil, nil, err
	}
	return repo, release, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// newProductCmd prints one catalog record as JSON.
func newProductCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "product <id>",
		Short:   "Show one product",
		Args:    cobra.ExactArgs(1),
		Example: "  artisan product 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, release, err := loadCatalog(cfg())
			if err != nil {
				return err
			}
			defer release()

			product, err := repo.GetByID(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, product)
		},
	}
}

type productsFlags struct {
	search    string
	category  string
	minPrice  float64
	maxPrice  float64
	materials []string
	inStock   bool
	featured  bool
	sort      string
}

func (f productsFlags) spec(cmd *cobra.Command) models.FilterSpec {
	spec := models.FilterSpec{
		Search:    f.search,
		Category:  f.category,
		Materials: f.materials,
		InStock:   f.inStock,
		Featured:  f.featured,
	}
	if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
		spec.PriceRange = &models.PriceRange{Min: f.minPrice, Max: f.maxPrice}
	}
	return spec
}

// newProductsCmd prints the filtered, sorted catalog as JSON.
func newProductsCmd(cfg func() *config.Config) *cobra.Command {
	var flags productsFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Filter and sort the catalog",
		Example: `  artisan products --category Ceramics --sort price-low
  artisan products --material Wood --material Metal --in-stock`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, release, err := loadCatalog(cfg())
			if err != nil {
				return err
			}
			defer release()

			svc, err := services.NewCatalogService(repo)
			if err != nil {
				return err
			}

			return printJSON(cmd, svc.ListProducts(flags.spec(cmd), catalog.ParseSortKey(flags.sort)))
		},
	}

	cmd.Flags().StringVar(&flags.search, "search", "", "Case-insensitive text search")
	cmd.Flags().StringVar(&flags.category, "category", "", "Category, or \"All\"")
	cmd.Flags().Float64Var(&flags.minPrice, "min-price", 0, "Minimum price, inclusive")
	cmd.Flags().Float64Var(&flags.maxPrice, "max-price", math.MaxFloat64, "Maximum price, inclusive")
	cmd.Flags().StringSliceVar(&flags.materials, "material", nil, "Material substring; repeat to match any of several")
	cmd.Flags().BoolVar(&flags.inStock, "in-stock", false, "Only products in stock")
	cmd.Flags().BoolVar(&flags.featured, "featured", false, "Only featured products")
	cmd.Flags().StringVar(&flags.sort, "sort", string(models.SortFeatured), "featured, price-low, price-high, rating or newest")
	return cmd
}
