// Package app contains the application setup for the bookstore.
package app

import (
	"fmt"
	"io"
	"log/slog"

	catalogservice "github.com/abgdnv/bookstore/internal/catalog/service"
	catalogstore "github.com/abgdnv/bookstore/internal/catalog/store"
	"github.com/abgdnv/bookstore/internal/cli"
	"github.com/abgdnv/bookstore/internal/config"
	ledgerservice "github.com/abgdnv/bookstore/internal/ledger/service"
	ledgerstore "github.com/abgdnv/bookstore/internal/ledger/store"
	"github.com/abgdnv/bookstore/internal/report"
)

type Dependencies struct {
	Catalog catalogservice.CatalogService
	Ledger  ledgerservice.LedgerService
	Reports *report.Service
	Logger  *slog.Logger
}

// SetupDependencies builds the in-memory stores and services, preloading
// the seed catalog when configured.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	products := catalogstore.NewMemoryStore()
	sales := ledgerstore.NewMemoryStore()

	catalogSvc := catalogservice.NewService(products)
	ledgerSvc := ledgerservice.NewService(sales, catalogSvc)
	reports := report.NewService(sales)

	if cfg.Catalog.Preload {
		if err := preloadCatalog(catalogSvc); err != nil {
			return nil, fmt.Errorf("failed to preload catalog: %w", err)
		}
		logger.Info("catalog preloaded", "products", len(seedProducts))
	}

	return &Dependencies{
		Catalog: catalogSvc,
		Ledger:  ledgerSvc,
		Reports: reports,
		Logger:  logger,
	}, nil
}

// SetupShell wires the menu shell onto the given input and output streams.
func SetupShell(deps *Dependencies, cfg *config.Config, in io.Reader, out io.Writer) *cli.Shell {
	return cli.NewShell(deps.Catalog, deps.Ledger, deps.Reports, in, out, deps.Logger, cfg.Report.TopN)
}
