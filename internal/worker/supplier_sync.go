package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/supplier"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// CatalogFacade exposes the subset of application functionality required
// by the sync worker.
type CatalogFacade interface {
	ProductsForSync(ctx context.Context, maxAge time.Duration, limit int) ([]model.Product, error)
	FetchSupplierProduct(ctx context.Context, sku string) (*model.Product, error)
	RecordProductSync(ctx context.Context, productID int64, unitPrice float64, inventory int) error
}

// SupplierSync polls the supplier API and refreshes stale catalog entries
// concurrently.
type SupplierSync struct {
	facade       CatalogFacade
	pollInterval time.Duration
	maxAge       time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Product
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSupplierSync constructs the catalog sync worker pool.
func NewSupplierSync(facade CatalogFacade, pollInterval, maxAge time.Duration, batchSize, workers int, logger *slog.Logger) *SupplierSync {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SupplierSync{
		facade:       facade,
		pollInterval: pollInterval,
		maxAge:       maxAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Product, batchSize*workers),
	}
}

// Start launches background syncing.
func (p *SupplierSync) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *SupplierSync) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *SupplierSync) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *SupplierSync) fetchAndDispatch(ctx context.Context) {
	products, err := p.facade.ProductsForSync(ctx, p.maxAge, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale products failed", slog.String("error", err.Error()))
		return
	}
	for _, product := range products {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- product:
		}
	}
}

func (p *SupplierSync) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case product, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleProduct(ctx, product)
		}
	}
}

func (p *SupplierSync) handleProduct(ctx context.Context, product model.Product) {
	fresh, err := p.facade.FetchSupplierProduct(ctx, product.SKU)
	if err != nil {
		switch e := err.(type) {
		case supplier.TooManyRequestsError:
			p.logger.Warn("supplier rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, supplier.ErrNotInCatalog) {
				// Discontinued style. Zero the inventory so quoting against
				// it stops, keep the last known price.
				if err := p.facade.RecordProductSync(ctx, product.ID, product.UnitPrice, 0); err != nil {
					p.logger.Error("mark discontinued failed", slog.String("sku", product.SKU), slog.String("error", err.Error()))
				}
				return
			}
			p.logger.Error("supplier fetch failed", slog.String("sku", product.SKU), slog.String("error", err.Error()))
		}
		return
	}

	if err := p.facade.RecordProductSync(ctx, product.ID, fresh.UnitPrice, fresh.Inventory); err != nil {
		p.logger.Error("record product sync failed", slog.String("sku", product.SKU), slog.String("error", err.Error()))
	}
}
