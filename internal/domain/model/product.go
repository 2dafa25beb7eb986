package model

import "time"

// Product is a supplier catalog entry mirrored locally and refreshed by
// the background sync.
type Product struct {
	ID        int64
	SKU       string
	Supplier  string
	Name      string
	Category  string
	UnitPrice float64
	Inventory int
	SyncedAt  time.Time
}
