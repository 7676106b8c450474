// Package store defines the read-only data-store contract the pricing
// engine resolves grids through. The engine never writes catalog data;
// implementations return immutable snapshots and filter to active records.
package store

import (
	"context"

	"shadecost/core/types"
)

// Store is the read capability grid resolution depends on.
// Every query takes the owner scope explicitly; the engine never resolves
// an ambient "current user".
type Store interface {
	// GridsBySupplierAndType returns active grids for one supplier and
	// product type
	GridsBySupplierAndType(ctx context.Context, ownerID, supplierID, productType string) ([]types.PriceGrid, error)

	// GridsByType returns active grids for a product type across suppliers
	GridsByType(ctx context.Context, ownerID, productType string) ([]types.PriceGrid, error)

	// GridsByTypes returns active grids for any of the given product types
	GridsByTypes(ctx context.Context, ownerID string, productTypes []string) ([]types.PriceGrid, error)

	// GridByID returns a single grid regardless of active flag, or a
	// NOT_FOUND error
	GridByID(ctx context.Context, ownerID, gridID string) (*types.PriceGrid, error)

	// RulesFor returns active legacy rules matching the product type and
	// price group exactly, ordered by priority descending
	RulesFor(ctx context.Context, ownerID, productType, priceGroup string) ([]types.GridRule, error)

	// PriceGroupsFor returns the distinct price groups of active grids for
	// a product type, sorted ascending
	PriceGroupsFor(ctx context.Context, ownerID, productType string) ([]string, error)
}
