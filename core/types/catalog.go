// Package types defines the shared domain types for the pricing engine.
package types

import (
	"github.com/shopspring/decimal"

	"shadecost/core/grid"
)

// PriceGrid is a named, versioned 2-D price table owned by a catalog scope.
// The pricing engine treats grids as immutable snapshots; only catalog
// administration writes them.
type PriceGrid struct {
	// ID uniquely identifies the grid
	ID string `json:"id"`

	// OwnerID is the catalog owner scope
	OwnerID string `json:"owner_id"`

	// GridCode is the unique human-readable key
	GridCode string `json:"grid_code"`

	// Name is the display name
	Name string `json:"name"`

	// ProductType is the treatment type this grid prices (e.g. roller_blinds)
	ProductType string `json:"product_type"`

	// SystemType is an optional sub-variant (e.g. cassette)
	SystemType string `json:"system_type,omitempty"`

	// PriceGroup is the supplier's free-text tier label (e.g. A, GROUP-2)
	PriceGroup string `json:"price_group"`

	// SupplierID is the owning vendor, empty when generic
	SupplierID string `json:"supplier_id,omitempty"`

	// Data is the validated width/drop price table
	Data *grid.Data `json:"grid_data,omitempty"`

	// MarkupPercentage is applied on top of the grid price
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`

	// DiscountPercentage is subtracted from the grid price
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`

	// IncludesFabricPrice records whether the grid price already bakes in
	// fabric cost; nil means the supplier never said, which resolution
	// treats as true to avoid double-charging fabric
	IncludesFabricPrice *bool `json:"includes_fabric_price,omitempty"`

	// Active gates eligibility for matching
	Active bool `json:"active"`
}

// FabricIncluded resolves the nullable IncludesFabricPrice flag,
// defaulting to true when the supplier left it unset
func (g *PriceGrid) FabricIncluded() bool {
	if g.IncludesFabricPrice == nil {
		return true
	}
	return *g.IncludesFabricPrice
}

// GridRule is a legacy explicit routing rule mapping a product configuration
// to a specific grid. Rules survive only as a fallback behind auto-matching.
type GridRule struct {
	// ID uniquely identifies the rule
	ID string `json:"id"`

	// OwnerID is the catalog owner scope
	OwnerID string `json:"owner_id"`

	// ProductType must equal the requested product type exactly
	ProductType string `json:"product_type"`

	// SystemType, when set, must equal the requested system type
	SystemType string `json:"system_type,omitempty"`

	// PriceGroup must equal the requested price group exactly
	PriceGroup string `json:"price_group"`

	// OptionConditions, when set, must all agree with the selected options
	OptionConditions map[string]string `json:"option_conditions,omitempty"`

	// GridID is the single grid this rule routes to
	GridID string `json:"grid_id"`

	// Priority orders rule evaluation, higher first
	Priority int `json:"priority"`

	// Active gates the rule
	Active bool `json:"active"`
}

// Template is a product template record as consumed by pricing.
// Catalog loading enriches grid-priced templates with their resolved grid so
// downstream calculators need not re-resolve.
type Template struct {
	// ID uniquely identifies the template
	ID string `json:"id"`

	// OwnerID is the catalog owner scope
	OwnerID string `json:"owner_id"`

	// Name is the display name
	Name string `json:"name"`

	// ProductType is the treatment type
	ProductType string `json:"product_type"`

	// PricingType selects the pricing family (e.g. pricing_grid)
	PricingType string `json:"pricing_type"`

	// PricingMethod is the calculation strategy for non-grid pricing
	PricingMethod PricingMethod `json:"pricing_method,omitempty"`

	// SystemType is the template's sub-variant, may be empty
	SystemType string `json:"system_type,omitempty"`

	// PriceGroup is the template's price tier, may be empty
	PriceGroup string `json:"price_group,omitempty"`

	// SupplierID is the template's vendor, may be empty
	SupplierID string `json:"supplier_id,omitempty"`

	// BaseCost is the template's direct unit cost
	BaseCost decimal.Decimal `json:"base_cost"`

	// PricingGridData is attached by enrichment
	PricingGridData *grid.Data `json:"pricing_grid_data,omitempty"`

	// ResolvedGridID identifies the grid enrichment attached
	ResolvedGridID string `json:"resolved_grid_id,omitempty"`

	// ResolvedGridCode is the attached grid's human key
	ResolvedGridCode string `json:"resolved_grid_code,omitempty"`

	// ResolvedGridName is the attached grid's display name
	ResolvedGridName string `json:"resolved_grid_name,omitempty"`
}

// PricingTypeGrid is the template pricing type that requires a grid
const PricingTypeGrid = "pricing_grid"

// FabricItem is the fabric/material record a template may defer to for
// system type and price group
type FabricItem struct {
	// ID uniquely identifies the fabric
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// SystemType is the fabric's sub-variant, may be empty
	SystemType string `json:"system_type,omitempty"`

	// PriceGroup is the fabric's price tier, may be empty
	PriceGroup string `json:"price_group,omitempty"`

	// SupplierID is the fabric's vendor, may be empty
	SupplierID string `json:"supplier_id,omitempty"`

	// CostPerMeter is the fabric's cost per linear meter
	CostPerMeter decimal.Decimal `json:"cost_per_meter"`
}
