// Package types - Pricing method and calculation types
package types

import (
	"github.com/shopspring/decimal"

	"shadecost/core/grid"
)

// PricingMethod selects the calculation strategy for a product
type PricingMethod string

const (
	MethodFixed          PricingMethod = "fixed"
	MethodPerUnit        PricingMethod = "per-unit"
	MethodPerPanel       PricingMethod = "per-panel"
	MethodPerDrop        PricingMethod = "per-drop"
	MethodPerMeter       PricingMethod = "per-meter"
	MethodPerMetre       PricingMethod = "per-metre"
	MethodPerLinearMeter PricingMethod = "per-linear-meter"
	MethodPerYard        PricingMethod = "per-yard"
	MethodPerLinearYard  PricingMethod = "per-linear-yard"
	MethodPerSqm         PricingMethod = "per-sqm"
	MethodPerSquareMeter PricingMethod = "per-square-meter"
	MethodPercentage     PricingMethod = "percentage"
	MethodInherit        PricingMethod = "inherit"
	MethodPricingGrid    PricingMethod = "pricing-grid"
)

// String returns the method tag
func (m PricingMethod) String() string {
	return string(m)
}

// Known reports whether the method is part of the supported set
func (m PricingMethod) Known() bool {
	switch m {
	case MethodFixed, MethodPerUnit, MethodPerPanel, MethodPerDrop,
		MethodPerMeter, MethodPerMetre, MethodPerLinearMeter,
		MethodPerYard, MethodPerLinearYard,
		MethodPerSqm, MethodPerSquareMeter,
		MethodPercentage, MethodInherit, MethodPricingGrid:
		return true
	}
	return false
}

// Configuration error tags surfaced on PricingResult. A missing input is a
// configuration error, never silently substituted: a guessed default would
// misprice a real order.
const (
	ErrFullnessRequired    = "fullness_required"
	ErrFabricWidthRequired = "fabric_width_required"
)

// PricingContext is the input bundle to the strategy calculator.
// Physical dimensions are millimeters; FabricWidth alone is centimeters,
// following supplier convention for fabric bolts.
type PricingContext struct {
	// BaseCost is the method's unit cost
	BaseCost decimal.Decimal `json:"base_cost"`

	// RailWidth is the rail width in millimeters
	RailWidth float64 `json:"rail_width"`

	// Drop is the drop (height) in millimeters
	Drop float64 `json:"drop"`

	// Quantity is the number of items quoted
	Quantity int `json:"quantity"`

	// Fullness is the fabric gather ratio; required by per-panel
	Fullness *float64 `json:"fullness,omitempty"`

	// FabricWidth is the fabric bolt width in centimeters; required by per-panel
	FabricWidth *float64 `json:"fabric_width,omitempty"`

	// FabricCost is the fabric price per meter
	FabricCost decimal.Decimal `json:"fabric_cost"`

	// FabricUsage is the meters of fabric consumed
	FabricUsage float64 `json:"fabric_usage"`

	// GridData is the resolved pricing grid, when one applies
	GridData *grid.Data `json:"pricing_grid_data,omitempty"`

	// ParentMethod is the window covering's own method, followed by inherit
	ParentMethod PricingMethod `json:"window_covering_pricing_method,omitempty"`

	// CurrencySymbol is used in the calculation display string
	CurrencySymbol string `json:"currency_symbol,omitempty"`
}

// Breakdown is the structured decomposition of a calculated price
type Breakdown struct {
	// Units is the billable unit count (panels, meters, square meters...)
	Units float64 `json:"units"`

	// UnitCost is the cost per billable unit
	UnitCost decimal.Decimal `json:"unit_cost"`

	// Multiplier is the quantity multiplier applied last
	Multiplier int `json:"multiplier"`
}

// PricingResult is the strategy calculator's output.
// Calculation is a required human-readable audit string, rendered even on
// degraded paths so a quote screen can always explain its price.
type PricingResult struct {
	// Cost is the computed price
	Cost decimal.Decimal `json:"cost"`

	// Calculation explains the computation for audit display
	Calculation string `json:"calculation"`

	// Breakdown is the structured decomposition, when meaningful
	Breakdown *Breakdown `json:"breakdown,omitempty"`

	// Err carries a configuration error tag, empty on success
	Err string `json:"error,omitempty"`

	// Unpriced names the degraded path taken when the requested method
	// could not be applied as asked (unknown method, missing grid data);
	// it distinguishes a fallback price from a first-class one
	Unpriced string `json:"unpriced,omitempty"`
}
