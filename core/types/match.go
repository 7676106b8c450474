// Package types - Grid matching and resolution types
package types

import (
	"github.com/shopspring/decimal"

	"shadecost/core/grid"
)

// MatchType classifies how a grid was selected
type MatchType string

const (
	// MatchExact - grid found for the requested supplier and product type
	MatchExact MatchType = "exact"

	// MatchFallback - grid found for the product type under another supplier
	MatchFallback MatchType = "fallback"

	// MatchFlexible - grid found for a compatible product type
	MatchFlexible MatchType = "flexible"

	// MatchNone - no grid matched at any scope
	MatchNone MatchType = "none"
)

// String returns the string representation
func (m MatchType) String() string {
	return string(m)
}

// AutoMatchParams are the inputs to grid auto-matching
type AutoMatchParams struct {
	// SupplierID narrows the first matching scope; may be empty
	SupplierID string `json:"supplier_id,omitempty"`

	// ProductType is the treatment type to price
	ProductType string `json:"product_type"`

	// PriceGroup is the fabric's tier label; matching is impossible without it
	PriceGroup string `json:"price_group,omitempty"`

	// OwnerID is the catalog owner scope, always threaded explicitly
	OwnerID string `json:"owner_id"`
}

// AutoMatchResult carries the selected grid and its pricing metadata
type AutoMatchResult struct {
	// GridID identifies the matched grid, empty on MatchNone
	GridID string `json:"grid_id,omitempty"`

	// GridCode is the matched grid's human key
	GridCode string `json:"grid_code,omitempty"`

	// GridName is the matched grid's display name
	GridName string `json:"grid_name,omitempty"`

	// GridData is the matched grid's price table
	GridData *grid.Data `json:"grid_data,omitempty"`

	// MarkupPercentage from the matched grid
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`

	// DiscountPercentage from the matched grid
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`

	// IncludesFabricPrice is the matched grid's fabric flag, defaulted true
	IncludesFabricPrice bool `json:"includes_fabric_price"`

	// MatchType records which scope produced the match
	MatchType MatchType `json:"match_type"`

	// MatchDetails explains the match (or miss) for display
	MatchDetails string `json:"match_details,omitempty"`
}

// Matched reports whether any grid was selected
func (r AutoMatchResult) Matched() bool {
	return r.MatchType != "" && r.MatchType != MatchNone
}

// ResolveParams are the inputs to full grid resolution
type ResolveParams struct {
	// ProductType is the treatment type to price
	ProductType string `json:"product_type"`

	// SystemType is the product sub-variant; may be empty
	SystemType string `json:"system_type,omitempty"`

	// FabricPriceGroup is the fabric's tier label; may be empty
	FabricPriceGroup string `json:"fabric_price_group,omitempty"`

	// FabricSupplierID is the fabric's vendor; may be empty
	FabricSupplierID string `json:"fabric_supplier_id,omitempty"`

	// SelectedOptions are the configured option values, keyed by option id
	SelectedOptions map[string]string `json:"selected_options,omitempty"`

	// OwnerID is the catalog owner scope, always threaded explicitly
	OwnerID string `json:"owner_id"`
}

// RuleSourceAutoMatch and RuleSourceLegacy tag where a resolution came from
const (
	RuleSourceAutoMatch = "auto_match"
	RuleSourceLegacy    = "legacy_rule"
)

// AutoMatchPriority is the synthetic priority assigned to auto-matches so
// they always outrank legacy rules
const AutoMatchPriority = 100

// MatchedRule records which routing decision selected the grid
type MatchedRule struct {
	// ID is the legacy rule id, or the grid id for auto-matches
	ID string `json:"id"`

	// Source is auto_match or legacy_rule
	Source string `json:"source"`

	// Priority is the rule's evaluation priority
	Priority int `json:"priority"`

	// MatchType is set for auto-matches
	MatchType MatchType `json:"match_type,omitempty"`
}

// GridResolutionResult is the unified output of grid resolution.
// An empty GridID is not an error: the caller proceeds without a grid,
// typically by falling back to a direct pricing method.
type GridResolutionResult struct {
	// GridID identifies the resolved grid, empty when nothing matched
	GridID string `json:"grid_id,omitempty"`

	// GridCode is the resolved grid's human key
	GridCode string `json:"grid_code,omitempty"`

	// GridName is the resolved grid's display name
	GridName string `json:"grid_name,omitempty"`

	// GridData is the resolved grid's price table
	GridData *grid.Data `json:"grid_data,omitempty"`

	// MarkupPercentage from the resolved grid
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`

	// DiscountPercentage from the resolved grid
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`

	// IncludesFabricPrice is the resolved grid's fabric flag, defaulted true
	IncludesFabricPrice bool `json:"includes_fabric_price"`

	// MatchedRule records the routing decision, nil when nothing matched
	MatchedRule *MatchedRule `json:"matched_rule,omitempty"`

	// Details explains the resolution for display
	Details string `json:"details,omitempty"`
}

// Resolved reports whether a grid was found
func (r GridResolutionResult) Resolved() bool {
	return r.GridID != ""
}
