// Package resolver orchestrates pricing-grid resolution.
//
// Resolution tries auto-matching first and only falls back to the legacy
// explicit rule table when auto-matching finds nothing. A miss is a value,
// not an error: callers receive an empty result and decide whether to price
// without a grid or block the quote.
package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shadecost/core/matcher"
	"shadecost/core/treatment"
	"shadecost/core/types"
	"shadecost/internal/logging"
	"shadecost/store"
)

// Resolver resolves pricing grids for product configurations
type Resolver struct {
	store   store.Store
	matcher *matcher.Matcher
	log     *zap.Logger
}

// New creates a resolver. A nil mapping uses the built-in treatment table.
func New(s store.Store, mapping *treatment.Mapping) *Resolver {
	return &Resolver{
		store:   s,
		matcher: matcher.New(s, mapping),
		log:     logging.Named("resolver"),
	}
}

// ResolveGridForProduct finds the grid for a product configuration.
//
// Without a price group resolution is impossible and returns an empty
// result without touching the store. An auto-match always wins over legacy
// rules and carries a synthetic matched-rule record at priority 100; legacy
// rules are scanned in priority order, skipping any whose system type or
// option conditions disagree with the request, and the first whose linked
// grid is still active wins.
func (r *Resolver) ResolveGridForProduct(ctx context.Context, params types.ResolveParams) types.GridResolutionResult {
	if params.FabricPriceGroup == "" {
		return types.GridResolutionResult{
			Details: "no price group supplied, grid resolution skipped",
		}
	}

	// Step 1: auto-match.
	match := r.matcher.AutoMatch(ctx, types.AutoMatchParams{
		SupplierID:  params.FabricSupplierID,
		ProductType: params.ProductType,
		PriceGroup:  params.FabricPriceGroup,
		OwnerID:     params.OwnerID,
	})
	if match.Matched() {
		return types.GridResolutionResult{
			GridID:              match.GridID,
			GridCode:            match.GridCode,
			GridName:            match.GridName,
			GridData:            match.GridData,
			MarkupPercentage:    match.MarkupPercentage,
			DiscountPercentage:  match.DiscountPercentage,
			IncludesFabricPrice: match.IncludesFabricPrice,
			MatchedRule: &types.MatchedRule{
				ID:        match.GridID,
				Source:    types.RuleSourceAutoMatch,
				Priority:  types.AutoMatchPriority,
				MatchType: match.MatchType,
			},
			Details: match.MatchDetails,
		}
	}

	// Step 2: legacy rule table.
	rules, err := r.store.RulesFor(ctx, params.OwnerID, params.ProductType, params.FabricPriceGroup)
	if err != nil {
		r.log.Warn("legacy rule query failed, resolving without a grid",
			zap.String("product_type", params.ProductType), zap.Error(err))
		return types.GridResolutionResult{
			Details: "grid lookup unavailable, proceeding without a grid",
		}
	}

	for _, rule := range rules {
		if rule.SystemType != "" && rule.SystemType != params.SystemType {
			continue
		}
		if !optionsAgree(rule.OptionConditions, params.SelectedOptions) {
			continue
		}

		g, err := r.store.GridByID(ctx, params.OwnerID, rule.GridID)
		if err != nil {
			r.log.Warn("rule points at unreadable grid, skipping",
				zap.String("rule_id", rule.ID), zap.String("grid_id", rule.GridID), zap.Error(err))
			continue
		}
		if !g.Active {
			continue
		}

		return types.GridResolutionResult{
			GridID:              g.ID,
			GridCode:            g.GridCode,
			GridName:            g.Name,
			GridData:            g.Data,
			MarkupPercentage:    g.MarkupPercentage,
			DiscountPercentage:  g.DiscountPercentage,
			IncludesFabricPrice: g.FabricIncluded(),
			MatchedRule: &types.MatchedRule{
				ID:       rule.ID,
				Source:   types.RuleSourceLegacy,
				Priority: rule.Priority,
			},
			Details: fmt.Sprintf("grid %s selected by legacy rule %s (priority %d)",
				g.GridCode, rule.ID, rule.Priority),
		}
	}

	return types.GridResolutionResult{
		Details: fmt.Sprintf("no grid resolved for product type %q, price group %q",
			params.ProductType, params.FabricPriceGroup),
	}
}

// optionsAgree reports whether every rule condition is satisfied by the
// selected options. Rules without conditions always agree.
func optionsAgree(conditions, selected map[string]string) bool {
	for key, want := range conditions {
		if selected[key] != want {
			return false
		}
	}
	return true
}

// GetAvailablePriceGroups lists the price groups offered by active grids
// for a product type
func (r *Resolver) GetAvailablePriceGroups(ctx context.Context, productType, ownerID string) ([]string, error) {
	return r.store.PriceGroupsFor(ctx, ownerID, productType)
}

// HasMatchingGrid reports whether auto-matching would find a grid
func (r *Resolver) HasMatchingGrid(ctx context.Context, params types.AutoMatchParams) bool {
	return r.matcher.AutoMatch(ctx, params).Matched()
}

// HasValidPricingGrid reports whether full resolution yields a grid with
// a usable price table
func (r *Resolver) HasValidPricingGrid(ctx context.Context, params types.ResolveParams) bool {
	result := r.ResolveGridForProduct(ctx, params)
	return result.Resolved() && !result.GridData.IsEmpty()
}
