// Package matcher implements pricing-grid auto-matching.
//
// Auto-matching selects a grid from a (supplier, product type, price group)
// request by searching three widening scopes, each with a four-tier label
// comparison. It exists so inconsistent, human-entered price-tier labels
// still resolve deterministically without a catalog migration.
package matcher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shadecost/core/treatment"
	"shadecost/core/types"
	"shadecost/internal/logging"
	"shadecost/store"
)

// Matcher performs grid auto-matching against a catalog store
type Matcher struct {
	store   store.Store
	mapping *treatment.Mapping
	log     *zap.Logger
}

// New creates a matcher. A nil mapping uses the built-in treatment table.
func New(s store.Store, mapping *treatment.Mapping) *Matcher {
	if mapping == nil {
		mapping = treatment.NewMapping()
	}
	return &Matcher{
		store:   s,
		mapping: mapping,
		log:     logging.Named("matcher"),
	}
}

// AutoMatch finds the best grid for the request.
//
// Scopes widen in order, each only attempted when the previous found
// nothing: requested supplier and product type, then product type under any
// supplier, then every compatible product type of the treatment category.
// Within a scope the four-tier label comparison decides, first hit winning.
// Store read failures degrade to a miss rather than failing the quote.
func (m *Matcher) AutoMatch(ctx context.Context, params types.AutoMatchParams) types.AutoMatchResult {
	if params.PriceGroup == "" {
		return types.AutoMatchResult{
			MatchType:    types.MatchNone,
			MatchDetails: "no price group supplied, auto-matching skipped",
		}
	}

	request := formsOf(params.PriceGroup)

	// Scope 1: requested supplier and product type.
	if params.SupplierID != "" {
		grids, err := m.store.GridsBySupplierAndType(ctx, params.OwnerID, params.SupplierID, params.ProductType)
		if err != nil {
			m.log.Warn("supplier-scope grid query failed, continuing without",
				zap.String("supplier_id", params.SupplierID), zap.Error(err))
		} else if best, tier := bestMatch(request, grids); best != nil {
			return m.result(best, types.MatchExact, tier, params)
		}
	}

	// Scope 2: product type under any supplier.
	grids, err := m.store.GridsByType(ctx, params.OwnerID, params.ProductType)
	if err != nil {
		m.log.Warn("type-scope grid query failed, continuing without",
			zap.String("product_type", params.ProductType), zap.Error(err))
	} else if best, tier := bestMatch(request, grids); best != nil {
		return m.result(best, types.MatchFallback, tier, params)
	}

	// Scope 3: every product type compatible with the treatment category.
	compatible := m.mapping.CompatibleTypes(params.ProductType)
	grids, err = m.store.GridsByTypes(ctx, params.OwnerID, compatible)
	if err != nil {
		m.log.Warn("flexible-scope grid query failed, continuing without",
			zap.Strings("product_types", compatible), zap.Error(err))
	} else if best, tier := bestMatch(request, grids); best != nil {
		return m.result(best, types.MatchFlexible, tier, params)
	}

	return types.AutoMatchResult{
		MatchType: types.MatchNone,
		MatchDetails: fmt.Sprintf("no grid matched price group %q for product type %q",
			params.PriceGroup, params.ProductType),
	}
}

// bestMatch selects the grid agreeing with the request on the best tier.
// Tiers are evaluated in priority order; within a tier the first candidate
// in stored order wins.
func bestMatch(request groupForms, grids []types.PriceGrid) (*types.PriceGrid, matchTier) {
	for tier := tierExactGroup; tier < tierNoMatch; tier++ {
		for i := range grids {
			g := &grids[i]
			if !g.Active {
				continue
			}
			if tierBetween(request, formsOf(g.PriceGroup)) == tier {
				return g, tier
			}
		}
	}
	return nil, tierNoMatch
}

func (m *Matcher) result(g *types.PriceGrid, matchType types.MatchType, tier matchTier, params types.AutoMatchParams) types.AutoMatchResult {
	m.log.Debug("auto-matched pricing grid",
		zap.String("grid_code", g.GridCode),
		zap.String("match_type", matchType.String()),
		zap.String("tier", tier.String()))

	return types.AutoMatchResult{
		GridID:              g.ID,
		GridCode:            g.GridCode,
		GridName:            g.Name,
		GridData:            g.Data,
		MarkupPercentage:    g.MarkupPercentage,
		DiscountPercentage:  g.DiscountPercentage,
		IncludesFabricPrice: g.FabricIncluded(),
		MatchType:           matchType,
		MatchDetails: fmt.Sprintf("grid %s matched price group %q on %s tier (%s scope)",
			g.GridCode, params.PriceGroup, tier, matchType),
	}
}
