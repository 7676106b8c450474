package resolver

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"shadecost/core/grid"
	"shadecost/core/types"
	"shadecost/internal/errors"
)

// fakeStore is an in-memory store.Store for resolver tests
type fakeStore struct {
	grids     []types.PriceGrid
	rules     []types.GridRule
	queries   int
	failRules bool
}

func (f *fakeStore) GridsBySupplierAndType(_ context.Context, ownerID, supplierID, productType string) ([]types.PriceGrid, error) {
	f.queries++
	var out []types.PriceGrid
	for _, g := range f.grids {
		if g.OwnerID == ownerID && g.SupplierID == supplierID && g.ProductType == productType && g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) GridsByType(_ context.Context, ownerID, productType string) ([]types.PriceGrid, error) {
	f.queries++
	var out []types.PriceGrid
	for _, g := range f.grids {
		if g.OwnerID == ownerID && g.ProductType == productType && g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) GridsByTypes(_ context.Context, ownerID string, productTypes []string) ([]types.PriceGrid, error) {
	f.queries++
	var out []types.PriceGrid
	for _, g := range f.grids {
		if g.OwnerID != ownerID || !g.Active {
			continue
		}
		for _, pt := range productTypes {
			if g.ProductType == pt {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GridByID(_ context.Context, ownerID, gridID string) (*types.PriceGrid, error) {
	f.queries++
	for _, g := range f.grids {
		if g.OwnerID == ownerID && g.ID == gridID {
			found := g
			return &found, nil
		}
	}
	return nil, errors.NotFound("grid", gridID)
}

func (f *fakeStore) RulesFor(_ context.Context, ownerID, productType, priceGroup string) ([]types.GridRule, error) {
	f.queries++
	if f.failRules {
		return nil, errors.Store("rules unavailable", nil)
	}
	var out []types.GridRule
	for _, r := range f.rules {
		if r.OwnerID == ownerID && r.ProductType == productType && r.PriceGroup == priceGroup && r.Active {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Priority > out[b].Priority })
	return out, nil
}

func (f *fakeStore) PriceGroupsFor(_ context.Context, ownerID, productType string) ([]string, error) {
	f.queries++
	seen := map[string]bool{}
	var out []string
	for _, g := range f.grids {
		if g.OwnerID == ownerID && g.ProductType == productType && g.Active && !seen[g.PriceGroup] {
			seen[g.PriceGroup] = true
			out = append(out, g.PriceGroup)
		}
	}
	sort.Strings(out)
	return out, nil
}

func testGrid(id, supplierID, productType, priceGroup string, active bool) types.PriceGrid {
	data, _ := grid.New(
		[]float64{100, 200},
		[]grid.Row{{Drop: 150, Prices: []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(60)}}},
	)
	return types.PriceGrid{
		ID:          id,
		OwnerID:     "owner-1",
		GridCode:    "GC-" + id,
		Name:        "Grid " + id,
		ProductType: productType,
		PriceGroup:  priceGroup,
		SupplierID:  supplierID,
		Data:        data,
		Active:      active,
	}
}

// TestResolveNoPriceGroupShortCircuit tests that resolution without a price
// group returns empty without issuing any store query
func TestResolveNoPriceGroupShortCircuit(t *testing.T) {
	s := &fakeStore{grids: []types.PriceGrid{testGrid("g1", "sup-1", "roller_blinds", "A", true)}}
	r := New(s, nil)

	result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
		ProductType: "roller_blinds",
		OwnerID:     "owner-1",
	})

	if result.Resolved() {
		t.Errorf("expected empty result, got grid %s", result.GridID)
	}
	if s.queries != 0 {
		t.Errorf("expected no store queries, got %d", s.queries)
	}
}

// TestResolveAutoMatchWins tests that an auto-match outranks a legacy rule
// covering the same parameters
func TestResolveAutoMatchWins(t *testing.T) {
	s := &fakeStore{
		grids: []types.PriceGrid{
			testGrid("auto-grid", "sup-1", "roller_blinds", "A", true),
			testGrid("rule-grid", "", "roller_blinds", "LEGACY", true),
		},
		rules: []types.GridRule{{
			ID: "rule-1", OwnerID: "owner-1", ProductType: "roller_blinds",
			PriceGroup: "A", GridID: "rule-grid", Priority: 50, Active: true,
		}},
	}
	r := New(s, nil)

	result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
		ProductType:      "roller_blinds",
		FabricPriceGroup: "A",
		FabricSupplierID: "sup-1",
		OwnerID:          "owner-1",
	})

	if result.GridID != "auto-grid" {
		t.Fatalf("expected auto-match to win, got %s", result.GridID)
	}
	if result.MatchedRule == nil {
		t.Fatal("matched rule record expected")
	}
	if result.MatchedRule.Source != types.RuleSourceAutoMatch {
		t.Errorf("expected auto_match source, got %s", result.MatchedRule.Source)
	}
	if result.MatchedRule.Priority != types.AutoMatchPriority {
		t.Errorf("expected synthetic priority 100, got %d", result.MatchedRule.Priority)
	}
}

// TestResolveLegacyFallback tests the legacy rule table path
func TestResolveLegacyFallback(t *testing.T) {
	// Grids with price groups the auto-matcher cannot relate to "CUSTOM-X"
	// so resolution falls through to rules. Rule priorities must be
	// honored and inactive linked grids skipped.
	s := &fakeStore{
		grids: []types.PriceGrid{
			testGrid("inactive-grid", "", "roman_blinds", "ZZZ", false),
			testGrid("low-grid", "", "roman_blinds", "YYY", true),
			testGrid("high-grid", "", "roman_blinds", "XXX", true),
		},
		rules: []types.GridRule{
			{ID: "rule-low", OwnerID: "owner-1", ProductType: "roman_blinds",
				PriceGroup: "CUSTOM-GROUP", GridID: "low-grid", Priority: 10, Active: true},
			{ID: "rule-dead", OwnerID: "owner-1", ProductType: "roman_blinds",
				PriceGroup: "CUSTOM-GROUP", GridID: "inactive-grid", Priority: 90, Active: true},
			{ID: "rule-high", OwnerID: "owner-1", ProductType: "roman_blinds",
				PriceGroup: "CUSTOM-GROUP", GridID: "high-grid", Priority: 50, Active: true},
		},
	}
	r := New(s, nil)

	result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
		ProductType:      "roman_blinds",
		FabricPriceGroup: "CUSTOM-GROUP",
		OwnerID:          "owner-1",
	})

	// rule-dead (priority 90) links an inactive grid, so rule-high wins.
	if result.GridID != "high-grid" {
		t.Fatalf("expected high-grid, got %q (%s)", result.GridID, result.Details)
	}
	if result.MatchedRule == nil || result.MatchedRule.Source != types.RuleSourceLegacy {
		t.Fatalf("expected legacy rule source, got %+v", result.MatchedRule)
	}
	if result.MatchedRule.ID != "rule-high" {
		t.Errorf("expected rule-high, got %s", result.MatchedRule.ID)
	}
}

// TestResolveRuleConditions tests system-type and option-condition gating
func TestResolveRuleConditions(t *testing.T) {
	s := &fakeStore{
		grids: []types.PriceGrid{
			testGrid("cassette-grid", "", "roller_blinds", "ZZZ", true),
			testGrid("open-grid", "", "roller_blinds", "YYY", true),
		},
		rules: []types.GridRule{
			{ID: "rule-cassette", OwnerID: "owner-1", ProductType: "roller_blinds",
				PriceGroup: "CUSTOM-GROUP", SystemType: "cassette", GridID: "cassette-grid",
				Priority: 90, Active: true},
			{ID: "rule-motor", OwnerID: "owner-1", ProductType: "roller_blinds",
				PriceGroup: "CUSTOM-GROUP", GridID: "open-grid", Priority: 80,
				OptionConditions: map[string]string{"control": "motorised"}, Active: true},
			{ID: "rule-any", OwnerID: "owner-1", ProductType: "roller_blinds",
				PriceGroup: "CUSTOM-GROUP", GridID: "open-grid", Priority: 10, Active: true},
		},
	}
	r := New(s, nil)

	tests := []struct {
		name         string
		systemType   string
		options      map[string]string
		expectedRule string
	}{
		{
			name:         "system type match",
			systemType:   "cassette",
			expectedRule: "rule-cassette",
		},
		{
			name:         "option condition match",
			systemType:   "open",
			options:      map[string]string{"control": "motorised"},
			expectedRule: "rule-motor",
		},
		{
			name:         "nothing specific matches, unconditioned rule wins",
			systemType:   "open",
			options:      map[string]string{"control": "chain"},
			expectedRule: "rule-any",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
				ProductType:      "roller_blinds",
				SystemType:       tt.systemType,
				FabricPriceGroup: "CUSTOM-GROUP",
				SelectedOptions:  tt.options,
				OwnerID:          "owner-1",
			})
			if result.MatchedRule == nil || result.MatchedRule.ID != tt.expectedRule {
				t.Errorf("expected %s, got %+v", tt.expectedRule, result.MatchedRule)
			}
		})
	}
}

// TestResolveMissIsNotAnError tests the empty result contract
func TestResolveMissIsNotAnError(t *testing.T) {
	s := &fakeStore{}
	r := New(s, nil)

	result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
		ProductType:      "shutters",
		FabricPriceGroup: "A",
		OwnerID:          "owner-1",
	})
	if result.Resolved() {
		t.Error("expected unresolved result")
	}
	if result.Details == "" {
		t.Error("details must explain the miss")
	}
}

// TestResolveRuleStoreFailure tests graceful degradation on rule queries
func TestResolveRuleStoreFailure(t *testing.T) {
	s := &fakeStore{failRules: true}
	r := New(s, nil)

	result := r.ResolveGridForProduct(context.Background(), types.ResolveParams{
		ProductType:      "shutters",
		FabricPriceGroup: "A",
		OwnerID:          "owner-1",
	})
	if result.Resolved() {
		t.Error("expected unresolved result on store failure")
	}
}

// TestPredicates tests the convenience predicates built atop the resolver
func TestPredicates(t *testing.T) {
	s := &fakeStore{grids: []types.PriceGrid{testGrid("g1", "sup-1", "roller_blinds", "A", true)}}
	r := New(s, nil)
	ctx := context.Background()

	if !r.HasMatchingGrid(ctx, types.AutoMatchParams{
		SupplierID: "sup-1", ProductType: "roller_blinds", PriceGroup: "A", OwnerID: "owner-1",
	}) {
		t.Error("expected a matching grid")
	}
	if r.HasMatchingGrid(ctx, types.AutoMatchParams{
		ProductType: "shutters", PriceGroup: "Q", OwnerID: "owner-1",
	}) {
		t.Error("expected no matching grid")
	}

	if !r.HasValidPricingGrid(ctx, types.ResolveParams{
		ProductType: "roller_blinds", FabricPriceGroup: "A",
		FabricSupplierID: "sup-1", OwnerID: "owner-1",
	}) {
		t.Error("expected a valid pricing grid")
	}

	groups, err := r.GetAvailablePriceGroups(ctx, "roller_blinds", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || groups[0] != "A" {
		t.Errorf("expected [A], got %v", groups)
	}
}

// TestEnrichTemplateWithGrid tests template enrichment paths
func TestEnrichTemplateWithGrid(t *testing.T) {
	s := &fakeStore{grids: []types.PriceGrid{testGrid("g1", "sup-1", "roller_blinds", "A", true)}}
	r := New(s, nil)
	ctx := context.Background()

	t.Run("grid-priced template gets enriched", func(t *testing.T) {
		template := types.Template{
			ID: "t1", OwnerID: "owner-1", Name: "Roller", ProductType: "roller_blinds",
			PricingType: types.PricingTypeGrid,
		}
		fabric := &types.FabricItem{SystemType: "cassette", PriceGroup: "A", SupplierID: "sup-1"}

		enriched := r.EnrichTemplateWithGrid(ctx, template, fabric)
		if enriched.ResolvedGridID != "g1" {
			t.Fatalf("expected g1, got %q", enriched.ResolvedGridID)
		}
		if enriched.PricingGridData == nil {
			t.Error("grid data must be attached")
		}
		if template.PricingGridData != nil || template.ResolvedGridID != "" {
			t.Error("input template must not be mutated")
		}
	})

	t.Run("non-grid template passes through", func(t *testing.T) {
		template := types.Template{ID: "t2", OwnerID: "owner-1", PricingType: "fixed"}
		enriched := r.EnrichTemplateWithGrid(ctx, template, nil)
		if enriched.ResolvedGridID != "" || enriched.PricingGridData != nil {
			t.Error("non-grid template must pass through unchanged")
		}
	})

	t.Run("missing price group leaves template unchanged", func(t *testing.T) {
		template := types.Template{
			ID: "t3", OwnerID: "owner-1", PricingType: types.PricingTypeGrid,
		}
		enriched := r.EnrichTemplateWithGrid(ctx, template, nil)
		if enriched.ResolvedGridID != "" {
			t.Error("template without price group must pass through")
		}
	})

	t.Run("already enriched template passes through", func(t *testing.T) {
		data, _ := grid.New([]float64{100},
			[]grid.Row{{Drop: 100, Prices: []decimal.Decimal{decimal.NewFromInt(1)}}})
		template := types.Template{
			ID: "t4", OwnerID: "owner-1", PricingType: types.PricingTypeGrid,
			PricingGridData: data, PriceGroup: "A", SupplierID: "sup-1",
			ProductType: "roller_blinds",
		}
		enriched := r.EnrichTemplateWithGrid(ctx, template, nil)
		if enriched.ResolvedGridID != "" {
			t.Error("template with grid data must not re-resolve")
		}
	})
}
