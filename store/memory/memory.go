// Package memory provides an in-memory catalog store, loadable from a JSON
// catalog file. It backs the CLI and tests; production deployments point at
// the postgres store instead.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shadecost/core/grid"
	"shadecost/core/types"
	"shadecost/internal/errors"
	"shadecost/internal/logging"
)

// Store is an in-memory read-only catalog
type Store struct {
	grids []types.PriceGrid
	rules []types.GridRule
}

// gridRecord is a PriceGrid as it appears in the catalog file, with the
// grid table still in wire form
type gridRecord struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"owner_id"`
	GridCode            string          `json:"grid_code"`
	Name                string          `json:"name"`
	ProductType         string          `json:"product_type"`
	SystemType          string          `json:"system_type"`
	PriceGroup          string          `json:"price_group"`
	SupplierID          string          `json:"supplier_id"`
	GridData            json.RawMessage `json:"grid_data"`
	MarkupPercentage    decimal.Decimal `json:"markup_percentage"`
	DiscountPercentage  decimal.Decimal `json:"discount_percentage"`
	IncludesFabricPrice *bool           `json:"includes_fabric_price"`
	Active              *bool           `json:"active"`
}

// catalogFile is the JSON catalog shape
type catalogFile struct {
	Grids []gridRecord     `json:"grids"`
	Rules []types.GridRule `json:"rules"`
}

// New creates a store over already-validated records
func New(grids []types.PriceGrid, rules []types.GridRule) *Store {
	return &Store{
		grids: append([]types.PriceGrid(nil), grids...),
		rules: append([]types.GridRule(nil), rules...),
	}
}

// Load reads a catalog file and validates every grid's price table at the
// ingestion boundary. Grids whose data cannot be parsed are dropped with a
// warning rather than failing the whole catalog.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "read catalog", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parse catalog", err)
	}

	log := logging.Named("catalog")
	grids := make([]types.PriceGrid, 0, len(file.Grids))
	for _, rec := range file.Grids {
		g := types.PriceGrid{
			ID:                  rec.ID,
			OwnerID:             rec.OwnerID,
			GridCode:            rec.GridCode,
			Name:                rec.Name,
			ProductType:         rec.ProductType,
			SystemType:          rec.SystemType,
			PriceGroup:          rec.PriceGroup,
			SupplierID:          rec.SupplierID,
			MarkupPercentage:    rec.MarkupPercentage,
			DiscountPercentage:  rec.DiscountPercentage,
			IncludesFabricPrice: rec.IncludesFabricPrice,
			Active:              true,
		}
		if rec.Active != nil {
			g.Active = *rec.Active
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}

		if len(rec.GridData) > 0 {
			parsed, err := grid.Parse(rec.GridData)
			if err != nil {
				log.Warn("dropping grid with unparseable data",
					zap.String("grid_code", rec.GridCode), zap.Error(err))
				continue
			}
			g.Data = parsed
		}
		grids = append(grids, g)
	}

	rules := make([]types.GridRule, 0, len(file.Rules))
	for _, r := range file.Rules {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		rules = append(rules, r)
	}

	log.Info("catalog loaded",
		zap.Int("grids", len(grids)), zap.Int("rules", len(rules)))
	return New(grids, rules), nil
}

// GridsBySupplierAndType implements store.Store
func (s *Store) GridsBySupplierAndType(_ context.Context, ownerID, supplierID, productType string) ([]types.PriceGrid, error) {
	var out []types.PriceGrid
	for _, g := range s.grids {
		if g.OwnerID == ownerID && g.SupplierID == supplierID && g.ProductType == productType && g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

// GridsByType implements store.Store
func (s *Store) GridsByType(_ context.Context, ownerID, productType string) ([]types.PriceGrid, error) {
	var out []types.PriceGrid
	for _, g := range s.grids {
		if g.OwnerID == ownerID && g.ProductType == productType && g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

// GridsByTypes implements store.Store
func (s *Store) GridsByTypes(_ context.Context, ownerID string, productTypes []string) ([]types.PriceGrid, error) {
	wanted := make(map[string]bool, len(productTypes))
	for _, pt := range productTypes {
		wanted[pt] = true
	}
	var out []types.PriceGrid
	for _, g := range s.grids {
		if g.OwnerID == ownerID && g.Active && wanted[g.ProductType] {
			out = append(out, g)
		}
	}
	return out, nil
}

// GridByID implements store.Store
func (s *Store) GridByID(_ context.Context, ownerID, gridID string) (*types.PriceGrid, error) {
	for _, g := range s.grids {
		if g.OwnerID == ownerID && g.ID == gridID {
			found := g
			return &found, nil
		}
	}
	return nil, errors.NotFound("grid", gridID)
}

// RulesFor implements store.Store
func (s *Store) RulesFor(_ context.Context, ownerID, productType, priceGroup string) ([]types.GridRule, error) {
	var out []types.GridRule
	for _, r := range s.rules {
		if r.OwnerID == ownerID && r.ProductType == productType && r.PriceGroup == priceGroup && r.Active {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Priority > out[b].Priority })
	return out, nil
}

// PriceGroupsFor implements store.Store
func (s *Store) PriceGroupsFor(_ context.Context, ownerID, productType string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, g := range s.grids {
		if g.OwnerID == ownerID && g.ProductType == productType && g.Active && !seen[g.PriceGroup] {
			seen[g.PriceGroup] = true
			out = append(out, g.PriceGroup)
		}
	}
	sort.Strings(out)
	return out, nil
}
