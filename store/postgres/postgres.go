// Package postgres provides the postgres-backed catalog store.
// The pricing engine only ever reads: grids and rules are written by the
// catalog administration surface, not from here.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"shadecost/core/grid"
	"shadecost/core/types"
	"shadecost/internal/errors"
	"shadecost/internal/logging"
)

// Store is a postgres-backed read-only catalog
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open connects to postgres. An empty connection string falls back to the
// DATABASE_URL environment variable.
func Open(ctx context.Context, connStr string) (*Store, error) {
	if connStr == "" {
		connStr = os.Getenv("DATABASE_URL")
	}
	if connStr == "" {
		return nil, errors.New(errors.TypeConfig, "no postgres connection string: set store.database_url or DATABASE_URL")
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStore, "open database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.TypeStore, "ping database", err)
	}

	return &Store{db: db, log: logging.Named("postgres")}, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

const gridColumns = `
	id,
	owner_id,
	grid_code,
	name,
	product_type,
	COALESCE(system_type, '') AS system_type,
	price_group,
	COALESCE(supplier_id, '') AS supplier_id,
	grid_data,
	COALESCE(markup_percentage, 0) AS markup_percentage,
	COALESCE(discount_percentage, 0) AS discount_percentage,
	includes_fabric_price,
	active
`

// GridsBySupplierAndType implements store.Store
func (s *Store) GridsBySupplierAndType(ctx context.Context, ownerID, supplierID, productType string) ([]types.PriceGrid, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_grids
		WHERE owner_id = $1
		  AND supplier_id = $2
		  AND product_type = $3
		  AND active = true
		ORDER BY grid_code ASC
	`, gridColumns)
	return s.queryGrids(ctx, query, ownerID, supplierID, productType)
}

// GridsByType implements store.Store
func (s *Store) GridsByType(ctx context.Context, ownerID, productType string) ([]types.PriceGrid, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_grids
		WHERE owner_id = $1
		  AND product_type = $2
		  AND active = true
		ORDER BY grid_code ASC
	`, gridColumns)
	return s.queryGrids(ctx, query, ownerID, productType)
}

// GridsByTypes implements store.Store
func (s *Store) GridsByTypes(ctx context.Context, ownerID string, productTypes []string) ([]types.PriceGrid, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_grids
		WHERE owner_id = $1
		  AND product_type = ANY($2)
		  AND active = true
		ORDER BY grid_code ASC
	`, gridColumns)

	// pgx stdlib accepts a postgres array literal for ANY.
	return s.queryGrids(ctx, query, ownerID, pgTextArray(productTypes))
}

// GridByID implements store.Store
func (s *Store) GridByID(ctx context.Context, ownerID, gridID string) (*types.PriceGrid, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_grids
		WHERE owner_id = $1 AND id = $2
	`, gridColumns)

	grids, err := s.queryGrids(ctx, query, ownerID, gridID)
	if err != nil {
		return nil, err
	}
	if len(grids) == 0 {
		return nil, errors.NotFound("grid", gridID)
	}
	return &grids[0], nil
}

// RulesFor implements store.Store
func (s *Store) RulesFor(ctx context.Context, ownerID, productType, priceGroup string) ([]types.GridRule, error) {
	query := `
		SELECT
			id,
			owner_id,
			product_type,
			COALESCE(system_type, '') AS system_type,
			price_group,
			option_conditions,
			grid_id,
			priority,
			active
		FROM grid_rules
		WHERE owner_id = $1
		  AND product_type = $2
		  AND price_group = $3
		  AND active = true
		ORDER BY priority DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, productType, priceGroup)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStore, "query grid rules", err)
	}
	defer rows.Close()

	var rules []types.GridRule
	for rows.Next() {
		var rule types.GridRule
		var conditions []byte
		if err := rows.Scan(
			&rule.ID, &rule.OwnerID, &rule.ProductType, &rule.SystemType,
			&rule.PriceGroup, &conditions, &rule.GridID, &rule.Priority, &rule.Active,
		); err != nil {
			return nil, errors.Wrap(errors.TypeStore, "scan grid rule", err)
		}
		if len(conditions) > 0 {
			if err := json.Unmarshal(conditions, &rule.OptionConditions); err != nil {
				s.log.Warn("rule has unparseable option conditions, treating as unconditioned",
					zap.String("rule_id", rule.ID), zap.Error(err))
			}
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// PriceGroupsFor implements store.Store
func (s *Store) PriceGroupsFor(ctx context.Context, ownerID, productType string) ([]string, error) {
	query := `
		SELECT DISTINCT price_group
		FROM price_grids
		WHERE owner_id = $1
		  AND product_type = $2
		  AND active = true
		ORDER BY price_group ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, productType)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStore, "query price groups", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var group string
		if err := rows.Scan(&group); err != nil {
			return nil, errors.Wrap(errors.TypeStore, "scan price group", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// queryGrids runs a grid query and parses each row's grid data at the
// ingestion boundary. Grids whose stored data is malformed are skipped
// with a warning so one bad row cannot break resolution.
func (s *Store) queryGrids(ctx context.Context, query string, args ...interface{}) ([]types.PriceGrid, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStore, "query price grids", err)
	}
	defer rows.Close()

	var grids []types.PriceGrid
	for rows.Next() {
		var g types.PriceGrid
		var gridData []byte
		var includesFabric sql.NullBool
		if err := rows.Scan(
			&g.ID, &g.OwnerID, &g.GridCode, &g.Name, &g.ProductType, &g.SystemType,
			&g.PriceGroup, &g.SupplierID, &gridData,
			&g.MarkupPercentage, &g.DiscountPercentage, &includesFabric, &g.Active,
		); err != nil {
			return nil, errors.Wrap(errors.TypeStore, "scan price grid", err)
		}
		if includesFabric.Valid {
			v := includesFabric.Bool
			g.IncludesFabricPrice = &v
		}
		if len(gridData) > 0 {
			parsed, err := grid.Parse(gridData)
			if err != nil {
				s.log.Warn("skipping grid with malformed stored data",
					zap.String("grid_code", g.GridCode), zap.Error(err))
				continue
			}
			g.Data = parsed
		}
		grids = append(grids, g)
	}
	return grids, rows.Err()
}

// pgTextArray renders a postgres text[] literal
func pgTextArray(values []string) string {
	out := "{"
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += `"` + v + `"`
	}
	return out + "}"
}
