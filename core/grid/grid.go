// Package grid provides the pricing-grid data structure and price lookup.
// A grid is a 2-D table of supplier prices indexed by width (columns) and
// drop (rows). Grids represent discrete supplier price bands, so lookup is
// nearest-neighbor only; interpolating between cells would misrepresent the
// supplier's price list.
package grid

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"shadecost/internal/errors"
)

// Row is a single drop row of a pricing grid
type Row struct {
	// Drop is the row's drop axis value in centimeters
	Drop float64 `json:"drop"`

	// Prices is aligned index-for-index with the grid's width columns
	Prices []decimal.Decimal `json:"prices"`
}

// Data is a validated pricing grid table.
// Width columns and drop rows are stored ascending by axis value; every row
// carries exactly one price per width column. Construct through New or Parse
// so malformed shapes are rejected at the ingestion boundary instead of
// leaking into lookups.
type Data struct {
	// WidthColumns is the ascending width axis in centimeters
	WidthColumns []float64 `json:"widthColumns"`

	// Rows is the ascending drop axis with per-column prices
	Rows []Row `json:"dropRows"`
}

// New builds a validated grid from a width axis and drop rows.
// Every row must carry one price per width column. Both axes are sorted
// ascending, carrying their prices along.
func New(widths []float64, rows []Row) (*Data, error) {
	if len(widths) == 0 {
		return nil, errors.Grid("grid has no width columns")
	}
	if len(rows) == 0 {
		return nil, errors.Grid("grid has no drop rows")
	}
	for _, row := range rows {
		if len(row.Prices) != len(widths) {
			return nil, errors.Newf(errors.TypeGrid,
				"row for drop %v has %d prices, expected %d", row.Drop, len(row.Prices), len(widths))
		}
	}

	d := &Data{
		WidthColumns: append([]float64(nil), widths...),
		Rows:         make([]Row, len(rows)),
	}
	for i, row := range rows {
		d.Rows[i] = Row{Drop: row.Drop, Prices: append([]decimal.Decimal(nil), row.Prices...)}
	}

	// Columns sort with their prices: build the permutation first.
	perm := make([]int, len(d.WidthColumns))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return d.WidthColumns[perm[a]] < d.WidthColumns[perm[b]]
	})
	sortedWidths := make([]float64, len(perm))
	for i, p := range perm {
		sortedWidths[i] = d.WidthColumns[p]
	}
	for r := range d.Rows {
		sorted := make([]decimal.Decimal, len(perm))
		for i, p := range perm {
			sorted[i] = d.Rows[r].Prices[p]
		}
		d.Rows[r].Prices = sorted
	}
	d.WidthColumns = sortedWidths

	sort.SliceStable(d.Rows, func(a, b int) bool {
		return d.Rows[a].Drop < d.Rows[b].Drop
	})

	return d, nil
}

// IsEmpty reports whether the grid has no usable cells
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.WidthColumns) == 0 || len(d.Rows) == 0
}

// PriceFor returns the price for a (width, drop) pair in centimeters.
//
// The column minimizing abs(column - widthCm) is selected, then the row
// minimizing abs(drop - dropCm); on a distance tie the first minimal value
// found scanning the ascending stored order wins. This tie rule is part of
// the contract: repeated lookups must price reproducibly.
//
// An empty or nil grid returns zero. Legitimate grid prices are always
// positive, so callers must treat zero as "no usable price".
func (d *Data) PriceFor(widthCm, dropCm float64) decimal.Decimal {
	if d.IsEmpty() {
		return decimal.Zero
	}

	col := nearestIndex(d.WidthColumns, widthCm)

	drops := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		drops[i] = row.Drop
	}
	rowIdx := nearestIndex(drops, dropCm)

	row := d.Rows[rowIdx]
	if col >= len(row.Prices) {
		return decimal.Zero
	}
	return row.Prices[col]
}

// nearestIndex returns the index of the value closest to target,
// first minimal distance winning in a left-to-right scan
func nearestIndex(values []float64, target float64) int {
	best := 0
	bestDist := math.Abs(values[0] - target)
	for i := 1; i < len(values); i++ {
		dist := math.Abs(values[i] - target)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
