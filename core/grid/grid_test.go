package grid

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func prices(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = dec(v)
	}
	return out
}

// fixtureGrid is the five-column grid used across lookup tests
func fixtureGrid(t *testing.T) *Data {
	t.Helper()
	d, err := New(
		[]float64{50, 100, 150, 200, 250},
		[]Row{
			{Drop: 100, Prices: prices("45", "55", "65", "75", "85")},
			{Drop: 150, Prices: prices("55", "65", "75", "85", "95")},
			{Drop: 200, Prices: prices("65", "75", "85", "95", "105")},
		},
	)
	if err != nil {
		t.Fatalf("fixture grid: %v", err)
	}
	return d
}

// TestPriceForExactMatch tests lookups landing exactly on axis values
func TestPriceForExactMatch(t *testing.T) {
	g := fixtureGrid(t)

	tests := []struct {
		name     string
		width    float64
		drop     float64
		expected string
	}{
		{name: "middle cell", width: 100, drop: 150, expected: "65"},
		{name: "first cell", width: 50, drop: 100, expected: "45"},
		{name: "last cell", width: 250, drop: 200, expected: "105"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.PriceFor(tt.width, tt.drop)
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestPriceForNearestNeighbor tests nearest-column/row selection
func TestPriceForNearestNeighbor(t *testing.T) {
	g := fixtureGrid(t)

	tests := []struct {
		name     string
		width    float64
		drop     float64
		expected string
	}{
		// width 110: distance 10 to column 100, 40 to 150
		{name: "width nearer lower column", width: 110, drop: 150, expected: "65"},
		// width 140: distance 10 to column 150
		{name: "width nearer upper column", width: 140, drop: 150, expected: "75"},
		// drop 180: distance 30 to 150, 20 to 200
		{name: "drop nearer upper row", width: 100, drop: 180, expected: "75"},
		{name: "below all axes clamps to first", width: 10, drop: 10, expected: "45"},
		{name: "above all axes clamps to last", width: 999, drop: 999, expected: "105"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.PriceFor(tt.width, tt.drop)
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestPriceForTieBreak pins the first-minimal-distance tie rule:
// equidistant between two columns, the lower (earlier stored) column wins
func TestPriceForTieBreak(t *testing.T) {
	g := fixtureGrid(t)

	// width 75 is 25 from both columns 50 and 100
	got := g.PriceFor(75, 100)
	if !got.Equal(dec("45")) {
		t.Errorf("tie must resolve to first column scanned, expected 45, got %s", got)
	}

	// drop 125 is 25 from both rows 100 and 150
	got = g.PriceFor(50, 125)
	if !got.Equal(dec("45")) {
		t.Errorf("tie must resolve to first row scanned, expected 45, got %s", got)
	}
}

// TestPriceForDeterminism verifies identical inputs return identical prices
func TestPriceForDeterminism(t *testing.T) {
	g := fixtureGrid(t)
	first := g.PriceFor(120, 180)
	for i := 0; i < 100; i++ {
		if got := g.PriceFor(120, 180); !got.Equal(first) {
			t.Fatalf("lookup not deterministic: %s then %s", first, got)
		}
	}
}

// TestPriceForEmptyGrid tests that empty grids return zero, not an error
func TestPriceForEmptyGrid(t *testing.T) {
	var nilGrid *Data
	if got := nilGrid.PriceFor(100, 100); !got.IsZero() {
		t.Errorf("nil grid: expected zero, got %s", got)
	}
	empty := &Data{}
	if got := empty.PriceFor(100, 100); !got.IsZero() {
		t.Errorf("empty grid: expected zero, got %s", got)
	}
}

// TestNewRejectsMismatchedMatrix tests validation at construction
func TestNewRejectsMismatchedMatrix(t *testing.T) {
	_, err := New(
		[]float64{50, 100},
		[]Row{{Drop: 100, Prices: prices("45")}},
	)
	if err == nil {
		t.Fatal("expected error for row with wrong price count")
	}

	if _, err := New(nil, []Row{{Drop: 100}}); err == nil {
		t.Fatal("expected error for missing width columns")
	}
	if _, err := New([]float64{50}, nil); err == nil {
		t.Fatal("expected error for missing drop rows")
	}
}

// TestNewSortsAxes tests that unsorted input axes are normalized ascending
func TestNewSortsAxes(t *testing.T) {
	g, err := New(
		[]float64{200, 50, 100},
		[]Row{
			{Drop: 180, Prices: prices("9", "1", "5")},
			{Drop: 60, Prices: prices("8", "2", "4")},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWidths := []float64{50, 100, 200}
	for i, w := range g.WidthColumns {
		if w != wantWidths[i] {
			t.Fatalf("widths not sorted: %v", g.WidthColumns)
		}
	}
	if g.Rows[0].Drop != 60 || g.Rows[1].Drop != 180 {
		t.Fatalf("rows not sorted: %+v", g.Rows)
	}
	// Prices must follow their columns: width 50 in the drop-60 row was "2"
	if !g.Rows[0].Prices[0].Equal(dec("2")) {
		t.Errorf("prices did not follow sorted columns: %+v", g.Rows[0].Prices)
	}
}
