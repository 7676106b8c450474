package grid

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"shadecost/internal/errors"
)

// Supplier price lists arrive in two JSON shapes: the current
// {widthColumns, dropRows} form with numeric-string axis labels, and a
// legacy {widths, drops, prices} matrix form. Parse collapses both into
// one validated Data so the ambiguity never reaches the lookup path.

// axisValue tolerates axis values encoded as JSON numbers or numeric strings
type axisValue float64

// UnmarshalJSON implements json.Unmarshaler
func (v *axisValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = axisValue(f)
	return nil
}

// rawRow is a dropRows entry in the current wire shape
type rawRow struct {
	Drop   axisValue         `json:"drop"`
	Prices []decimal.Decimal `json:"prices"`
}

// rawGrid is the union of both wire shapes
type rawGrid struct {
	// Current shape
	WidthColumns []axisValue `json:"widthColumns"`
	DropRows     []rawRow    `json:"dropRows"`

	// Legacy shape
	Widths []axisValue         `json:"widths"`
	Drops  []axisValue         `json:"drops"`
	Prices [][]decimal.Decimal `json:"prices"`
}

// Parse deserializes and validates grid data in either supported wire shape
func Parse(data []byte) (*Data, error) {
	if len(data) == 0 {
		return nil, errors.Grid("empty grid data")
	}

	var raw rawGrid
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.TypeGrid, "invalid grid data", err)
	}

	switch {
	case len(raw.WidthColumns) > 0 || len(raw.DropRows) > 0:
		widths := make([]float64, len(raw.WidthColumns))
		for i, w := range raw.WidthColumns {
			widths[i] = float64(w)
		}
		rows := make([]Row, len(raw.DropRows))
		for i, r := range raw.DropRows {
			rows[i] = Row{Drop: float64(r.Drop), Prices: r.Prices}
		}
		return New(widths, rows)

	case len(raw.Widths) > 0 || len(raw.Drops) > 0:
		if len(raw.Prices) != len(raw.Drops) {
			return nil, errors.Newf(errors.TypeGrid,
				"price matrix has %d rows, expected %d", len(raw.Prices), len(raw.Drops))
		}
		widths := make([]float64, len(raw.Widths))
		for i, w := range raw.Widths {
			widths[i] = float64(w)
		}
		rows := make([]Row, len(raw.Drops))
		for i, d := range raw.Drops {
			rows[i] = Row{Drop: float64(d), Prices: raw.Prices[i]}
		}
		return New(widths, rows)

	default:
		return nil, errors.Grid("grid data matches no known shape")
	}
}
