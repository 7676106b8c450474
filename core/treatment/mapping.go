// Package treatment provides the treatment-to-grid compatibility table.
// The table maps a treatment category to the product types whose grids can
// price it. It is open-ended catalog data rather than a closed type: new
// categories appear as suppliers do, so deployments may override the
// built-in table from a JSON file.
package treatment

import (
	"encoding/json"
	"os"
	"strings"

	"shadecost/internal/errors"
)

// Mapping resolves treatment categories to compatible product types
type Mapping struct {
	compatible map[string][]string
}

// defaultTable is the built-in compatibility table
var defaultTable = map[string][]string{
	"roller_blinds":   {"roller_blinds", "roller_blinds_cassette", "double_roller_blinds"},
	"vertical_blinds": {"vertical_blinds", "vertical_blinds_89mm", "vertical_blinds_127mm"},
	"venetian_blinds": {"venetian_blinds", "aluminium_venetian_blinds", "wood_venetian_blinds"},
	"roman_blinds":    {"roman_blinds", "roman_blinds_deluxe"},
	"cellular_blinds": {"cellular_blinds", "honeycomb_blinds"},
	"panel_glides":    {"panel_glides", "panel_track_blinds"},
	"curtains":        {"curtains", "sheer_curtains", "blockout_curtains"},
	"shutters":        {"shutters", "pvc_shutters", "basswood_shutters", "aluminium_shutters"},
	"awnings":         {"awnings", "folding_arm_awnings", "straight_drop_awnings", "zip_screen_awnings"},
	"external_blinds": {"external_blinds", "zip_screen_awnings", "straight_drop_awnings"},
}

// NewMapping returns the built-in compatibility table
func NewMapping() *Mapping {
	return &Mapping{compatible: defaultTable}
}

// NewMappingFromTable builds a mapping from an explicit table
func NewMappingFromTable(table map[string][]string) *Mapping {
	normalized := make(map[string][]string, len(table))
	for category, productTypes := range table {
		normalized[normalize(category)] = productTypes
	}
	return &Mapping{compatible: normalized}
}

// LoadMapping reads a compatibility table from a JSON file shaped as
// {"treatment_category": ["product_type", ...], ...}
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "read treatment mapping", err)
	}
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parse treatment mapping", err)
	}
	return NewMappingFromTable(table), nil
}

// CompatibleTypes returns the product types whose grids can price the given
// treatment category. Unknown categories fall back to the category itself;
// an unmapped treatment still matches its own grids.
func (m *Mapping) CompatibleTypes(category string) []string {
	key := normalize(category)
	if compatible, ok := m.compatible[key]; ok && len(compatible) > 0 {
		return compatible
	}
	return []string{key}
}

// Categories lists the mapped treatment categories
func (m *Mapping) Categories() []string {
	out := make([]string, 0, len(m.compatible))
	for category := range m.compatible {
		out = append(out, category)
	}
	return out
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
