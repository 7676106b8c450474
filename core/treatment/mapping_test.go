package treatment

import (
	"os"
	"path/filepath"
	"testing"
)

// TestCompatibleTypesKnownCategory tests mapped categories widen to their set
func TestCompatibleTypesKnownCategory(t *testing.T) {
	m := NewMapping()

	got := m.CompatibleTypes("roller_blinds")
	if len(got) < 2 {
		t.Fatalf("expected widened set for roller_blinds, got %v", got)
	}
	found := false
	for _, pt := range got {
		if pt == "roller_blinds_cassette" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected roller_blinds_cassette in %v", got)
	}
}

// TestCompatibleTypesUnknownCategory tests the identity fallback
func TestCompatibleTypesUnknownCategory(t *testing.T) {
	m := NewMapping()

	got := m.CompatibleTypes("pergola_louvres")
	if len(got) != 1 || got[0] != "pergola_louvres" {
		t.Errorf("expected identity fallback, got %v", got)
	}
}

// TestCompatibleTypesNormalizesInput tests case/space insensitivity
func TestCompatibleTypesNormalizesInput(t *testing.T) {
	m := NewMapping()

	upper := m.CompatibleTypes("  Roller_Blinds ")
	lower := m.CompatibleTypes("roller_blinds")
	if len(upper) != len(lower) {
		t.Errorf("normalization mismatch: %v vs %v", upper, lower)
	}
}

// TestLoadMappingOverride tests loading an override table from JSON
func TestLoadMappingOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	content := `{"Outdoor_Blinds": ["zip_screen_awnings", "straight_drop_awnings"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := m.CompatibleTypes("outdoor_blinds")
	if len(got) != 2 || got[0] != "zip_screen_awnings" {
		t.Errorf("unexpected compatible set: %v", got)
	}
}

// TestLoadMappingMissingFile tests the error path
func TestLoadMappingMissingFile(t *testing.T) {
	if _, err := LoadMapping("/nonexistent/mapping.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
