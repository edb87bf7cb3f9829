package entities

import (
	"testing"

	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

func TestNewDimensionRow_Defaults(t *testing.T) {
	row := NewDimensionRow("slab", numeric.Parse("abc"), numeric.Parse("3"), numeric.Parse(""), numeric.Parse(""))

	if !row.Length.IsZero() {
		t.Errorf("Expected unparsable length to coerce to 0, got %s", row.Length)
	}
	if row.Width.String() != "3" {
		t.Errorf("Expected width 3, got %s", row.Width)
	}
	if row.Depth.Valid {
		t.Error("Expected empty depth to stay absent")
	}
	if row.Count.String() != "1" {
		t.Errorf("Expected empty count to default to 1, got %s", row.Count)
	}

	zeroCount := NewDimensionRow("slab", numeric.OfInt(1), numeric.OfInt(1), numeric.OfInt(0), numeric.OfInt(0))
	if !zeroCount.Count.IsZero() {
		t.Errorf("Expected literal count 0 to stay 0, got %s", zeroCount.Count)
	}
	if !zeroCount.Depth.Valid || !zeroCount.Depth.Decimal.IsZero() {
		t.Error("Expected literal depth 0 to be a valid zero")
	}
}
