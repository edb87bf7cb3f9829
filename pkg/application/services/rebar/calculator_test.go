package rebar

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	d12 = entities.RebarSpec{ID: "D12", DiameterMM: dec("12"), LengthM: dec("6"), WeightPerMeter: dec("0.888")}
	d16 = entities.RebarSpec{ID: "D16", DiameterMM: dec("16"), LengthM: dec("6"), WeightPerMeter: dec("1.578")}
)

func TestComputeRowWeight(t *testing.T) {
	testCases := []struct {
		name     string
		quantity numeric.Loose
		want     string
	}{
		{"ten bars", numeric.OfInt(10), "53.28"},
		{"zero quantity", numeric.OfInt(0), "0"},
		{"missing quantity is zero not one", numeric.Parse(""), "0"},
		{"garbage quantity", numeric.Parse("lots"), "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeRowWeight(entities.NewRebarRow("F1", d12, tc.quantity, "A"))
			assert.True(t, got.Equal(dec(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestComputeRowWeight_ZeroQuantity(t *testing.T) {
	row := entities.RebarRow{WeightPerMeter: dec("1.2"), LengthM: dec("6")}
	assert.True(t, ComputeRowWeight(row).IsZero())
}

func TestAggregateByMasterlist(t *testing.T) {
	rows := []entities.RebarRow{
		entities.NewRebarRow("FOOTING", d12, numeric.OfInt(10), "F1"),
		entities.NewRebarRow("COLUMN", d12, numeric.OfInt(4), "C1"),
		entities.NewRebarRow("COLUMN", d16, numeric.OfInt(8), "C1"),
	}

	usage := AggregateByMasterlist(rows)
	require.Len(t, usage, 2)
	assert.True(t, usage["D12"].TotalQuantity.Equal(dec("14")))
	assert.True(t, usage["D12"].TotalWeight.Equal(dec("74.592")))
	assert.True(t, usage["D16"].TotalQuantity.Equal(dec("8")))
	assert.True(t, usage["D16"].TotalWeight.Equal(dec("75.744")))

	sorted := SortedUsage(usage)
	require.Len(t, sorted, 2)
	assert.Equal(t, entities.RebarID("D12"), sorted[0].RebarID)
	assert.Equal(t, entities.RebarID("D16"), sorted[1].RebarID)
}

func TestAggregateByWorkItem(t *testing.T) {
	rows := []entities.RebarRow{
		entities.NewRebarRow("FOOTING", d12, numeric.OfInt(10), "F1"),
		entities.NewRebarRow("COLUMN", d12, numeric.OfInt(4), "C1"),
		entities.NewRebarRow("COLUMN", d16, numeric.OfInt(8), "C2"),
	}

	totals := AggregateByWorkItem(rows)
	require.Len(t, totals, 2)
	assert.True(t, totals["FOOTING"].Equal(dec("53.28")))
	assert.True(t, totals["COLUMN"].Equal(dec("97.056")))
	assert.Empty(t, AggregateByWorkItem(nil))
}

func TestCollectRows(t *testing.T) {
	items := []entities.WorkItem{
		{ID: "COLUMN", Takeoff: entities.RebarTakeoff{Rows: []entities.RebarRow{
			entities.NewRebarRow("", d16, numeric.OfInt(8), "C1"),
		}}},
		{ID: "SLAB", Takeoff: entities.SimpleTakeoff{}},
		{ID: "RC"},
	}

	rows := CollectRows(items)
	require.Len(t, rows, 1)
	assert.Equal(t, entities.WorkItemID("COLUMN"), rows[0].WorkItemID)
}
