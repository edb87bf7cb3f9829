package volume

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

func row(length, width, depth, count string) entities.DimensionRow {
	return entities.NewDimensionRow("", numeric.Parse(length), numeric.Parse(width), numeric.Parse(depth), numeric.Parse(count))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeRowVolume(t *testing.T) {
	testCases := []struct {
		name string
		row  entities.DimensionRow
		want string
	}{
		{"full box", row("2", "3", "0.5", "4"), "12"},
		{"depth absent falls back to area", row("2", "3", "", "1"), "6"},
		{"depth unparsable falls back to area", row("2", "3", "NaN", "1"), "6"},
		{"literal zero depth erases volume", row("2", "3", "0", "1"), "0"},
		{"count defaults to one", row("2", "3", "0.5", ""), "3"},
		{"literal zero count", row("2", "3", "0.5", "0"), "0"},
		{"unparsable length", row("abc", "3", "0.5", "2"), "0"},
		{"fully empty row", row("", "", "", ""), "0"},
		{"negative passes through", row("-2", "3", "1", "1"), "-6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeRowVolume(tc.row)
			assert.True(t, got.Equal(dec(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestComputeRowVolume_DepthSpecialCase(t *testing.T) {
	nullDepth := entities.DimensionRow{Length: dec("2"), Width: dec("3"), Count: dec("1")}
	zeroDepth := nullDepth
	zeroDepth.Depth = decimal.NewNullDecimal(decimal.Zero)

	assert.True(t, ComputeRowVolume(nullDepth).Equal(dec("6")))
	assert.True(t, ComputeRowVolume(zeroDepth).IsZero())
}

func TestComputeItemTotal(t *testing.T) {
	assert.True(t, ComputeItemTotal(nil).IsZero(), "empty row list should total 0")

	rows := []entities.DimensionRow{
		row("2", "3", "0.5", "1"),
		row("1.2", "1.2", "0.3", "8"),
		row("4", "0.25", "", "2"),
	}
	got := ComputeItemTotal(rows)
	assert.True(t, got.Equal(dec("8.456")), "got %s", got)
}

func TestComputeItemTotal_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rows := make([]entities.DimensionRow, 50)
	for i := range rows {
		rows[i] = entities.DimensionRow{
			Length: decimal.NewFromFloat(rng.Float64() * 10).Round(3),
			Width:  decimal.NewFromFloat(rng.Float64() * 10).Round(3),
			Depth:  decimal.NewNullDecimal(decimal.NewFromFloat(rng.Float64()).Round(3)),
			Count:  decimal.NewFromInt(int64(rng.Intn(5) + 1)),
		}
		if i%7 == 0 {
			rows[i].Depth = decimal.NullDecimal{}
		}
	}
	want := ComputeItemTotal(rows)

	for trial := 0; trial < 20; trial++ {
		shuffled := append([]entities.DimensionRow(nil), rows...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := ComputeItemTotal(shuffled)
		require.True(t, got.Equal(want), "trial %d: got %s, want %s", trial, got, want)
	}
}

func TestComputeFloorTotals(t *testing.T) {
	rows := []entities.FloorDimensionRow{
		{FloorID: "GF", DimensionRow: row("5", "4", "0.15", "1")},
		{FloorID: "2F", DimensionRow: row("5", "4", "0.12", "1")},
		{FloorID: "GF", DimensionRow: row("2", "2", "0.15", "2")},
	}

	floors := ComputeFloorTotals(rows)
	require.Len(t, floors, 2)
	assert.True(t, floors["GF"].Equal(dec("4.2")), "GF got %s", floors["GF"])
	assert.True(t, floors["2F"].Equal(dec("2.4")), "2F got %s", floors["2F"])
	assert.True(t, ComputeCustomItemTotal(rows).Equal(dec("6.6")))

	sorted := SortedFloorTotals(rows)
	require.Len(t, sorted, 2)
	assert.Equal(t, entities.FloorID("2F"), sorted[0].FloorID)
	assert.Equal(t, entities.FloorID("GF"), sorted[1].FloorID)
}

func TestComputeGrandTotal(t *testing.T) {
	items := [][]entities.DimensionRow{
		{row("1", "1", "1", "1")},
		{row("2", "2", "", "1"), row("1", "1", "1", "3")},
		nil,
	}
	assert.True(t, ComputeGrandTotal(items).Equal(dec("8")))
}

func TestTakeoffVolume(t *testing.T) {
	simple, ok := TakeoffVolume(entities.SimpleTakeoff{Rows: []entities.DimensionRow{row("2", "3", "1", "1")}})
	assert.True(t, ok)
	assert.True(t, simple.Equal(dec("6")))

	custom, ok := TakeoffVolume(entities.CustomTakeoff{Rows: []entities.FloorDimensionRow{
		{FloorID: "GF", DimensionRow: row("2", "3", "1", "1")},
		{FloorID: "2F", DimensionRow: row("1", "1", "1", "1")},
	}})
	assert.True(t, ok)
	assert.True(t, custom.Equal(dec("7")))

	_, ok = TakeoffVolume(entities.RebarTakeoff{})
	assert.False(t, ok)
	_, ok = TakeoffVolume(nil)
	assert.False(t, ok)
}
