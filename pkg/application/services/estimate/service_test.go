package estimate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
	"github.com/vsinha/takeoff/pkg/infrastructure/events"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newResources(t *testing.T) *memory.ResourceRepository {
	t.Helper()
	repo := memory.NewResourceRepository()
	require.NoError(t, repo.LoadResources([]*entities.Resource{
		{ID: "CEMENT", Unit: "bag", UnitCost: dec("150.75")},
		{ID: "STEEL", Unit: "kg", UnitCost: dec("70")},
	}))
	return repo
}

func proposalInput(proposal entities.ProposalID) Input {
	d12 := entities.RebarSpec{ID: "D12", LengthM: dec("6"), WeightPerMeter: dec("0.888")}
	d16 := entities.RebarSpec{ID: "D16", LengthM: dec("6"), WeightPerMeter: dec("1.578")}
	wall := entities.NewDimensionRow("wall", numeric.OfInt(4), numeric.Parse("0.2"), numeric.OfInt(3), numeric.Loose{})

	items := []entities.WorkItem{
		{ID: "RC", ProposalID: proposal, Description: "Reinforced concrete"},
		{ID: "FOOTING", ParentID: "RC", ProposalID: proposal, Unit: "m3", Takeoff: entities.SimpleTakeoff{Rows: []entities.DimensionRow{
			entities.NewDimensionRow("F-1", numeric.Parse("2.5"), numeric.OfInt(2), numeric.Parse("0.5"), numeric.OfInt(5)),
		}}},
		{ID: "COLUMN", ParentID: "RC", ProposalID: proposal, Unit: "kg", Takeoff: entities.RebarTakeoff{Rows: []entities.RebarRow{
			entities.NewRebarRow("", d12, numeric.OfInt(4), "C1"),
			entities.NewRebarRow("", d16, numeric.OfInt(8), "C1"),
		}}},
		{ID: "WALL", ProposalID: proposal, Unit: "m2", Takeoff: entities.CustomTakeoff{Rows: []entities.FloorDimensionRow{
			{FloorID: "F2", DimensionRow: wall},
			{FloorID: "F1", DimensionRow: wall},
		}}},
	}
	selections := []entities.MaterialSelection{
		entities.NewMaterialSelection("FOOTING", "CEMENT", numeric.OfInt(2), numeric.Loose{}),
		entities.NewMaterialSelection("COLUMN", "STEEL", numeric.Parse("1.05"), numeric.Parse("62.5")),
		entities.NewMaterialSelection("WALL", "CHB", numeric.Parse("12.5"), numeric.Loose{}),
	}
	return Input{ProposalID: proposal, WorkItems: items, Selections: selections}
}

func TestService_Estimate(t *testing.T) {
	fixed := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc := NewService(newResources(t), WithClock(func() time.Time { return fixed }))

	result, err := svc.Estimate(context.Background(), proposalInput("P1"))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, fixed, result.ComputedAt)

	require.Len(t, result.Quantities, 3)
	assert.True(t, result.Quantities[0].Quantity.Equal(dec("12.5")))
	assert.True(t, result.Quantities[1].Quantity.Equal(dec("97.056")))
	assert.Equal(t, entities.Rebar, result.Quantities[1].ComputeType)
	assert.True(t, result.Quantities[2].Quantity.Equal(dec("4.8")))
	require.Len(t, result.Quantities[2].Floors, 2)
	assert.Equal(t, entities.FloorID("F1"), result.Quantities[2].Floors[0].FloorID)

	require.Len(t, result.Lines, 3)
	footing := result.Lines[0]
	assert.True(t, footing.ActualQty.Equal(dec("25")))
	assert.True(t, footing.UnitCost.Equal(dec("150.75")), "unit cost should come from the catalog")
	assert.True(t, footing.TotalCost.Equal(dec("3768.75")))

	column := result.Lines[1]
	assert.True(t, column.UnitCost.Equal(dec("62.5")), "selection price overrides the catalog")
	assert.True(t, column.ActualQty.Equal(dec("101.91")))
	assert.True(t, column.TotalCost.Equal(dec("6369.38")))

	wall := result.Lines[2]
	assert.Equal(t, entities.WorkItemID("WALL"), wall.ParentWorkItemID)
	assert.True(t, wall.ActualQty.Equal(dec("60")))
	assert.True(t, wall.TotalCost.IsZero())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "CHB")

	require.Len(t, result.ParentTotals, 2)
	rc, ok := result.ParentTotal("RC")
	require.True(t, ok)
	assert.True(t, rc.Equal(dec("10138.13")), "RC total got %s", rc)
	assert.True(t, result.ProposalTotal.Equal(dec("10138.13")))

	require.Len(t, result.RebarUsage, 2)
	assert.True(t, result.RebarUsage[1].TotalWeight.Equal(dec("75.744")))
}

func TestService_Estimate_InvalidHierarchy(t *testing.T) {
	svc := NewService(newResources(t))
	in := proposalInput("P1")
	in.WorkItems[1].ParentID = "MISSING"

	_, err := svc.Estimate(context.Background(), in)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHierarchy))
}

func TestService_Estimate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(newResources(t)).Estimate(ctx, proposalInput("P1"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Estimate_RecordsRuns(t *testing.T) {
	store := events.NewInMemoryEventStore(nil)
	svc := NewService(newResources(t), WithEventStore(store))

	result, err := svc.Estimate(context.Background(), proposalInput("P1"))
	require.NoError(t, err)

	bad := proposalInput("P1")
	bad.WorkItems[1].ParentID = "MISSING"
	_, err = svc.Estimate(context.Background(), bad)
	require.Error(t, err)

	runs, err := store.ReadEvents("P1", 1)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, events.EstimateCompletedEvent, runs[0].Type())
	completed := runs[0].Data().(events.EstimateCompleted)
	assert.Equal(t, result.RunID, completed.RunID)
	assert.Equal(t, 3, completed.LineCount)
	assert.True(t, completed.ProposalTotal.Equal(dec("10138.13")))

	assert.Equal(t, events.EstimateFailedEvent, runs[1].Type())
	assert.Equal(t, 2, runs[1].Version())
	assert.Contains(t, runs[1].Data().(events.EstimateFailed).Error, "MISSING")
}

type failingStore struct {
	events.EventStore
}

func (failingStore) AppendEvent(string, events.Event) error {
	return errors.New("store unavailable")
}

func TestService_Estimate_LogsRecordFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(newResources(t),
		WithEventStore(failingStore{}),
		WithLogger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))

	result, err := svc.Estimate(context.Background(), proposalInput("P1"))
	require.NoError(t, err)
	assert.True(t, result.ProposalTotal.Equal(dec("10138.13")))

	entries := logs.FilterMessage("failed to record estimate run").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, events.EstimateCompletedEvent, fields["event"])
	assert.Equal(t, "P1", fields["proposal"])
	assert.Equal(t, "store unavailable", fields["error"])
}

func TestService_EstimateAll_PreservesOrder(t *testing.T) {
	svc := NewService(newResources(t), WithConcurrency(2))
	inputs := []Input{proposalInput("P3"), proposalInput("P1"), proposalInput("P2")}

	results, err := svc.EstimateAll(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, results, 3)
	for i, in := range inputs {
		assert.Equal(t, in.ProposalID, results[i].ProposalID)
		assert.True(t, results[i].ProposalTotal.Equal(dec("10138.13")))
	}
}

func TestService_EstimateAll_FailsOnInvalidProposal(t *testing.T) {
	svc := NewService(newResources(t))
	bad := proposalInput("P2")
	bad.Selections = append(bad.Selections, entities.NewMaterialSelection("GHOST", "CEMENT", numeric.OfInt(1), numeric.Loose{}))

	_, err := svc.EstimateAll(context.Background(), []Input{proposalInput("P1"), bad})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHierarchy)
	assert.Contains(t, err.Error(), "P2")
}

func TestSplitByProposal(t *testing.T) {
	p1, p2 := proposalInput("P1"), proposalInput("P2")
	for i := range p2.WorkItems {
		p2.WorkItems[i].ID += "-2"
		if p2.WorkItems[i].ParentID != "" {
			p2.WorkItems[i].ParentID += "-2"
		}
	}
	for i := range p2.Selections {
		p2.Selections[i].WorkItemID += "-2"
	}

	items := append(append([]entities.WorkItem{}, p1.WorkItems...), p2.WorkItems...)
	selections := append(append([]entities.MaterialSelection{}, p1.Selections...), p2.Selections...)

	inputs := SplitByProposal([]entities.ProposalID{"P1", "P2"}, items, selections)

	require.Len(t, inputs, 2)
	assert.Len(t, inputs[0].WorkItems, 4)
	assert.Len(t, inputs[1].Selections, 3)
	assert.Equal(t, entities.WorkItemID("FOOTING-2"), inputs[1].Selections[0].WorkItemID)
}
