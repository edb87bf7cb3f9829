package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

func lookup(id entities.RebarID) (*entities.RebarSpec, error) {
	if id == "D12" {
		return &entities.RebarSpec{ID: "D12", DiameterMM: decimal.NewFromInt(12), LengthM: decimal.NewFromInt(6), WeightPerMeter: decimal.RequireFromString("0.888")}, nil
	}
	return nil, repositories.ErrNotFound
}

func TestEstimateRequest_Decode(t *testing.T) {
	raw := `{
		"proposal_id": "P1",
		"work_items": [
			{"work_item_id": "RC"},
			{"work_item_id": "FOOTING", "parent_id": "RC", "compute_type": "Simple",
			 "dimensions": [{"length": "2.5", "width": 2, "depth": "", "count": null}]},
			{"work_item_id": "WALL", "compute_type": "custom",
			 "dimensions": [{"floor_id": "F1", "length": 4, "width": "0.2", "depth": 3}]},
			{"work_item_id": "COLUMN", "parent_id": "RC", "compute_type": "rebar",
			 "rebar": [{"rebar_masterlist_id": "D12", "quantity": "6"}]}
		],
		"materials": [{"work_item_id": "FOOTING", "resource_id": "CEMENT", "multiplier": "2", "unit_cost": ""}]
	}`

	var req EstimateRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	items, err := req.ToWorkItems(lookup)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Nil(t, items[0].Takeoff)
	assert.Equal(t, entities.ProposalID("P1"), items[0].ProposalID, "blank proposal inherits the request's")

	footing := items[1].Takeoff.(entities.SimpleTakeoff)
	assert.False(t, footing.Rows[0].Depth.Valid)
	assert.True(t, footing.Rows[0].Count.Equal(decimal.NewFromInt(1)))

	wall := items[2].Takeoff.(entities.CustomTakeoff)
	assert.Equal(t, entities.FloorID("F1"), wall.Rows[0].FloorID)

	column := items[3].Takeoff.(entities.RebarTakeoff)
	assert.True(t, column.Rows[0].TotalWeight.Equal(decimal.RequireFromString("31.968")))
	assert.Equal(t, entities.WorkItemID("COLUMN"), column.Rows[0].WorkItemID)

	selections := req.Selections()
	require.Len(t, selections, 1)
	assert.False(t, selections[0].UnitCost.Valid)
	assert.True(t, selections[0].Multiplier.Equal(decimal.NewFromInt(2)))
}

func TestWorkItemRequest_UnknownComputeType(t *testing.T) {
	_, err := WorkItemRequest{ID: "X", ProposalID: "P1", ComputeType: "cubic"}.ToWorkItem(lookup)

	assert.ErrorIs(t, err, entities.ErrUnknownComputeType)
}

func TestRebarRowRequest_ToRebarRow(t *testing.T) {
	inline := RebarRowRequest{RebarMasterlistID: "D99", LengthM: jsonLoose(t, `6`), WeightPerMeter: jsonLoose(t, `"2.466"`), Quantity: jsonLoose(t, `2`)}
	row, err := inline.ToRebarRow("BEAM", nil)
	require.NoError(t, err)
	assert.True(t, row.TotalWeight.Equal(decimal.RequireFromString("29.592")))

	_, err = RebarRowRequest{RebarMasterlistID: "D99"}.ToRebarRow("BEAM", lookup)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	missingQty, err := RebarRowRequest{RebarMasterlistID: "D12"}.ToRebarRow("BEAM", lookup)
	require.NoError(t, err)
	assert.True(t, missingQty.TotalWeight.IsZero(), "missing quantity must mean 0 bars")
}

func TestNewScheduleResponse_EmptyWeeks(t *testing.T) {
	s := entities.Schedule{Rows: []entities.ScheduleRow{{Task: entities.GanttTask{ItemNo: "MOB"}, Placeholder: true}}}

	out, err := json.Marshal(NewScheduleResponse(s))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"weeks":[]`)
}

func jsonLoose(t *testing.T, raw string) (l numeric.Loose) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	return l
}
