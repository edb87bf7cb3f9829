package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

func TestRebarMasterlistRepository_LoadAndGet(t *testing.T) {
	repo := NewRebarMasterlistRepository(2)

	specs := []*entities.RebarSpec{
		{ID: "D12", DiameterMM: decimal.NewFromInt(12), LengthM: decimal.NewFromInt(6), WeightPerMeter: decimal.RequireFromString("0.888")},
		{ID: "D16", DiameterMM: decimal.NewFromInt(16), LengthM: decimal.NewFromInt(6), WeightPerMeter: decimal.RequireFromString("1.578")},
	}
	if err := repo.LoadSpecs(specs); err != nil {
		t.Fatalf("Failed to load specs: %v", err)
	}

	spec, err := repo.GetSpec("D16")
	if err != nil {
		t.Fatalf("Failed to get spec: %v", err)
	}
	if !spec.WeightPerMeter.Equal(decimal.RequireFromString("1.578")) {
		t.Errorf("Expected weight per meter 1.578, got %s", spec.WeightPerMeter)
	}

	all, _ := repo.GetAllSpecs()
	if len(all) != 2 || all[0].ID != "D12" {
		t.Errorf("Expected specs in load order, got %v", all)
	}
}

func TestRebarMasterlistRepository_ReloadReplaces(t *testing.T) {
	repo := NewRebarMasterlistRepository(1)
	_ = repo.LoadSpecs([]*entities.RebarSpec{{ID: "D12", WeightPerMeter: decimal.RequireFromString("0.888")}})
	_ = repo.LoadSpecs([]*entities.RebarSpec{{ID: "D12", WeightPerMeter: decimal.RequireFromString("0.890")}})

	all, _ := repo.GetAllSpecs()
	if len(all) != 1 {
		t.Fatalf("Expected 1 spec after reload, got %d", len(all))
	}
	if !all[0].WeightPerMeter.Equal(decimal.RequireFromString("0.890")) {
		t.Errorf("Expected replaced weight 0.890, got %s", all[0].WeightPerMeter)
	}
}

func TestRebarMasterlistRepository_NotFound(t *testing.T) {
	repo := NewRebarMasterlistRepository(0)

	_, err := repo.GetSpec("D32")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResourceRepository(t *testing.T) {
	repo := NewResourceRepository()
	_ = repo.LoadResources([]*entities.Resource{
		{ID: "SAND", UnitCost: decimal.NewFromInt(900)},
		{ID: "CEMENT", UnitCost: decimal.RequireFromString("150.75")},
	})

	res, err := repo.GetResource("CEMENT")
	if err != nil {
		t.Fatalf("Failed to get resource: %v", err)
	}
	if !res.UnitCost.Equal(decimal.RequireFromString("150.75")) {
		t.Errorf("Expected unit cost 150.75, got %s", res.UnitCost)
	}

	all, _ := repo.GetAllResources()
	if len(all) != 2 || all[0].ID != "CEMENT" {
		t.Errorf("Expected resources sorted by id, got %v", all)
	}

	if _, err := repo.GetResource("GRAVEL"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWorkItemRepository(t *testing.T) {
	repo := NewWorkItemRepository(3)
	err := repo.LoadWorkItems([]*entities.WorkItem{
		{ID: "RC", ProposalID: "P1"},
		{ID: "FOOTING", ParentID: "RC", ProposalID: "P1"},
		{ID: "WALL", ProposalID: "P2"},
	})
	if err != nil {
		t.Fatalf("Failed to load work items: %v", err)
	}

	items, err := repo.GetByProposal("P1")
	if err != nil {
		t.Fatalf("Failed to get proposal items: %v", err)
	}
	if len(items) != 2 || items[1].ID != "FOOTING" {
		t.Errorf("Expected RC, FOOTING in load order, got %v", items)
	}

	proposals, _ := repo.GetProposals()
	if len(proposals) != 2 || proposals[0] != "P1" {
		t.Errorf("Expected [P1 P2], got %v", proposals)
	}

	if _, err := repo.GetWorkItem("COLUMN"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWorkItemRepository_DuplicateID(t *testing.T) {
	repo := NewWorkItemRepository(2)

	err := repo.LoadWorkItems([]*entities.WorkItem{
		{ID: "RC", ProposalID: "P1"},
		{ID: "RC", ProposalID: "P1"},
	})
	if err == nil {
		t.Error("Expected error for duplicate work item id")
	}
}
