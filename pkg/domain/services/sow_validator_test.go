package services

import (
	"testing"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

func workItem(id, parent string) entities.WorkItem {
	return entities.WorkItem{ID: entities.WorkItemID(id), ParentID: entities.WorkItemID(parent), ProposalID: "P1"}
}

func TestHierarchyValidator_ValidHierarchy(t *testing.T) {
	items := []entities.WorkItem{
		workItem("RC", ""),
		workItem("FOOTING", "RC"),
		workItem("COLUMN", "RC"),
	}
	selections := []entities.MaterialSelection{{WorkItemID: "FOOTING", ResourceID: "CEMENT"}}

	result := NewHierarchyValidator().Validate(items, selections)

	if !result.Valid() {
		t.Errorf("Expected valid hierarchy, got errors: %v", result.Errors)
	}
}

func TestHierarchyValidator_DetectSimpleCycle(t *testing.T) {
	items := []entities.WorkItem{
		workItem("A", "B"),
		workItem("B", "A"),
	}

	result := NewHierarchyValidator().Validate(items, nil)

	if !result.HasCycles {
		t.Error("Expected cycle to be detected")
	}
	if len(result.CyclePaths) != 1 {
		t.Fatalf("Expected 1 cycle path, got %d", len(result.CyclePaths))
	}
	if len(result.CyclePaths[0]) != 3 {
		t.Errorf("Expected closed cycle of length 3, got %v", result.CyclePaths[0])
	}
}

func TestHierarchyValidator_DetectLongerCycle(t *testing.T) {
	items := []entities.WorkItem{
		workItem("A", "C"),
		workItem("B", "A"),
		workItem("C", "B"),
		workItem("D", "A"),
	}

	result := NewHierarchyValidator().Validate(items, nil)

	if len(result.CyclePaths) != 1 {
		t.Fatalf("Expected exactly 1 cycle, got %v", result.CyclePaths)
	}
	if result.Valid() {
		t.Error("Expected validation errors for cycles")
	}
}

func TestHierarchyValidator_UnknownParent(t *testing.T) {
	items := []entities.WorkItem{workItem("FOOTING", "MISSING")}

	result := NewHierarchyValidator().Validate(items, nil)

	if len(result.UnknownParents) != 1 || result.UnknownParents[0] != "FOOTING" {
		t.Errorf("Expected FOOTING to have unknown parent, got %v", result.UnknownParents)
	}
}

func TestHierarchyValidator_DuplicateIDs(t *testing.T) {
	items := []entities.WorkItem{
		workItem("RC", ""),
		workItem("RC", ""),
	}

	result := NewHierarchyValidator().Validate(items, nil)

	if len(result.DuplicateIDs) != 1 {
		t.Errorf("Expected 1 duplicate id, got %v", result.DuplicateIDs)
	}
}

func TestHierarchyValidator_MixedProposals(t *testing.T) {
	child := workItem("FOOTING", "RC")
	child.ProposalID = "P2"
	items := []entities.WorkItem{workItem("RC", ""), child}

	result := NewHierarchyValidator().Validate(items, nil)

	if len(result.MixedProposals) != 1 {
		t.Errorf("Expected 1 mixed proposal item, got %v", result.MixedProposals)
	}
}

func TestHierarchyValidator_DanglingSelection(t *testing.T) {
	items := []entities.WorkItem{workItem("RC", "")}
	selections := []entities.MaterialSelection{{WorkItemID: "GHOST", ResourceID: "CEMENT"}}

	result := NewHierarchyValidator().Validate(items, selections)

	if len(result.DanglingSelections) != 1 {
		t.Errorf("Expected 1 dangling selection, got %d", len(result.DanglingSelections))
	}
	if result.Error() == "" {
		t.Error("Expected a joined error message")
	}
}
