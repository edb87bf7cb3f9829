package entities

import (
	"errors"
	"testing"
)

func TestWorkItem_Validation(t *testing.T) {
	takeoff := SimpleTakeoff{}

	validItem, err := NewWorkItem("FOOTING", "RC", "P1", "Footing F1", "m3", takeoff)
	if err != nil {
		t.Fatalf("Expected valid work item creation to succeed: %v", err)
	}
	if validItem.GroupID() != "RC" {
		t.Errorf("Expected group RC, got %s", validItem.GroupID())
	}
	if ct, ok := validItem.ComputeType(); !ok || ct != Simple {
		t.Errorf("Expected simple compute type, got %v (ok=%v)", ct, ok)
	}

	testCases := []struct {
		name        string
		id          WorkItemID
		parentID    WorkItemID
		proposalID  ProposalID
		expectError string
	}{
		{"empty id", "", "RC", "P1", "work item id cannot be empty"},
		{"empty proposal", "FOOTING", "RC", "", "proposal id cannot be empty for work item FOOTING"},
		{"own parent", "FOOTING", "FOOTING", "P1", "work item cannot be its own parent: FOOTING"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWorkItem(tc.id, tc.parentID, tc.proposalID, "desc", "m3", takeoff)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestWorkItem_GroupingItem(t *testing.T) {
	group, err := NewWorkItem("RC", "", "P1", "Reinforced Concrete", "", nil)
	if err != nil {
		t.Fatalf("Expected grouping item creation to succeed: %v", err)
	}
	if group.GroupID() != "RC" {
		t.Errorf("Expected top-level item to group under itself, got %s", group.GroupID())
	}
	if _, ok := group.ComputeType(); ok {
		t.Error("Expected grouping item to have no compute type")
	}
}

func TestParseComputeType(t *testing.T) {
	testCases := []struct {
		input string
		want  ComputeType
	}{
		{"simple", Simple},
		{"Custom", Custom},
		{" REBAR ", Rebar},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseComputeType(tc.input)
			if err != nil {
				t.Fatalf("ParseComputeType(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
			if got.String() != tc.want.String() {
				t.Errorf("Expected string %s, got %s", tc.want.String(), got.String())
			}
		})
	}

	_, err := ParseComputeType("formwork")
	if !errors.Is(err, ErrUnknownComputeType) {
		t.Errorf("Expected ErrUnknownComputeType, got %v", err)
	}
}

func TestTakeoff_ComputeTypes(t *testing.T) {
	takeoffs := map[ComputeType]Takeoff{
		Simple: SimpleTakeoff{},
		Custom: CustomTakeoff{},
		Rebar:  RebarTakeoff{},
	}
	for want, takeoff := range takeoffs {
		if takeoff.ComputeType() != want {
			t.Errorf("Expected %s, got %s", want, takeoff.ComputeType())
		}
	}
}
