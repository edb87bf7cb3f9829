package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// HierarchyValidator checks the integrity of a scope-of-work hierarchy
type HierarchyValidator struct{}

// NewHierarchyValidator creates a new hierarchy validator
func NewHierarchyValidator() *HierarchyValidator {
	return &HierarchyValidator{}
}

// ValidationResult contains the results of hierarchy validation
type ValidationResult struct {
	HasCycles          bool
	CyclePaths         [][]entities.WorkItemID
	DuplicateIDs       []entities.WorkItemID
	UnknownParents     []entities.WorkItemID
	MixedProposals     []entities.WorkItemID
	DanglingSelections []entities.MaterialSelection
	Errors             []string
}

// Valid reports whether no errors were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Error joins all validation errors into one message
func (r *ValidationResult) Error() string {
	return strings.Join(r.Errors, "; ")
}

// Validate checks work items and the material selections attached to them
func (v *HierarchyValidator) Validate(items []entities.WorkItem, selections []entities.MaterialSelection) *ValidationResult {
	result := &ValidationResult{
		Errors: make([]string, 0),
	}

	byID := make(map[entities.WorkItemID]entities.WorkItem, len(items))
	for _, item := range items {
		if _, exists := byID[item.ID]; exists {
			result.DuplicateIDs = append(result.DuplicateIDs, item.ID)
			continue
		}
		byID[item.ID] = item
	}

	for _, item := range items {
		if item.ParentID == "" {
			continue
		}
		parent, exists := byID[item.ParentID]
		if !exists {
			result.UnknownParents = append(result.UnknownParents, item.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("work item %s references unknown parent %s", item.ID, item.ParentID))
			continue
		}
		if parent.ProposalID != item.ProposalID {
			result.MixedProposals = append(result.MixedProposals, item.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("work item %s belongs to proposal %s but its parent %s belongs to %s",
				item.ID, item.ProposalID, parent.ID, parent.ProposalID))
		}
	}

	result.CyclePaths = v.detectCycles(byID)
	result.HasCycles = len(result.CyclePaths) > 0
	for _, cycle := range result.CyclePaths {
		result.Errors = append(result.Errors, fmt.Sprintf("work item cycle detected: %v", cycle))
	}

	if len(result.DuplicateIDs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate work item ids: %v", result.DuplicateIDs))
	}

	for _, sel := range selections {
		if _, exists := byID[sel.WorkItemID]; !exists {
			result.DanglingSelections = append(result.DanglingSelections, sel)
			result.Errors = append(result.Errors, fmt.Sprintf("material %s selected for unknown work item %s", sel.ResourceID, sel.WorkItemID))
		}
	}

	return result
}

// detectCycles walks parent links from every item. Each item has at most one
// parent, so a cycle is found when the walk revisits an item of the current path.
func (v *HierarchyValidator) detectCycles(byID map[entities.WorkItemID]entities.WorkItem) [][]entities.WorkItemID {
	ids := make([]entities.WorkItemID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	done := make(map[entities.WorkItemID]bool, len(byID))
	cycles := make([][]entities.WorkItemID, 0)

	for _, start := range ids {
		if done[start] {
			continue
		}

		onPath := make(map[entities.WorkItemID]int)
		path := make([]entities.WorkItemID, 0)
		current := start
		for {
			if done[current] {
				break
			}
			if idx, seen := onPath[current]; seen {
				cycle := append([]entities.WorkItemID{}, path[idx:]...)
				cycle = append(cycle, current)
				cycles = append(cycles, cycle)
				break
			}
			onPath[current] = len(path)
			path = append(path, current)

			item, exists := byID[current]
			if !exists || item.ParentID == "" {
				break
			}
			current = item.ParentID
		}

		for _, id := range path {
			done[id] = true
		}
	}

	return cycles
}
