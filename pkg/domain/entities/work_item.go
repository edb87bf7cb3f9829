package entities

import "fmt"

// Takeoff is the measured input of a work item. It is one of SimpleTakeoff,
// CustomTakeoff or RebarTakeoff.
type Takeoff interface {
	ComputeType() ComputeType
	isTakeoff()
}

// SimpleTakeoff measures a single list of dimension rows
type SimpleTakeoff struct {
	Rows []DimensionRow
}

// CustomTakeoff measures dimension rows per floor
type CustomTakeoff struct {
	Rows []FloorDimensionRow
}

// RebarTakeoff measures reinforcement by weight
type RebarTakeoff struct {
	Rows []RebarRow
}

func (SimpleTakeoff) ComputeType() ComputeType { return Simple }
func (CustomTakeoff) ComputeType() ComputeType { return Custom }
func (RebarTakeoff) ComputeType() ComputeType  { return Rebar }

func (SimpleTakeoff) isTakeoff() {}
func (CustomTakeoff) isTakeoff() {}
func (RebarTakeoff) isTakeoff()  {}

// WorkItem is a node of the scope-of-work hierarchy. Grouping parents carry no takeoff.
type WorkItem struct {
	ID          WorkItemID
	ParentID    WorkItemID // empty for top-level items
	ProposalID  ProposalID
	Description string
	Unit        string
	Takeoff     Takeoff // nil for grouping items
}

// NewWorkItem creates a validated WorkItem
func NewWorkItem(id, parentID WorkItemID, proposalID ProposalID, description, unit string, takeoff Takeoff) (*WorkItem, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("work item id cannot be empty")
	}
	if string(proposalID) == "" {
		return nil, fmt.Errorf("proposal id cannot be empty for work item %s", id)
	}
	if id == parentID {
		return nil, fmt.Errorf("work item cannot be its own parent: %s", id)
	}

	return &WorkItem{
		ID:          id,
		ParentID:    parentID,
		ProposalID:  proposalID,
		Description: description,
		Unit:        unit,
		Takeoff:     takeoff,
	}, nil
}

// GroupID returns the work item material lines of this item roll up to:
// its parent, or itself when it is top-level.
func (w WorkItem) GroupID() WorkItemID {
	if w.ParentID == "" {
		return w.ID
	}
	return w.ParentID
}

// ComputeType reports the takeoff kind; ok is false for grouping items
func (w WorkItem) ComputeType() (ComputeType, bool) {
	if w.Takeoff == nil {
		return Simple, false
	}
	return w.Takeoff.ComputeType(), true
}
