package entities

// WorkItemID identifies a billable work item (parent or child) in the scope of work
type WorkItemID string

// ProposalID identifies a priced version of a project's scope
type ProposalID string

// ResourceID identifies a material resource in the resource catalog
type ResourceID string

// RebarID identifies a rebar type in the rebar masterlist
type RebarID string

// FloorID identifies a floor of a custom (per-floor) take-off item
type FloorID string
