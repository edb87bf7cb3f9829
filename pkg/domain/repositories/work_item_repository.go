package repositories

import "github.com/vsinha/takeoff/pkg/domain/entities"

// WorkItemRepository provides access to scope-of-work items
type WorkItemRepository interface {
	GetWorkItem(id entities.WorkItemID) (*entities.WorkItem, error)
	GetByProposal(proposalID entities.ProposalID) ([]*entities.WorkItem, error)
	GetProposals() ([]entities.ProposalID, error)
	LoadWorkItems(items []*entities.WorkItem) error
}
