package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

// WorkItemRepository provides in-memory scope-of-work storage
type WorkItemRepository struct {
	mu         sync.RWMutex
	items      []entities.WorkItem
	itemsMap   map[entities.WorkItemID]int
	byProposal map[entities.ProposalID][]int
}

// NewWorkItemRepository creates a new in-memory work item repository
func NewWorkItemRepository(expectedItems int) *WorkItemRepository {
	return &WorkItemRepository{
		items:      make([]entities.WorkItem, 0, expectedItems),
		itemsMap:   make(map[entities.WorkItemID]int, expectedItems),
		byProposal: make(map[entities.ProposalID][]int),
	}
}

// Verify interface compliance
var _ repositories.WorkItemRepository = (*WorkItemRepository)(nil)

// LoadWorkItems loads work items. Ids must be unique across loads.
func (r *WorkItemRepository) LoadWorkItems(items []*entities.WorkItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, exists := r.itemsMap[item.ID]; exists {
			return fmt.Errorf("duplicate work item id: %s", item.ID)
		}
		index := len(r.items)
		r.itemsMap[item.ID] = index
		r.byProposal[item.ProposalID] = append(r.byProposal[item.ProposalID], index)
		r.items = append(r.items, *item)
	}
	return nil
}

// GetWorkItem returns a work item by id
func (r *WorkItemRepository) GetWorkItem(id entities.WorkItemID) (*entities.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.itemsMap[id]
	if !exists {
		return nil, fmt.Errorf("work item %s: %w", id, repositories.ErrNotFound)
	}
	item := r.items[index]
	return &item, nil
}

// GetByProposal returns a proposal's work items in load order
func (r *WorkItemRepository) GetByProposal(proposalID entities.ProposalID) ([]*entities.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexes, exists := r.byProposal[proposalID]
	if !exists {
		return nil, fmt.Errorf("proposal %s: %w", proposalID, repositories.ErrNotFound)
	}
	items := make([]*entities.WorkItem, 0, len(indexes))
	for _, index := range indexes {
		item := r.items[index]
		items = append(items, &item)
	}
	return items, nil
}

// GetProposals returns every proposal id in sorted order
func (r *WorkItemRepository) GetProposals() ([]entities.ProposalID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]entities.ProposalID, 0, len(r.byProposal))
	for id := range r.byProposal {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
