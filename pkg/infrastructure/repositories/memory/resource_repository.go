package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

// ResourceRepository provides in-memory resource catalog storage
type ResourceRepository struct {
	mu        sync.RWMutex
	resources map[entities.ResourceID]entities.Resource
}

// NewResourceRepository creates a new in-memory resource repository
func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{
		resources: make(map[entities.ResourceID]entities.Resource),
	}
}

// Verify interface compliance
var _ repositories.ResourceRepository = (*ResourceRepository)(nil)

// LoadResources loads catalog entries, replacing any with the same id
func (r *ResourceRepository) LoadResources(resources []*entities.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range resources {
		r.resources[res.ID] = *res
	}
	return nil
}

// GetResource returns a catalog entry
func (r *ResourceRepository) GetResource(id entities.ResourceID) (*entities.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, exists := r.resources[id]
	if !exists {
		return nil, fmt.Errorf("resource %s: %w", id, repositories.ErrNotFound)
	}
	return &res, nil
}

// GetAllResources returns all catalog entries ordered by id
func (r *ResourceRepository) GetAllResources() ([]*entities.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		res := res
		out = append(out, &res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
