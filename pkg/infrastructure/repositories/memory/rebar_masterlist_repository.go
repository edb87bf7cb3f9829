package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

// RebarMasterlistRepository provides in-memory rebar masterlist storage
type RebarMasterlistRepository struct {
	mu       sync.RWMutex
	specs    []entities.RebarSpec
	specsMap map[entities.RebarID]int
}

// NewRebarMasterlistRepository creates a new in-memory rebar masterlist repository
func NewRebarMasterlistRepository(expectedSpecs int) *RebarMasterlistRepository {
	return &RebarMasterlistRepository{
		specs:    make([]entities.RebarSpec, 0, expectedSpecs),
		specsMap: make(map[entities.RebarID]int, expectedSpecs),
	}
}

// Verify interface compliance
var _ repositories.RebarMasterlistRepository = (*RebarMasterlistRepository)(nil)

// LoadSpecs loads masterlist entries. A later entry with the same id replaces the earlier one.
func (r *RebarMasterlistRepository) LoadSpecs(specs []*entities.RebarSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, spec := range specs {
		if index, exists := r.specsMap[spec.ID]; exists {
			r.specs[index] = *spec
			continue
		}
		r.specsMap[spec.ID] = len(r.specs)
		r.specs = append(r.specs, *spec)
	}
	return nil
}

// GetSpec returns the masterlist entry for a rebar id
func (r *RebarMasterlistRepository) GetSpec(id entities.RebarID) (*entities.RebarSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.specsMap[id]
	if !exists {
		return nil, fmt.Errorf("rebar masterlist entry %s: %w", id, repositories.ErrNotFound)
	}
	spec := r.specs[index]
	return &spec, nil
}

// GetAllSpecs returns all masterlist entries in load order
func (r *RebarMasterlistRepository) GetAllSpecs() ([]*entities.RebarSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*entities.RebarSpec, 0, len(r.specs))
	for i := range r.specs {
		spec := r.specs[i]
		specs = append(specs, &spec)
	}
	return specs, nil
}
