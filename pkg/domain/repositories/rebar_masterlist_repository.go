package repositories

import "github.com/vsinha/takeoff/pkg/domain/entities"

// RebarMasterlistRepository provides access to the rebar masterlist catalog
type RebarMasterlistRepository interface {
	GetSpec(id entities.RebarID) (*entities.RebarSpec, error)
	GetAllSpecs() ([]*entities.RebarSpec, error)
	LoadSpecs(specs []*entities.RebarSpec) error
}
