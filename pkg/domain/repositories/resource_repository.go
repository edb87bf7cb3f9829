package repositories

import "github.com/vsinha/takeoff/pkg/domain/entities"

// ResourceRepository provides access to the resource price catalog
type ResourceRepository interface {
	GetResource(id entities.ResourceID) (*entities.Resource, error)
	GetAllResources() ([]*entities.Resource, error)
	LoadResources(resources []*entities.Resource) error
}
