package catalog

import "context"

// RepositoryInterface defines the storage operations for locations
type RepositoryInterface interface {
	Create(ctx context.Context, name string) (*Location, error)
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	GetByName(ctx context.Context, name string) (*Location, error)
	ListActive(ctx context.Context) ([]*Location, error)
	RecordView(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}

// ServiceInterface defines the business logic operations for the catalog
type ServiceInterface interface {
	Create(ctx context.Context, name string) (*Location, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	GetByName(ctx context.Context, name string) (*Location, error)
	ListActive(ctx context.Context) ([]*Location, error)
	PickRandom(ctx context.Context) (*Location, error)
	RecordView(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}
