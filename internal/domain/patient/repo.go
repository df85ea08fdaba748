package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error

	// List returns a page of patients, optionally filtered by a
	// case-insensitive substring of the full name, plus the unfiltered total.
	List(ctx context.Context, search string, limit, offset int) ([]Patient, int, error)

	// FindByNormalizedName returns the patient owning a normalized name, or
	// nil when the name is free.
	FindByNormalizedName(ctx context.Context, normalized string) (*Ref, error)

	// ListRefs returns the full (id, full_name) snapshot of the registry.
	ListRefs(ctx context.Context) ([]Ref, error)
}
