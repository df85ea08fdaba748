package care

import "context"

type Repository interface {
	InsertTreatment(ctx context.Context, t *Treatment) error
	UpdateTreatment(ctx context.Context, t *Treatment) error
	ListTreatments(ctx context.Context, search string, limit, offset int) ([]Treatment, int, error)

	// UpsertDeathRecord keeps at most one death record per patient.
	UpsertDeathRecord(ctx context.Context, d *DeathRecord) error
	UpdateDeathRecord(ctx context.Context, d *DeathRecord) error
	ListDeathRecords(ctx context.Context, search string, limit, offset int) ([]DeathRecord, int, error)

	InsertContact(ctx context.Context, c *Contact) error
	UpdateContact(ctx context.Context, c *Contact) error
	ListContacts(ctx context.Context, search string, limit, offset int) ([]Contact, int, error)
}
