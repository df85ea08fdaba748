package clinical

import "context"

type Repository interface {
	// UpsertDiagnosis inserts or, on a (patient_id, hemo_type) conflict,
	// replaces the severity and keeps the first non-null date and source.
	UpsertDiagnosis(ctx context.Context, d *Diagnosis) error
	UpdateDiagnosis(ctx context.Context, d *Diagnosis) error
	ListDiagnoses(ctx context.Context, search string, limit, offset int) ([]Diagnosis, int, error)

	InsertInhibitor(ctx context.Context, i *Inhibitor) error
	UpdateInhibitor(ctx context.Context, i *Inhibitor) error
	ListInhibitors(ctx context.Context, search string, limit, offset int) ([]Inhibitor, int, error)

	// InsertVirusTest is a no-op when the (patient_id, test_type, tested_on)
	// triple already exists.
	InsertVirusTest(ctx context.Context, v *VirusTest) error
	UpdateVirusTest(ctx context.Context, v *VirusTest) error
	ListVirusTests(ctx context.Context, search string, limit, offset int) ([]VirusTest, int, error)
}
