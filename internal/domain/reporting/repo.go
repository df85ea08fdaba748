package reporting

import "context"

type Repository interface {
	GenderDiagnosisPairs(ctx context.Context) ([]GenderDiagnosis, error)

	// HospitalSummary returns the caseload view ordered by patient count
	// descending, hospital name ascending. Percentage is left to the service.
	HospitalSummary(ctx context.Context) ([]HospitalCaseload, error)

	HospitalDirectory(ctx context.Context) ([]DirectoryEntry, error)

	PatientSummaries(ctx context.Context) ([]PatientSummary, error)
}
