package clinical

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func requirePatient(patientID int64) error {
	if patientID <= 0 {
		return fmt.Errorf("patient_id is required")
	}
	return nil
}

func (s *Service) RecordDiagnosis(ctx context.Context, d *Diagnosis) error {
	if err := requirePatient(d.PatientID); err != nil {
		return err
	}
	if strings.TrimSpace(d.HemoType) == "" {
		return fmt.Errorf("hemo_type is required")
	}
	d.Source = trimToNil(d.Source)
	return s.repo.UpsertDiagnosis(ctx, d)
}

func (s *Service) UpdateDiagnosis(ctx context.Context, d *Diagnosis) error {
	d.Source = trimToNil(d.Source)
	return s.repo.UpdateDiagnosis(ctx, d)
}

func (s *Service) ListDiagnoses(ctx context.Context, search string, limit, offset int) ([]Diagnosis, int, error) {
	return s.repo.ListDiagnoses(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *Service) RecordInhibitor(ctx context.Context, i *Inhibitor) error {
	if err := requirePatient(i.PatientID); err != nil {
		return err
	}
	if strings.TrimSpace(i.Factor) == "" {
		return fmt.Errorf("factor is required")
	}
	i.Lab = trimToNil(i.Lab)
	return s.repo.InsertInhibitor(ctx, i)
}

func (s *Service) UpdateInhibitor(ctx context.Context, i *Inhibitor) error {
	i.Lab = trimToNil(i.Lab)
	return s.repo.UpdateInhibitor(ctx, i)
}

func (s *Service) ListInhibitors(ctx context.Context, search string, limit, offset int) ([]Inhibitor, int, error) {
	return s.repo.ListInhibitors(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *Service) RecordVirusTest(ctx context.Context, v *VirusTest) error {
	if err := requirePatient(v.PatientID); err != nil {
		return err
	}
	if strings.TrimSpace(v.TestType) == "" {
		return fmt.Errorf("test_type is required")
	}
	if strings.TrimSpace(v.Result) == "" {
		v.Result = "unknown"
	}
	v.Lab = trimToNil(v.Lab)
	return s.repo.InsertVirusTest(ctx, v)
}

func (s *Service) UpdateVirusTest(ctx context.Context, v *VirusTest) error {
	v.Lab = trimToNil(v.Lab)
	return s.repo.UpdateVirusTest(ctx, v)
}

func (s *Service) ListVirusTests(ctx context.Context, search string, limit, offset int) ([]VirusTest, int, error) {
	return s.repo.ListVirusTests(ctx, strings.TrimSpace(search), limit, offset)
}
