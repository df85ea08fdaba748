package care

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

func (s *Service) RecordTreatment(ctx context.Context, t *Treatment) error {
	if err := requirePatient(t.PatientID); err != nil {
		return err
	}
	t.NameHospital = trimToNil(t.NameHospital)
	t.Frequency = trimToNil(t.Frequency)
	t.Dose = trimToNil(t.Dose)
	t.Merk = trimToNil(t.Merk)
	return s.repo.InsertTreatment(ctx, t)
}

func (s *Service) UpdateTreatment(ctx context.Context, t *Treatment) error {
	return s.repo.UpdateTreatment(ctx, t)
}

func (s *Service) ListTreatments(ctx context.Context, search string, limit, offset int) ([]Treatment, int, error) {
	return s.repo.ListTreatments(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *Service) RecordDeath(ctx context.Context, d *DeathRecord) error {
	if err := requirePatient(d.PatientID); err != nil {
		return err
	}
	d.CauseOfDeath = trimToNil(d.CauseOfDeath)
	return s.repo.UpsertDeathRecord(ctx, d)
}

func (s *Service) UpdateDeath(ctx context.Context, d *DeathRecord) error {
	d.CauseOfDeath = trimToNil(d.CauseOfDeath)
	return s.repo.UpdateDeathRecord(ctx, d)
}

func (s *Service) ListDeaths(ctx context.Context, search string, limit, offset int) ([]DeathRecord, int, error) {
	return s.repo.ListDeathRecords(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *Service) RecordContact(ctx context.Context, c *Contact) error {
	if err := requirePatient(c.PatientID); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(c.Relation) == "" {
		c.Relation = "lainnya"
	}
	c.Phone = trimToNil(c.Phone)
	return s.repo.InsertContact(ctx, c)
}

func (s *Service) UpdateContact(ctx context.Context, c *Contact) error {
	c.Phone = trimToNil(c.Phone)
	return s.repo.UpdateContact(ctx, c)
}

func (s *Service) ListContacts(ctx context.Context, search string, limit, offset int) ([]Contact, int, error) {
	return s.repo.ListContacts(ctx, strings.TrimSpace(search), limit, offset)
}
