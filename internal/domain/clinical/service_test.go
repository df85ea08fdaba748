package clinical

import (
	"context"
	"testing"
)

type fakeRepo struct {
	Repository
	diagnoses  []Diagnosis
	inhibitors []Inhibitor
	virusTests []VirusTest
}

func (f *fakeRepo) UpsertDiagnosis(ctx context.Context, d *Diagnosis) error {
	for i := range f.diagnoses {
		if f.diagnoses[i].PatientID == d.PatientID && f.diagnoses[i].HemoType == d.HemoType {
			f.diagnoses[i].Severity = d.Severity
			if d.DiagnosedOn != nil {
				f.diagnoses[i].DiagnosedOn = d.DiagnosedOn
			}
			if d.Source != nil {
				f.diagnoses[i].Source = d.Source
			}
			return nil
		}
	}
	f.diagnoses = append(f.diagnoses, *d)
	return nil
}

func (f *fakeRepo) InsertInhibitor(ctx context.Context, i *Inhibitor) error {
	f.inhibitors = append(f.inhibitors, *i)
	return nil
}

func (f *fakeRepo) InsertVirusTest(ctx context.Context, v *VirusTest) error {
	f.virusTests = append(f.virusTests, *v)
	return nil
}

func strPtr(s string) *string { return &s }

func TestRecordDiagnosis_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	if err := svc.RecordDiagnosis(ctx, &Diagnosis{HemoType: "A"}); err == nil {
		t.Error("expected error without patient_id")
	}
	if err := svc.RecordDiagnosis(ctx, &Diagnosis{PatientID: 1, HemoType: "  "}); err == nil {
		t.Error("expected error without hemo_type")
	}
}

func TestRecordDiagnosis_UpsertsPerType(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.RecordDiagnosis(ctx, &Diagnosis{PatientID: 1, HemoType: "A", Severity: strPtr("Ringan")}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordDiagnosis(ctx, &Diagnosis{PatientID: 1, HemoType: "A", Severity: strPtr("Berat")}); err != nil {
		t.Fatal(err)
	}
	if len(repo.diagnoses) != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", len(repo.diagnoses))
	}
	if *repo.diagnoses[0].Severity != "Berat" {
		t.Errorf("expected severity replaced, got %q", *repo.diagnoses[0].Severity)
	}
}

func TestRecordInhibitor_BlankLabBecomesNil(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	i := &Inhibitor{PatientID: 1, Factor: "FVIII", Lab: strPtr("   ")}
	if err := svc.RecordInhibitor(context.Background(), i); err != nil {
		t.Fatal(err)
	}
	if repo.inhibitors[0].Lab != nil {
		t.Error("expected blank lab to be stored as null")
	}
}

func TestRecordVirusTest_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	if err := svc.RecordVirusTest(context.Background(), &VirusTest{PatientID: 1}); err == nil {
		t.Error("expected error without test_type")
	}
}
