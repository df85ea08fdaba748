package care

import (
	"context"
	"testing"
)

type fakeRepo struct {
	Repository
	deaths   map[int64]DeathRecord
	contacts []Contact
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deaths: make(map[int64]DeathRecord)}
}

func (f *fakeRepo) UpsertDeathRecord(ctx context.Context, d *DeathRecord) error {
	f.deaths[d.PatientID] = *d
	return nil
}

func (f *fakeRepo) InsertContact(ctx context.Context, c *Contact) error {
	f.contacts = append(f.contacts, *c)
	return nil
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestRecordDeath_OneRecordPerPatient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.RecordDeath(ctx, &DeathRecord{PatientID: 7, YearOfDeath: intPtr(2020)}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordDeath(ctx, &DeathRecord{PatientID: 7, YearOfDeath: intPtr(2021)}); err != nil {
		t.Fatal(err)
	}
	if len(repo.deaths) != 1 {
		t.Fatalf("expected 1 death record, got %d", len(repo.deaths))
	}
	if *repo.deaths[7].YearOfDeath != 2021 {
		t.Errorf("expected year replaced, got %d", *repo.deaths[7].YearOfDeath)
	}
}

func TestRecordContact_DuplicatesAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	c := Contact{PatientID: 1, Relation: "ibu", Name: "Siti", Phone: strPtr(" 0812 ")}
	for i := 0; i < 2; i++ {
		cc := c
		if err := svc.RecordContact(ctx, &cc); err != nil {
			t.Fatal(err)
		}
	}
	if len(repo.contacts) != 2 {
		t.Fatalf("contacts have no dedup key, expected 2 rows, got %d", len(repo.contacts))
	}
	if *repo.contacts[0].Phone != "0812" {
		t.Errorf("expected trimmed phone, got %q", *repo.contacts[0].Phone)
	}
}

func TestRecordContact_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if err := svc.RecordContact(ctx, &Contact{Relation: "ibu", Name: "X"}); err == nil {
		t.Error("expected error without patient_id")
	}
	if err := svc.RecordContact(ctx, &Contact{PatientID: 1, Relation: "ibu", Name: "  "}); err == nil {
		t.Error("expected error without contact name")
	}
}
