package reporting

import (
	"context"
	"testing"

	"github.com/pwh/registry/internal/platform/geocode"
)

type fakeRepo struct {
	pairs     []GenderDiagnosis
	summary   []HospitalCaseload
	directory []DirectoryEntry
	summaries []PatientSummary
}

func (f *fakeRepo) GenderDiagnosisPairs(ctx context.Context) ([]GenderDiagnosis, error) {
	return f.pairs, nil
}

func (f *fakeRepo) HospitalSummary(ctx context.Context) ([]HospitalCaseload, error) {
	return f.summary, nil
}

func (f *fakeRepo) HospitalDirectory(ctx context.Context) ([]DirectoryEntry, error) {
	return f.directory, nil
}

func (f *fakeRepo) PatientSummaries(ctx context.Context) ([]PatientSummary, error) {
	return f.summaries, nil
}

type fakeGeo struct {
	coords map[[2]string]geocode.Coord
}

func (f *fakeGeo) Resolve(ctx context.Context, city, province string) (geocode.Coord, bool) {
	c, ok := f.coords[[2]string{city, province}]
	return c, ok
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestGenderPivot(t *testing.T) {
	repo := &fakeRepo{pairs: []GenderDiagnosis{
		{"Laki-laki", "A"},
		{"Laki-laki", "A"},
		{"Perempuan", "A"},
		{"Perempuan", "vWD"},
		{"Laki-laki", "Other"},
		{"Laki-laki", "X"}, // unknown type, dropped
	}}
	svc := NewService(repo, &fakeGeo{})

	rows, err := svc.GenderPivot(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"Hemofilia A", "Hemofilia B", "Hemofilia tipe lain", "VWD"}
	if len(rows) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(rows))
	}
	for i, cat := range wantOrder {
		if rows[i].Category != cat {
			t.Errorf("row %d: expected category %q, got %q", i, cat, rows[i].Category)
		}
	}

	if rows[0].Male != 2 || rows[0].Female != 1 || rows[0].Total != 3 {
		t.Errorf("unexpected Hemofilia A row %+v", rows[0])
	}
	// Hemofilia B has no pairs but still appears, zero-filled.
	if rows[1].Total != 0 {
		t.Errorf("expected zero-filled Hemofilia B, got %+v", rows[1])
	}
	if rows[3].Female != 1 || rows[3].Total != 1 {
		t.Errorf("unexpected VWD row %+v", rows[3])
	}
}

func TestHospitalCaseload_Percentage(t *testing.T) {
	repo := &fakeRepo{summary: []HospitalCaseload{
		{Hospital: "RS A", Patients: 3},
		{Hospital: "RS B", Patients: 1},
	}}
	svc := NewService(repo, &fakeGeo{})

	items, err := svc.HospitalCaseload(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Percentage != 75.0 || items[1].Percentage != 25.0 {
		t.Errorf("unexpected percentages %v / %v", items[0].Percentage, items[1].Percentage)
	}
}

func TestDirectory_TriStateFilters(t *testing.T) {
	jabar := strPtr("JAWA BARAT")
	repo := &fakeRepo{directory: []DirectoryEntry{
		{No: 1, Province: jabar, Name: "RS A", HasHematologist: boolPtr(true)},
		{No: 2, Province: jabar, Name: "RS B", HasHematologist: boolPtr(false)},
		{No: 3, Province: strPtr("BANTEN"), Name: "RS C", HasHematologist: nil},
	}}
	svc := NewService(repo, &fakeGeo{})
	ctx := context.Background()

	entries, stats, err := svc.Directory(ctx, "", FilterYes, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "RS A" {
		t.Errorf("expected only RS A, got %+v", entries)
	}
	// Stats always cover the whole directory.
	if stats.Total != 3 || stats.WithHematologist != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	entries, _, _ = svc.Directory(ctx, "", FilterEmpty, FilterAll)
	if len(entries) != 1 || entries[0].Name != "RS C" {
		t.Errorf("empty filter should match unrecorded flags, got %+v", entries)
	}

	entries, _, _ = svc.Directory(ctx, "jawa barat", FilterAll, FilterAll)
	if len(entries) != 2 {
		t.Errorf("province filter should be case-insensitive, got %+v", entries)
	}
}

func TestDistribution(t *testing.T) {
	repo := &fakeRepo{summary: []HospitalCaseload{
		{Hospital: "RS A", Patients: 5, City: "Bandung", Province: "Jawa Barat"},
		{Hospital: "RS B", Patients: 3, City: "Bandung", Province: "Jawa Barat"},
		{Hospital: "RS C", Patients: 1, City: "Atlantis", Province: "Nowhere"},
		{Hospital: "RS D", Patients: 1, City: "Serang", Province: "Banten"},
	}}
	geo := &fakeGeo{coords: map[[2]string]geocode.Coord{
		{"Bandung", "Jawa Barat"}: {Lat: -6.9147, Lon: 107.6098},
		{"Serang", "Banten"}:      {Lat: -6.12, Lon: 106.15},
	}}
	svc := NewService(repo, geo)

	result, err := svc.Distribution(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	// Three distinct city groups, one of which cannot be located.
	if result.Total != 3 || result.Resolved != 2 {
		t.Errorf("expected 2/3 resolved, got %d/%d", result.Resolved, result.Total)
	}
	if len(result.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(result.Points))
	}
	// Hospitals in the same city are summed, and points sort by count.
	if result.Points[0].City != "Bandung" || result.Points[0].Patients != 8 {
		t.Errorf("unexpected first point %+v", result.Points[0])
	}

	// The minimum-count filter drops small groups before geocoding.
	result, err = svc.Distribution(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 || len(result.Points) != 1 {
		t.Errorf("expected only Bandung past the filter, got %+v", result)
	}
}
