package importer

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pwh/registry/internal/domain/patient"
)

var testLogger = zerolog.New(os.Stderr).Level(zerolog.Disabled)

func TestResolve_ExplicitIDWinsOverName(t *testing.T) {
	r := NewResolver([]patient.Ref{{ID: 1, FullName: "Jane Doe"}}, testLogger)

	// The id is used as-is, with no existence check, even when the name would
	// resolve to someone else.
	id, ok := r.Resolve("42", "Jane Doe")
	if !ok || id != 42 {
		t.Errorf("expected 42, got %d ok=%v", id, ok)
	}
}

func TestResolve_InvalidIDFallsBackToName(t *testing.T) {
	r := NewResolver([]patient.Ref{{ID: 7, FullName: "Jane Doe"}}, testLogger)

	id, ok := r.Resolve("abc", "  JANE DOE ")
	if !ok || id != 7 {
		t.Errorf("expected snapshot hit 7, got %d ok=%v", id, ok)
	}
}

func TestResolve_InRunBeatsSnapshot(t *testing.T) {
	r := NewResolver([]patient.Ref{{ID: 1, FullName: "Budi"}}, testLogger)
	r.AddInserted("Budi", 99)

	id, ok := r.Resolve("", "budi")
	if !ok || id != 99 {
		t.Errorf("expected in-run id 99, got %d ok=%v", id, ok)
	}
}

func TestResolve_SameBatchInsertResolvesWithoutSnapshot(t *testing.T) {
	r := NewResolver(nil, testLogger)
	r.AddInserted("Jane Doe", 5)

	id, ok := r.Resolve("", "jane doe")
	if !ok || id != 5 {
		t.Errorf("expected 5, got %d ok=%v", id, ok)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	r := NewResolver(nil, testLogger)

	if _, ok := r.Resolve("", "nobody"); ok {
		t.Error("expected miss for unknown name")
	}
	if _, ok := r.Resolve("", ""); ok {
		t.Error("expected miss for blank row keys")
	}
}

func TestNewResolver_DuplicateNamesLastWins(t *testing.T) {
	r := NewResolver([]patient.Ref{
		{ID: 1, FullName: "Jane Doe"},
		{ID: 2, FullName: "JANE DOE"},
	}, testLogger)

	id, ok := r.Resolve("", "jane doe")
	if !ok || id != 2 {
		t.Errorf("expected last-wins id 2, got %d ok=%v", id, ok)
	}
}
