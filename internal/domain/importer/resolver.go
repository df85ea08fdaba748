package importer

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pwh/registry/internal/domain/patient"
)

// Resolver determines which patient a dependent sheet row belongs to. It owns
// two transient name maps: patients inserted earlier in the same run, and a
// snapshot of the whole registry taken when the run starts. Both are discarded
// with the resolver; this is not a durable cache.
type Resolver struct {
	inRun    map[string]int64
	snapshot map[string]int64
}

// NewResolver builds the run-start snapshot. When two existing patients share
// a normalized name the later one wins, and the collision is logged; with the
// unique index in place this only happens with pre-existing data.
func NewResolver(refs []patient.Ref, logger zerolog.Logger) *Resolver {
	snapshot := make(map[string]int64, len(refs))
	for _, ref := range refs {
		key := patient.NormalizeName(ref.FullName)
		if prev, ok := snapshot[key]; ok {
			logger.Warn().
				Str("full_name", ref.FullName).
				Int64("kept_id", ref.ID).
				Int64("shadowed_id", prev).
				Msg("duplicate normalized patient name in snapshot, name lookup is ambiguous")
		}
		snapshot[key] = ref.ID
	}
	return &Resolver{
		inRun:    make(map[string]int64),
		snapshot: snapshot,
	}
}

// AddInserted registers a patient created earlier in this run so later rows
// in the same workbook can reference it by name.
func (r *Resolver) AddInserted(fullName string, id int64) {
	r.inRun[patient.NormalizeName(fullName)] = id
}

// Resolve applies the resolution order: an explicit integer patient_id wins
// without any existence check, then the in-run map, then the snapshot. A
// (0, false) result means the row should be skipped.
func (r *Resolver) Resolve(patientID, fullName string) (int64, bool) {
	if s := strings.TrimSpace(patientID); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return id, true
		}
	}

	key := patient.NormalizeName(fullName)
	if key == "" {
		return 0, false
	}
	if id, ok := r.inRun[key]; ok {
		return id, true
	}
	if id, ok := r.snapshot[key]; ok {
		return id, true
	}
	return 0, false
}
