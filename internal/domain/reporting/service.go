package reporting

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/pwh/registry/internal/platform/geocode"
)

// CoordResolver locates a (city, province) pair; a false result excludes the
// pair from spatial output.
type CoordResolver interface {
	Resolve(ctx context.Context, city, province string) (geocode.Coord, bool)
}

type Service struct {
	repo Repository
	geo  CoordResolver
}

func NewService(repo Repository, geo CoordResolver) *Service {
	return &Service{repo: repo, geo: geo}
}

// pivotCategories is the fixed row order of the gender recap. Pairs mapping
// outside these categories are dropped.
var pivotCategories = []string{"Hemofilia A", "Hemofilia B", "Hemofilia tipe lain", "VWD"}

func categoryForHemoType(hemoType string) string {
	switch hemoType {
	case "A":
		return "Hemofilia A"
	case "B":
		return "Hemofilia B"
	case "Other":
		return "Hemofilia tipe lain"
	case "vWD":
		return "VWD"
	}
	return "Lainnya"
}

// GenderPivot counts patients per category and gender. Every category row is
// always present, zero-filled; genders other than Laki-laki/Perempuan count
// only toward the total.
func (s *Service) GenderPivot(ctx context.Context) ([]PivotRow, error) {
	pairs, err := s.repo.GenderDiagnosisPairs(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*PivotRow, len(pivotCategories))
	for _, cat := range pivotCategories {
		rows[cat] = &PivotRow{Category: cat}
	}

	for _, pair := range pairs {
		row, ok := rows[categoryForHemoType(pair.HemoType)]
		if !ok {
			continue
		}
		switch pair.Gender {
		case "Laki-laki":
			row.Male++
		case "Perempuan":
			row.Female++
		}
		row.Total++
	}

	out := make([]PivotRow, 0, len(pivotCategories))
	for _, cat := range pivotCategories {
		out = append(out, *rows[cat])
	}
	return out, nil
}

// HospitalCaseload returns the ranked caseload with each hospital's share of
// the total, rounded to two decimals.
func (s *Service) HospitalCaseload(ctx context.Context) ([]HospitalCaseload, error) {
	items, err := s.repo.HospitalSummary(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, h := range items {
		total += h.Patients
	}
	if total > 0 {
		for i := range items {
			items[i].Percentage = math.Round(float64(items[i].Patients)/float64(total)*100*100) / 100
		}
	}
	return items, nil
}

// Tri-state filter values for the directory capability flags.
const (
	FilterAll   = "all"
	FilterYes   = "yes"
	FilterNo    = "no"
	FilterEmpty = "empty"
)

func matchTriState(v *bool, filter string) bool {
	switch filter {
	case FilterYes:
		return v != nil && *v
	case FilterNo:
		return v != nil && !*v
	case FilterEmpty:
		return v == nil
	}
	return true
}

// Directory filters the hospital directory by province and the two
// capability flags. Stats always cover the unfiltered directory.
func (s *Service) Directory(ctx context.Context, province, hematologist, team string) ([]DirectoryEntry, DirectoryStats, error) {
	entries, err := s.repo.HospitalDirectory(ctx)
	if err != nil {
		return nil, DirectoryStats{}, err
	}

	stats := DirectoryStats{Total: len(entries)}
	for _, e := range entries {
		if e.HasHematologist != nil && *e.HasHematologist {
			stats.WithHematologist++
		}
		if e.HasIntegratedTeam != nil && *e.HasIntegratedTeam {
			stats.WithIntegratedTeam++
		}
	}

	province = strings.TrimSpace(province)
	filtered := make([]DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if province != "" && (e.Province == nil || !strings.EqualFold(*e.Province, province)) {
			continue
		}
		if !matchTriState(e.HasHematologist, hematologist) {
			continue
		}
		if !matchTriState(e.HasIntegratedTeam, team) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, stats, nil
}

// PatientSummaries exposes the pre-computed per-patient summary view.
func (s *Service) PatientSummaries(ctx context.Context) ([]PatientSummary, error) {
	return s.repo.PatientSummaries(ctx)
}

// Distribution groups the hospital caseload by (city, province), drops groups
// below minCount, and locates each remaining pair. Unlocatable pairs are
// excluded from the points but counted in the total.
func (s *Service) Distribution(ctx context.Context, minCount int) (*DistributionResult, error) {
	items, err := s.repo.HospitalSummary(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ city, province string }
	counts := make(map[key]int)
	var order []key
	for _, h := range items {
		k := key{strings.TrimSpace(h.City), strings.TrimSpace(h.Province)}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k] += h.Patients
	}

	result := &DistributionResult{Points: []DistributionPoint{}}
	for _, k := range order {
		n := counts[k]
		if minCount > 0 && n < minCount {
			continue
		}
		result.Total++
		coord, ok := s.geo.Resolve(ctx, k.city, k.province)
		if !ok {
			continue
		}
		result.Resolved++
		result.Points = append(result.Points, DistributionPoint{
			City:     k.city,
			Province: k.province,
			Patients: n,
			Lat:      coord.Lat,
			Lon:      coord.Lon,
		})
	}

	sort.SliceStable(result.Points, func(i, j int) bool {
		return result.Points[i].Patients > result.Points[j].Patients
	})
	return result, nil
}
