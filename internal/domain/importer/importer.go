package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx/v3"

	"github.com/pwh/registry/internal/domain/care"
	"github.com/pwh/registry/internal/domain/clinical"
	"github.com/pwh/registry/internal/domain/patient"
)

// Sheet names recognized in an import workbook, in processing order. Patients
// go first so dependent rows can reference patients defined in the same file.
var sheetOrder = []string{
	sheetPatients, sheetDiagnoses, sheetInhibitors, sheetVirusTests,
	sheetTreatments, sheetDeaths, sheetContacts,
}

const (
	sheetPatients   = "patients"
	sheetDiagnoses  = "diagnoses"
	sheetInhibitors = "inhibitors"
	sheetVirusTests = "virus_tests"
	sheetTreatments = "treatment_hospitals"
	sheetDeaths     = "kematian"
	sheetContacts   = "contacts"
)

type PatientStore interface {
	Create(ctx context.Context, p *patient.Patient) error
	ListRefs(ctx context.Context) ([]patient.Ref, error)
}

type ClinicalStore interface {
	RecordDiagnosis(ctx context.Context, d *clinical.Diagnosis) error
	RecordInhibitor(ctx context.Context, i *clinical.Inhibitor) error
	RecordVirusTest(ctx context.Context, v *clinical.VirusTest) error
}

type CareStore interface {
	RecordTreatment(ctx context.Context, t *care.Treatment) error
	RecordDeath(ctx context.Context, d *care.DeathRecord) error
	RecordContact(ctx context.Context, c *care.Contact) error
}

// SkippedRow records one row that was not imported and why. Row numbers are
// 1-based as shown in a spreadsheet application.
type SkippedRow struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Summary is the result of one import run: per-sheet success counts plus the
// rows that were dropped. A row-level failure never aborts the batch.
type Summary struct {
	Counts  map[string]int `json:"counts"`
	Skipped []SkippedRow   `json:"skipped"`
}

func (s *Summary) skip(sheet string, row int, reason string) {
	s.Skipped = append(s.Skipped, SkippedRow{Sheet: sheet, Row: row, Reason: reason})
}

type Importer struct {
	patients PatientStore
	clinical ClinicalStore
	care     CareStore
	logger   zerolog.Logger
}

func NewImporter(patients PatientStore, clin ClinicalStore, cr CareStore, logger zerolog.Logger) *Importer {
	return &Importer{patients: patients, clinical: clin, care: cr, logger: logger}
}

// Run processes a whole workbook. Only an unreadable file is an error;
// everything row-level lands in the summary.
func (im *Importer) Run(ctx context.Context, data []byte) (*Summary, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	summary := &Summary{Counts: make(map[string]int, len(sheetOrder))}
	for _, name := range sheetOrder {
		summary.Counts[name] = 0
	}

	refs, err := im.patients.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patient snapshot: %w", err)
	}
	resolver := NewResolver(refs, im.logger)

	im.importPatients(ctx, file, resolver, summary)

	type dependentSheet struct {
		name   string
		insert func(ctx context.Context, row sheetRow, pid int64) error
	}
	dependents := []dependentSheet{
		{sheetDiagnoses, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.clinical.RecordDiagnosis(ctx, &clinical.Diagnosis{
				PatientID:   pid,
				HemoType:    r.get("hemo_type"),
				Severity:    strOrNil(r.get("severity")),
				DiagnosedOn: parseDate(r.get("diagnosed_on")),
				Source:      strOrNil(r.get("source")),
			})
		}},
		{sheetInhibitors, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.clinical.RecordInhibitor(ctx, &clinical.Inhibitor{
				PatientID:  pid,
				Factor:     r.get("factor"),
				TiterBU:    parseFloat(r.get("titer_bu")),
				MeasuredOn: parseDate(r.get("measured_on")),
				Lab:        strOrNil(r.get("lab")),
			})
		}},
		{sheetVirusTests, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.clinical.RecordVirusTest(ctx, &clinical.VirusTest{
				PatientID: pid,
				TestType:  r.get("test_type"),
				Result:    r.get("result"),
				TestedOn:  parseDate(r.get("tested_on")),
				Lab:       strOrNil(r.get("lab")),
			})
		}},
		{sheetTreatments, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.care.RecordTreatment(ctx, &care.Treatment{
				PatientID:        pid,
				NameHospital:     strOrNil(r.get("name_hospital")),
				CityHospital:     strOrNil(r.get("city_hospital")),
				ProvinceHospital: strOrNil(r.get("province_hospital")),
				TreatmentType:    strOrNil(r.get("treatment_type")),
				CareServices:     strOrNil(r.get("care_services")),
				Frequency:        strOrNil(r.get("frequency")),
				Dose:             strOrNil(r.get("dose")),
				Product:          strOrNil(r.get("product")),
				Merk:             strOrNil(r.get("merk")),
			})
		}},
		{sheetDeaths, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.care.RecordDeath(ctx, &care.DeathRecord{
				PatientID:    pid,
				CauseOfDeath: strOrNil(r.get("cause_of_death")),
				YearOfDeath:  parseInt(r.get("year_of_death")),
			})
		}},
		{sheetContacts, func(ctx context.Context, r sheetRow, pid int64) error {
			return im.care.RecordContact(ctx, &care.Contact{
				PatientID: pid,
				Relation:  r.get("relation"),
				Name:      r.get("name"),
				Phone:     strOrNil(r.get("phone")),
				IsPrimary: parseBool(r.get("is_primary")),
			})
		}},
	}

	for _, dep := range dependents {
		for _, row := range sheetRows(sheetByName(file, dep.name)) {
			pid, ok := resolver.Resolve(row.get("patient_id"), row.get("full_name"))
			if !ok {
				summary.skip(dep.name, row.num, "patient not resolved")
				continue
			}
			if err := dep.insert(ctx, row, pid); err != nil {
				summary.skip(dep.name, row.num, err.Error())
				continue
			}
			summary.Counts[dep.name]++
		}
	}

	im.logger.Info().
		Interface("counts", summary.Counts).
		Int("skipped", len(summary.Skipped)).
		Msg("bulk import finished")
	return summary, nil
}

func (im *Importer) importPatients(ctx context.Context, file *xlsx.File, resolver *Resolver, summary *Summary) {
	for _, row := range sheetRows(sheetByName(file, sheetPatients)) {
		if row.get("full_name") == "" {
			summary.skip(sheetPatients, row.num, "missing full_name")
			continue
		}
		p := &patient.Patient{
			FullName:   row.get("full_name"),
			BirthPlace: strOrNil(row.get("birth_place")),
			BirthDate:  parseDate(row.get("birth_date")),
			BloodGroup: strOrNil(row.get("blood_group")),
			Rhesus:     strOrNil(row.get("rhesus")),
			Gender:     strOrNil(row.get("gender")),
			Occupation: strOrNil(row.get("occupation")),
			Education:  strOrNil(row.get("education")),
			Address:    strOrNil(row.get("address")),
			Phone:      strOrNil(row.get("phone")),
			Province:   strOrNil(row.get("province")),
			City:       strOrNil(row.get("city")),
			Note:       strOrNil(row.get("note")),
		}
		if err := im.patients.Create(ctx, p); err != nil {
			summary.skip(sheetPatients, row.num, err.Error())
			continue
		}
		resolver.AddInserted(p.FullName, p.ID)
		summary.Counts[sheetPatients]++
	}
}
