package importer

import (
	"context"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/pwh/registry/internal/domain/care"
	"github.com/pwh/registry/internal/domain/clinical"
	"github.com/pwh/registry/internal/domain/patient"
	"github.com/pwh/registry/internal/domain/reporting"
)

// exportLimit is far beyond the registry's size; exports are whole-table.
const exportLimit = 1_000_000

type PatientLister interface {
	Search(ctx context.Context, query string, limit, offset int) ([]patient.Patient, int, error)
}

type ClinicalLister interface {
	ListDiagnoses(ctx context.Context, search string, limit, offset int) ([]clinical.Diagnosis, int, error)
	ListInhibitors(ctx context.Context, search string, limit, offset int) ([]clinical.Inhibitor, int, error)
	ListVirusTests(ctx context.Context, search string, limit, offset int) ([]clinical.VirusTest, int, error)
}

type CareLister interface {
	ListTreatments(ctx context.Context, search string, limit, offset int) ([]care.Treatment, int, error)
	ListDeaths(ctx context.Context, search string, limit, offset int) ([]care.DeathRecord, int, error)
	ListContacts(ctx context.Context, search string, limit, offset int) ([]care.Contact, int, error)
}

type SummaryLister interface {
	PatientSummaries(ctx context.Context) ([]reporting.PatientSummary, error)
}

// Exporter builds the full data workbook: every record kind joined to the
// patient's full name, with the human-readable headers staff expect, plus the
// pre-aggregated summary sheet.
type Exporter struct {
	patients  PatientLister
	clinical  ClinicalLister
	care      CareLister
	summaries SummaryLister
}

func NewExporter(patients PatientLister, clin ClinicalLister, cr CareLister, summaries SummaryLister) *Exporter {
	return &Exporter{patients: patients, clinical: clin, care: cr, summaries: summaries}
}

func (e *Exporter) BuildExport(ctx context.Context) (*xlsx.File, error) {
	file := xlsx.NewFile()

	builders := []func(ctx context.Context, file *xlsx.File) error{
		e.addPatientsSheet,
		e.addDiagnosesSheet,
		e.addInhibitorsSheet,
		e.addVirusTestsSheet,
		e.addTreatmentsSheet,
		e.addDeathsSheet,
		e.addContactsSheet,
		e.addSummarySheet,
	}
	for _, build := range builders {
		if err := build(ctx, file); err != nil {
			return nil, err
		}
	}

	for _, sh := range file.Sheets {
		for c := 0; c < sh.MaxCol; c++ {
			_ = sh.SetColAutoWidth(c, xlsx.DefaultAutoWidth)
		}
	}
	return file, nil
}

func writeCell(row *xlsx.Row, v interface{}) {
	cell := row.AddCell()
	switch val := v.(type) {
	case nil:
	case *string:
		if val != nil {
			cell.SetValue(*val)
		}
	case *int:
		if val != nil {
			cell.SetValue(*val)
		}
	case *float64:
		if val != nil {
			cell.SetValue(*val)
		}
	case *time.Time:
		if val != nil {
			cell.SetValue(val.Format("2006-01-02"))
		}
	case time.Time:
		cell.SetValue(val.Format("2006-01-02"))
	default:
		cell.SetValue(val)
	}
}

func addSheetWithHeader(file *xlsx.File, name string, headers []string) (*xlsx.Sheet, error) {
	sh, err := file.AddSheet(name)
	if err != nil {
		return nil, err
	}
	row := sh.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
	return sh, nil
}

func (e *Exporter) addPatientsSheet(ctx context.Context, file *xlsx.File) error {
	patients, _, err := e.patients.Search(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetPatients, []string{
		"id", "Nama Lengkap", "Tempat Lahir", "Tanggal Lahir", "Gol. Darah", "Rhesus",
		"Jenis Kelamin", "Pekerjaan", "Pendidikan Terakhir", "Alamat", "No. Ponsel",
		"Propinsi", "Kabupaten/Kota", "Dibuat",
	})
	if err != nil {
		return err
	}
	for _, p := range patients {
		row := sh.AddRow()
		writeCell(row, p.ID)
		writeCell(row, p.FullName)
		writeCell(row, p.BirthPlace)
		writeCell(row, p.BirthDate)
		writeCell(row, p.BloodGroup)
		writeCell(row, p.Rhesus)
		writeCell(row, p.Gender)
		writeCell(row, p.Occupation)
		writeCell(row, p.Education)
		writeCell(row, p.Address)
		writeCell(row, p.Phone)
		writeCell(row, p.Province)
		writeCell(row, p.City)
		writeCell(row, p.CreatedAt)
	}
	return nil
}

func (e *Exporter) addDiagnosesSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.clinical.ListDiagnoses(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetDiagnoses, []string{
		"id", "patient_id", "Nama Lengkap", "Jenis Hemofilia", "Kategori", "Tgl Diagnosis", "Sumber",
	})
	if err != nil {
		return err
	}
	for _, d := range items {
		row := sh.AddRow()
		writeCell(row, d.ID)
		writeCell(row, d.PatientID)
		writeCell(row, d.FullName)
		writeCell(row, d.HemoType)
		writeCell(row, d.Severity)
		writeCell(row, d.DiagnosedOn)
		writeCell(row, d.Source)
	}
	return nil
}

func (e *Exporter) addInhibitorsSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.clinical.ListInhibitors(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetInhibitors, []string{
		"id", "patient_id", "Nama Lengkap", "Faktor", "Titer (BU)", "Tgl Ukur", "Lab",
	})
	if err != nil {
		return err
	}
	for _, i := range items {
		row := sh.AddRow()
		writeCell(row, i.ID)
		writeCell(row, i.PatientID)
		writeCell(row, i.FullName)
		writeCell(row, i.Factor)
		writeCell(row, i.TiterBU)
		writeCell(row, i.MeasuredOn)
		writeCell(row, i.Lab)
	}
	return nil
}

func (e *Exporter) addVirusTestsSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.clinical.ListVirusTests(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetVirusTests, []string{
		"id", "patient_id", "Nama Lengkap", "Jenis Tes", "Hasil", "Tgl Tes", "Lab",
	})
	if err != nil {
		return err
	}
	for _, v := range items {
		row := sh.AddRow()
		writeCell(row, v.ID)
		writeCell(row, v.PatientID)
		writeCell(row, v.FullName)
		writeCell(row, v.TestType)
		writeCell(row, v.Result)
		writeCell(row, v.TestedOn)
		writeCell(row, v.Lab)
	}
	return nil
}

func (e *Exporter) addTreatmentsSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.care.ListTreatments(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetTreatments, []string{
		"id", "patient_id", "Nama Lengkap", "Nama RS", "Kota RS", "Provinsi RS",
		"Jenis Penanganan", "Layanan Rawat", "Frekuensi", "Dosis", "Produk", "Merk",
	})
	if err != nil {
		return err
	}
	for _, t := range items {
		row := sh.AddRow()
		writeCell(row, t.ID)
		writeCell(row, t.PatientID)
		writeCell(row, t.FullName)
		writeCell(row, t.NameHospital)
		writeCell(row, t.CityHospital)
		writeCell(row, t.ProvinceHospital)
		writeCell(row, t.TreatmentType)
		writeCell(row, t.CareServices)
		writeCell(row, t.Frequency)
		writeCell(row, t.Dose)
		writeCell(row, t.Product)
		writeCell(row, t.Merk)
	}
	return nil
}

func (e *Exporter) addDeathsSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.care.ListDeaths(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetDeaths, []string{
		"id", "patient_id", "Nama Lengkap", "Penyebab Kematian", "Tahun Kematian",
	})
	if err != nil {
		return err
	}
	for _, d := range items {
		row := sh.AddRow()
		writeCell(row, d.ID)
		writeCell(row, d.PatientID)
		writeCell(row, d.FullName)
		writeCell(row, d.CauseOfDeath)
		writeCell(row, d.YearOfDeath)
	}
	return nil
}

func (e *Exporter) addContactsSheet(ctx context.Context, file *xlsx.File) error {
	items, _, err := e.care.ListContacts(ctx, "", exportLimit, 0)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, sheetContacts, []string{
		"id", "patient_id", "Nama Lengkap", "Relasi", "Nama Kontak", "No. Telp", "Primary",
	})
	if err != nil {
		return err
	}
	for _, ct := range items {
		row := sh.AddRow()
		writeCell(row, ct.ID)
		writeCell(row, ct.PatientID)
		writeCell(row, ct.FullName)
		writeCell(row, ct.Relation)
		writeCell(row, ct.Name)
		writeCell(row, ct.Phone)
		writeCell(row, ct.IsPrimary)
	}
	return nil
}

func (e *Exporter) addSummarySheet(ctx context.Context, file *xlsx.File) error {
	items, err := e.summaries.PatientSummaries(ctx)
	if err != nil {
		return err
	}
	sh, err := addSheetWithHeader(file, "summary", []string{
		"id", "Nama Lengkap", "Tempat Lahir", "Tanggal Lahir", "Gol. Darah", "Rhesus",
		"Pekerjaan", "vWD", "Kategori A", "Kategori B", "FVIII (BU)", "FIX (BU)",
		"HBsAg", "Anti-HCV", "HIV", "Alamat", "No. Telp", "Ayah", "Ibu", "Umur",
	})
	if err != nil {
		return err
	}
	for _, s := range items {
		row := sh.AddRow()
		writeCell(row, s.ID)
		writeCell(row, s.FullName)
		writeCell(row, s.BirthPlace)
		writeCell(row, s.BirthDate)
		writeCell(row, s.BloodGroup)
		writeCell(row, s.Rhesus)
		writeCell(row, s.Occupation)
		writeCell(row, s.VWD)
		writeCell(row, s.CategoryA)
		writeCell(row, s.CategoryB)
		writeCell(row, s.FVIIIBU)
		writeCell(row, s.FIXBU)
		writeCell(row, s.HBsAg)
		writeCell(row, s.AntiHCV)
		writeCell(row, s.HIV)
		writeCell(row, s.Address)
		writeCell(row, s.Phone)
		writeCell(row, s.Father)
		writeCell(row, s.Mother)
		writeCell(row, s.AgeYears)
	}
	return nil
}
