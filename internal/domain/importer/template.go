package importer

import (
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/pwh/registry/internal/refdata"
)

// templateRows is how far down each entry sheet the column validations reach.
const templateRows = 1000

type colKind int

const (
	colText colKind = iota
	colDate
	colInt
	colNumber
	colList
)

type colSpec struct {
	name    string
	kind    colKind
	options []string
}

type sheetTemplate struct {
	name string
	cols []colSpec
}

func templateSheets(ref *refdata.Reference) []sheetTemplate {
	return []sheetTemplate{
		{sheetPatients, []colSpec{
			{name: "full_name", kind: colText},
			{name: "birth_place", kind: colText},
			{name: "birth_date", kind: colDate},
			{name: "blood_group", kind: colList, options: ref.BloodGroups},
			{name: "rhesus", kind: colList, options: ref.Rhesus},
			{name: "gender", kind: colList, options: ref.Genders},
			{name: "occupation", kind: colList, options: ref.Occupations},
			{name: "education", kind: colList, options: ref.EducationLevels},
			{name: "address", kind: colText},
			{name: "phone", kind: colText},
			{name: "province", kind: colText},
			{name: "city", kind: colText},
			{name: "note", kind: colText},
		}},
		{sheetDiagnoses, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "hemo_type", kind: colList, options: ref.HemoTypes},
			{name: "severity", kind: colList, options: ref.Severities},
			{name: "diagnosed_on", kind: colDate},
			{name: "source", kind: colText},
		}},
		{sheetInhibitors, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "factor", kind: colList, options: ref.InhibitorFactors},
			{name: "titer_bu", kind: colNumber},
			{name: "measured_on", kind: colDate},
			{name: "lab", kind: colText},
		}},
		{sheetVirusTests, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "test_type", kind: colList, options: ref.VirusTests},
			{name: "result", kind: colList, options: ref.TestResults},
			{name: "tested_on", kind: colDate},
			{name: "lab", kind: colText},
		}},
		{sheetTreatments, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "name_hospital", kind: colText},
			{name: "city_hospital", kind: colText},
			{name: "province_hospital", kind: colText},
			{name: "treatment_type", kind: colList, options: ref.TreatmentTypes},
			{name: "care_services", kind: colList, options: ref.CareServices},
			{name: "frequency", kind: colText},
			{name: "dose", kind: colText},
			{name: "product", kind: colList, options: ref.Products},
			{name: "merk", kind: colText},
		}},
		{sheetDeaths, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "cause_of_death", kind: colText},
			{name: "year_of_death", kind: colInt},
		}},
		{sheetContacts, []colSpec{
			{name: "patient_id", kind: colInt},
			{name: "full_name", kind: colText},
			{name: "relation", kind: colList, options: ref.Relations},
			{name: "name", kind: colText},
			{name: "phone", kind: colText},
			{name: "is_primary", kind: colList, options: []string{"TRUE", "FALSE"}},
		}},
	}
}

// BuildTemplate produces the blank bulk-entry workbook: an instructions sheet,
// a lookups sheet listing every allowed value, and one validated entry sheet
// per record kind.
func BuildTemplate(ref *refdata.Reference) (*xlsx.File, error) {
	file := xlsx.NewFile()

	if err := addReadmeSheet(file); err != nil {
		return nil, err
	}
	if err := addLookupsSheet(file, ref); err != nil {
		return nil, err
	}
	for _, tmpl := range templateSheets(ref) {
		if err := addEntrySheet(file, tmpl); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func addReadmeSheet(file *xlsx.File) error {
	sh, err := file.AddSheet("README")
	if err != nil {
		return err
	}
	lines := []string{
		"Template Bulk Insert PWH",
		"Cara pakai:",
		"1) Isi setiap sheet sesuai kolom.",
		"2) Gunakan format tanggal yyyy-mm-dd.",
		"3) Kolom dropdown sudah dibatasi ke pilihan valid.",
		"4) Jika mengisi pasien baru, sheet lain boleh pakai kolom full_name untuk mapping.",
		"5) Jika sudah tahu patient_id, isi langsung untuk akurasi.",
		"6) is_primary (contacts) gunakan TRUE/FALSE.",
		"7) Baris kosong akan diabaikan saat import.",
	}
	for _, line := range lines {
		sh.AddRow().AddCell().SetValue(line)
	}
	_ = sh.SetColAutoWidth(1, xlsx.DefaultAutoWidth)
	return nil
}

func addLookupsSheet(file *xlsx.File, ref *refdata.Reference) error {
	sh, err := file.AddSheet("lookups")
	if err != nil {
		return err
	}
	lists := []struct {
		name  string
		items []string
	}{
		{"blood_groups", ref.BloodGroups},
		{"rhesus", ref.Rhesus},
		{"genders", ref.Genders},
		{"hemo_types", ref.HemoTypes},
		{"severities", ref.Severities},
		{"education_levels", ref.EducationLevels},
		{"inhibitor_factors", ref.InhibitorFactors},
		{"virus_tests", ref.VirusTests},
		{"test_results", ref.TestResults},
		{"relations", ref.Relations},
		{"treatment_types", ref.TreatmentTypes},
		{"care_services", ref.CareServices},
		{"products", ref.Products},
		{"occupations", ref.Occupations},
	}

	maxLen := 0
	for _, l := range lists {
		if len(l.items) > maxLen {
			maxLen = len(l.items)
		}
	}

	header := sh.AddRow()
	for _, l := range lists {
		header.AddCell().SetValue(l.name)
	}
	for i := 0; i < maxLen; i++ {
		row := sh.AddRow()
		for _, l := range lists {
			cell := row.AddCell()
			if i < len(l.items) {
				cell.SetValue(l.items[i])
			}
		}
	}
	for j := range lists {
		_ = sh.SetColAutoWidth(j+1, xlsx.DefaultAutoWidth)
	}
	return nil
}

func addEntrySheet(file *xlsx.File, tmpl sheetTemplate) error {
	sh, err := file.AddSheet(tmpl.name)
	if err != nil {
		return err
	}

	header := sh.AddRow()
	for _, col := range tmpl.cols {
		header.AddCell().SetValue(col.name)
	}

	for idx, col := range tmpl.cols {
		dv := xlsx.NewDataValidation(1, idx, templateRows, idx, true)
		switch col.kind {
		case colList:
			if err := dv.SetDropList(col.options); err != nil {
				return fmt.Errorf("sheet %s column %s: %w", tmpl.name, col.name, err)
			}
		case colInt:
			if err := dv.SetRange(0, 9999999, xlsx.DataValidationTypeWhole, xlsx.DataValidationOperatorBetween); err != nil {
				return fmt.Errorf("sheet %s column %s: %w", tmpl.name, col.name, err)
			}
		case colNumber:
			if err := dv.SetRange(0, 9999999, xlsx.DataValidationTypeDecimal, xlsx.DataValidationOperatorBetween); err != nil {
				return fmt.Errorf("sheet %s column %s: %w", tmpl.name, col.name, err)
			}
		default:
			// Text and date columns are free-form; dates are parsed
			// permissively at import time.
			continue
		}
		sh.AddDataValidation(dv)
	}

	for idx := range tmpl.cols {
		_ = sh.SetColAutoWidth(idx+1, xlsx.DefaultAutoWidth)
	}
	return nil
}
