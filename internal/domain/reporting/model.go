// Package reporting produces the aggregate views: the gender by diagnosis
// pivot, hospital caseload ranking, the hospital directory, the per-patient
// summary, and the geographic distribution.
package reporting

import "time"

// GenderDiagnosis is one (gender, hemo type) pair from the patients and
// diagnoses join. Rows with a null gender or type are excluded at the query.
type GenderDiagnosis struct {
	Gender   string
	HemoType string
}

// PivotRow is one line of the gender recap, in the fixed category order.
type PivotRow struct {
	Category string `json:"category"`
	Male     int    `json:"laki_laki"`
	Female   int    `json:"perempuan"`
	Total    int    `json:"total"`
}

// HospitalCaseload is one hospital's patient count from the summary view,
// with its share of the grand total.
type HospitalCaseload struct {
	Hospital   string  `json:"nama_rumah_sakit"`
	Patients   int     `json:"jumlah_pasien"`
	City       string  `json:"kota"`
	Province   string  `json:"provinsi"`
	Percentage float64 `json:"persentase"`
}

// DirectoryEntry is one row of the hemophilia care hospital directory. The
// capability flags are tri-state: yes, no, or not recorded.
type DirectoryEntry struct {
	No                int     `json:"no"`
	Province          *string `json:"provinsi"`
	Name              string  `json:"nama_rumah_sakit"`
	Type              *string `json:"tipe_rs"`
	HasHematologist   *bool   `json:"terdapat_dokter_hematologi"`
	HasIntegratedTeam *bool   `json:"terdapat_tim_terpadu_hemofilia"`
}

// DirectoryStats are the headline numbers, always computed over the whole
// directory regardless of active filters.
type DirectoryStats struct {
	Total              int `json:"total"`
	WithHematologist   int `json:"with_hematologist"`
	WithIntegratedTeam int `json:"with_integrated_team"`
}

// DistributionPoint is one plottable city on the distribution map.
type DistributionPoint struct {
	City     string  `json:"kota"`
	Province string  `json:"provinsi"`
	Patients int     `json:"jumlah_pasien"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// DistributionResult carries the plotted points plus how many of the grouped
// city/province pairs could be located.
type DistributionResult struct {
	Points   []DistributionPoint `json:"points"`
	Resolved int                 `json:"resolved"`
	Total    int                 `json:"total"`
}

// PatientSummary mirrors the pre-computed pwh.patient_summary view: the
// latest diagnosis, inhibitor, and virus results per patient.
type PatientSummary struct {
	ID         int64      `json:"id"`
	FullName   string     `json:"full_name"`
	BirthPlace *string    `json:"birth_place"`
	BirthDate  *time.Time `json:"birth_date"`
	BloodGroup *string    `json:"blood_group"`
	Rhesus     *string    `json:"rhesus"`
	Occupation *string    `json:"occupation"`
	VWD        *string    `json:"vwd"`
	CategoryA  *string    `json:"category_a"`
	CategoryB  *string    `json:"category_b"`
	FVIIIBU    *float64   `json:"fviii_bu"`
	FIXBU      *float64   `json:"fix_bu"`
	HBsAg      *string    `json:"hbsag"`
	AntiHCV    *string    `json:"anti_hcv"`
	HIV        *string    `json:"hiv"`
	Address    *string    `json:"address"`
	Phone      *string    `json:"phone"`
	Father     *string    `json:"father"`
	Mother     *string    `json:"mother"`
	AgeYears   *int       `json:"age_years"`
}
