// Package care covers the non-laboratory dependent record kinds: where a
// patient is treated, family contacts, and the mortality record.
package care

type Treatment struct {
	ID               int64   `json:"id"`
	PatientID        int64   `json:"patient_id"`
	FullName         string  `json:"full_name,omitempty"`
	NameHospital     *string `json:"name_hospital"`
	CityHospital     *string `json:"city_hospital"`
	ProvinceHospital *string `json:"province_hospital"`
	TreatmentType    *string `json:"treatment_type"`
	CareServices     *string `json:"care_services"`
	Frequency        *string `json:"frequency"`
	Dose             *string `json:"dose"`
	Product          *string `json:"product"`
	Merk             *string `json:"merk"`
}

// DeathRecord is at most one row per patient; re-recording replaces the cause
// and year.
type DeathRecord struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"patient_id"`
	FullName     string  `json:"full_name,omitempty"`
	CauseOfDeath *string `json:"cause_of_death"`
	YearOfDeath  *int    `json:"year_of_death"`
}

type Contact struct {
	ID        int64   `json:"id"`
	PatientID int64   `json:"patient_id"`
	FullName  string  `json:"full_name,omitempty"`
	Relation  string  `json:"relation"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	IsPrimary bool    `json:"is_primary"`
}
