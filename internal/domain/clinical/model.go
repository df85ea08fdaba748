// Package clinical covers the laboratory-facing record kinds: hemophilia
// diagnoses, inhibitor titer measurements, and virus test results.
package clinical

import "time"

// Diagnosis is one hemophilia diagnosis per (patient, hemo type). Re-recording
// the same type updates the existing row instead of duplicating it.
type Diagnosis struct {
	ID          int64      `json:"id"`
	PatientID   int64      `json:"patient_id"`
	FullName    string     `json:"full_name,omitempty"`
	HemoType    string     `json:"hemo_type"`
	Severity    *string    `json:"severity"`
	DiagnosedOn *time.Time `json:"diagnosed_on"`
	Source      *string    `json:"source"`
}

// Inhibitor is a single titer measurement. There is no natural dedup key;
// every submission inserts a new row.
type Inhibitor struct {
	ID         int64      `json:"id"`
	PatientID  int64      `json:"patient_id"`
	FullName   string     `json:"full_name,omitempty"`
	Factor     string     `json:"factor"`
	TiterBU    *float64   `json:"titer_bu"`
	MeasuredOn *time.Time `json:"measured_on"`
	Lab        *string    `json:"lab"`
}

// VirusTest is one screening result, deduplicated on
// (patient, test type, test date).
type VirusTest struct {
	ID        int64      `json:"id"`
	PatientID int64      `json:"patient_id"`
	FullName  string     `json:"full_name,omitempty"`
	TestType  string     `json:"test_type"`
	Result    string     `json:"result"`
	TestedOn  *time.Time `json:"tested_on"`
	Lab       *string    `json:"lab"`
}
