package reporting

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GenderDiagnosisPairs(ctx context.Context) ([]GenderDiagnosis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.gender, d.hemo_type
		FROM pwh.patients p
		JOIN pwh.hemo_diagnoses d ON p.id = d.patient_id
		WHERE p.gender IS NOT NULL AND d.hemo_type IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenderDiagnosis
	for rows.Next() {
		var g GenderDiagnosis
		if err := rows.Scan(&g.Gender, &g.HemoType); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repoPG) HospitalSummary(ctx context.Context) ([]HospitalCaseload, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT nama_rumah_sakit, jumlah_pasien, kota, provinsi
		FROM pwh.v_hospital_summary
		ORDER BY jumlah_pasien DESC, nama_rumah_sakit ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HospitalCaseload
	for rows.Next() {
		var h HospitalCaseload
		if err := rows.Scan(&h.Hospital, &h.Patients, &h.City, &h.Province); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repoPG) HospitalDirectory(ctx context.Context) ([]DirectoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT no, provinsi, nama_rumah_sakit, tipe_rs,
			terdapat_dokter_hematologi, terdapat_tim_terpadu_hemofilia
		FROM pwh.rumah_sakit_perawatan_hemofilia
		ORDER BY no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DirectoryEntry
	for rows.Next() {
		var e DirectoryEntry
		if err := rows.Scan(&e.No, &e.Province, &e.Name, &e.Type,
			&e.HasHematologist, &e.HasIntegratedTeam); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repoPG) PatientSummaries(ctx context.Context) ([]PatientSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, birth_place, birth_date, blood_group, rhesus, occupation,
			vwd, category_a, category_b, fviii_bu, fix_bu, hbsag, anti_hcv, hiv,
			address, phone, father, mother, age_years
		FROM pwh.patient_summary
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PatientSummary
	for rows.Next() {
		var s PatientSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.BirthPlace, &s.BirthDate, &s.BloodGroup,
			&s.Rhesus, &s.Occupation, &s.VWD, &s.CategoryA, &s.CategoryB, &s.FVIIIBU,
			&s.FIXBU, &s.HBsAg, &s.AntiHCV, &s.HIV, &s.Address, &s.Phone,
			&s.Father, &s.Mother, &s.AgeYears); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
