package clinical

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pwh/registry/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) UpsertDiagnosis(ctx context.Context, d *Diagnosis) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pwh.hemo_diagnoses (patient_id, hemo_type, severity, diagnosed_on, source)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (patient_id, hemo_type) DO UPDATE SET
			severity = EXCLUDED.severity,
			diagnosed_on = COALESCE(EXCLUDED.diagnosed_on, pwh.hemo_diagnoses.diagnosed_on),
			source = COALESCE(EXCLUDED.source, pwh.hemo_diagnoses.source)`,
		d.PatientID, d.HemoType, d.Severity, d.DiagnosedOn, d.Source)
	return err
}

func (r *repoPG) UpdateDiagnosis(ctx context.Context, d *Diagnosis) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.hemo_diagnoses SET hemo_type=$2, severity=$3, diagnosed_on=$4, source=$5
		WHERE id = $1`,
		d.ID, d.HemoType, d.Severity, d.DiagnosedOn, d.Source)
	return err
}

func (r *repoPG) ListDiagnoses(ctx context.Context, search string, limit, offset int) ([]Diagnosis, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, d.patient_id, p.full_name, d.hemo_type, d.severity, d.diagnosed_on, d.source
		FROM pwh.hemo_diagnoses d JOIN pwh.patients p ON p.id = d.patient_id
		`+where+` ORDER BY d.patient_id, d.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.ID, &d.PatientID, &d.FullName, &d.HemoType, &d.Severity, &d.DiagnosedOn, &d.Source); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.hemo_diagnoses`, search)
	return out, total, err
}

func (r *repoPG) InsertInhibitor(ctx context.Context, i *Inhibitor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pwh.hemo_inhibitors (patient_id, factor, titer_bu, measured_on, lab)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		i.PatientID, i.Factor, i.TiterBU, i.MeasuredOn, i.Lab).Scan(&i.ID)
}

func (r *repoPG) UpdateInhibitor(ctx context.Context, i *Inhibitor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.hemo_inhibitors SET factor=$2, titer_bu=$3, measured_on=$4, lab=$5
		WHERE id = $1`,
		i.ID, i.Factor, i.TiterBU, i.MeasuredOn, i.Lab)
	return err
}

func (r *repoPG) ListInhibitors(ctx context.Context, search string, limit, offset int) ([]Inhibitor, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT i.id, i.patient_id, p.full_name, i.factor, i.titer_bu, i.measured_on, i.lab
		FROM pwh.hemo_inhibitors i JOIN pwh.patients p ON p.id = i.patient_id
		`+where+` ORDER BY i.patient_id, i.measured_on NULLS LAST, i.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Inhibitor
	for rows.Next() {
		var i Inhibitor
		if err := rows.Scan(&i.ID, &i.PatientID, &i.FullName, &i.Factor, &i.TiterBU, &i.MeasuredOn, &i.Lab); err != nil {
			return nil, 0, err
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.hemo_inhibitors`, search)
	return out, total, err
}

func (r *repoPG) InsertVirusTest(ctx context.Context, v *VirusTest) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pwh.virus_tests (patient_id, test_type, result, tested_on, lab)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (patient_id, test_type, tested_on) DO NOTHING`,
		v.PatientID, v.TestType, v.Result, v.TestedOn, v.Lab)
	return err
}

func (r *repoPG) UpdateVirusTest(ctx context.Context, v *VirusTest) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.virus_tests SET test_type=$2, result=$3, tested_on=$4, lab=$5
		WHERE id = $1`,
		v.ID, v.TestType, v.Result, v.TestedOn, v.Lab)
	return err
}

func (r *repoPG) ListVirusTests(ctx context.Context, search string, limit, offset int) ([]VirusTest, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT v.id, v.patient_id, p.full_name, v.test_type, v.result, v.tested_on, v.lab
		FROM pwh.virus_tests v JOIN pwh.patients p ON p.id = v.patient_id
		`+where+` ORDER BY v.patient_id, v.tested_on NULLS LAST, v.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []VirusTest
	for rows.Next() {
		var v VirusTest
		if err := rows.Scan(&v.ID, &v.PatientID, &v.FullName, &v.TestType, &v.Result, &v.TestedOn, &v.Lab); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.virus_tests`, search)
	return out, total, err
}

func nameFilter(search string, limit, offset int) (string, []interface{}) {
	args := []interface{}{limit, offset}
	if search == "" {
		return ``, args
	}
	return `WHERE p.full_name ILIKE $3`, append(args, "%"+search+"%")
}

func (r *repoPG) count(ctx context.Context, table, search string) (int, error) {
	query := `SELECT COUNT(*) FROM ` + table + ` t JOIN pwh.patients p ON p.id = t.patient_id`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE p.full_name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	var total int
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}
