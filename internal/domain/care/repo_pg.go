package care

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

func (r *repoPG) InsertTreatment(ctx context.Context, t *Treatment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pwh.treatment_hospital (patient_id, name_hospital, city_hospital,
			province_hospital, treatment_type, care_services, frequency, dose, product, merk)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		t.PatientID, t.NameHospital, t.CityHospital, t.ProvinceHospital,
		t.TreatmentType, t.CareServices, t.Frequency, t.Dose, t.Product, t.Merk).Scan(&t.ID)
}

func (r *repoPG) UpdateTreatment(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.treatment_hospital SET name_hospital=$2, city_hospital=$3,
			province_hospital=$4, treatment_type=$5, care_services=$6, frequency=$7,
			dose=$8, product=$9, merk=$10
		WHERE id = $1`,
		t.ID, t.NameHospital, t.CityHospital, t.ProvinceHospital,
		t.TreatmentType, t.CareServices, t.Frequency, t.Dose, t.Product, t.Merk)
	return err
}

func (r *repoPG) ListTreatments(ctx context.Context, search string, limit, offset int) ([]Treatment, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT th.id, th.patient_id, p.full_name, th.name_hospital, th.city_hospital,
			th.province_hospital, th.treatment_type, th.care_services, th.frequency,
			th.dose, th.product, th.merk
		FROM pwh.treatment_hospital th JOIN pwh.patients p ON p.id = th.patient_id
		`+where+` ORDER BY th.patient_id, th.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Treatment
	for rows.Next() {
		var t Treatment
		if err := rows.Scan(&t.ID, &t.PatientID, &t.FullName, &t.NameHospital, &t.CityHospital,
			&t.ProvinceHospital, &t.TreatmentType, &t.CareServices, &t.Frequency,
			&t.Dose, &t.Product, &t.Merk); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.treatment_hospital`, search)
	return out, total, err
}

func (r *repoPG) UpsertDeathRecord(ctx context.Context, d *DeathRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pwh.death (patient_id, cause_of_death, year_of_death)
		VALUES ($1,$2,$3)
		ON CONFLICT (patient_id) DO UPDATE SET
			cause_of_death = EXCLUDED.cause_of_death,
			year_of_death = EXCLUDED.year_of_death`,
		d.PatientID, d.CauseOfDeath, d.YearOfDeath)
	return err
}

func (r *repoPG) UpdateDeathRecord(ctx context.Context, d *DeathRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.death SET cause_of_death=$2, year_of_death=$3 WHERE id = $1`,
		d.ID, d.CauseOfDeath, d.YearOfDeath)
	return err
}

func (r *repoPG) ListDeathRecords(ctx context.Context, search string, limit, offset int) ([]DeathRecord, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, d.patient_id, p.full_name, d.cause_of_death, d.year_of_death
		FROM pwh.death d JOIN pwh.patients p ON p.id = d.patient_id
		`+where+` ORDER BY d.patient_id, d.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []DeathRecord
	for rows.Next() {
		var d DeathRecord
		if err := rows.Scan(&d.ID, &d.PatientID, &d.FullName, &d.CauseOfDeath, &d.YearOfDeath); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.death`, search)
	return out, total, err
}

func (r *repoPG) InsertContact(ctx context.Context, c *Contact) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pwh.contacts (patient_id, relation, name, phone, is_primary)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		c.PatientID, c.Relation, c.Name, c.Phone, c.IsPrimary).Scan(&c.ID)
}

func (r *repoPG) UpdateContact(ctx context.Context, c *Contact) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.contacts SET relation=$2, name=$3, phone=$4, is_primary=$5 WHERE id = $1`,
		c.ID, c.Relation, c.Name, c.Phone, c.IsPrimary)
	return err
}

func (r *repoPG) ListContacts(ctx context.Context, search string, limit, offset int) ([]Contact, int, error) {
	where, args := nameFilter(search, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, c.patient_id, p.full_name, c.relation, c.name, c.phone, c.is_primary
		FROM pwh.contacts c JOIN pwh.patients p ON p.id = c.patient_id
		`+where+` ORDER BY c.patient_id, c.id LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var ct Contact
		if err := rows.Scan(&ct.ID, &ct.PatientID, &ct.FullName, &ct.Relation, &ct.Name, &ct.Phone, &ct.IsPrimary); err != nil {
			return nil, 0, err
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, `pwh.contacts`, search)
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
