package patient

import (
	"context"
	"errors"
	"fmt"

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

const patientCols = `id, full_name, birth_place, birth_date, blood_group, rhesus, gender,
	occupation, education, address, phone, province, city, note, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.BirthPlace, &p.BirthDate, &p.BloodGroup, &p.Rhesus,
		&p.Gender, &p.Occupation, &p.Education, &p.Address, &p.Phone, &p.Province, &p.City,
		&p.Note, &p.CreatedAt)
	return &p, err
}

// isUniqueViolation detects the unique index on lower(full_name).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pwh.patients (full_name, birth_place, birth_date, blood_group, rhesus,
			gender, occupation, education, address, phone, province, city, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id, created_at`,
		p.FullName, p.BirthPlace, p.BirthDate, p.BloodGroup, p.Rhesus,
		p.Gender, p.Occupation, p.Education, p.Address, p.Phone, p.Province, p.City, p.Note).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM pwh.patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pwh.patients SET full_name=$2, birth_place=$3, birth_date=$4, blood_group=$5,
			rhesus=$6, gender=$7, occupation=$8, education=$9, address=$10, phone=$11,
			province=$12, city=$13, note=$14
		WHERE id = $1`,
		p.ID, p.FullName, p.BirthPlace, p.BirthDate, p.BloodGroup, p.Rhesus,
		p.Gender, p.Occupation, p.Education, p.Address, p.Phone, p.Province, p.City, p.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM pwh.patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, search string, limit, offset int) ([]Patient, int, error) {
	where := ``
	args := []interface{}{limit, offset}
	if search != "" {
		where = `WHERE full_name ILIKE $3`
		args = append(args, "%"+search+"%")
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM pwh.patients `+where+` ORDER BY full_name LIMIT $1 OFFSET $2`,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM pwh.patients`
	countArgs := []interface{}{}
	if search != "" {
		countQuery += ` WHERE full_name ILIKE $1`
		countArgs = append(countArgs, "%"+search+"%")
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *repoPG) FindByNormalizedName(ctx context.Context, normalized string) (*Ref, error) {
	var ref Ref
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, full_name FROM pwh.patients WHERE lower(full_name) = $1`, normalized).
		Scan(&ref.ID, &ref.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup patient by name: %w", err)
	}
	return &ref, nil
}

func (r *repoPG) ListRefs(ctx context.Context) ([]Ref, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, full_name FROM pwh.patients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []Ref
	for rows.Next() {
		var ref Ref
		if err := rows.Scan(&ref.ID, &ref.FullName); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
