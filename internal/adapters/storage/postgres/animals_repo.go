package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"livestock-pens/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, enar, temp_tag, name,
	category, sex, status,
	birth_date, mother_enar, father_enar,
	current_pen_no, notes,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID, a.ENAR, a.TempTag, a.Name,
		string(a.Category), string(a.Sex), string(a.Status),
		a.BirthDate, a.MotherENAR, a.FatherENAR,
		a.CurrentPenNo, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("animals insert %s: %w", a.ID, err)
	}
	return nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals SET
			name = $2, category = $3, status = $4,
			current_pen_no = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`,
		a.ID, a.Name, string(a.Category), string(a.Status),
		a.CurrentPenNo, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("animals update %s: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+` FROM animals WHERE id = $1
	`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) GetByENAR(ctx context.Context, enar string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+` FROM animals WHERE enar = $1
	`, enar)
	return scanAnimal(row)
}

func (r *AnimalsRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + animalColumns + ` FROM animals WHERE 1=1`)

	args := []any{}
	argN := 1

	if filter.Category != "" {
		sb.WriteString(fmt.Sprintf(" AND category = $%d", argN))
		args = append(args, string(filter.Category))
		argN++
	}
	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	sb.WriteString(" ORDER BY created_at ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("animals list: %w", err)
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var category, sex, status string

	err := row.Scan(
		&a.ID, &a.ENAR, &a.TempTag, &a.Name,
		&category, &sex, &status,
		&a.BirthDate, &a.MotherENAR, &a.FatherENAR,
		&a.CurrentPenNo, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.Category = animals.Category(category)
	a.Sex = animals.Sex(sex)
	a.Status = animals.Status(status)
	return a, nil
}
