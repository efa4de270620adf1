package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"livestock-pens/internal/domain/pens"
)

type PensRepo struct {
	db *sql.DB
}

func NewPensRepo(db *sql.DB) *PensRepo {
	return &PensRepo{db: db}
}

func (r *PensRepo) Create(ctx context.Context, p pens.Pen) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pens (
			id, pen_number, capacity, location, physical_type, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID, p.PenNumber, p.Capacity, p.Location,
		string(p.PhysicalType), p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pens insert %s: %w", p.ID, err)
	}
	return nil
}

func (r *PensRepo) Update(ctx context.Context, p pens.Pen) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pens SET
			pen_number = $2, capacity = $3, location = $4,
			physical_type = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`,
		p.ID, p.PenNumber, p.Capacity, p.Location,
		string(p.PhysicalType), p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pens update %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PensRepo) GetByID(ctx context.Context, id string) (pens.Pen, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pen_number, capacity, location, physical_type, notes,
			created_at, updated_at
		FROM pens WHERE id = $1
	`, id)

	var p pens.Pen
	var physicalType string
	if err := row.Scan(
		&p.ID, &p.PenNumber, &p.Capacity, &p.Location,
		&physicalType, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pens.Pen{}, ErrNotFound
		}
		return pens.Pen{}, err
	}
	p.PhysicalType = pens.PhysicalType(physicalType)
	return p, nil
}

func (r *PensRepo) List(ctx context.Context) ([]pens.Pen, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pen_number, capacity, location, physical_type, notes,
			created_at, updated_at
		FROM pens ORDER BY pen_number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("pens list: %w", err)
	}
	defer rows.Close()

	out := make([]pens.Pen, 0)
	for rows.Next() {
		var p pens.Pen
		var physicalType string
		if err := rows.Scan(
			&p.ID, &p.PenNumber, &p.Capacity, &p.Location,
			&physicalType, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.PhysicalType = pens.PhysicalType(physicalType)
		out = append(out, p)
	}
	return out, rows.Err()
}
