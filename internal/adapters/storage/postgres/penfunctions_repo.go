package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"livestock-pens/internal/domain/penfunctions"
)

type PenFunctionsRepo struct {
	db *sql.DB
}

func NewPenFunctionsRepo(db *sql.DB) *PenFunctionsRepo {
	return &PenFunctionsRepo{db: db}
}

const periodColumns = `
	id, pen_id, function_type,
	start_at, end_at, metadata, notes, historical,
	created_at, updated_at
`

func (r *PenFunctionsRepo) Create(ctx context.Context, p penfunctions.FunctionPeriod) error {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("pen_functions marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pen_functions (`+periodColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID, p.PenID, string(p.FunctionType),
		p.Start, p.End, metadata, p.Notes, p.Historical,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pen_functions insert %s: %w", p.ID, err)
	}
	return nil
}

func (r *PenFunctionsRepo) Update(ctx context.Context, p penfunctions.FunctionPeriod) error {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("pen_functions marshal metadata: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pen_functions SET
			function_type = $2, start_at = $3, end_at = $4,
			metadata = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`,
		p.ID, string(p.FunctionType), p.Start, p.End,
		metadata, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pen_functions update %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PenFunctionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pen_functions WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("pen_functions delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PenFunctionsRepo) GetByID(ctx context.Context, id string) (penfunctions.FunctionPeriod, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+periodColumns+` FROM pen_functions WHERE id = $1
	`, id)
	return scanPeriod(row)
}

func (r *PenFunctionsRepo) OpenByPen(ctx context.Context, penID string) (penfunctions.FunctionPeriod, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+periodColumns+`
		FROM pen_functions
		WHERE pen_id = $1 AND end_at IS NULL
		ORDER BY start_at DESC
		LIMIT 1
	`, penID)

	p, err := scanPeriod(row)
	if err == ErrNotFound {
		return penfunctions.FunctionPeriod{}, nil
	}
	return p, err
}

func (r *PenFunctionsRepo) ListByPen(ctx context.Context, penID string) ([]penfunctions.FunctionPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+periodColumns+`
		FROM pen_functions
		WHERE pen_id = $1
		ORDER BY start_at DESC
	`, penID)
	if err != nil {
		return nil, fmt.Errorf("pen_functions list by pen: %w", err)
	}
	defer rows.Close()

	out := make([]penfunctions.FunctionPeriod, 0)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPeriod(row rowScanner) (penfunctions.FunctionPeriod, error) {
	var p penfunctions.FunctionPeriod
	var functionType string
	var metadata []byte

	err := row.Scan(
		&p.ID, &p.PenID, &functionType,
		&p.Start, &p.End, &metadata, &p.Notes, &p.Historical,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return penfunctions.FunctionPeriod{}, ErrNotFound
		}
		return penfunctions.FunctionPeriod{}, err
	}

	p.FunctionType = penfunctions.FunctionType(functionType)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return penfunctions.FunctionPeriod{}, fmt.Errorf("pen_functions unmarshal metadata %s: %w", p.ID, err)
		}
	}
	return p, nil
}
