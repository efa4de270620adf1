package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"livestock-pens/internal/domain/assignments"
)

type AssignmentsRepo struct {
	db *sql.DB
}

func NewAssignmentsRepo(db *sql.DB) *AssignmentsRepo {
	return &AssignmentsRepo{db: db}
}

const assignmentColumns = `
	id, animal_id, pen_id,
	assigned_at, removed_at,
	reason, notes, created_at
`

func (r *AssignmentsRepo) Create(ctx context.Context, a assignments.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_pen_assignments (`+assignmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.ID, a.AnimalID, a.PenID,
		a.AssignedAt, a.RemovedAt,
		a.Reason, a.Notes, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("assignments insert %s: %w", a.ID, err)
	}
	return nil
}

func (r *AssignmentsRepo) Update(ctx context.Context, a assignments.Assignment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_pen_assignments SET
			removed_at = $2, reason = $3, notes = $4
		WHERE id = $1
	`,
		a.ID, a.RemovedAt, a.Reason, a.Notes,
	)
	if err != nil {
		return fmt.Errorf("assignments update %s: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssignmentsRepo) GetByID(ctx context.Context, id string) (assignments.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+` FROM animal_pen_assignments WHERE id = $1
	`, id)
	return scanAssignment(row)
}

func (r *AssignmentsRepo) OpenByAnimal(ctx context.Context, animalID string) (assignments.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM animal_pen_assignments
		WHERE animal_id = $1 AND removed_at IS NULL
		ORDER BY assigned_at DESC
		LIMIT 1
	`, animalID)

	a, err := scanAssignment(row)
	if err == ErrNotFound {
		// Sin assignment abierta no es excepcional; ver contrato del repo.
		return assignments.Assignment{}, nil
	}
	return a, err
}

func (r *AssignmentsRepo) OpenByPen(ctx context.Context, penID string) ([]assignments.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM animal_pen_assignments
		WHERE pen_id = $1 AND removed_at IS NULL
		ORDER BY assigned_at ASC
	`, penID)
	if err != nil {
		return nil, fmt.Errorf("assignments open by pen: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func (r *AssignmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]assignments.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM animal_pen_assignments
		WHERE animal_id = $1
		ORDER BY assigned_at DESC
	`, animalID)
	if err != nil {
		return nil, fmt.Errorf("assignments list by animal: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func scanAssignment(row rowScanner) (assignments.Assignment, error) {
	var a assignments.Assignment
	err := row.Scan(
		&a.ID, &a.AnimalID, &a.PenID,
		&a.AssignedAt, &a.RemovedAt,
		&a.Reason, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return assignments.Assignment{}, ErrNotFound
		}
		return assignments.Assignment{}, err
	}
	return a, nil
}

func collectAssignments(rows *sql.Rows) ([]assignments.Assignment, error) {
	out := make([]assignments.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
