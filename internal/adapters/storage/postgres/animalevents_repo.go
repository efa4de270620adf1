package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"livestock-pens/internal/domain/animalevents"
)

type AnimalEventsRepo struct {
	db *sql.DB
}

func NewAnimalEventsRepo(db *sql.DB) *AnimalEventsRepo {
	return &AnimalEventsRepo{db: db}
}

func (r *AnimalEventsRepo) Create(ctx context.Context, e animalevents.AnimalEvent) error {
	// El contrato externo pide event_date + event_time por separado;
	// ambos salen de OccurredAt.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_events (
			id, animal_id, event_type,
			event_date, event_time, recorded_at,
			pen_id, previous_pen_id, pen_function,
			reason, notes, is_historical, recorded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		e.ID, e.AnimalID, string(e.Type),
		e.OccurredAt.Format("2006-01-02"), e.OccurredAt.Format("15:04:05"), e.RecordedAt,
		e.PenID, e.PreviousPenID, e.PenFunction,
		e.Reason, e.Notes, e.Historical, e.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("animal_events insert %s: %w", e.ID, err)
	}
	return nil
}

func (r *AnimalEventsRepo) ListByAnimal(ctx context.Context, animalID string, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	return r.list(ctx, "animal_id", animalID, filter)
}

func (r *AnimalEventsRepo) ListByPen(ctx context.Context, penID string, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	return r.list(ctx, "pen_id", penID, filter)
}

func (r *AnimalEventsRepo) list(ctx context.Context, column, value string, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, animal_id, event_type,
			(event_date + event_time)::timestamptz, recorded_at,
			pen_id, previous_pen_id, pen_function,
			reason, notes, is_historical, recorded_by
		FROM animal_events
		WHERE ` + column + ` = $1
	`)

	args := []any{value}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND event_type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND (event_date + event_time) >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND (event_date + event_time) <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY event_date DESC, event_time DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("animal_events list: %w", err)
	}
	defer rows.Close()

	out := make([]animalevents.AnimalEvent, 0)
	for rows.Next() {
		var e animalevents.AnimalEvent
		var eventType string

		if err := rows.Scan(
			&e.ID, &e.AnimalID, &eventType,
			&e.OccurredAt, &e.RecordedAt,
			&e.PenID, &e.PreviousPenID, &e.PenFunction,
			&e.Reason, &e.Notes, &e.Historical, &e.RecordedBy,
		); err != nil {
			return nil, err
		}

		e.Type = animalevents.EventType(eventType)
		out = append(out, e)
	}
	return out, rows.Err()
}
