package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"certificates-backend/internal/domains/event"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) event.Repository {
	return &postgresRepository{pool: pool}
}

const eventColumns = `id, event_name, date_start, date_end, link, created_by, created_on`

func (r *postgresRepository) Create(ctx context.Context, req event.CreateEventRequest, createdBy *uuid.UUID) (*event.Event, error) {
	query := `INSERT INTO events (event_name, date_start, date_end, link, created_by)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_on`
	ev := &event.Event{
		Name:      req.Name,
		DateStart: req.DateStart,
		DateEnd:   req.EndOrStart(),
		Link:      req.Link,
		CreatedBy: createdBy,
	}
	err := r.pool.QueryRow(ctx, query, ev.Name, ev.DateStart, ev.DateEnd, ev.Link, createdBy).
		Scan(&ev.ID, &ev.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return ev, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id=$1`, eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) List(ctx context.Context) ([]event.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY date_start DESC`, eventColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error) {
	setClauses := []string{}
	args := []interface{}{id}
	idx := 2
	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_name=$%d", idx))
		args = append(args, *req.Name)
		idx++
	}
	if req.DateStart != nil {
		setClauses = append(setClauses, fmt.Sprintf("date_start=$%d", idx))
		args = append(args, *req.DateStart)
		idx++
	}
	if req.DateEnd != nil {
		setClauses = append(setClauses, fmt.Sprintf("date_end=$%d", idx))
		args = append(args, *req.DateEnd)
		idx++
	}
	if req.Link != nil {
		setClauses = append(setClauses, fmt.Sprintf("link=$%d", idx))
		args = append(args, *req.Link)
		idx++
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id=$1 RETURNING %s`,
		strings.Join(setClauses, ", "), eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	var ev event.Event
	var link *string
	err := row.Scan(&ev.ID, &ev.Name, &ev.DateStart, &ev.DateEnd, &link, &ev.CreatedBy, &ev.CreatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, event.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	if link != nil {
		ev.Link = *link
	}
	return &ev, nil
}
