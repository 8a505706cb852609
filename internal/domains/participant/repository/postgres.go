package repository

import (
	"context"
	"errors"
	"fmt"

	"certificates-backend/internal/domains/participant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) participant.Repository {
	return &postgresRepository{pool: pool}
}

const participantColumns = `id, full_name, username, number_of_certificates,
	enrolled_at, created_at, modified_at, created_by, modified_by`

func (r *postgresRepository) Create(ctx context.Context, p *participant.Participant) error {
	query := `INSERT INTO participants (full_name, username, enrolled_at, created_by, modified_by)
	VALUES ($1, NULLIF($2, ''), $3, $4, $5)
	RETURNING id, created_at, modified_at`
	err := r.pool.QueryRow(ctx, query, p.FullName, p.Username, p.EnrolledAt, p.CreatedBy, p.ModifiedBy).
		Scan(&p.ID, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*participant.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE id=$1`, participantColumns)
	return scanParticipant(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*participant.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE username=$1`, participantColumns)
	return scanParticipant(r.pool.QueryRow(ctx, query, username))
}

func (r *postgresRepository) SetFullName(ctx context.Context, id uuid.UUID, fullName string, modifiedBy *uuid.UUID) error {
	query := `UPDATE participants
		SET full_name=$2, modified_at=NOW(), modified_by=COALESCE($3, modified_by)
		WHERE id=$1 AND full_name=''`
	_, err := r.pool.Exec(ctx, query, id, fullName, modifiedBy)
	if err != nil {
		return fmt.Errorf("failed to set participant full name: %w", err)
	}
	return nil
}

func (r *postgresRepository) IncrementCertificates(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE participants
		SET number_of_certificates=number_of_certificates+1, modified_at=NOW()
		WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment certificate count: %w", err)
	}
	return nil
}

func scanParticipant(row pgx.Row) (*participant.Participant, error) {
	var p participant.Participant
	var username *string
	err := row.Scan(&p.ID, &p.FullName, &username, &p.NumberOfCertificates,
		&p.EnrolledAt, &p.CreatedAt, &p.ModifiedAt, &p.CreatedBy, &p.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, participant.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan participant: %w", err)
	}
	if username != nil {
		p.Username = *username
	}
	return &p, nil
}
