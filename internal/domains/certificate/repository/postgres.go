package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"certificates-backend/internal/domains/certificate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) certificate.Repository {
	return &postgresRepository{pool: pool}
}

const certificateColumns = `id, name, username, pronoun, hours, with_hours, role,
	event_id, participant_id, background, certificate_hash, emitted_by, emitted_at`

func (r *postgresRepository) Create(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error) {
	query := `INSERT INTO certificates
		(name, username, pronoun, hours, with_hours, role, event_id, participant_id, background, certificate_hash, emitted_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, emitted_at`
	err := r.pool.QueryRow(ctx, query,
		cert.Name, cert.Username, cert.Pronoun, cert.Hours, cert.WithHours, cert.Role,
		cert.EventID, cert.ParticipantID, cert.Background, cert.Hash, cert.EmittedBy).
		Scan(&cert.ID, &cert.EmittedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	return cert.ID, nil
}

func (r *postgresRepository) FindByNaturalKey(ctx context.Context, key certificate.NaturalKey) (*certificate.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates
		WHERE name=$1 AND username=$2 AND pronoun=$3 AND event_id=$4 AND hours=$5 AND role=$6 AND background=$7
		ORDER BY emitted_at LIMIT 1`, certificateColumns)
	row := r.pool.QueryRow(ctx, query,
		key.Name, key.Username, key.Pronoun, key.EventID, key.Hours, key.Role, key.Background)
	return scanCertificate(row)
}

func (r *postgresRepository) FindByHash(ctx context.Context, hash string) (*certificate.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE certificate_hash=$1 LIMIT 1`, certificateColumns)
	return scanCertificate(r.pool.QueryRow(ctx, query, hash))
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE id=$1`, certificateColumns)
	return scanCertificate(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]certificate.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE event_id=$1 ORDER BY emitted_at`, certificateColumns)
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certs []certificate.Certificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, *cert)
	}
	return certs, rows.Err()
}

func (r *postgresRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM certificates WHERE event_id=$1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) FirstBackgroundForEvent(ctx context.Context, eventID uuid.UUID) (string, error) {
	var background string
	err := r.pool.QueryRow(ctx,
		`SELECT background FROM certificates WHERE event_id=$1 ORDER BY emitted_at LIMIT 1`, eventID).
		Scan(&background)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", certificate.ErrNoCertificates
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch event background: %w", err)
	}
	return background, nil
}

func (r *postgresRepository) ListBackgroundRefs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT background FROM certificates WHERE background <> ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to list background refs: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req certificate.UpdateCertificateRequest) (*certificate.Certificate, error) {
	setClauses := []string{}
	args := []interface{}{id}
	idx := 2
	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name=$%d", idx))
		args = append(args, strings.TrimSpace(*req.Name))
		idx++
	}
	if req.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username=$%d", idx))
		args = append(args, strings.TrimSpace(*req.Username))
		idx++
	}
	if req.Pronoun != nil {
		setClauses = append(setClauses, fmt.Sprintf("pronoun=$%d", idx))
		args = append(args, strings.ToLower(strings.TrimSpace(*req.Pronoun)))
		idx++
	}
	if req.Hours != nil {
		setClauses = append(setClauses, fmt.Sprintf("hours=$%d", idx))
		args = append(args, strings.TrimSpace(*req.Hours))
		idx++
	}
	if req.WithHours != nil {
		setClauses = append(setClauses, fmt.Sprintf("with_hours=$%d", idx))
		args = append(args, *req.WithHours)
		idx++
	}
	if req.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role=$%d", idx))
		args = append(args, strings.TrimSpace(*req.Role))
		idx++
	}
	if req.ResetHash {
		setClauses = append(setClauses, "certificate_hash=''")
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}
	query := fmt.Sprintf(`UPDATE certificates SET %s WHERE id=$1 RETURNING %s`,
		strings.Join(setClauses, ", "), certificateColumns)
	return scanCertificate(r.pool.QueryRow(ctx, query, args...))
}

func (r *postgresRepository) SetParticipant(ctx context.Context, id uuid.UUID, participantID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE certificates SET participant_id=$2 WHERE id=$1`, id, participantID)
	if err != nil {
		return fmt.Errorf("failed to set participant: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE certificates SET certificate_hash=$2 WHERE id=$1`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to set certificate hash: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM certificates WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return certificate.ErrNotFound
	}
	return nil
}

// scanCertificate maps one row in certificateColumns order.
func scanCertificate(row pgx.Row) (*certificate.Certificate, error) {
	var cert certificate.Certificate
	err := row.Scan(&cert.ID, &cert.Name, &cert.Username, &cert.Pronoun, &cert.Hours, &cert.WithHours,
		&cert.Role, &cert.EventID, &cert.ParticipantID, &cert.Background, &cert.Hash,
		&cert.EmittedBy, &cert.EmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, certificate.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan certificate: %w", err)
	}
	return &cert, nil
}
