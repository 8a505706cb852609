package service

import (
	"context"
	"strings"
	"time"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/domains/participant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Recorder turns validated rows into persisted certificates, deduplicating
// against previously issued records. It is shared by the batch import and
// the manual single-entry path so both follow the same rules.
type Recorder struct {
	certRepo        certificate.Repository
	participantRepo participant.Repository
}

func NewRecorder(certRepo certificate.Repository, participantRepo participant.Repository) *Recorder {
	return &Recorder{certRepo: certRepo, participantRepo: participantRepo}
}

// DedupOrCreate reuses the record matching the row's natural key, or
// persists a new one. The participant upsert and the certificate counter
// only run on creation, so re-imports never double count.
func (r *Recorder) DedupOrCreate(ctx context.Context, ev *event.Event, row certificate.Row, background string, withHours bool, emittedBy *uuid.UUID) (uuid.UUID, error) {
	role := row.Role
	hashRole := row.Role
	if row.Host != nil {
		// Legacy batches carry a host flag instead of a role. The hash must
		// keep the flag's original rendering; the stored role gets the
		// human-readable phrase.
		hashRole = certificate.LegacyHostLabel(*row.Host)
		role = legacyRoleName(*row.Host, row.Pronoun)
	}

	existing, err := r.certRepo.FindByNaturalKey(ctx, certificate.NaturalKey{
		Name:       row.Name,
		Username:   row.Username,
		Pronoun:    row.Pronoun,
		EventID:    ev.ID,
		Hours:      row.Hours,
		Role:       role,
		Background: background,
	})
	if err == nil {
		return existing.ID, nil
	}
	if err != certificate.ErrNotFound {
		return uuid.Nil, err
	}

	p, certName, err := r.upsertParticipant(ctx, row, emittedBy)
	if err != nil {
		return uuid.Nil, err
	}

	hashEvent := ev.Name
	if row.Event != "" {
		hashEvent = row.Event
	}

	cert := &certificate.Certificate{
		Name:       row.Name,
		Username:   row.Username,
		Pronoun:    row.Pronoun,
		Hours:      row.Hours,
		WithHours:  withHours,
		Role:       role,
		EventID:    ev.ID,
		Background: background,
		Hash:       certificate.VerificationHash(certName, hashEvent, row.Hours, hashRole),
		EmittedBy:  emittedBy,
	}
	if p != nil {
		cert.ParticipantID = &p.ID
	}

	id, err := r.certRepo.Create(ctx, cert)
	if err != nil {
		return uuid.Nil, err
	}

	if p != nil {
		if err := r.participantRepo.IncrementCertificates(ctx, p.ID); err != nil {
			log.Error().Err(err).Str("participant", p.ID.String()).Msg("failed to bump certificate count")
		}
	}
	return id, nil
}

// upsertParticipant resolves the participant link for a row and returns the
// canonical name the verification hash is derived from. First sighting of a
// username stamps the row's name on the participant; later sightings keep
// the already-set name, so every certificate of a person hashes the same
// spelling.
func (r *Recorder) upsertParticipant(ctx context.Context, row certificate.Row, emittedBy *uuid.UUID) (*participant.Participant, string, error) {
	certName := row.Name

	if row.Username == "" || row.Username == "-" {
		p := &participant.Participant{
			FullName:   row.Name,
			EnrolledAt: timePtr(time.Now()),
			CreatedBy:  emittedBy,
			ModifiedBy: emittedBy,
		}
		if err := r.participantRepo.Create(ctx, p); err != nil {
			return nil, "", err
		}
		return p, certName, nil
	}

	p, err := r.participantRepo.GetByUsername(ctx, row.Username)
	if err == participant.ErrNotFound {
		p = &participant.Participant{
			FullName:   row.Name,
			Username:   row.Username,
			EnrolledAt: timePtr(time.Now()),
			CreatedBy:  emittedBy,
			ModifiedBy: emittedBy,
		}
		if err := r.participantRepo.Create(ctx, p); err != nil {
			return nil, "", err
		}
		return p, certName, nil
	}
	if err != nil {
		return nil, "", err
	}

	if p.FullName == "" {
		if err := r.participantRepo.SetFullName(ctx, p.ID, row.Name, emittedBy); err != nil {
			return nil, "", err
		}
		p.FullName = row.Name
	}
	return p, p.FullName, nil
}

func legacyRoleName(host bool, pronoun string) string {
	if !host {
		return "ouvinte"
	}
	if strings.ToLower(pronoun) == "a" {
		return "palestrante convidada"
	}
	return "palestrante convidado"
}

func timePtr(t time.Time) *time.Time { return &t }
