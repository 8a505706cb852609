package service

import (
	"context"
	"testing"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/participant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupOrCreate(t *testing.T) {
	ctx := context.Background()
	ev := testEvent()
	row := certificate.Row{
		Index: 1, Name: "Ana Silva", Username: "ana",
		Pronoun: "a", Hours: "02h00", Role: "ouvinte",
	}

	t.Run("new row links participant and bumps the counter", func(t *testing.T) {
		var created *certificate.Certificate
		certID := uuid.New()
		certRepo := &mockCertificateRepo{
			createFunc: func(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error) {
				created = cert
				return certID, nil
			},
		}
		pID := uuid.New()
		bumped := 0
		participantRepo := &mockParticipantRepo{
			createFunc: func(ctx context.Context, p *participant.Participant) error {
				p.ID = pID
				return nil
			},
			incrementCertificatesFunc: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, pID, id)
				bumped++
				return nil
			},
		}
		recorder := NewRecorder(certRepo, participantRepo)

		id, err := recorder.DedupOrCreate(ctx, ev, row, "bg.png", true, nil)

		require.NoError(t, err)
		assert.Equal(t, certID, id)
		require.NotNil(t, created)
		require.NotNil(t, created.ParticipantID)
		assert.Equal(t, pID, *created.ParticipantID)
		assert.Equal(t, 1, bumped)
	})

	t.Run("duplicate tuple reuses the record without side effects", func(t *testing.T) {
		existing := &certificate.Certificate{ID: uuid.New()}
		certRepo := &mockCertificateRepo{
			findByNaturalKeyFunc: func(ctx context.Context, key certificate.NaturalKey) (*certificate.Certificate, error) {
				assert.Equal(t, ev.ID, key.EventID)
				assert.Equal(t, "bg.png", key.Background)
				return existing, nil
			},
		}
		participantRepo := &mockParticipantRepo{
			createFunc: func(ctx context.Context, p *participant.Participant) error {
				t.Fatal("duplicate must not touch participants")
				return nil
			},
			incrementCertificatesFunc: func(ctx context.Context, id uuid.UUID) error {
				t.Fatal("duplicate must not bump the counter")
				return nil
			},
		}
		recorder := NewRecorder(certRepo, participantRepo)

		id, err := recorder.DedupOrCreate(ctx, ev, row, "bg.png", true, nil)

		require.NoError(t, err)
		assert.Equal(t, existing.ID, id)
	})

	t.Run("known participant keeps the already-set name in the hash", func(t *testing.T) {
		known := &participant.Participant{
			ID: uuid.New(), FullName: "Ana Maria Silva", Username: "ana",
		}
		var created *certificate.Certificate
		certRepo := &mockCertificateRepo{
			createFunc: func(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error) {
				created = cert
				return uuid.New(), nil
			},
		}
		participantRepo := &mockParticipantRepo{
			getByUsernameFunc: func(ctx context.Context, username string) (*participant.Participant, error) {
				return known, nil
			},
		}
		recorder := NewRecorder(certRepo, participantRepo)

		_, err := recorder.DedupOrCreate(ctx, ev, row, "bg.png", true, nil)

		require.NoError(t, err)
		require.NotNil(t, created)
		// The record keeps the row's spelling but the code is derived from the
		// participant's canonical name.
		assert.Equal(t, "Ana Silva", created.Name)
		assert.Equal(t,
			certificate.VerificationHash("Ana Maria Silva", ev.Name, "02h00", "ouvinte"),
			created.Hash)
	})

	t.Run("first sighting stamps the row name on the participant", func(t *testing.T) {
		blank := &participant.Participant{ID: uuid.New(), Username: "ana"}
		stamped := ""
		participantRepo := &mockParticipantRepo{
			getByUsernameFunc: func(ctx context.Context, username string) (*participant.Participant, error) {
				return blank, nil
			},
			setFullNameFunc: func(ctx context.Context, id uuid.UUID, fullName string, modifiedBy *uuid.UUID) error {
				stamped = fullName
				return nil
			},
		}
		recorder := NewRecorder(&mockCertificateRepo{}, participantRepo)

		_, err := recorder.DedupOrCreate(ctx, ev, row, "bg.png", true, nil)

		require.NoError(t, err)
		assert.Equal(t, "Ana Silva", stamped)
	})

	t.Run("dash username creates an unlinked person per row", func(t *testing.T) {
		lookups := 0
		participantRepo := &mockParticipantRepo{
			getByUsernameFunc: func(ctx context.Context, username string) (*participant.Participant, error) {
				lookups++
				return nil, participant.ErrNotFound
			},
		}
		recorder := NewRecorder(&mockCertificateRepo{}, participantRepo)

		anon := row
		anon.Username = "-"
		_, err := recorder.DedupOrCreate(ctx, ev, anon, "bg.png", true, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, lookups, "placeholder usernames skip the lookup")
	})

	t.Run("legacy non-host becomes ouvinte", func(t *testing.T) {
		var created *certificate.Certificate
		certRepo := &mockCertificateRepo{
			createFunc: func(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error) {
				created = cert
				return uuid.New(), nil
			},
		}
		recorder := NewRecorder(certRepo, &mockParticipantRepo{})

		host := false
		legacy := row
		legacy.Role = ""
		legacy.Host = &host
		legacy.Event = "Evento Antigo"
		_, err := recorder.DedupOrCreate(ctx, ev, legacy, "bg.png", true, nil)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "ouvinte", created.Role)
		assert.Equal(t,
			certificate.VerificationHash("Ana Silva", "Evento Antigo", "02h00", "False"),
			created.Hash)
	})
}
