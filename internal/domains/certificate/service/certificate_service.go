package service

import (
	"context"
	"strings"
	"time"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/domains/participant"
	"certificates-backend/internal/shared/utils"
	"certificates-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// verifyCacheTTL bounds how long a public verification lookup may serve a
// stale copy after an operator edits or revokes a certificate.
const verifyCacheTTL = 10 * time.Minute

func verifyCacheKey(hash string) string {
	return "certificate:hash:" + hash
}

// CertificateService covers the single-record operations: manual issuance,
// reads, edits, revocation and the public verification lookup.
type CertificateService struct {
	certRepo        certificate.Repository
	participantRepo participant.Repository
	eventRepo       event.Repository
	recorder        *Recorder
	cache           cache.Cache
}

func NewCertificateService(
	certRepo certificate.Repository,
	participantRepo participant.Repository,
	eventRepo event.Repository,
	recorder *Recorder,
	c cache.Cache,
) *CertificateService {
	return &CertificateService{
		certRepo:        certRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		recorder:        recorder,
		cache:           c,
	}
}

// CreateManual issues one certificate outside a batch, for the participant an
// operator forgot in the uploaded table. The event must already have imported
// certificates: the new record reuses the batch's background, and there is no
// other way to supply one on this path.
func (s *CertificateService) CreateManual(ctx context.Context, eventID uuid.UUID, emittedBy *uuid.UUID, req certificate.CreateCertificateRequest) (*certificate.Certificate, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.certRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, certificate.ErrNoCertificates
	}
	background, err := s.certRepo.FirstBackgroundForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	withHours := true
	if req.WithHours != nil {
		withHours = *req.WithHours
	}

	row := certificate.Row{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Pronoun:  strings.ToLower(strings.TrimSpace(req.Pronoun)),
		Hours:    strings.TrimSpace(req.Hours),
		Role:     strings.TrimSpace(req.Role),
	}

	id, err := s.recorder.DedupOrCreate(ctx, ev, row, background, withHours, emittedBy)
	if err != nil {
		return nil, err
	}
	return s.certRepo.GetByID(ctx, id)
}

func (s *CertificateService) GetByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	return s.certRepo.GetByID(ctx, id)
}

func (s *CertificateService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]certificate.Certificate, error) {
	return s.certRepo.ListByEvent(ctx, eventID)
}

// Update edits an issued certificate. A new username rotates the participant
// link. The verification hash is deliberately sticky: already-distributed
// codes keep working across edits unless the operator asks for a reset.
func (s *CertificateService) Update(ctx context.Context, id uuid.UUID, req certificate.UpdateCertificateRequest) (*certificate.Certificate, error) {
	before, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.certRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if err := s.rotateParticipant(ctx, updated); err != nil {
			return nil, err
		}
	}

	if req.ResetHash {
		ev, err := s.eventRepo.GetByID(ctx, updated.EventID)
		if err != nil {
			return nil, err
		}
		hash := certificate.VerificationHash(updated.Name, ev.Name, updated.Hours, updated.Role)
		if err := s.certRepo.SetHash(ctx, id, hash); err != nil {
			return nil, err
		}
		updated.Hash = hash
	}

	s.invalidateVerify(ctx, before.Hash, updated.Hash)
	return updated, nil
}

func (s *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.certRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateVerify(ctx, cert.Hash)
	return nil
}

// VerifyByHash is the anonymous lookup behind the printed verification code.
// Hits are cached; misses are not, so a code issued right after a failed
// lookup resolves immediately.
func (s *CertificateService) VerifyByHash(ctx context.Context, hash string) (*certificate.PublicView, error) {
	var cached certificate.PublicView
	found, err := s.cache.Get(ctx, verifyCacheKey(hash), &cached)
	if err != nil {
		log.Warn().Err(err).Msg("verification cache read failed")
	}
	if found {
		return &cached, nil
	}

	cert, err := s.certRepo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	ev, err := s.eventRepo.GetByID(ctx, cert.EventID)
	if err != nil {
		return nil, err
	}

	view := &certificate.PublicView{
		Name:      cert.Name,
		EventName: ev.Name,
		Hours:     cert.Hours,
		Role:      cert.Role,
		Hash:      cert.Hash,
		EmittedAt: cert.EmittedAt,
	}
	if err := s.cache.Set(ctx, verifyCacheKey(hash), view, verifyCacheTTL); err != nil {
		log.Warn().Err(err).Msg("verification cache write failed")
	}
	return view, nil
}

// EventSummary aggregates certificate count and total credit hours for the
// operator dashboard. Certificates issued without hours do not contribute to
// the total.
func (s *CertificateService) EventSummary(ctx context.Context, eventID uuid.UUID) (*certificate.EventSummary, error) {
	certs, err := s.certRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	hours := make([]string, 0, len(certs))
	for _, c := range certs {
		if c.WithHours {
			hours = append(hours, c.Hours)
		}
	}

	return &certificate.EventSummary{
		EventID:          eventID,
		Certificates:     len(certs),
		TotalCreditHours: utils.SumCreditHours(hours).String(),
	}, nil
}

// rotateParticipant points the record at the participant matching its current
// username, creating one on first sight. Counters are not adjusted here; they
// track issuance, not ownership moves.
func (s *CertificateService) rotateParticipant(ctx context.Context, cert *certificate.Certificate) error {
	if cert.Username == "" || cert.Username == "-" {
		return nil
	}

	p, err := s.participantRepo.GetByUsername(ctx, cert.Username)
	if err == participant.ErrNotFound {
		p = &participant.Participant{
			FullName:   cert.Name,
			Username:   cert.Username,
			EnrolledAt: timePtr(time.Now()),
			ModifiedBy: cert.EmittedBy,
			CreatedBy:  cert.EmittedBy,
		}
		if err := s.participantRepo.Create(ctx, p); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := s.certRepo.SetParticipant(ctx, cert.ID, p.ID); err != nil {
		return err
	}
	cert.ParticipantID = &p.ID
	return nil
}

func (s *CertificateService) invalidateVerify(ctx context.Context, hashes ...string) {
	keys := make([]string, 0, len(hashes))
	seen := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		keys = append(keys, verifyCacheKey(h))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("verification cache invalidation failed")
	}
}
