package service

import (
	"context"
	"errors"
	"time"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/domains/participant"

	"github.com/google/uuid"
)

type mockCertificateRepo struct {
	createFunc                  func(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error)
	findByNaturalKeyFunc        func(ctx context.Context, key certificate.NaturalKey) (*certificate.Certificate, error)
	findByHashFunc              func(ctx context.Context, hash string) (*certificate.Certificate, error)
	getByIDFunc                 func(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error)
	listByEventFunc             func(ctx context.Context, eventID uuid.UUID) ([]certificate.Certificate, error)
	countByEventFunc            func(ctx context.Context, eventID uuid.UUID) (int, error)
	firstBackgroundForEventFunc func(ctx context.Context, eventID uuid.UUID) (string, error)
	listBackgroundRefsFunc      func(ctx context.Context) ([]string, error)
	updateFunc                  func(ctx context.Context, id uuid.UUID, req certificate.UpdateCertificateRequest) (*certificate.Certificate, error)
	setParticipantFunc          func(ctx context.Context, id uuid.UUID, participantID uuid.UUID) error
	setHashFunc                 func(ctx context.Context, id uuid.UUID, hash string) error
	deleteFunc                  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCertificateRepo) Create(ctx context.Context, cert *certificate.Certificate) (uuid.UUID, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, cert)
	}
	return uuid.New(), nil
}

func (m *mockCertificateRepo) FindByNaturalKey(ctx context.Context, key certificate.NaturalKey) (*certificate.Certificate, error) {
	if m.findByNaturalKeyFunc != nil {
		return m.findByNaturalKeyFunc(ctx, key)
	}
	return nil, certificate.ErrNotFound
}

func (m *mockCertificateRepo) FindByHash(ctx context.Context, hash string) (*certificate.Certificate, error) {
	if m.findByHashFunc != nil {
		return m.findByHashFunc(ctx, hash)
	}
	return nil, certificate.ErrNotFound
}

func (m *mockCertificateRepo) GetByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, certificate.ErrNotFound
}

func (m *mockCertificateRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]certificate.Certificate, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockCertificateRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	if m.countByEventFunc != nil {
		return m.countByEventFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *mockCertificateRepo) FirstBackgroundForEvent(ctx context.Context, eventID uuid.UUID) (string, error) {
	if m.firstBackgroundForEventFunc != nil {
		return m.firstBackgroundForEventFunc(ctx, eventID)
	}
	return "", certificate.ErrNotFound
}

func (m *mockCertificateRepo) ListBackgroundRefs(ctx context.Context) ([]string, error) {
	if m.listBackgroundRefsFunc != nil {
		return m.listBackgroundRefsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCertificateRepo) Update(ctx context.Context, id uuid.UUID, req certificate.UpdateCertificateRequest) (*certificate.Certificate, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, certificate.ErrNotFound
}

func (m *mockCertificateRepo) SetParticipant(ctx context.Context, id uuid.UUID, participantID uuid.UUID) error {
	if m.setParticipantFunc != nil {
		return m.setParticipantFunc(ctx, id, participantID)
	}
	return nil
}

func (m *mockCertificateRepo) SetHash(ctx context.Context, id uuid.UUID, hash string) error {
	if m.setHashFunc != nil {
		return m.setHashFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockCertificateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockParticipantRepo struct {
	createFunc                func(ctx context.Context, p *participant.Participant) error
	getByIDFunc               func(ctx context.Context, id uuid.UUID) (*participant.Participant, error)
	getByUsernameFunc         func(ctx context.Context, username string) (*participant.Participant, error)
	setFullNameFunc           func(ctx context.Context, id uuid.UUID, fullName string, modifiedBy *uuid.UUID) error
	incrementCertificatesFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockParticipantRepo) Create(ctx context.Context, p *participant.Participant) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (*participant.Participant, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, participant.ErrNotFound
}

func (m *mockParticipantRepo) GetByUsername(ctx context.Context, username string) (*participant.Participant, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, participant.ErrNotFound
}

func (m *mockParticipantRepo) SetFullName(ctx context.Context, id uuid.UUID, fullName string, modifiedBy *uuid.UUID) error {
	if m.setFullNameFunc != nil {
		return m.setFullNameFunc(ctx, id, fullName, modifiedBy)
	}
	return nil
}

func (m *mockParticipantRepo) IncrementCertificates(ctx context.Context, id uuid.UUID) error {
	if m.incrementCertificatesFunc != nil {
		return m.incrementCertificatesFunc(ctx, id)
	}
	return nil
}

type mockEventRepo struct {
	createFunc  func(ctx context.Context, req event.CreateEventRequest, createdBy *uuid.UUID) (*event.Event, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*event.Event, error)
	listFunc    func(ctx context.Context) ([]event.Event, error)
	updateFunc  func(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error)
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEventRepo) Create(ctx context.Context, req event.CreateEventRequest, createdBy *uuid.UUID) (*event.Event, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req, createdBy)
	}
	return nil, errors.New("not implemented")
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, event.ErrNotFound
}

func (m *mockEventRepo) List(ctx context.Context) ([]event.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, event.ErrNotFound
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBlobStore struct {
	saveFunc    func(ctx context.Context, name string, data []byte, contentType string) (string, error)
	readFunc    func(ctx context.Context, storedPath string) ([]byte, error)
	deleteFunc  func(ctx context.Context, storedPath string) error
	listAllFunc func(ctx context.Context) ([]string, error)
}

func (m *mockBlobStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, name, data, contentType)
	}
	return name, nil
}

func (m *mockBlobStore) Read(ctx context.Context, storedPath string) ([]byte, error) {
	if m.readFunc != nil {
		return m.readFunc(ctx, storedPath)
	}
	return nil, errors.New("object not found")
}

func (m *mockBlobStore) Delete(ctx context.Context, storedPath string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, storedPath)
	}
	return nil
}

func (m *mockBlobStore) ListAll(ctx context.Context) ([]string, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

type mockCache struct {
	getFunc    func(ctx context.Context, key string, dest interface{}) (bool, error)
	setFunc    func(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	deleteFunc func(ctx context.Context, keys ...string) error
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key, dest)
	}
	return false, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, keys...)
	}
	return nil
}

func (m *mockCache) Ping(ctx context.Context) error { return nil }
