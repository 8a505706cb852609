package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/certificate/render"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/infrastructure/storage"
	"certificates-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CanvasFactory yields a fresh drawing surface per document. One canvas is
// one PDF; they are never reused.
type CanvasFactory func() render.Canvas

// ExportService turns issued certificates into downloadable PDFs, one at a
// time or zipped per event.
type ExportService struct {
	certRepo  certificate.Repository
	eventRepo event.Repository
	blobs     storage.BlobStore
	renderer  *render.Renderer
	canvases  CanvasFactory
}

func NewExportService(
	certRepo certificate.Repository,
	eventRepo event.Repository,
	blobs storage.BlobStore,
	renderer *render.Renderer,
	canvases CanvasFactory,
) *ExportService {
	return &ExportService{
		certRepo:  certRepo,
		eventRepo: eventRepo,
		blobs:     blobs,
		renderer:  renderer,
		canvases:  canvases,
	}
}

// RenderOne renders a single certificate and returns the suggested download
// file name alongside the PDF bytes.
func (s *ExportService) RenderOne(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return s.renderCertificate(ctx, cert)
}

// RenderByHash is the public download behind a verification code.
func (s *ExportService) RenderByHash(ctx context.Context, hash string) (string, []byte, error) {
	cert, err := s.certRepo.FindByHash(ctx, hash)
	if err != nil {
		return "", nil, err
	}
	return s.renderCertificate(ctx, cert)
}

// ExportEventArchive renders every certificate of an event into one zip.
// Entries live under a folder named after the event; the archive name repeats
// it, so extracted trees stay recognizable next to other events' downloads.
func (s *ExportService) ExportEventArchive(ctx context.Context, eventID uuid.UUID) (string, []byte, error) {
	certs, err := s.certRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return "", nil, err
	}
	if len(certs) == 0 {
		return "", nil, certificate.ErrNoCertificates
	}
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", nil, err
	}

	folder := utils.CleanFilename(ev.Name)

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	written := 0
	for i := range certs {
		cert := &certs[i]
		pdf, err := s.render(ctx, cert, ev)
		if err != nil {
			log.Error().Err(err).
				Str("certificate", cert.ID.String()).
				Msg("failed to render certificate for archive, skipping")
			continue
		}
		entry := fmt.Sprintf("%s/Certificado %s.pdf", folder, utils.CleanFilename(cert.Name))
		w, err := zw.Create(entry)
		if err != nil {
			zw.Close()
			return "", nil, err
		}
		if _, err := w.Write(pdf); err != nil {
			zw.Close()
			return "", nil, err
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return "", nil, err
	}
	if written == 0 {
		return "", nil, fmt.Errorf("no certificate of event %s could be rendered", eventID)
	}

	log.Info().
		Str("event", ev.Name).
		Int("certificates", written).
		Msg("event archive exported")

	name := fmt.Sprintf("Certificados - %s.zip", folder)
	return name, buf.Bytes(), nil
}

func (s *ExportService) renderCertificate(ctx context.Context, cert *certificate.Certificate) (string, []byte, error) {
	ev, err := s.eventRepo.GetByID(ctx, cert.EventID)
	if err != nil {
		return "", nil, err
	}
	pdf, err := s.render(ctx, cert, ev)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("Certificado - %s - %s.pdf",
		utils.CleanFilename(ev.Name), utils.CleanFilename(cert.Name))
	return name, pdf, nil
}

func (s *ExportService) render(ctx context.Context, cert *certificate.Certificate, ev *event.Event) ([]byte, error) {
	doc := render.Document{
		Name:      cert.Name,
		Role:      cert.Role,
		Hours:     cert.Hours,
		WithHours: cert.WithHours,
		EventName: ev.Name,
		DateStart: ev.DateStart,
		DateEnd:   ev.DateEnd,
		Hash:      cert.Hash,
	}

	// A missing background degrades to a text-only page instead of failing
	// the download; the reconciler may have removed the asset, or the upload
	// may predate the storage bucket.
	if ref := strings.TrimSpace(cert.Background); ref != "" {
		data, err := s.blobs.Read(ctx, ref)
		if err != nil {
			log.Warn().Err(err).
				Str("background", ref).
				Str("certificate", cert.ID.String()).
				Msg("background unavailable, rendering without it")
		} else {
			doc.Background = data
		}
	}

	return s.renderer.Render(s.canvases(), doc)
}
