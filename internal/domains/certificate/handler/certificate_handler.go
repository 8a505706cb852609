package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/certificate/job"
	"certificates-backend/internal/domains/certificate/service"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/shared"
	"certificates-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Multipart form field names for the batch import.
const (
	formFieldTable      = "certificate_csv"
	formFieldBackground = "certificate_background"
)

type CertificateHandler struct {
	imports     *service.ImportService
	certs       *service.CertificateService
	exports     *service.ExportService
	asynqClient *asynq.Client
}

func NewCertificateHandler(
	imports *service.ImportService,
	certs *service.CertificateService,
	exports *service.ExportService,
	asynqClient *asynq.Client,
) *CertificateHandler {
	return &CertificateHandler{
		imports:     imports,
		certs:       certs,
		exports:     exports,
		asynqClient: asynqClient,
	}
}

// Import - POST /events/:id/certificates/import
// Multipart form: certificate_csv (table), certificate_background (image).
func (h *CertificateHandler) Import(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	tableHeader, err := c.FormFile(formFieldTable)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("missing %s file", formFieldTable))
		return
	}
	backgroundHeader, err := c.FormFile(formFieldBackground)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("missing %s file", formFieldBackground))
		return
	}

	table, err := tableHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded table")
		return
	}
	defer table.Close()

	background, err := readUpload(backgroundHeader.Open())
	if err != nil {
		response.BadRequest(c, "cannot read uploaded background")
		return
	}

	result, err := h.imports.ImportBatch(c.Request.Context(), eventID, callerID(c), service.BatchInput{
		Table:          table,
		Filename:       tableHeader.Filename,
		Background:     background,
		BackgroundName: backgroundHeader.Filename,
	})
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		log.Error().Err(err).Str("event", eventID.String()).Msg("batch import failed")
		response.InternalServerError(c, "batch import failed")
		return
	}

	// Validation defects come back with 422 so clients can show them per
	// row; the batch itself was processed fine.
	if !result.Success {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			"BATCH_REJECTED", "batch contains invalid rows", result)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// CreateManual - POST /events/:id/certificates
func (h *CertificateHandler) CreateManual(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var req certificate.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	cert, err := h.certs.CreateManual(c.Request.Context(), eventID, callerID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, certificate.ErrNoCertificates):
			response.Conflict(c, "event has no imported certificates to take the background from")
		default:
			response.InternalServerError(c, "failed to create certificate")
		}
		return
	}
	response.Success(c, http.StatusCreated, cert)
}

// ListByEvent - GET /events/:id/certificates
func (h *CertificateHandler) ListByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	certs, err := h.certs.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.InternalServerError(c, "failed to list certificates")
		return
	}
	response.Success(c, http.StatusOK, certs)
}

// Summary - GET /events/:id/certificates/summary
func (h *CertificateHandler) Summary(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	summary, err := h.certs.EventSummary(c.Request.Context(), eventID)
	if err != nil {
		response.InternalServerError(c, "failed to build summary")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// ExportArchive - GET /events/:id/certificates/export
func (h *CertificateHandler) ExportArchive(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	name, archive, err := h.exports.ExportEventArchive(c.Request.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, certificate.ErrNoCertificates):
			response.NotFound(c, err.Error())
		case errors.Is(err, event.ErrNotFound):
			response.NotFound(c, err.Error())
		default:
			log.Error().Err(err).Str("event", eventID.String()).Msg("archive export failed")
			response.InternalServerError(c, "archive export failed")
		}
		return
	}

	sendDownload(c, name, "application/zip", archive)
}

// Get - GET /certificates/:id
func (h *CertificateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid certificate id")
		return
	}

	cert, err := h.certs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to load certificate")
		return
	}
	response.Success(c, http.StatusOK, cert)
}

// Update - PUT /certificates/:id
func (h *CertificateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid certificate id")
		return
	}

	var req certificate.UpdateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	cert, err := h.certs.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to update certificate")
		return
	}
	response.Success(c, http.StatusOK, cert)
}

// Delete - DELETE /certificates/:id
func (h *CertificateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid certificate id")
		return
	}

	if err := h.certs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to delete certificate")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "certificate deleted"})
}

// Download - GET /certificates/:id/download
func (h *CertificateHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid certificate id")
		return
	}

	name, pdf, err := h.exports.RenderOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		log.Error().Err(err).Str("certificate", id.String()).Msg("render failed")
		response.InternalServerError(c, "render failed")
		return
	}

	sendDownload(c, name, "application/pdf", pdf)
}

// Validate - POST /certificates/validate (public)
func (h *CertificateHandler) Validate(c *gin.Context) {
	var req certificate.ValidateHashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	view, err := h.certs.VerifyByHash(c.Request.Context(), req.CertificateHash)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, "no certificate matches this code")
			return
		}
		response.InternalServerError(c, "verification failed")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// DownloadByHash - GET /certificates/hash/:hash/download (public)
func (h *CertificateHandler) DownloadByHash(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		response.BadRequest(c, "missing verification code")
		return
	}

	name, pdf, err := h.exports.RenderByHash(c.Request.Context(), hash)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			response.NotFound(c, "no certificate matches this code")
			return
		}
		log.Error().Err(err).Msg("render by hash failed")
		response.InternalServerError(c, "render failed")
		return
	}

	sendDownload(c, name, "application/pdf", pdf)
}

// TriggerCleanup - POST /admin/certificates/cleanup (admin)
// Enqueues the reconciliation task instead of running it inline; the sweep
// can take a while on large buckets.
func (h *CertificateHandler) TriggerCleanup(c *gin.Context) {
	payload, err := json.Marshal(job.CleanupBackgroundsPayload{})
	if err != nil {
		response.InternalServerError(c, "failed to enqueue cleanup")
		return
	}

	task := asynq.NewTask(shared.TypeCleanupBackgrounds, payload)
	info, err := h.asynqClient.EnqueueContext(c.Request.Context(), task, asynq.Queue(shared.QueueLow))
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue cleanup task")
		response.InternalServerError(c, "failed to enqueue cleanup")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"task_id": info.ID})
}

func callerID(c *gin.Context) *uuid.UUID {
	if id, ok := c.Get("userID"); ok {
		uid := id.(uuid.UUID)
		return &uid
	}
	return nil
}

func readUpload(f io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func sendDownload(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
