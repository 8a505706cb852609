package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/infrastructure/storage"
	"certificates-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// maxBatchRows caps a single upload; larger events are split by the operator.
const maxBatchRows = 1000

// ImportService runs the batch pipeline: column check, per-row validation,
// background upload, then dedup-or-create per row.
//
// Validation is all-or-nothing: nothing is persisted while any row has a
// defect. Persistence is per-row best effort: a storage failure skips that
// row, logs it and keeps going, so one bad write never aborts the batch.
// The dedup lookup and the insert are two statements, not one atomic upsert;
// two concurrent imports of the same tuple can both insert. That race is
// accepted (rare, operator-driven uploads) rather than serialized.
type ImportService struct {
	recorder  *Recorder
	eventRepo event.Repository
	blobs     storage.BlobStore
	images    *storage.ImageProcessor
	validator certificate.RowValidator
}

func NewImportService(
	recorder *Recorder,
	eventRepo event.Repository,
	blobs storage.BlobStore,
	images *storage.ImageProcessor,
	validator certificate.RowValidator,
) *ImportService {
	return &ImportService{
		recorder:  recorder,
		eventRepo: eventRepo,
		blobs:     blobs,
		images:    images,
		validator: validator,
	}
}

// BatchInput is one uploaded batch: a tabular file plus the background image
// every certificate of the batch shares.
type BatchInput struct {
	Table          io.Reader
	Filename       string
	Background     []byte
	BackgroundName string
}

// ImportBatch validates and persists one batch for an event. Validation
// defects come back inside the result, not as an error; an error means the
// pipeline itself could not run (unknown event, unreadable file, storage
// down for the background upload).
func (s *ImportService) ImportBatch(ctx context.Context, eventID uuid.UUID, emittedBy *uuid.UUID, in BatchInput) (*certificate.ImportResult, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("event", ev.Name).
		Str("file_name", in.Filename).
		Msg("starting certificate batch import")

	header, rows, err := parseTable(in.Table, in.Filename)
	if err != nil {
		return &certificate.ImportResult{
			TotalRows: 0,
			Errors:    []certificate.RowError{{Row: 0, Column: "file", Reason: err.Error()}},
		}, nil
	}

	// Column presence is checked once for the whole batch; a miss aborts
	// before any per-row check runs.
	if missing := s.validator.MissingColumns(header); len(missing) > 0 {
		return &certificate.ImportResult{
			TotalRows:      len(rows),
			MissingColumns: missing,
		}, nil
	}

	if len(rows) == 0 {
		return &certificate.ImportResult{
			Errors: []certificate.RowError{{Row: 0, Column: "file", Reason: certificate.ErrEmptyBatch.Error()}},
		}, nil
	}

	if len(rows) > maxBatchRows {
		return &certificate.ImportResult{
			TotalRows: len(rows),
			Errors: []certificate.RowError{
				{Row: 0, Column: "file", Reason: fmt.Sprintf("file exceeds %d rows limit", maxBatchRows)},
			},
		}, nil
	}

	var rowErrors []certificate.RowError
	for i, row := range rows {
		rowErrors = append(rowErrors, s.validator.ValidateRow(i+1, row)...)
	}
	if len(rowErrors) > 0 {
		log.Warn().Int("error_count", len(rowErrors)).Msg("batch validation failed")
		return &certificate.ImportResult{
			TotalRows:  len(rows),
			FailedRows: len(rowErrors),
			Errors:     rowErrors,
		}, nil
	}

	background, err := s.saveBackground(ctx, in)
	if err != nil {
		return nil, err
	}

	// Rows run sequentially in input order so the identifier list lines up
	// with the uploaded table.
	ids := make([]uuid.UUID, 0, len(rows))
	for i, raw := range rows {
		row := s.validator.ParseRow(i+1, raw)
		id, err := s.recorder.DedupOrCreate(ctx, ev, row, background, true, emittedBy)
		if err != nil {
			log.Error().Err(err).Int("row", row.Index).Msg("failed to persist row, skipping")
			continue
		}
		ids = append(ids, id)
	}

	log.Info().
		Int("total_rows", len(rows)).
		Int("persisted", len(ids)).
		Msg("certificate batch import completed")

	return &certificate.ImportResult{
		Success:        true,
		TotalRows:      len(rows),
		SuccessRows:    len(ids),
		FailedRows:     len(rows) - len(ids),
		CertificateIDs: ids,
		Background:     background,
	}, nil
}

// saveBackground normalizes and uploads the shared background before any row
// is written, so a reconciliation pass racing this import cannot see records
// pointing at a not-yet-saved asset.
func (s *ImportService) saveBackground(ctx context.Context, in BatchInput) (string, error) {
	if err := s.images.ValidateImage(in.Background); err != nil {
		return "", fmt.Errorf("invalid background: %w", err)
	}
	normalized, err := s.images.NormalizeBackground(in.Background)
	if err != nil {
		return "", fmt.Errorf("invalid background: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(in.BackgroundName), filepath.Ext(in.BackgroundName))
	name := fmt.Sprintf("%s-%s.png", time.Now().Format("01-02-2006-15-04-05"), utils.CleanFilename(base))
	return s.blobs.Save(ctx, name, normalized, "image/png")
}

// parseTable reads the uploaded table into a lowercased header and one
// column->value map per data row. CSV is the primary format; XLSX uploads
// go through excelize.
func parseTable(r io.Reader, filename string) ([]string, []map[string]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return parseXLSX(r)
	}
	return parseCSV(r)
}

func parseCSV(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	return recordsToRows(records)
}

func parseXLSX(r io.Reader) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("file has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	return recordsToRows(records)
}

func recordsToRows(records [][]string) ([]string, []map[string]string, error) {
	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
