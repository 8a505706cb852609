package certificate

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is one issued participation record (maps table certificates).
type Certificate struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username,omitempty"`
	Pronoun       string     `json:"pronoun"`
	Hours         string     `json:"hours"`
	WithHours     bool       `json:"with_hours"`
	Role          string     `json:"role"`
	EventID       uuid.UUID  `json:"event_id"`
	ParticipantID *uuid.UUID `json:"participant_id,omitempty"`
	Background    string     `json:"background"`
	Hash          string     `json:"certificate_hash"`
	EmittedBy     *uuid.UUID `json:"emitted_by,omitempty"`
	EmittedAt     time.Time  `json:"emitted_at"`
}

// NaturalKey is the field tuple that decides whether two rows describe the
// same certificate. Re-importing a row with an identical tuple reuses the
// existing record instead of creating a duplicate.
type NaturalKey struct {
	Name       string
	Username   string
	Pronoun    string
	EventID    uuid.UUID
	Hours      string
	Role       string
	Background string
}

// Row is one parsed batch row, not persisted; it is discarded after it is
// turned into a Certificate or rejected.
type Row struct {
	Index    int
	Name     string
	Username string
	Pronoun  string
	Hours    string
	Role     string
	// Legacy schema fields
	Host  *bool
	Event string
	Date  *time.Time
}

// NaturalKey builds the candidate record's dedup tuple for a given event
// and background.
func (r Row) NaturalKey(eventID uuid.UUID, background string) NaturalKey {
	return NaturalKey{
		Name:       r.Name,
		Username:   r.Username,
		Pronoun:    r.Pronoun,
		EventID:    eventID,
		Hours:      r.Hours,
		Role:       r.Role,
		Background: background,
	}
}

// RowError describes one field-level defect in a batch row. Errors are
// aggregated across the whole batch so a single resubmission can fix
// everything.
type RowError struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// ImportResult is returned for every batch import attempt, successful or not.
// CertificateIDs keeps input order; rows skipped by a storage failure are
// simply absent, which callers detect by the count mismatch.
type ImportResult struct {
	Success        bool        `json:"success"`
	TotalRows      int         `json:"total_rows"`
	SuccessRows    int         `json:"success_rows"`
	FailedRows     int         `json:"failed_rows"`
	CertificateIDs []uuid.UUID `json:"certificate_ids,omitempty"`
	Errors         []RowError  `json:"errors,omitempty"`
	MissingColumns []string    `json:"missing_columns,omitempty"`
	Background     string      `json:"background,omitempty"`
}

// PublicView is what an anonymous verification lookup may see.
type PublicView struct {
	Name      string    `json:"name"`
	EventName string    `json:"event_name"`
	Hours     string    `json:"hours"`
	Role      string    `json:"role"`
	Hash      string    `json:"certificate_hash"`
	EmittedAt time.Time `json:"emitted_at"`
}

// EventSummary aggregates the certificates of one event for operators.
type EventSummary struct {
	EventID          uuid.UUID `json:"event_id"`
	Certificates     int       `json:"certificates"`
	TotalCreditHours string    `json:"total_credit_hours"`
}
