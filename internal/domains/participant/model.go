package participant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Participant aggregates the certificates issued to one person, looked up by
// their external username (maps table participants).
type Participant struct {
	ID                   uuid.UUID  `json:"id"`
	FullName             string     `json:"full_name"`
	Username             string     `json:"username,omitempty"`
	NumberOfCertificates int        `json:"number_of_certificates"`
	EnrolledAt           *time.Time `json:"enrolled_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	ModifiedAt           time.Time  `json:"modified_at"`
	CreatedBy            *uuid.UUID `json:"created_by,omitempty"`
	ModifiedBy           *uuid.UUID `json:"modified_by,omitempty"`
}

var ErrNotFound = errors.New("participant not found")
