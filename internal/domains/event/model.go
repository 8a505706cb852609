package event

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Event is one occurrence certificates are issued for (maps table events).
type Event struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"event_name"`
	DateStart time.Time  `json:"date_start"`
	DateEnd   time.Time  `json:"date_end"`
	Link      string     `json:"link,omitempty"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
}

var ErrNotFound = errors.New("event not found")

type CreateEventRequest struct {
	Name      string     `json:"event_name"`
	DateStart time.Time  `json:"date_start"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	Link      string     `json:"link,omitempty"`
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("event_name is required"),
			validation.Length(1, 300)),
		validation.Field(&r.DateStart,
			validation.Required.Error("date_start is required")),
		validation.Field(&r.Link, validation.Length(0, 1000)),
	)
}

// EndOrStart resolves the end date, which defaults to the start date.
func (r CreateEventRequest) EndOrStart() time.Time {
	if r.DateEnd == nil || r.DateEnd.IsZero() {
		return r.DateStart
	}
	return *r.DateEnd
}

type UpdateEventRequest struct {
	Name      *string    `json:"event_name,omitempty"`
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	Link      *string    `json:"link,omitempty"`
}

func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 300)),
		validation.Field(&r.Link, validation.Length(0, 1000)),
	)
}
