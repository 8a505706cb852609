package certificate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCertificateRequest is the manual single-entry path. The background
// is not part of the request: it reuses the one uploaded with the event's
// batch import.
type CreateCertificateRequest struct {
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	Pronoun   string `json:"pronoun"`
	Hours     string `json:"hours"`
	WithHours *bool  `json:"with_hours,omitempty"`
	Role      string `json:"role"`
}

func (r CreateCertificateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 500)),
		validation.Field(&r.Pronoun,
			validation.Required.Error("pronoun is required"),
			validation.In("a", "o").Error("pronoun must be one of: a, o")),
		validation.Field(&r.Hours,
			validation.Required.Error("hours is required"),
			validation.Match(hoursPattern).Error("hours must follow the HHhMM format")),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.Length(1, 200)),
	)
}

// UpdateCertificateRequest updates an issued certificate. Supplying a
// username rotates the participant link; the verification hash is only
// recomputed when ResetHash is set.
type UpdateCertificateRequest struct {
	Name      *string `json:"name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Pronoun   *string `json:"pronoun,omitempty"`
	Hours     *string `json:"hours,omitempty"`
	WithHours *bool   `json:"with_hours,omitempty"`
	Role      *string `json:"role,omitempty"`
	ResetHash bool    `json:"reset_hash,omitempty"`
}

func (r UpdateCertificateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.Pronoun,
			validation.NilOrNotEmpty,
			validation.In("a", "o").Error("pronoun must be one of: a, o")),
		validation.Field(&r.Hours,
			validation.NilOrNotEmpty,
			validation.Match(hoursPattern).Error("hours must follow the HHhMM format")),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.Length(1, 200)),
	)
}

// ValidateHashRequest is the anonymous verification lookup input.
type ValidateHashRequest struct {
	CertificateHash string `json:"certificate_hash"`
}

func (r ValidateHashRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CertificateHash,
			validation.Required.Error("certificate_hash is required"),
			validation.Length(1, 500)),
	)
}
