package certificate

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SchemaVersion selects between the two historical batch layouts. They are
// kept as distinct versions rather than merged because their hash inputs
// differ: the legacy layout hashes the host flag where the current one
// hashes the free-text role.
type SchemaVersion int

const (
	// SchemaRole is the current layout: name, username, pronoun, hours and a
	// free-text role; dates come from the owning event.
	SchemaRole SchemaVersion = iota
	// SchemaLegacy is the first-generation layout with a per-row event name,
	// a single date and a boolean host flag.
	SchemaLegacy
)

// DateLayout is the only accepted per-row date format (legacy schema).
const DateLayout = "02/01/2006"

var (
	hoursPattern   = regexp.MustCompile(`^\d+[hH]\d+$`)
	pronounChoices = []interface{}{"a", "o"}
	hostChoices    = []interface{}{"verdadeiro", "falso", "true", "false"}
)

// RowValidator checks one batch row at a time and never stops at the first
// defect: every column of every row is reported so the operator can fix the
// whole file in one pass.
type RowValidator struct {
	Version SchemaVersion
	// Roles restricts the role column to an enumeration when non-empty.
	// Empty leaves the column free-form, which is how the hosted instance
	// runs.
	Roles []string
}

func (v RowValidator) RequiredColumns() []string {
	if v.Version == SchemaLegacy {
		return []string{"name", "username", "pronoun", "event", "date", "hours", "host"}
	}
	return []string{"name", "username", "pronoun", "hours", "role"}
}

// MissingColumns reports required columns absent from the header. Any match
// aborts the batch before per-row checks run.
func (v RowValidator) MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}
	var missing []string
	for _, col := range v.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateRow returns zero or more defects for the row at the given index.
// The index is the 1-based data row number as the operator sees it.
func (v RowValidator) ValidateRow(index int, row map[string]string) []RowError {
	var errs []RowError
	add := func(column string, err error) {
		if err != nil {
			errs = append(errs, RowError{Row: index, Column: column, Reason: err.Error()})
		}
	}

	add("name", validation.Validate(row["name"],
		validation.Required.Error("is required")))

	add("pronoun", validation.Validate(strings.ToLower(row["pronoun"]),
		validation.Required.Error("is required"),
		validation.In(pronounChoices...).Error("must be one of: a, o")))

	add("hours", validation.Validate(row["hours"],
		validation.Required.Error("is required"),
		validation.Match(hoursPattern).Error("must follow the HHhMM format")))

	switch v.Version {
	case SchemaRole:
		rules := []validation.Rule{validation.Required.Error("is required")}
		if len(v.Roles) > 0 {
			choices := make([]interface{}, len(v.Roles))
			for i, r := range v.Roles {
				choices[i] = strings.ToLower(r)
			}
			rules = append(rules, validation.In(choices...).
				Error("is not an accepted role"))
		}
		add("role", validation.Validate(strings.ToLower(row["role"]), rules...))
	case SchemaLegacy:
		add("event", validation.Validate(row["event"],
			validation.Required.Error("is required")))
		add("host", validation.Validate(strings.ToLower(row["host"]),
			validation.Required.Error("is required"),
			validation.In(hostChoices...).Error("must be one of: verdadeiro, falso, true, false")))
		// The date column may be blank, deferring to the owning event.
		if date := strings.TrimSpace(row["date"]); date != "" {
			if _, err := time.Parse(DateLayout, date); err != nil {
				add("date", validation.NewError("validation_date", "must be a dd/mm/yyyy date"))
			}
		}
	}

	return errs
}

// ParseRow converts a validated raw row into a typed Row. It assumes
// ValidateRow reported no defects for the same input.
func (v RowValidator) ParseRow(index int, row map[string]string) Row {
	parsed := Row{
		Index:    index,
		Name:     strings.TrimSpace(row["name"]),
		Username: strings.TrimSpace(row["username"]),
		Pronoun:  strings.ToLower(strings.TrimSpace(row["pronoun"])),
		Hours:    strings.TrimSpace(row["hours"]),
		Role:     strings.TrimSpace(row["role"]),
	}
	if v.Version == SchemaLegacy {
		host := isPositiveHost(row["host"])
		parsed.Host = &host
		parsed.Event = strings.TrimSpace(row["event"])
		if date := strings.TrimSpace(row["date"]); date != "" {
			if d, err := time.Parse(DateLayout, date); err == nil {
				parsed.Date = &d
			}
		}
	}
	return parsed
}

func isPositiveHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "verdadeiro", "true":
		return true
	}
	return false
}
