package source

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrURLRequired  = errors.New("url is required")
	ErrInvalidURL   = errors.New("url must be an absolute address")
	ErrUnknownField = errors.New("unknown field")
)

// Field identifies an editable draft field.
type Field string

const (
	FieldName Field = "name"
	FieldType Field = "type"
	FieldURL  Field = "url"
)

// Fields returns the draft fields in form order.
func Fields() []Field {
	return []Field{FieldName, FieldType, FieldURL}
}

// ParseField converts raw input into a Field.
func ParseField(raw string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
}

// Draft is the user-entered data for a source that does not exist yet.
type Draft struct {
	Name string `json:"name" jsonschema:"required,minLength=1,description=Display name of the source"`
	Type Type   `json:"type" jsonschema:"required,enum=youtube,enum=rss,enum=podcast,default=youtube"`
	URL  string `json:"url" jsonschema:"required,format=uri,description=Feed or channel address"`
}

// NewDraft returns an empty draft with the default type.
func NewDraft() Draft {
	return Draft{Type: YouTube}
}

// Empty reports whether the draft equals NewDraft.
func (d Draft) Empty() bool {
	return d == NewDraft()
}

// Get returns the value of a field.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldType:
		return string(d.Type)
	case FieldURL:
		return d.URL
	default:
		return ""
	}
}

// With returns a copy of the draft with one field replaced.
// An unknown type leaves the draft unchanged and returns ErrUnknownType.
func (d Draft) With(field Field, value string) (Draft, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldType:
		t, err := ParseType(value)
		if err != nil {
			return d, err
		}
		d.Type = t
	case FieldURL:
		d.URL = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return d, nil
}

// Validate checks the draft the way the add form's native inputs do: a
// required text name, the type enum and a required url input. The url is
// trimmed like a url input's value and must carry a scheme; a host is not
// required.
func (d Draft) Validate() error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, ErrNameRequired)
	}

	if !d.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownType, d.Type))
	}

	switch u := strings.TrimSpace(d.URL); {
	case u == "":
		errs = append(errs, ErrURLRequired)
	case !absolute(u):
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidURL, u))
	}

	return errors.Join(errs...)
}

func absolute(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}
