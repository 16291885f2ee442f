package contact

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Form is an inquiry as typed by the visitor. All fields are plain text.
type Form struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
}

func (f Form) Normalize() Form {
	return Form{
		Name:           strings.TrimSpace(f.Name),
		Email:          strings.ToLower(strings.TrimSpace(f.Email)),
		DocumentType:   strings.TrimSpace(f.DocumentType),
		DocumentNumber: strings.TrimSpace(f.DocumentNumber),
		Subject:        strings.TrimSpace(f.Subject),
		Message:        strings.TrimSpace(f.Message),
	}
}

// Validate checks a normalized form. The returned error is a
// validation.Errors keyed by JSON field name.
func Validate(f Form) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.RuneLength(2, 0)),
		validation.Field(&f.Email, validation.Required, is.EmailFormat),
		validation.Field(&f.DocumentType, validation.Required),
		validation.Field(&f.DocumentNumber, validation.Required, validation.RuneLength(5, 0)),
		validation.Field(&f.Subject, validation.Required, validation.RuneLength(3, 0)),
		validation.Field(&f.Message, validation.Required, validation.RuneLength(10, 0)),
	)
}
