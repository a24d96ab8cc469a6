package types

import (
	"github.com/go-playground/validator/v10"
)

// Request defaults applied when the caller omits a field.
const (
	DefaultTemplate = "ats_optimized"
	DefaultLanguage = "en"
	DefaultCountry  = "us"
)

// CustomColors overrides template colours. Empty fields fall through to the template.
type CustomColors struct {
	Primary    string `json:"primary,omitempty" validate:"omitempty,hexcolor"`
	Secondary  string `json:"secondary,omitempty" validate:"omitempty,hexcolor"`
	Text       string `json:"text,omitempty" validate:"omitempty,hexcolor"`
	Accent     string `json:"accent,omitempty" validate:"omitempty,hexcolor"`
	Background string `json:"background,omitempty" validate:"omitempty,hexcolor"`
}

// GenerateRequest is the body of a one-pager generation request.
type GenerateRequest struct {
	Data         *RawResume   `json:"data"`
	Template     string       `json:"template" validate:"omitempty,max=64"`
	CustomColors CustomColors `json:"customColors"`
	Language     string       `json:"language" validate:"omitempty,alpha,max=8"`
	Country      string       `json:"country" validate:"omitempty,alpha,max=8"`
}

// ApplyDefaults fills omitted optional fields.
func (r *GenerateRequest) ApplyDefaults() {
	if r.Template == "" {
		r.Template = DefaultTemplate
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Country == "" {
		r.Country = DefaultCountry
	}
}

// Validate validates the GenerateRequest using the validator.
// A missing Data field is not a validation failure here; callers report it separately.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreRequest is the body of an ATS scoring request.
type ScoreRequest struct {
	Data *RawResume `json:"data"`
}
