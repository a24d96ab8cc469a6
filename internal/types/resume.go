// Package types provides type definitions for the résumé data flowing through the one-pager pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResumeRecord is the canonical résumé document produced by normalization.
type ResumeRecord struct {
	Name      string `json:"name"`
	JobTitle  string `json:"jobTitle"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Photo     string `json:"photo"`
	Summary   string `json:"summary"`

	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []Language      `json:"languages"`
	Achievements   []Achievement   `json:"achievements"`
	CustomSections []CustomSection `json:"customSections"`

	// ATSScore is derived by the optimizer and never read from input.
	ATSScore int `json:"atsScore,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	BulletPoints []string `json:"bulletPoints,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Percentage  string `json:"percentage"`
	Description string `json:"description"`
}

// Skill is a named skill with an optional proficiency.
type Skill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an object.
func (s *Skill) UnmarshalJSON(data []byte) error {
	if name, ok := decodeBareString(data); ok {
		*s = Skill{Name: name}
		return nil
	}
	var raw struct {
		Name        FlexString `json:"name"`
		Skill       FlexString `json:"skill"`
		Proficiency FlexString `json:"proficiency"`
		Level       FlexString `json:"level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid skill: %w", err)
	}
	*s = Skill{
		Name:        firstNonEmpty(raw.Name, raw.Skill),
		Proficiency: firstNonEmpty(raw.Proficiency, raw.Level),
	}
	return nil
}

// Certification is a professional certification.
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an object.
func (c *Certification) UnmarshalJSON(data []byte) error {
	if name, ok := decodeBareString(data); ok {
		*c = Certification{Name: name}
		return nil
	}
	var raw struct {
		Name         FlexString `json:"name"`
		Title        FlexString `json:"title"`
		Issuer       FlexString `json:"issuer"`
		Organization FlexString `json:"organization"`
		Date         FlexString `json:"date"`
		Description  FlexString `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid certification: %w", err)
	}
	*c = Certification{
		Name:        firstNonEmpty(raw.Name, raw.Title),
		Issuer:      firstNonEmpty(raw.Issuer, raw.Organization),
		Date:        raw.Date.String(),
		Description: raw.Description.String(),
	}
	return nil
}

// Project is a portfolio project.
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Link         string `json:"link,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an object.
func (p *Project) UnmarshalJSON(data []byte) error {
	if name, ok := decodeBareString(data); ok {
		*p = Project{Name: name}
		return nil
	}
	var raw struct {
		Name         FlexString `json:"name"`
		Title        FlexString `json:"title"`
		Description  FlexString `json:"description"`
		Technologies FlexString `json:"technologies"`
		Duration     FlexString `json:"duration"`
		Link         FlexString `json:"link"`
		URL          FlexString `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	*p = Project{
		Name:         firstNonEmpty(raw.Name, raw.Title),
		Description:  raw.Description.String(),
		Technologies: raw.Technologies.String(),
		Duration:     raw.Duration.String(),
		Link:         firstNonEmpty(raw.Link, raw.URL),
	}
	return nil
}

// Language is a spoken language.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an object.
func (l *Language) UnmarshalJSON(data []byte) error {
	if name, ok := decodeBareString(data); ok {
		*l = Language{Language: name}
		return nil
	}
	var raw struct {
		Language    FlexString `json:"language"`
		Name        FlexString `json:"name"`
		Proficiency FlexString `json:"proficiency"`
		Level       FlexString `json:"level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	*l = Language{
		Language:    firstNonEmpty(raw.Language, raw.Name),
		Proficiency: firstNonEmpty(raw.Proficiency, raw.Level),
	}
	return nil
}

// Achievement is a headline accomplishment shown in the sidebar.
type Achievement struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// UnmarshalJSON accepts an object or a "Category: description" string.
func (a *Achievement) UnmarshalJSON(data []byte) error {
	if text, ok := decodeBareString(data); ok {
		category, description, found := strings.Cut(text, ":")
		if !found {
			*a = Achievement{Description: strings.TrimSpace(text)}
			return nil
		}
		*a = Achievement{
			Category:    strings.TrimSpace(category),
			Description: strings.TrimSpace(description),
		}
		return nil
	}
	var raw struct {
		Category    FlexString `json:"category"`
		Title       FlexString `json:"title"`
		Description FlexString `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid achievement: %w", err)
	}
	*a = Achievement{
		Category:    firstNonEmpty(raw.Category, raw.Title),
		Description: raw.Description.String(),
	}
	return nil
}

// CustomSection is a free-form titled list.
type CustomSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// UnmarshalJSON tolerates items given as strings or as objects with a name/title/description.
func (c *CustomSection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title   FlexString        `json:"title"`
		Name    FlexString        `json:"name"`
		Items   []json.RawMessage `json:"items"`
		Content FlexString        `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid custom section: %w", err)
	}
	section := CustomSection{Title: firstNonEmpty(raw.Title, raw.Name)}
	for _, item := range raw.Items {
		if text, ok := decodeBareString(item); ok {
			if text != "" {
				section.Items = append(section.Items, text)
			}
			continue
		}
		var obj struct {
			Name        FlexString `json:"name"`
			Title       FlexString `json:"title"`
			Description FlexString `json:"description"`
		}
		if err := json.Unmarshal(item, &obj); err == nil {
			if text := firstNonEmpty(obj.Name, obj.Title, obj.Description); text != "" {
				section.Items = append(section.Items, text)
			}
		}
	}
	if len(section.Items) == 0 {
		if content := raw.Content.String(); content != "" {
			section.Items = []string{content}
		}
	}
	*c = section
	return nil
}

// decodeBareString reports whether data is a JSON string and returns it trimmed.
func decodeBareString(data []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, `"`) {
		return "", false
	}
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}
