// Package resume canonicalizes incoming résumé payloads and provides the text and date helpers used by the renderer.
package resume

import (
	"slices"
	"strings"

	"github.com/jonathan/onepager/internal/types"
)

// PlaceholderJobTitle fills experience entries that carry no title under any alias.
const PlaceholderJobTitle = "Job Title"

// Normalize converts a tolerant request payload into a ResumeRecord.
// It never fails: missing values become empty strings and empty slices.
func Normalize(raw types.RawResume) types.ResumeRecord {
	raw = flatten(raw)

	rec := types.ResumeRecord{
		Name:           raw.Name.String(),
		JobTitle:       firstNonEmpty(raw.JobTitle, raw.Title),
		Email:          raw.Email.String(),
		Phone:          raw.Phone.String(),
		Address:        firstNonEmpty(raw.Address, raw.Location),
		LinkedIn:       raw.LinkedIn.String(),
		Portfolio:      firstNonEmpty(raw.Portfolio, raw.Website),
		Photo:          raw.Photo.String(),
		Summary:        raw.Summary.String(),
		Experience:     make([]types.Experience, 0, len(raw.Experience)),
		Education:      make([]types.Education, 0, len(raw.Education)),
		Skills:         raw.Skills,
		Certifications: raw.Certifications,
		Projects:       raw.Projects,
		Languages:      raw.Languages,
		Achievements:   raw.Achievements,
		CustomSections: raw.CustomSections,
	}

	for _, exp := range raw.Experience {
		bullets := make([]string, 0, len(exp.BulletPoints))
		for _, b := range exp.BulletPoints {
			if s := b.String(); s != "" {
				bullets = append(bullets, s)
			}
		}
		rec.Experience = append(rec.Experience, types.Experience{
			JobTitle:     firstNonEmpty(exp.JobTitle, exp.Title, exp.Position, exp.Role),
			Company:      firstNonEmpty(exp.Company, exp.Organization, exp.Employer),
			Location:     exp.Location.String(),
			StartDate:    exp.StartDate.String(),
			EndDate:      exp.EndDate.String(),
			Description:  exp.Description.String(),
			BulletPoints: bullets,
		})
	}

	for _, edu := range raw.Education {
		rec.Education = append(rec.Education, types.Education{
			Institution: firstNonEmpty(edu.Institution, edu.School),
			Degree:      edu.Degree.String(),
			Field:       firstNonEmpty(edu.Field, edu.FieldOfStudy),
			StartDate:   edu.StartDate.String(),
			EndDate:     edu.EndDate.String(),
			GPA:         edu.GPA.String(),
			Percentage:  edu.Percentage.String(),
			Description: edu.Description.String(),
		})
	}

	return NormalizeRecord(rec)
}

// NormalizeRecord canonicalizes an already-typed record. It returns a new value
// and is idempotent: NormalizeRecord(NormalizeRecord(r)) == NormalizeRecord(r).
func NormalizeRecord(in types.ResumeRecord) types.ResumeRecord {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.JobTitle = strings.TrimSpace(in.JobTitle)
	out.Email = strings.TrimSpace(in.Email)
	out.Phone = strings.TrimSpace(in.Phone)
	out.Address = strings.TrimSpace(in.Address)
	out.LinkedIn = strings.TrimSpace(in.LinkedIn)
	out.Portfolio = strings.TrimSpace(in.Portfolio)
	out.Photo = strings.TrimSpace(in.Photo)
	out.Summary = strings.TrimSpace(in.Summary)

	out.Experience = make([]types.Experience, 0, len(in.Experience))
	for _, exp := range in.Experience {
		exp.JobTitle = strings.TrimSpace(exp.JobTitle)
		if exp.JobTitle == "" {
			exp.JobTitle = PlaceholderJobTitle
		}
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Location = strings.TrimSpace(exp.Location)
		exp.StartDate = strings.TrimSpace(exp.StartDate)
		exp.EndDate = strings.TrimSpace(exp.EndDate)
		exp.Description = strings.TrimSpace(exp.Description)
		exp.BulletPoints = cleanStrings(exp.BulletPoints)
		out.Experience = append(out.Experience, exp)
	}
	SortExperience(out.Experience)

	out.Education = make([]types.Education, 0, len(in.Education))
	for _, edu := range in.Education {
		edu.Institution = strings.TrimSpace(edu.Institution)
		edu.Degree = strings.TrimSpace(edu.Degree)
		edu.Field = strings.TrimSpace(edu.Field)
		edu.StartDate = strings.TrimSpace(edu.StartDate)
		edu.EndDate = strings.TrimSpace(edu.EndDate)
		edu.GPA = strings.TrimSpace(edu.GPA)
		edu.Percentage = strings.TrimSpace(edu.Percentage)
		edu.Description = strings.TrimSpace(edu.Description)
		out.Education = append(out.Education, edu)
	}

	out.Skills = make([]types.Skill, 0, len(in.Skills))
	for _, s := range in.Skills {
		s.Name = strings.TrimSpace(s.Name)
		s.Proficiency = strings.TrimSpace(s.Proficiency)
		if s.Name != "" {
			out.Skills = append(out.Skills, s)
		}
	}

	out.Certifications = make([]types.Certification, 0, len(in.Certifications))
	for _, c := range in.Certifications {
		c.Name = strings.TrimSpace(c.Name)
		c.Issuer = strings.TrimSpace(c.Issuer)
		c.Date = strings.TrimSpace(c.Date)
		c.Description = strings.TrimSpace(c.Description)
		if c.Name != "" {
			out.Certifications = append(out.Certifications, c)
		}
	}

	out.Projects = make([]types.Project, 0, len(in.Projects))
	for _, p := range in.Projects {
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		p.Technologies = strings.TrimSpace(p.Technologies)
		p.Duration = strings.TrimSpace(p.Duration)
		p.Link = strings.TrimSpace(p.Link)
		if p.Name != "" || p.Description != "" {
			out.Projects = append(out.Projects, p)
		}
	}

	out.Languages = make([]types.Language, 0, len(in.Languages))
	for _, l := range in.Languages {
		l.Language = strings.TrimSpace(l.Language)
		l.Proficiency = strings.TrimSpace(l.Proficiency)
		if l.Language != "" {
			out.Languages = append(out.Languages, l)
		}
	}

	out.Achievements = make([]types.Achievement, 0, len(in.Achievements))
	for _, a := range in.Achievements {
		a.Category = strings.TrimSpace(a.Category)
		a.Description = strings.TrimSpace(a.Description)
		if a.Category != "" || a.Description != "" {
			out.Achievements = append(out.Achievements, a)
		}
	}

	out.CustomSections = make([]types.CustomSection, 0, len(in.CustomSections))
	for _, cs := range in.CustomSections {
		cs.Title = strings.TrimSpace(cs.Title)
		cs.Items = cleanStrings(cs.Items)
		if cs.Title != "" || len(cs.Items) > 0 {
			out.CustomSections = append(out.CustomSections, cs)
		}
	}

	return out
}

// SortExperience orders entries newest first by start date. Entries whose start
// date cannot be parsed go last, and ties keep their input order.
func SortExperience(entries []types.Experience) {
	slices.SortStableFunc(entries, func(a, b types.Experience) int {
		ta, okA := ParseDate(a.StartDate)
		tb, okB := ParseDate(b.StartDate)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

// flatten lifts the legacy profile and personal blocks onto the root.
// Values already present on the root win.
func flatten(raw types.RawResume) types.RawResume {
	if p := raw.Profile; p != nil {
		nested := flatten(*p)
		raw.Name = pick(raw.Name, nested.Name)
		raw.JobTitle = pick(raw.JobTitle, nested.JobTitle)
		raw.Title = pick(raw.Title, nested.Title)
		raw.Email = pick(raw.Email, nested.Email)
		raw.Phone = pick(raw.Phone, nested.Phone)
		raw.Address = pick(raw.Address, nested.Address)
		raw.Location = pick(raw.Location, nested.Location)
		raw.LinkedIn = pick(raw.LinkedIn, nested.LinkedIn)
		raw.Portfolio = pick(raw.Portfolio, nested.Portfolio)
		raw.Website = pick(raw.Website, nested.Website)
		raw.Summary = pick(raw.Summary, nested.Summary)
		// The nested photo takes precedence for legacy documents.
		raw.Photo = pick(nested.Photo, raw.Photo)
		raw.Experience = pickSlice(raw.Experience, nested.Experience)
		raw.Education = pickSlice(raw.Education, nested.Education)
		raw.Skills = pickSlice(raw.Skills, nested.Skills)
		raw.Certifications = pickSlice(raw.Certifications, nested.Certifications)
		raw.Projects = pickSlice(raw.Projects, nested.Projects)
		raw.Languages = pickSlice(raw.Languages, nested.Languages)
		raw.Achievements = pickSlice(raw.Achievements, nested.Achievements)
		raw.CustomSections = pickSlice(raw.CustomSections, nested.CustomSections)
		raw.Profile = nil
	}

	if p := raw.Personal; p != nil {
		raw.Name = pick(p.Name, raw.Name)
		raw.JobTitle = pick(p.JobTitle, raw.JobTitle)
		raw.Email = pick(p.Email, raw.Email)
		raw.Phone = pick(p.Phone, raw.Phone)
		raw.Address = pick(p.Location, pick(p.Address, raw.Address))
		raw.LinkedIn = pick(p.LinkedIn, raw.LinkedIn)
		raw.Portfolio = pick(p.Portfolio, raw.Portfolio)
		raw.Photo = pick(p.Photo, raw.Photo)
		raw.Personal = nil
	}

	return raw
}

func pick(primary, fallback types.FlexString) types.FlexString {
	if primary.String() != "" {
		return primary
	}
	return fallback
}

func pickSlice[T any](primary, fallback []T) []T {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}

func firstNonEmpty(values ...types.FlexString) string {
	for _, v := range values {
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
