package optimizer

import (
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
)

func applyCaps(rec types.ResumeRecord) types.ResumeRecord {
	rec.Experience = capSlice(rec.Experience, strategy.MaxExperience)
	rec.Education = capSlice(rec.Education, strategy.MaxEducation)
	rec.Skills = capSlice(rec.Skills, strategy.MaxSkills)
	rec.Certifications = capSlice(rec.Certifications, strategy.MaxCertifications)
	rec.Projects = capSlice(rec.Projects, strategy.MaxProjects)
	return rec
}

func capSlice[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// cloneRecord copies every slice so that later edits never reach the caller's record.
func cloneRecord(rec types.ResumeRecord) types.ResumeRecord {
	out := rec
	out.Experience = make([]types.Experience, len(rec.Experience))
	for i, exp := range rec.Experience {
		exp.BulletPoints = append([]string(nil), exp.BulletPoints...)
		out.Experience[i] = exp
	}
	out.Education = append([]types.Education{}, rec.Education...)
	out.Skills = append([]types.Skill{}, rec.Skills...)
	out.Certifications = append([]types.Certification{}, rec.Certifications...)
	out.Projects = append([]types.Project{}, rec.Projects...)
	out.Languages = append([]types.Language{}, rec.Languages...)
	out.Achievements = append([]types.Achievement{}, rec.Achievements...)
	out.CustomSections = make([]types.CustomSection, len(rec.CustomSections))
	for i, cs := range rec.CustomSections {
		cs.Items = append([]string(nil), cs.Items...)
		out.CustomSections[i] = cs
	}
	return out
}
