package strategy

// FontSizes are point sizes for the four text roles.
type FontSizes struct {
	Header       float64
	SectionTitle float64
	Body         float64
	Small        float64
}

// Spacing values are in rem.
type Spacing struct {
	SectionGap     float64
	ContentPadding float64
	ItemGap        float64
}

// ContentLimits are character budgets and the skills grid width.
type ContentLimits struct {
	Summary               int
	ExperienceDescription int
	EducationDescription  int
	SkillsPerRow          int
}

// Profile bundles every tunable a strategy controls.
type Profile struct {
	Fonts   FontSizes
	Spacing Spacing
	Limits  ContentLimits
}

// List caps applied after compression, independent of the strategy.
const (
	MaxExperience     = 5
	MaxEducation      = 2
	MaxSkills         = 12
	MaxCertifications = 3
	MaxProjects       = 2
)

var profiles = [...]Profile{
	Normal: {
		Fonts:   FontSizes{Header: 22, SectionTitle: 13, Body: 11, Small: 9},
		Spacing: Spacing{SectionGap: 1.75, ContentPadding: 1.25, ItemGap: 0.5},
		Limits:  ContentLimits{Summary: 300, ExperienceDescription: 200, EducationDescription: 100, SkillsPerRow: 4},
	},
	Compact: {
		Fonts:   FontSizes{Header: 18, SectionTitle: 11, Body: 10, Small: 8},
		Spacing: Spacing{SectionGap: 1.25, ContentPadding: 0.75, ItemGap: 0.25},
		Limits:  ContentLimits{Summary: 200, ExperienceDescription: 150, EducationDescription: 75, SkillsPerRow: 5},
	},
	Ultra: {
		Fonts:   FontSizes{Header: 16, SectionTitle: 10, Body: 9, Small: 7},
		Spacing: Spacing{SectionGap: 0.75, ContentPadding: 0.5, ItemGap: 0.125},
		Limits:  ContentLimits{Summary: 150, ExperienceDescription: 100, EducationDescription: 50, SkillsPerRow: 6},
	},
	Extreme: {
		Fonts:   FontSizes{Header: 12, SectionTitle: 8, Body: 7, Small: 5},
		Spacing: Spacing{SectionGap: 0.3, ContentPadding: 0.2, ItemGap: 0.05},
		Limits:  ContentLimits{Summary: 80, ExperienceDescription: 50, EducationDescription: 25, SkillsPerRow: 10},
	},
	Windows: {
		Fonts:   FontSizes{Header: 10, SectionTitle: 7, Body: 6, Small: 4},
		Spacing: Spacing{SectionGap: 0.2, ContentPadding: 0.1, ItemGap: 0.02},
		Limits:  ContentLimits{Summary: 60, ExperienceDescription: 30, EducationDescription: 15, SkillsPerRow: 12},
	},
}

// Profile returns the tunables for s. Invalid values get the Normal profile.
func (s Strategy) Profile() Profile {
	if !s.Valid() {
		return profiles[Normal]
	}
	return profiles[s]
}
