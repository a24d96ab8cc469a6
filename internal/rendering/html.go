package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/onepager/internal/resume"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
)

// Display rules for the one-page layout.
const (
	MaxBulletsPerRole         = 3
	EducationDescriptionClip  = 60
	CertificationClip         = 50
	ProjectDescriptionClip    = 120
	ProjectTechnologiesClip   = 30
	ProjectLinkClip           = 25
	MaxAdditionalItems        = 4
	windowsBaseFontPx         = 12
	defaultBaseFontPx         = 15
	defaultFontFamily         = "Inter, Arial, sans-serif"
	defaultLanguage           = "en"
	placeholderName           = "Your Name"
	placeholderCompany        = "Company"
	placeholderDegree         = "Degree"
	placeholderInstitution    = "Institution"
	placeholderProject        = "Project"
	placeholderStartDate      = "Start"
	placeholderEndDate        = "Present"
	placeholderAchievementCat = "Achievement"
)

//go:embed onepager.html.tmpl
var onePagerSource string

var (
	onePagerTemplate *template.Template
	onePagerErr      error
	onePagerOnce     sync.Once
)

func parsedTemplate() (*template.Template, error) {
	onePagerOnce.Do(func() {
		onePagerTemplate, onePagerErr = template.New("onepager").Parse(onePagerSource)
		if onePagerErr != nil {
			onePagerErr = &TemplateError{Message: "failed to parse one-pager template", Cause: onePagerErr}
		}
	})
	return onePagerTemplate, onePagerErr
}

// Options select the look of a rendered page.
type Options struct {
	Template Template
	Colors   types.CustomColors
	Strategy strategy.Strategy
	Language string
	Dates    resume.DatePreferences
}

type pageData struct {
	Language   string
	FontFamily template.CSS
	BaseFontPx int
	Colors     Colors
	Fonts      strategy.FontSizes
	Spacing    strategy.Spacing
	Icons      iconSet

	Header         headerView
	Summary        string
	Experience     []experienceView
	Projects       []projectView
	Languages      []string
	Additional     []additionalView
	Achievements   []achievementView
	SkillRows      [][]string
	Certifications []types.Certification
	Education      []educationView
}

type headerView struct {
	Name      string
	JobTitle  string
	Email     string
	Phone     string
	LinkedIn  string
	Portfolio string
	Address   string
	Photo     template.URL
	Initials  string
}

type experienceView struct {
	Title    string
	Company  string
	Dates    string
	Location string
	Bullets  []string
}

type projectView struct {
	Name         string
	Technologies string
	Duration     string
	Description  string
	Link         string
}

type educationView struct {
	Degree      string
	Institution string
	Dates       string
	Grade       string
	Description string
}

type achievementView struct {
	Category    string
	Description string
	Background  string
	Icon        template.HTML
}

type additionalView struct {
	Title string
	Text  string
}

// RenderHTML renders rec as a complete one-page HTML document.
func RenderHTML(rec types.ResumeRecord, opts Options) (string, error) {
	tmpl, err := parsedTemplate()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, buildPageData(rec, opts)); err != nil {
		return "", &TemplateError{Message: "failed to execute one-pager template", Template: opts.Template.Key, Cause: err}
	}
	return b.String(), nil
}

func buildPageData(rec types.ResumeRecord, opts Options) pageData {
	profile := opts.Strategy.Profile()
	if opts.Dates.Format == "" {
		opts.Dates = resume.DefaultDatePreferences()
	}

	data := pageData{
		Language:   valueOr(strings.ToLower(opts.Language), defaultLanguage),
		FontFamily: template.CSS(valueOr(opts.Template.Style.FontFamily, defaultFontFamily)),
		BaseFontPx: defaultBaseFontPx,
		Colors:     MergeColors(opts.Colors, opts.Template.Style.Colors),
		Fonts:      profile.Fonts,
		Spacing:    profile.Spacing,
		Icons:      icons,
		Summary:    resume.CleanText(rec.Summary),
		Header: headerView{
			Name:      valueOr(resume.CleanText(rec.Name), placeholderName),
			JobTitle:  resume.CleanText(rec.JobTitle),
			Email:     resume.CleanText(rec.Email),
			Phone:     resume.CleanText(rec.Phone),
			LinkedIn:  resume.CleanText(rec.LinkedIn),
			Portfolio: resume.CleanText(rec.Portfolio),
			Address:   resume.CleanText(rec.Address),
			Photo:     photoURL(rec.Photo),
			Initials:  resume.Initials(rec.Name),
		},
	}
	if opts.Strategy == strategy.Windows {
		data.BaseFontPx = windowsBaseFontPx
	}

	for _, exp := range rec.Experience {
		data.Experience = append(data.Experience, experienceView{
			Title:    valueOr(resume.CleanText(exp.JobTitle), resume.PlaceholderJobTitle),
			Company:  valueOr(resume.CleanText(exp.Company), placeholderCompany),
			Dates:    dateRange(exp.StartDate, exp.EndDate, opts.Dates),
			Location: resume.CleanText(exp.Location),
			Bullets:  roleBullets(exp),
		})
	}

	for _, p := range rec.Projects {
		data.Projects = append(data.Projects, projectView{
			Name:         valueOr(resume.CleanText(p.Name), placeholderProject),
			Technologies: resume.Truncate(resume.CleanText(p.Technologies), ProjectTechnologiesClip),
			Duration:     resume.CleanText(p.Duration),
			Description:  resume.Truncate(resume.CleanText(p.Description), ProjectDescriptionClip),
			Link:         resume.Truncate(resume.CleanText(p.Link), ProjectLinkClip),
		})
	}

	for _, l := range rec.Languages {
		label := resume.CleanText(l.Language)
		if prof := resume.CleanText(l.Proficiency); prof != "" {
			label = fmt.Sprintf("%s (%s)", label, prof)
		}
		data.Languages = append(data.Languages, label)
	}

	for _, cs := range rec.CustomSections {
		items := cs.Items
		if len(items) > MaxAdditionalItems {
			items = items[:MaxAdditionalItems]
		}
		data.Additional = append(data.Additional, additionalView{
			Title: resume.CleanText(cs.Title),
			Text:  strings.Join(items, " • "),
		})
	}

	for i, a := range rec.Achievements {
		data.Achievements = append(data.Achievements, achievementView{
			Category:    valueOr(resume.CleanText(a.Category), placeholderAchievementCat),
			Description: resume.CleanText(a.Description),
			Background:  AchievementBackground(i),
			Icon:        achievementIcons[i%len(achievementIcons)],
		})
	}

	data.SkillRows = skillRows(rec.Skills, profile.Limits.SkillsPerRow)

	for _, c := range rec.Certifications {
		data.Certifications = append(data.Certifications, types.Certification{
			Name:        resume.CleanText(c.Name),
			Issuer:      resume.CleanText(c.Issuer),
			Date:        resume.CleanText(c.Date),
			Description: resume.Truncate(resume.CleanText(c.Description), CertificationClip),
		})
	}

	for _, edu := range rec.Education {
		degree := resume.CleanText(edu.Degree)
		if field := resume.CleanText(edu.Field); field != "" && degree != "" {
			degree += ", " + field
		}
		data.Education = append(data.Education, educationView{
			Degree:      valueOr(degree, placeholderDegree),
			Institution: valueOr(resume.CleanText(edu.Institution), placeholderInstitution),
			Dates:       dateRange(edu.StartDate, edu.EndDate, opts.Dates),
			Grade:       grade(edu),
			Description: resume.Truncate(resume.CleanText(edu.Description), EducationDescriptionClip),
		})
	}

	return data
}

// roleBullets prefers explicit bullets and falls back to the description.
func roleBullets(exp types.Experience) []string {
	bullets := exp.BulletPoints
	if len(bullets) == 0 {
		if desc := resume.CleanText(exp.Description); desc != "" {
			bullets = []string{desc}
		}
	}
	if len(bullets) > MaxBulletsPerRole {
		bullets = bullets[:MaxBulletsPerRole]
	}
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if b = resume.CleanText(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func skillRows(skills []types.Skill, perRow int) [][]string {
	if perRow <= 0 {
		perRow = len(skills)
	}
	var rows [][]string
	var row []string
	for _, s := range skills {
		name := resume.CleanText(s.Name)
		if name == "" {
			continue
		}
		row = append(row, name)
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func dateRange(start, end string, prefs resume.DatePreferences) string {
	return valueOr(resume.FormatDate(start, prefs), placeholderStartDate) + " - " +
		valueOr(resume.FormatDate(end, prefs), placeholderEndDate)
}

func grade(edu types.Education) string {
	switch {
	case edu.GPA != "":
		return "GPA: " + resume.CleanText(edu.GPA)
	case edu.Percentage != "":
		return "Percentage: " + resume.CleanText(edu.Percentage)
	default:
		return ""
	}
}

// photoURL admits inline images and http(s) links. Anything else is dropped
// and the initials badge is shown instead.
func photoURL(photo string) template.URL {
	photo = strings.TrimSpace(photo)
	lower := strings.ToLower(photo)
	if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return template.URL(photo)
	}
	return ""
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
