package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/onepager/internal/resume"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() types.ResumeRecord {
	return types.ResumeRecord{
		Name:     "Ada Lovelace",
		JobTitle: "Staff Engineer",
		Email:    "ada@example.com",
		Phone:    "+44 20 0000",
		Address:  "London",
		Summary:  "Engineer   with a\n taste for engines.",
		Experience: []types.Experience{
			{
				JobTitle:     "Lead",
				Company:      "Analytical Engines",
				StartDate:    "2020-01",
				EndDate:      "present",
				Location:     "London",
				BulletPoints: []string{"one bullet", "two bullet", "three bullet", "four bullet"},
			},
			{JobTitle: "Engineer", StartDate: "2018", Description: "Built the difference engine."},
		},
		Education: []types.Education{
			{Institution: "University", Degree: "BSc", Field: "Mathematics", GPA: "3.9", Description: strings.Repeat("x", 80)},
		},
		Skills: []types.Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "Kubernetes"}, {Name: "AWS"}, {Name: "Terraform"}},
		Certifications: []types.Certification{
			{Name: "CKA", Issuer: "CNCF", Date: "2023", Description: strings.Repeat("y", 70)},
		},
		Projects: []types.Project{
			{Name: "Engine", Technologies: strings.Repeat("t", 40), Description: "Punch cards.", Link: "https://example.com/a/very/long/link"},
		},
		Languages:      []types.Language{{Language: "English", Proficiency: "Native"}, {Language: "French"}},
		Achievements:   []types.Achievement{{Category: "Impact", Description: "Shipped it."}, {Description: "Nameless."}},
		CustomSections: []types.CustomSection{{Title: "Interests", Items: []string{"a", "b", "c", "d", "e"}}},
	}
}

func render(t *testing.T, rec types.ResumeRecord, opts Options) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(rec, opts)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_Sections(t *testing.T) {
	html, err := RenderHTML(sampleRecord(), Options{Strategy: strategy.Normal})
	require.NoError(t, err)

	titles, err := SectionTitles(html)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SUMMARY", "EXPERIENCE", "PROJECTS", "LANGUAGES", "ADDITIONAL INFO",
		"KEY ACHIEVEMENTS", "SKILLS", "CERTIFICATIONS", "EDUCATION",
	}, titles)
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	html, err := RenderHTML(types.ResumeRecord{Name: "Solo"}, Options{})
	require.NoError(t, err)

	titles, err := SectionTitles(html)
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestRenderHTML_Content(t *testing.T) {
	doc := render(t, sampleRecord(), Options{Strategy: strategy.Compact})

	assert.Equal(t, "Ada Lovelace", doc.Find(".name").Text())
	assert.Equal(t, "AL", doc.Find(".badge-initials").Text())
	assert.Equal(t, 0, doc.Find("img.badge-photo").Length())
	assert.Equal(t, "Engineer with a taste for engines.", strings.TrimSpace(doc.Find(".main-col .body-text").First().Text()))

	roles := doc.Find(".main-col section").Eq(1).Find(".item")
	require.Equal(t, 2, roles.Length())
	assert.Equal(t, 3, roles.Eq(0).Find("li").Length(), "bullets are capped at three")
	assert.Contains(t, roles.Eq(0).Find(".meta").Text(), "Jan 2020 - Present")
	assert.Equal(t, "Company", roles.Eq(1).Find(".item-org").Last().Text())
	assert.Equal(t, "Built the difference engine.", strings.TrimSpace(roles.Eq(1).Find("li").Text()))
	assert.Contains(t, roles.Eq(1).Find(".meta").Text(), "2018 - Present")

	assert.Contains(t, doc.Find(".main-col").Text(), "["+strings.Repeat("t", 30)+"...]")
	assert.Contains(t, doc.Find(".main-col").Text(), "https://example.com/a/ver...")
	assert.Contains(t, doc.Find(".main-col").Text(), "English (Native)")
	assert.Contains(t, doc.Find(".main-col").Text(), "a • b • c • d")
	assert.NotContains(t, doc.Find(".main-col").Text(), "• e")

	sidebar := doc.Find(".sidebar-col")
	assert.Contains(t, sidebar.Text(), strings.Repeat("y", 50)+"...")
	assert.Contains(t, sidebar.Text(), strings.Repeat("x", 60)+"...")
	assert.Contains(t, sidebar.Text(), "BSc, Mathematics")
	assert.Contains(t, sidebar.Text(), "GPA: 3.9")
	assert.Equal(t, "Achievement", sidebar.Find(".achievement-title").Eq(1).Text())

	style, _ := sidebar.Find(".achievement-icon").Eq(1).Attr("style")
	assert.Contains(t, style, "#E3F2FD")
}

func TestRenderHTML_SkillRows(t *testing.T) {
	doc := render(t, sampleRecord(), Options{Strategy: strategy.Normal})

	rows := doc.Find(".sidebar-col .tags")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, 4, rows.Eq(0).Find(".tag").Length())
	assert.Equal(t, 1, rows.Eq(1).Find(".tag").Length())
}

func TestRenderHTML_Photo(t *testing.T) {
	tests := []struct {
		name  string
		photo string
		shown bool
	}{
		{"data url", "data:image/png;base64,AAAA", true},
		{"https", "https://example.com/me.png", true},
		{"javascript scheme", "javascript:alert(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			rec.Photo = tt.photo
			doc := render(t, rec, Options{})

			src, ok := doc.Find("img.badge-photo").Attr("src")
			assert.Equal(t, tt.shown, ok)
			if tt.shown {
				assert.Equal(t, tt.photo, src)
			}
		})
	}
}

func TestRenderHTML_StrategyStyles(t *testing.T) {
	normal, err := RenderHTML(sampleRecord(), Options{Strategy: strategy.Normal})
	require.NoError(t, err)
	windows, err := RenderHTML(sampleRecord(), Options{Strategy: strategy.Windows})
	require.NoError(t, err)

	assert.Contains(t, normal, "font-size: 15px")
	assert.Contains(t, normal, "font-size: 22pt")
	assert.Contains(t, windows, "font-size: 12px")
	assert.Contains(t, windows, "font-size: 10pt")
}

func TestRenderHTML_ColorsAndFont(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	html, err := RenderHTML(sampleRecord(), Options{
		Template: reg.Lookup("ats_optimized"),
		Colors:   types.CustomColors{Accent: "#123456"},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "font-family: 'Arial', 'Helvetica', sans-serif")
	assert.Contains(t, html, "color: #000000")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	rec := sampleRecord()
	rec.Name = "<script>alert(1)</script>"

	html, err := RenderHTML(rec, Options{})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")

	text, err := VisibleText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "<script>alert(1)</script>")
}

func TestRenderHTML_DatePreferences(t *testing.T) {
	rec := types.ResumeRecord{Experience: []types.Experience{{JobTitle: "Dev", StartDate: "Mar 2021", EndDate: "2022-06"}}}

	doc := render(t, rec, Options{Dates: resume.DatePreferences{Format: "MMMM yyyy"}})

	assert.Contains(t, doc.Find(".meta").Text(), "March 2021 - Jun 2022")
}

func TestVisibleText(t *testing.T) {
	text, err := VisibleText(`<html><head><style>.a{color:red}</style></head><body><h1>Hello</h1>
		<script>var x = 1;</script><p>  big
		world </p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Hello big world", text)
}
