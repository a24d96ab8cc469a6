package rendering

import "github.com/jonathan/onepager/internal/types"

// Default colours used when neither the request nor the template sets one.
const (
	DefaultPrimary    = "#4B5EAA"
	DefaultSecondary  = "#6B7280"
	DefaultText       = "#1F2937"
	DefaultAccent     = "#9333EA"
	DefaultBackground = "#FFFFFF"
	SidebarColor      = "#F7F9FB"
)

// Colors is the resolved colour set handed to the HTML template.
type Colors struct {
	Primary    string
	Secondary  string
	Text       string
	Accent     string
	Background string
	Sidebar    string
}

// MergeColors resolves each colour as custom, then template, then default.
func MergeColors(custom types.CustomColors, tmpl Palette) Colors {
	return Colors{
		Primary:    firstColor(custom.Primary, tmpl.Primary, DefaultPrimary),
		Secondary:  firstColor(custom.Secondary, tmpl.Secondary, DefaultSecondary),
		Text:       firstColor(custom.Text, tmpl.Text, DefaultText),
		Accent:     firstColor(custom.Accent, tmpl.Accent, DefaultAccent),
		Background: firstColor(custom.Background, tmpl.Background, DefaultBackground),
		Sidebar:    SidebarColor,
	}
}

func firstColor(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
