package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisibleText extracts the text a reader would see in a rendered page, with
// runs of whitespace collapsed. Style and script content is ignored.
func VisibleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered html", Cause: err}
	}
	doc.Find("script, style, noscript, svg").Remove()
	return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
}

// SectionTitles lists the section headings present in a rendered page, in order.
func SectionTitles(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RenderError{Message: "failed to parse rendered html", Cause: err}
	}
	titles := []string{}
	doc.Find(".section-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, strings.TrimSpace(s.Text()))
	})
	return titles, nil
}
