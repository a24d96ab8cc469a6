// Package observability builds the process logger and formats verbose CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/onepager/internal/ats"
	"github.com/jonathan/onepager/internal/fitting"
	"github.com/jonathan/onepager/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs a short summary of a normalized résumé.
func (p *Printer) PrintRecord(rec types.ResumeRecord) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:       %s\n", valueOr(rec.Name, "-")))
	sb.WriteString(fmt.Sprintf("Title:      %s\n", valueOr(rec.JobTitle, "-")))
	sb.WriteString(fmt.Sprintf("Experience: %d\n", len(rec.Experience)))
	sb.WriteString(fmt.Sprintf("Education:  %d\n", len(rec.Education)))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", len(rec.Skills)))
	sb.WriteString(fmt.Sprintf("Projects:   %d", len(rec.Projects)))

	p.printBox("NORMALIZED RESUME", sb.String())
}

// PrintATSReport outputs the ATS estimate, its top keywords and lint issues.
func (p *Printer) PrintATSReport(res ats.Result, issues []string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:        %d/100\n", res.Score))
	sb.WriteString(fmt.Sprintf("Metrics:      %d\n", res.MetricsCount))
	sb.WriteString(fmt.Sprintf("Action verbs: %d\n", res.ActionVerbCount))
	sb.WriteString(fmt.Sprintf("Sections:     %d\n", res.PresentSections))
	sb.WriteString(fmt.Sprintf("Bullets:      %d\n", res.BulletPoints))

	if len(res.Keywords) > 0 {
		sb.WriteString("\nKeywords:\n")
		count := min(len(res.Keywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", res.Keywords[i]))
		}
		if len(res.Keywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(res.Keywords)-maxItemsToShow))
		}
	}

	if len(issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range issues {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
		}
	}

	p.printBox("ATS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitResult outputs every fit attempt and the strategy that was exported.
func (p *Printer) PrintFitResult(res fitting.Result) {
	var sb strings.Builder

	for _, att := range res.Attempts {
		status := "✗"
		if att.Fits {
			status = "✓"
		}
		line := fmt.Sprintf("%s %-8s height=%-5d %s", status, att.Strategy, att.Height, att.Duration.Round(time.Millisecond))
		if att.Error != "" {
			line = fmt.Sprintf("%s %-8s error: %s", status, att.Strategy, att.Error)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	if res.Forced {
		sb.WriteString(fmt.Sprintf("Forced render with %s\n", res.Strategy))
	} else {
		sb.WriteString(fmt.Sprintf("Fits with %s\n", res.Strategy))
	}
	sb.WriteString(fmt.Sprintf("Pages: %d  ATS: %d", res.Pages, res.ATSScore))

	p.printBox("FIT ATTEMPTS", sb.String())
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
