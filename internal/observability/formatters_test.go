package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonathan/onepager/internal/ats"
	"github.com/jonathan/onepager/internal/fitting"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(types.ResumeRecord{
		Name:       "Ada Lovelace",
		JobTitle:   "Engineer",
		Experience: []types.Experience{{JobTitle: "Analyst"}, {JobTitle: "Engineer"}},
	})
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED RESUME")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Experience: 2")
	assert.Contains(t, output, "Skills:     0")
}

func TestPrintRecord_EmptyName(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecord(types.ResumeRecord{})
	assert.Contains(t, buf.String(), "Name:       -")
}

func TestPrintATSReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	res := ats.Result{
		Score:           78,
		Keywords:        []string{"go", "kubernetes", "postgres", "grpc", "docker", "terraform", "aws"},
		MetricsCount:    3,
		ActionVerbCount: 4,
	}
	p.PrintATSReport(res, []string{"Avoid first-person pronouns"})
	output := buf.String()

	assert.Contains(t, output, "ATS REPORT")
	assert.Contains(t, output, "78/100")
	assert.Contains(t, output, "• kubernetes")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "terraform")
	assert.Contains(t, output, "⚠ Avoid first-person pronouns")
}

func TestPrintATSReport_NoKeywords(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintATSReport(ats.Result{Score: 65}, nil)
	output := buf.String()

	assert.Contains(t, output, "65/100")
	assert.NotContains(t, output, "Keywords:")
	assert.NotContains(t, output, "Issues:")
}

func TestPrintFitResult(t *testing.T) {
	tests := []struct {
		name     string
		result   fitting.Result
		contains []string
	}{
		{
			name: "fits on second attempt",
			result: fitting.Result{
				Strategy: strategy.Compact,
				Pages:    1,
				ATSScore: 81,
				Attempts: []fitting.Attempt{
					{Strategy: strategy.Normal, Height: 1400, Duration: 1200 * time.Millisecond},
					{Strategy: strategy.Compact, Height: 1010, Fits: true, Duration: 900 * time.Millisecond},
				},
			},
			contains: []string{"FIT ATTEMPTS", "✗ normal", "height=1400", "✓ compact", "Fits with compact", "ATS: 81"},
		},
		{
			name: "forced with failed attempt",
			result: fitting.Result{
				Strategy: strategy.Ultra,
				Forced:   true,
				Attempts: []fitting.Attempt{
					{Strategy: strategy.Normal, Error: "browser unavailable"},
				},
			},
			contains: []string{"error: browser unavailable", "Forced render with ultra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintFitResult(tt.result)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "é"+string(bytes.Repeat([]byte("x"), 100)))
	assert.Contains(t, buf.String(), "...")
}
