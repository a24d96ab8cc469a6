// Package ats estimates how well a résumé reads to an applicant tracking system.
// The score is a heuristic over the serialized record; it is reported, never enforced.
package ats

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/jonathan/onepager/internal/types"
)

// BaseScore is the starting point before any signal is counted.
const BaseScore = 65

// Signals are the structural inputs that cannot be recovered from flat text.
type Signals struct {
	PresentSections int
	BulletPoints    int
}

// Result is the outcome of scoring a text.
type Result struct {
	Score              int      `json:"score"`
	Keywords           []string `json:"keywords"`
	MetricsCount       int      `json:"metricsCount"`
	ActionVerbCount    int      `json:"actionVerbCount"`
	TechnicalCount     int      `json:"technicalCount"`
	CertificationCount int      `json:"certificationCount"`
	Density            float64  `json:"density"`
	PresentSections    int      `json:"presentSections"`
	BulletPoints       int      `json:"bulletPoints"`
}

// Score computes the ATS estimate for text.
func Score(text string, signals Signals) Result {
	res := Result{
		Keywords:           ExtractKeywords(text),
		MetricsCount:       len(scoreMetricPattern.FindAllStringIndex(text, -1)),
		ActionVerbCount:    len(actionVerbPattern.FindAllStringIndex(text, -1)),
		TechnicalCount:     len(scoreTechnicalPattern.FindAllStringIndex(text, -1)),
		CertificationCount: len(scoreCertPattern.FindAllStringIndex(text, -1)),
		PresentSections:    signals.PresentSections,
		BulletPoints:       signals.BulletPoints,
	}
	if len(text) > 0 {
		res.Density = float64(len(res.Keywords)) / (float64(len(text)) / 100)
	}

	score := float64(BaseScore)
	score += math.Min(float64(len(res.Keywords))*0.4, 18)
	score += math.Min(float64(res.MetricsCount)*1.8, 12)
	score += math.Min(float64(res.ActionVerbCount)*0.6, 8)
	score += math.Min(res.Density*1.5, 4)
	score += math.Min(float64(signals.PresentSections)*0.8, 4)
	score += math.Min(float64(signals.BulletPoints)*0.3, 3)
	score += math.Min(float64(res.TechnicalCount)*0.3, 5)
	score += math.Min(float64(res.CertificationCount)*0.5, 5)
	score = math.Min(score, 100)

	res.Score = clamp(int(math.Round(score)), 0, 100)
	return res
}

// ScoreRecord serializes rec and scores it with signals derived from its structure.
func ScoreRecord(rec types.ResumeRecord) Result {
	return Score(Serialize(rec), SignalsFor(rec))
}

// SignalsFor counts the non-empty sections and experience bullets of rec.
func SignalsFor(rec types.ResumeRecord) Signals {
	present := 0
	for _, nonEmpty := range []bool{
		strings.TrimSpace(rec.Summary) != "",
		len(rec.Experience) > 0,
		len(rec.Education) > 0,
		len(rec.Skills) > 0,
		len(rec.Certifications) > 0,
		len(rec.Projects) > 0,
		len(rec.Languages) > 0,
	} {
		if nonEmpty {
			present++
		}
	}

	bullets := 0
	for _, exp := range rec.Experience {
		bullets += len(exp.BulletPoints)
	}
	return Signals{PresentSections: present, BulletPoints: bullets}
}

// Serialize renders rec as compact JSON without HTML escaping, the text the
// scorer and the lint pass operate on. The derived score is excluded.
func Serialize(rec types.ResumeRecord) string {
	rec.ATSScore = 0
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
