// Package compress shortens résumé fields with a text-generation model and
// falls back to deterministic rules whenever the model is slow, failing or
// returns unusable output. Nothing in this package returns an error to callers.
package compress

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/onepager/internal/llm"
	"github.com/jonathan/onepager/internal/prompts"
	"github.com/jonathan/onepager/internal/types"
	"github.com/jonathan/onepager/internal/validation"
	"github.com/sirupsen/logrus"
)

// ErrDisabled is the fallback cause when no client is configured.
var ErrDisabled = errors.New("text generation disabled")

// Timeouts bound each generation call.
type Timeouts struct {
	Field        time.Duration
	Achievements time.Duration
}

// DefaultTimeouts returns 8s per field and 15s for the achievements list.
func DefaultTimeouts() Timeouts {
	return Timeouts{Field: 8 * time.Second, Achievements: 15 * time.Second}
}

var (
	summaryOptions      = llm.Options{MaxOutputTokens: 200, Temperature: 0.3, Tier: llm.TierLite}
	experienceOptions   = llm.Options{MaxOutputTokens: 300, Temperature: 0.3, Tier: llm.TierLite}
	educationOptions    = llm.Options{MaxOutputTokens: 150, Temperature: 0.3, Tier: llm.TierLite}
	achievementsOptions = llm.Options{MaxOutputTokens: 400, Temperature: 0.1, Tier: llm.TierStandard}
)

// Compressor rewrites résumé fields to fit a character budget.
type Compressor struct {
	client   llm.Client
	logger   logrus.FieldLogger
	timeouts Timeouts
}

// New creates a Compressor. A nil client disables generation and every call
// uses its deterministic fallback.
func New(client llm.Client, logger logrus.FieldLogger, timeouts Timeouts) *Compressor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	defaults := DefaultTimeouts()
	if timeouts.Field <= 0 {
		timeouts.Field = defaults.Field
	}
	if timeouts.Achievements <= 0 {
		timeouts.Achievements = defaults.Achievements
	}
	return &Compressor{client: client, logger: logger.WithField("component", "compress"), timeouts: timeouts}
}

// Enabled reports whether a generation client is configured.
func (c *Compressor) Enabled() bool {
	return c.client != nil
}

func (c *Compressor) generate(ctx context.Context, key string, data map[string]string, opts llm.Options) (string, error) {
	if c.client == nil {
		return "", ErrDisabled
	}
	for k, v := range data {
		data[k] = validation.SanitizePromptInput(v, key+"."+k, c.logger)
	}
	prompt, err := prompts.Render(key, data)
	if err != nil {
		return "", err
	}
	return c.client.Generate(ctx, prompt, opts)
}

func (c *Compressor) logFallback(field string, err error) {
	if errors.Is(err, ErrDisabled) {
		return
	}
	c.logger.WithFields(logrus.Fields{"field": field, "reason": err.Error()}).Warn("Generation failed, using fallback")
}

// Summary rewrites a professional summary to roughly limit characters.
func (c *Compressor) Summary(ctx context.Context, text string, limit int) string {
	return llm.Bounded(ctx, c.timeouts.Field,
		func(ctx context.Context) (string, error) {
			return c.generate(ctx, prompts.KeySummary, map[string]string{
				"Limit":   strconv.Itoa(limit),
				"Summary": text,
			}, summaryOptions)
		},
		func(err error) string {
			c.logFallback("summary", err)
			return Condense(text, limit)
		},
	)
}

type bulletResult struct {
	description string
	bullets     []string
}

// ExperienceBullets turns an experience description into 3-4 bullets. position
// is the entry's index in the newest-first history. The description returned is
// the bullets joined with " | " when generation produced at least two usable
// bullets; otherwise it is the original description.
func (c *Compressor) ExperienceBullets(ctx context.Context, exp types.Experience, position int) (string, []string) {
	if strings.TrimSpace(exp.Description) == "" {
		return exp.Description, exp.BulletPoints
	}

	duration := "N/A"
	if exp.StartDate != "" {
		end := exp.EndDate
		if end == "" {
			end = "Present"
		}
		duration = exp.StartDate + " - " + end
	}

	res := llm.Bounded(ctx, c.timeouts.Field,
		func(ctx context.Context) (bulletResult, error) {
			text, err := c.generate(ctx, prompts.KeyExperienceBullets, map[string]string{
				"JobTitle":    valueOr(exp.JobTitle, "Professional Role"),
				"Company":     valueOr(exp.Company, "Company"),
				"Duration":    duration,
				"Description": exp.Description,
				"Position":    PositionLabel(position),
			}, experienceOptions)
			if err != nil {
				return bulletResult{}, err
			}
			bullets := ParseBullets(text)
			if len(bullets) < MinBullets {
				return bulletResult{description: exp.Description, bullets: []string{exp.Description}}, nil
			}
			return bulletResult{description: strings.Join(bullets, BulletJoinSep), bullets: bullets}, nil
		},
		func(err error) bulletResult {
			c.logFallback("experience", err)
			bullets := SynthesizeBullets(exp.Description)
			if len(bullets) == 0 {
				return bulletResult{description: exp.Description, bullets: []string{exp.Description}}
			}
			return bulletResult{description: strings.Join(bullets, BulletJoinSep), bullets: bullets}
		},
	)
	return res.description, res.bullets
}

// EducationDescription rewrites an education description to roughly limit characters.
func (c *Compressor) EducationDescription(ctx context.Context, edu types.Education, limit int) string {
	return llm.Bounded(ctx, c.timeouts.Field,
		func(ctx context.Context) (string, error) {
			return c.generate(ctx, prompts.KeyEducation, map[string]string{
				"Limit":       strconv.Itoa(limit),
				"Degree":      valueOr(edu.Degree, "Degree"),
				"Institution": valueOr(edu.Institution, "Institution"),
				"Description": edu.Description,
			}, educationOptions)
		},
		func(err error) string {
			c.logFallback("education", err)
			return Condense(edu.Description, limit)
		},
	)
}

// Achievements generates five headline achievements for the whole record.
// Any failure yields FallbackAchievements.
func (c *Compressor) Achievements(ctx context.Context, rec types.ResumeRecord) []types.Achievement {
	return llm.Bounded(ctx, c.timeouts.Achievements,
		func(ctx context.Context) ([]types.Achievement, error) {
			text, err := c.generate(ctx, prompts.KeyAchievements, achievementsData(rec), achievementsOptions)
			if err != nil {
				return nil, err
			}
			return ParseAchievements(text)
		},
		func(err error) []types.Achievement {
			c.logFallback("achievements", err)
			return FallbackAchievements()
		},
	)
}

func achievementsData(rec types.ResumeRecord) map[string]string {
	experience := make([]string, 0, len(rec.Experience))
	for _, e := range rec.Experience {
		experience = append(experience, e.JobTitle+" at "+e.Company+": "+e.Description)
	}
	skills := make([]string, 0, len(rec.Skills))
	for _, s := range rec.Skills {
		skills = append(skills, s.Name)
	}
	certs := make([]string, 0, len(rec.Certifications))
	for _, cert := range rec.Certifications {
		certs = append(certs, cert.Name+": "+cert.Issuer)
	}

	return map[string]string{
		"Name":           valueOr(rec.Name, "N/A"),
		"JobTitle":       valueOr(rec.JobTitle, "N/A"),
		"Summary":        valueOr(rec.Summary, "N/A"),
		"Experience":     valueOr(strings.Join(experience, "; "), "N/A"),
		"Skills":         valueOr(strings.Join(skills, ", "), "N/A"),
		"Certifications": valueOr(strings.Join(certs, "; "), "N/A"),
	}
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
