// Package optimizer fits résumé content to a layout strategy's text budgets.
package optimizer

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/onepager/internal/ats"
	"github.com/jonathan/onepager/internal/compress"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/sirupsen/logrus"
)

// Compressor shortens individual fields. *compress.Compressor implements it.
type Compressor interface {
	Summary(ctx context.Context, text string, limit int) string
	ExperienceBullets(ctx context.Context, exp types.Experience, position int) (string, []string)
	EducationDescription(ctx context.Context, edu types.Education, limit int) string
}

// Result is an optimized record with its ATS estimate and advisory issues.
type Result struct {
	Record   types.ResumeRecord
	Strategy strategy.Strategy
	ATS      ats.Result
	Issues   []string

	// Degraded is set when compression failed and Basic produced the record.
	Degraded bool
}

// Optimizer applies a strategy's budgets and caps to a record.
type Optimizer struct {
	compressor Compressor
	logger     logrus.FieldLogger
}

// New creates an Optimizer.
func New(compressor Compressor, logger logrus.FieldLogger) *Optimizer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Optimizer{compressor: compressor, logger: logger.WithField("component", "optimizer")}
}

// Optimize returns a new record fitted to s. It never fails: if compression
// panics the record is rebuilt with Basic. The input is not modified.
func (o *Optimizer) Optimize(ctx context.Context, rec types.ResumeRecord, s strategy.Strategy) Result {
	if !s.Valid() {
		s = strategy.Normal
	}
	start := time.Now()

	out, err := o.compress(ctx, rec, s)
	degraded := err != nil
	if degraded {
		o.logger.WithError(err).WithField("strategy", s).Error("Content optimization failed, using basic optimization")
		out = Basic(rec, s)
	}

	res := finish(out, s)
	res.Degraded = degraded

	log := o.logger.WithFields(logrus.Fields{
		"strategy":  s,
		"ats_score": res.ATS.Score,
		"keywords":  len(res.ATS.Keywords),
		"metrics":   res.ATS.MetricsCount,
		"verbs":     res.ATS.ActionVerbCount,
		"duration":  time.Since(start),
	})
	log.Info("Content optimized")
	for _, issue := range res.Issues {
		log.WithField("issue", issue).Debug("Content quality issue")
	}
	return res
}

func (o *Optimizer) compress(ctx context.Context, rec types.ResumeRecord, s strategy.Strategy) (out types.ResumeRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during compression: %v", r)
		}
	}()

	if o.compressor == nil {
		return Basic(rec, s), nil
	}

	limits := s.Profile().Limits
	out = applyCaps(cloneRecord(rec))

	if utf8.RuneCountInString(out.Summary) > limits.Summary {
		out.Summary = o.compressor.Summary(ctx, out.Summary, limits.Summary)
	}

	for i, exp := range out.Experience {
		if exp.Description == "" {
			continue
		}
		o.logger.WithFields(logrus.Fields{
			"position":   compress.PositionLabel(i),
			"job_title":  exp.JobTitle,
			"company":    exp.Company,
			"start_date": exp.StartDate,
		}).Debug("Compressing experience")
		out.Experience[i].Description, out.Experience[i].BulletPoints = o.compressor.ExperienceBullets(ctx, exp, i)
	}

	for i, edu := range out.Education {
		if utf8.RuneCountInString(edu.Description) > limits.EducationDescription {
			out.Education[i].Description = o.compressor.EducationDescription(ctx, edu, limits.EducationDescription)
		}
	}

	return out, nil
}

// Basic fits rec to s with deterministic rules only.
func Basic(rec types.ResumeRecord, s strategy.Strategy) types.ResumeRecord {
	if !s.Valid() {
		s = strategy.Normal
	}
	limits := s.Profile().Limits
	out := applyCaps(cloneRecord(rec))

	out.Summary = compress.Condense(out.Summary, limits.Summary)

	for i, exp := range out.Experience {
		if exp.Description == "" {
			continue
		}
		bullets := compress.SynthesizeBullets(exp.Description)
		if len(bullets) == 0 {
			bullets = []string{exp.Description}
		}
		out.Experience[i].BulletPoints = bullets
		out.Experience[i].Description = strings.Join(bullets, compress.BulletJoinSep)
	}

	for i, edu := range out.Education {
		out.Education[i].Description = compress.Condense(edu.Description, limits.EducationDescription)
	}
	return out
}

func finish(rec types.ResumeRecord, s strategy.Strategy) Result {
	score := ats.ScoreRecord(rec)
	rec.ATSScore = score.Score
	return Result{
		Record:   rec,
		Strategy: s,
		ATS:      score,
		Issues:   ats.Lint(ats.Serialize(rec)),
	}
}
