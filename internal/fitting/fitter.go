// Package fitting renders a résumé under progressively tighter layout
// strategies until the result fits on a single A4 page.
package fitting

import (
	"context"
	"time"

	"github.com/jonathan/onepager/internal/engine"
	"github.com/jonathan/onepager/internal/optimizer"
	"github.com/jonathan/onepager/internal/rendering"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/jonathan/onepager/internal/validation"
	"github.com/sirupsen/logrus"
)

// Fit thresholds.
const (
	// PrintableHeight leaves room for the top and bottom print margins.
	PrintableHeight    = engine.ViewportHeight - 60
	FitMarginInches    = 0.2
	ForcedMarginInches = 0.3
)

// Renderer hands out browser pages. *engine.Pool implements it.
type Renderer interface {
	Acquire(ctx context.Context) (engine.Page, func(), error)
}

// Optimizer fits content to a strategy. *optimizer.Optimizer implements it.
type Optimizer interface {
	Optimize(ctx context.Context, rec types.ResumeRecord, s strategy.Strategy) optimizer.Result
}

// Options select the look of the document.
type Options struct {
	Template rendering.Template
	Colors   types.CustomColors
	Language string

	// Override, when set, prepares every attempt's content with this strategy
	// while the loop still walks and reports the regular ladder.
	Override *strategy.Strategy
}

// Attempt records one pass of the loop.
type Attempt struct {
	Strategy strategy.Strategy `json:"strategy"`
	Height   int               `json:"height"`
	Fits     bool              `json:"fits"`
	Error    string            `json:"error,omitempty"`
	Duration time.Duration     `json:"duration"`
}

// Result is the exported document and how it was produced.
type Result struct {
	PDF      []byte
	Strategy strategy.Strategy
	Attempts []Attempt
	ATSScore int
	Issues   []string
	Pages    int

	// Forced is set when no strategy fit and the fallback render was used.
	Forced bool
}

// Fitter runs the fit loop.
type Fitter struct {
	renderer  Renderer
	optimizer Optimizer
	logger    logrus.FieldLogger
}

// New creates a Fitter.
func New(renderer Renderer, opt Optimizer, logger logrus.FieldLogger) *Fitter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Fitter{renderer: renderer, optimizer: opt, logger: logger.WithField("component", "fitting")}
}

// FitToOnePage tries each strategy in order and returns the first PDF whose
// content fits the printable height. Attempt failures count as "does not fit".
// When nothing fits the document is force-rendered with the ultra strategy;
// only a failure of that render is returned as an error.
func (f *Fitter) FitToOnePage(ctx context.Context, rec types.ResumeRecord, opts Options) (Result, error) {
	var attempts []Attempt

	for _, s := range strategy.All() {
		if err := ctx.Err(); err != nil {
			return Result{}, &FitError{Message: "request cancelled", Attempts: attempts, Cause: err}
		}

		att, opt, pdf := f.attempt(ctx, rec, s, opts)
		attempts = append(attempts, att)

		log := f.logger.WithFields(logrus.Fields{
			"strategy": s,
			"height":   att.Height,
			"limit":    PrintableHeight,
			"duration": att.Duration,
		})
		if att.Error != "" {
			log.WithField("error", att.Error).Warn("Fit attempt failed")
			continue
		}
		if !att.Fits {
			log.Info("Content does not fit, trying next strategy")
			continue
		}

		log.Info("Content fits on one page")
		return f.finish(Result{
			PDF:      pdf,
			Strategy: s,
			Attempts: attempts,
			ATSScore: opt.ATS.Score,
			Issues:   opt.Issues,
		}), nil
	}

	f.logger.WithField("attempts", len(attempts)).Warn("No strategy fits, forcing single-page render")
	return f.force(ctx, rec, opts, attempts)
}

func (f *Fitter) attempt(ctx context.Context, rec types.ResumeRecord, s strategy.Strategy, opts Options) (att Attempt, opt optimizer.Result, pdf []byte) {
	start := time.Now()
	att.Strategy = s
	defer func() { att.Duration = time.Since(start) }()

	content := contentStrategy(s, opts)
	opt = f.optimizer.Optimize(ctx, rec, content)

	page, release, err := f.prepare(ctx, opt.Record, content, opts)
	if err != nil {
		att.Error = err.Error()
		return att, opt, nil
	}
	defer release()

	height, err := page.ContentHeight(ctx)
	if err != nil {
		att.Error = err.Error()
		return att, opt, nil
	}
	att.Height = height
	if height > PrintableHeight {
		return att, opt, nil
	}

	pdf, err = page.PDF(ctx, engine.PDFOptions{MarginInches: FitMarginInches})
	if err != nil {
		att.Error = err.Error()
		return att, opt, nil
	}
	att.Fits = true
	return att, opt, pdf
}

func (f *Fitter) force(ctx context.Context, rec types.ResumeRecord, opts Options, attempts []Attempt) (Result, error) {
	content := contentStrategy(strategy.Forced, opts)
	opt := f.optimizer.Optimize(ctx, rec, content)

	page, release, err := f.prepare(ctx, opt.Record, content, opts)
	if err != nil {
		return Result{}, &FitError{Message: "forced render failed", Attempts: attempts, Cause: err}
	}
	defer release()

	pdf, err := page.PDF(ctx, engine.PDFOptions{MarginInches: ForcedMarginInches})
	if err != nil {
		return Result{}, &FitError{Message: "forced render failed", Attempts: attempts, Cause: err}
	}

	return f.finish(Result{
		PDF:      pdf,
		Strategy: strategy.Forced,
		Attempts: attempts,
		ATSScore: opt.ATS.Score,
		Issues:   opt.Issues,
		Forced:   true,
	}), nil
}

// prepare renders rec and loads it into a fresh page. On success the caller
// owns release.
func (f *Fitter) prepare(ctx context.Context, rec types.ResumeRecord, s strategy.Strategy, opts Options) (engine.Page, func(), error) {
	html, err := rendering.RenderHTML(rec, rendering.Options{
		Template: opts.Template,
		Colors:   opts.Colors,
		Strategy: s,
		Language: opts.Language,
	})
	if err != nil {
		return nil, nil, err
	}

	page, release, err := f.renderer.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	loaded := false
	defer func() {
		if !loaded {
			release()
		}
	}()
	if err := page.SetContent(ctx, html); err != nil {
		return nil, nil, err
	}
	loaded = true
	return page, release, nil
}

// finish records the page count of the exported document.
func (f *Fitter) finish(res Result) Result {
	pages, err := validation.CountPages(res.PDF)
	if err != nil {
		f.logger.WithError(err).Debug("Could not count PDF pages")
		return res
	}
	res.Pages = pages
	if pages > 1 {
		f.logger.WithFields(logrus.Fields{
			"strategy": res.Strategy,
			"pages":    pages,
			"forced":   res.Forced,
		}).Warn("Exported PDF spans more than one page")
	}
	return res
}

func contentStrategy(s strategy.Strategy, opts Options) strategy.Strategy {
	if opts.Override != nil {
		return *opts.Override
	}
	return s
}
