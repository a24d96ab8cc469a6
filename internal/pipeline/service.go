// Package pipeline turns one-pager requests into documents: it normalizes the
// payload, generates achievements once, then hands the record to the fit loop.
package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/jonathan/onepager/internal/ats"
	"github.com/jonathan/onepager/internal/fitting"
	"github.com/jonathan/onepager/internal/rendering"
	"github.com/jonathan/onepager/internal/resume"
	"github.com/jonathan/onepager/internal/store"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/sirupsen/logrus"
)

// Fitter runs the fit loop. *fitting.Fitter implements it.
type Fitter interface {
	FitToOnePage(ctx context.Context, rec types.ResumeRecord, opts fitting.Options) (fitting.Result, error)
}

// AchievementGenerator produces the headline achievements for a record.
// *compress.Compressor implements it.
type AchievementGenerator interface {
	Achievements(ctx context.Context, rec types.ResumeRecord) []types.Achievement
}

// LogStore records generation metadata. *store.PGStore implements it.
type LogStore interface {
	Insert(ctx context.Context, entry *store.GenerationLog) error
}

// UserAgentSource reports the rendering browser's user agent. *engine.Pool implements it.
// UserAgent may start the browser; CachedUserAgent never does.
type UserAgentSource interface {
	UserAgent() (string, error)
	CachedUserAgent() (string, bool)
}

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)

// Generation steps reported through ProgressCallback.
const (
	StepNormalize    = "normalize"
	StepAchievements = "achievements"
	StepFit          = "fit"
)

// Deps are the collaborators of a Service. Store, Agent and OnProgress are optional.
type Deps struct {
	Fitter       Fitter
	Optimizer    fitting.Optimizer
	Achievements AchievementGenerator
	Registry     *rendering.Registry
	Store        LogStore
	Agent        UserAgentSource
	Logger       logrus.FieldLogger
	OnProgress   ProgressCallback

	// HostOverride decides when the windows profile replaces every strategy.
	HostOverride strategy.OverrideMode
}

// Service is the request-level entry point shared by the HTTP server and the CLI.
type Service struct {
	deps   Deps
	goos   string
	logger logrus.FieldLogger
}

// New creates a Service.
func New(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if deps.Registry == nil {
		deps.Registry = rendering.MustDefaultRegistry()
	}
	if deps.HostOverride == "" {
		deps.HostOverride = strategy.OverrideAuto
	}
	return &Service{deps: deps, goos: runtime.GOOS, logger: logger.WithField("component", "pipeline")}
}

// Output is a generated document with the metadata reported to clients.
type Output struct {
	fitting.Result
	Template  string
	RequestID string
	Duration  time.Duration
}

// Generate produces the one-page PDF for req.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest, requestID string) (*Output, error) {
	start := time.Now()

	rec, err := s.prepare(ctx, &req, requestID)
	if err != nil {
		return nil, err
	}

	tmpl := s.deps.Registry.Lookup(req.Template)
	opts := fitting.Options{
		Template: tmpl,
		Colors:   req.CustomColors,
		Language: req.Language,
		Override: s.hostOverride(true),
	}

	s.emit(ctx, StepFit, "Fitting content to one page", requestID, nil)
	res, err := s.deps.Fitter.FitToOnePage(ctx, rec, opts)
	if err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("One-pager generation failed")
		return nil, err
	}

	out := &Output{
		Result:    res,
		Template:  tmpl.Key,
		RequestID: requestID,
		Duration:  time.Since(start),
	}
	s.emit(ctx, StepFit, "Document ready", requestID, res.Attempts)

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"template":   tmpl.Key,
		"strategy":   res.Strategy,
		"forced":     res.Forced,
		"attempts":   len(res.Attempts),
		"ats_score":  res.ATSScore,
		"duration":   out.Duration,
	}).Info("One-pager generated")

	s.record(ctx, out)
	return out, nil
}

// PreviewResult is the optimized content for one strategy, rendered without a browser.
type PreviewResult struct {
	Strategy   strategy.Strategy `json:"strategy"`
	Template   string            `json:"template"`
	ATSScore   int               `json:"atsScore"`
	Keywords   []string          `json:"keywords"`
	Issues     []string          `json:"issues"`
	Sections   []string          `json:"sections"`
	HTML       string            `json:"html"`
	TextLength int               `json:"textLength"`
}

// Preview optimizes req for strat and returns the HTML the fit loop would measure.
func (s *Service) Preview(ctx context.Context, req types.GenerateRequest, strat strategy.Strategy, requestID string) (*PreviewResult, error) {
	rec, err := s.prepare(ctx, &req, requestID)
	if err != nil {
		return nil, err
	}

	content := strat
	if o := s.hostOverride(false); o != nil {
		content = *o
	}

	opt := s.deps.Optimizer.Optimize(ctx, rec, content)
	tmpl := s.deps.Registry.Lookup(req.Template)
	html, err := rendering.RenderHTML(opt.Record, rendering.Options{
		Template: tmpl,
		Colors:   req.CustomColors,
		Strategy: content,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}
	text, err := rendering.VisibleText(html)
	if err != nil {
		return nil, err
	}
	sections, err := rendering.SectionTitles(html)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Strategy:   strat,
		Template:   tmpl.Key,
		ATSScore:   opt.ATS.Score,
		Keywords:   opt.ATS.Keywords,
		Issues:     opt.Issues,
		Sections:   sections,
		HTML:       html,
		TextLength: len([]rune(text)),
	}, nil
}

// ScoreResult is the ATS estimate of an unoptimized record.
type ScoreResult struct {
	ATS    ats.Result `json:"ats"`
	Issues []string   `json:"issues"`
}

// Score normalizes req and scores it as submitted. No text generation is involved.
func (s *Service) Score(req types.ScoreRequest) (*ScoreResult, error) {
	if req.Data == nil {
		return nil, ErrMissingData
	}
	rec := resume.Normalize(*req.Data)
	res := ats.ScoreRecord(rec)
	return &ScoreResult{ATS: res, Issues: ats.Lint(ats.Serialize(rec))}, nil
}

// Templates lists the registered template keys.
func (s *Service) Templates() []string {
	return s.deps.Registry.Names()
}

func (s *Service) prepare(ctx context.Context, req *types.GenerateRequest, requestID string) (types.ResumeRecord, error) {
	if req.Data == nil {
		return types.ResumeRecord{}, ErrMissingData
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return types.ResumeRecord{}, validationError(err)
	}

	rec := resume.Normalize(*req.Data)
	s.emit(ctx, StepNormalize, "Résumé normalized", requestID, nil)

	if s.deps.Achievements != nil {
		rec.Achievements = s.deps.Achievements.Achievements(ctx, rec)
		s.emit(ctx, StepAchievements, "Achievements generated", requestID, rec.Achievements)
	}
	return rec, nil
}

// hostOverride resolves the configured override against the rendering host.
// With launch unset only an already running browser is consulted.
func (s *Service) hostOverride(launch bool) *strategy.Strategy {
	var agent string
	if s.deps.HostOverride == strategy.OverrideAuto && s.deps.Agent != nil {
		if launch {
			ua, err := s.deps.Agent.UserAgent()
			if err != nil {
				s.logger.WithError(err).Debug("User agent unavailable for host detection")
			}
			agent = ua
		} else {
			agent, _ = s.deps.Agent.CachedUserAgent()
		}
	}

	o, ok := strategy.Override(s.deps.HostOverride, strategy.DetectHost(s.goos, agent))
	if !ok {
		return nil
	}
	return &o
}

func (s *Service) record(ctx context.Context, out *Output) {
	if s.deps.Store == nil {
		return
	}
	entry := &store.GenerationLog{
		RequestID:  out.RequestID,
		Template:   out.Template,
		Strategy:   out.Strategy.String(),
		ATSScore:   out.ATSScore,
		Forced:     out.Forced,
		Attempts:   len(out.Attempts),
		Pages:      out.Pages,
		DurationMs: out.Duration.Milliseconds(),
	}
	if err := s.deps.Store.Insert(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.WithError(err).WithField("request_id", out.RequestID).Warn("Failed to record generation log")
	}
}

type progressKey struct{}

// WithProgress attaches a per-request progress callback to ctx. It runs in
// addition to Deps.OnProgress.
func WithProgress(ctx context.Context, cb ProgressCallback) context.Context {
	return context.WithValue(ctx, progressKey{}, cb)
}

func (s *Service) emit(ctx context.Context, step, message, requestID string, content any) {
	event := ProgressEvent{
		Step:      step,
		Message:   message,
		RequestID: requestID,
		Content:   content,
	}
	if s.deps.OnProgress != nil {
		s.deps.OnProgress(event)
	}
	if cb, ok := ctx.Value(progressKey{}).(ProgressCallback); ok && cb != nil {
		cb(event)
	}
}
