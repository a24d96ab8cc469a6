// Package engine runs a shared headless Chrome used to measure and print
// rendered résumés. The browser starts lazily, is health-checked before each
// use and is restarted when it stops responding.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Page geometry in CSS pixels at 96 dpi. A4 is 794x1123.
const (
	ViewportWidth  = 794
	ViewportHeight = 1123
)

// Config controls the browser process.
type Config struct {
	// ChromePath overrides the Chrome binary. Empty uses the chromedp lookup.
	ChromePath string

	// MaxPages bounds concurrently open pages.
	MaxPages      int64
	StartTimeout  time.Duration
	HealthTimeout time.Duration
}

// DefaultConfig returns four pages, a 60s start timeout and a 5s health check.
func DefaultConfig() Config {
	return Config{
		MaxPages:      4,
		StartTimeout:  60 * time.Second,
		HealthTimeout: 5 * time.Second,
	}
}

// browser is one running Chrome process and its first tab.
type browser struct {
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	userAgent   string
}

func (b *browser) close() {
	b.cancel()
	b.allocCancel()
}

// Pool hands out pages from a single shared browser.
type Pool struct {
	cfg    Config
	logger logrus.FieldLogger
	sem    *semaphore.Weighted
	group  singleflight.Group

	mu      sync.Mutex
	current *browser
	closed  bool
}

// NewPool creates a Pool. The browser is not started until first use.
func NewPool(cfg Config, logger logrus.FieldLogger) *Pool {
	defaults := DefaultConfig()
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaults.MaxPages
	}
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = defaults.StartTimeout
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = defaults.HealthTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pool{
		cfg:    cfg,
		logger: logger.WithField("component", "engine"),
		sem:    semaphore.NewWeighted(cfg.MaxPages),
	}
}

// Acquire opens a fresh page. The returned release func closes the page and
// must be called exactly once; it is safe to defer immediately.
func (p *Pool) Acquire(ctx context.Context) (Page, func(), error) {
	if p.isClosed() {
		return nil, nil, &EngineError{Message: "acquire page", Cause: ErrClosed}
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, &EngineError{Message: "wait for free page", Cause: err}
	}

	b, err := p.ensure()
	if err != nil {
		p.sem.Release(1)
		return nil, nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.ctx)
	if err := chromedp.Run(tabCtx, chromedp.EmulateViewport(ViewportWidth, ViewportHeight)); err != nil {
		cancel()
		p.sem.Release(1)
		return nil, nil, &EngineError{Message: "open page", Cause: err}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			cancel()
			p.sem.Release(1)
		})
	}
	return &tab{ctx: tabCtx}, release, nil
}

// Healthy reports whether the browser is running and responsive. It does not
// start the browser.
func (p *Pool) Healthy() bool {
	p.mu.Lock()
	b := p.current
	p.mu.Unlock()
	return b != nil && p.alive(b)
}

// Started reports whether a browser process has been launched.
func (p *Pool) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// UserAgent returns the browser's user agent, starting the browser if needed.
func (p *Pool) UserAgent() (string, error) {
	b, err := p.ensure()
	if err != nil {
		return "", err
	}
	return b.userAgent, nil
}

// CachedUserAgent returns the running browser's user agent without starting
// one. ok is false before the first launch.
func (p *Pool) CachedUserAgent() (ua string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return "", false
	}
	return p.current.userAgent, true
}

// Close stops the browser. Pages already handed out fail on their next call.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.current != nil {
		p.current.close()
		p.current = nil
		p.logger.Info("Browser stopped")
	}
	return nil
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ensure returns a healthy browser, launching or replacing it as needed.
// Concurrent callers share a single launch.
func (p *Pool) ensure() (*browser, error) {
	p.mu.Lock()
	seen, closed := p.current, p.closed
	p.mu.Unlock()
	if closed {
		return nil, &EngineError{Message: "start browser", Cause: ErrClosed}
	}
	if seen != nil && p.alive(seen) {
		return seen, nil
	}

	v, err, _ := p.group.Do("browser", func() (any, error) {
		p.mu.Lock()
		cur := p.current
		p.mu.Unlock()
		if cur != nil && cur != seen {
			return cur, nil
		}
		if cur != nil {
			p.logger.Warn("Browser unresponsive, restarting")
			cur.close()
		}

		b, err := p.launch()
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			b.close()
			return nil, &EngineError{Message: "start browser", Cause: ErrClosed}
		}
		p.current = b
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*browser), nil
}

func (p *Pool) launch() (*browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
		chromedp.WindowSize(ViewportWidth, ViewportHeight),
	)
	if p.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.cfg.ChromePath))
	}

	start := time.Now()
	// The browser outlives any single request, so it is not tied to a caller's context.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)
	b := &browser{allocCancel: allocCancel, ctx: ctx, cancel: cancel}

	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(ctx, chromedp.Evaluate(`navigator.userAgent`, &b.userAgent))
	}()

	select {
	case err := <-done:
		if err != nil {
			b.close()
			return nil, &EngineError{Message: "start browser", Cause: err}
		}
	case <-time.After(p.cfg.StartTimeout):
		b.close()
		return nil, &EngineError{Message: "start browser", Cause: errors.New("timed out")}
	}

	p.logger.WithFields(logrus.Fields{
		"user_agent": b.userAgent,
		"duration":   time.Since(start),
	}).Info("Browser started")
	return b, nil
}

func (p *Pool) alive(b *browser) bool {
	if b.ctx.Err() != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(b.ctx, p.cfg.HealthTimeout)
	defer cancel()
	var n int
	return chromedp.Run(ctx, chromedp.Evaluate(`1 + 1`, &n)) == nil && n == 2
}
