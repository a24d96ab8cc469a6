package engine

import (
	"context"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// A4 paper size in inches.
const (
	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// PDFOptions control a page export.
type PDFOptions struct {
	MarginInches float64
}

// Page is a single browser tab.
type Page interface {
	// SetContent replaces the document and waits until it and its fonts are loaded.
	SetContent(ctx context.Context, html string) error
	// ContentHeight returns document.body.scrollHeight in CSS pixels.
	ContentHeight(ctx context.Context) (int, error)
	// PDF prints the page on A4 with backgrounds.
	PDF(ctx context.Context, opts PDFOptions) ([]byte, error)
}

type tab struct {
	ctx context.Context
}

// run executes actions on the tab and aborts them when ctx is done.
func (t *tab) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(t.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (t *tab) SetContent(ctx context.Context, html string) error {
	var fontsReady bool
	err := t.run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
	)
	if err != nil {
		return &EngineError{Message: "set page content", Cause: err}
	}
	return nil
}

func (t *tab) ContentHeight(ctx context.Context) (int, error) {
	var height int
	if err := t.run(ctx, chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
		return 0, &EngineError{Message: "measure content height", Cause: err}
	}
	return height, nil
}

func (t *tab) PDF(ctx context.Context, opts PDFOptions) ([]byte, error) {
	var buf []byte
	err := t.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(PaperWidthInches).
			WithPaperHeight(PaperHeightInches).
			WithMarginTop(opts.MarginInches).
			WithMarginBottom(opts.MarginInches).
			WithMarginLeft(opts.MarginInches).
			WithMarginRight(opts.MarginInches).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, &EngineError{Message: "export pdf", Cause: err}
	}
	return buf, nil
}
