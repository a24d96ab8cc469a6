package fitting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/onepager/internal/engine"
	"github.com/jonathan/onepager/internal/optimizer"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer serves pages whose measured heights are taken from heights in order.
type fakeRenderer struct {
	mu         sync.Mutex
	heights    []int
	acquireErr error
	setErr     error
	setPanic   any
	pdfErr     error
	acquired   int
	released   int
	html       []string
	margins    []float64
}

func (r *fakeRenderer) Acquire(context.Context) (engine.Page, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acquireErr != nil {
		return nil, nil, r.acquireErr
	}
	r.acquired++
	height := 0
	if len(r.heights) > 0 {
		height, r.heights = r.heights[0], r.heights[1:]
	}
	release := func() {
		r.mu.Lock()
		r.released++
		r.mu.Unlock()
	}
	return &fakePage{r: r, height: height}, release, nil
}

type fakePage struct {
	r      *fakeRenderer
	height int
}

func (p *fakePage) SetContent(_ context.Context, html string) error {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.html = append(p.r.html, html)
	if p.r.setPanic != nil {
		panic(p.r.setPanic)
	}
	return p.r.setErr
}

func (p *fakePage) ContentHeight(context.Context) (int, error) {
	return p.height, nil
}

func (p *fakePage) PDF(_ context.Context, opts engine.PDFOptions) ([]byte, error) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	p.r.margins = append(p.r.margins, opts.MarginInches)
	if p.r.pdfErr != nil {
		return nil, p.r.pdfErr
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestFitter(r Renderer) *Fitter {
	logger, _ := test.NewNullLogger()
	return New(r, optimizer.New(nil, logger), logger)
}

func testRecord() types.ResumeRecord {
	return types.ResumeRecord{
		Name:       "Ada Lovelace",
		Summary:    "Engineer building reliable systems with Go and Kubernetes.",
		Experience: []types.Experience{{JobTitle: "Engineer", Company: "Acme", Description: "Built the platform application end to end."}},
	}
}

func TestFitToOnePage_FirstStrategyFits(t *testing.T) {
	r := &fakeRenderer{heights: []int{900}}
	res, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

	require.NoError(t, err)
	assert.Equal(t, strategy.Normal, res.Strategy)
	assert.False(t, res.Forced)
	assert.Equal(t, []byte("%PDF-1.4 fake"), res.PDF)
	require.Len(t, res.Attempts, 1)
	assert.True(t, res.Attempts[0].Fits)
	assert.Equal(t, 900, res.Attempts[0].Height)
	assert.Equal(t, []float64{0.2}, r.margins)
	assert.Equal(t, r.acquired, r.released)
	assert.GreaterOrEqual(t, res.ATSScore, 65)
}

func TestFitToOnePage_BoundaryHeight(t *testing.T) {
	tests := []struct {
		name     string
		heights  []int
		expected strategy.Strategy
	}{
		{"exactly printable height fits", []int{PrintableHeight}, strategy.Normal},
		{"one pixel over moves on", []int{PrintableHeight + 1, PrintableHeight}, strategy.Compact},
		{"third strategy", []int{2000, 1500, 1000}, strategy.Ultra},
		{"last strategy", []int{2000, 2000, 2000, 2000, 100}, strategy.Windows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{heights: tt.heights}
			res, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Strategy)
			assert.Len(t, res.Attempts, len(tt.heights))
			assert.Equal(t, r.acquired, r.released)
		})
	}
}

func TestFitToOnePage_ForcedWhenNothingFits(t *testing.T) {
	r := &fakeRenderer{heights: []int{5000, 5000, 5000, 5000, 5000, 5000}}
	res, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

	require.NoError(t, err)
	assert.True(t, res.Forced)
	assert.Equal(t, strategy.Ultra, res.Strategy)
	assert.Len(t, res.Attempts, len(strategy.All()))
	assert.Equal(t, []float64{0.3}, r.margins)
	assert.Equal(t, 6, r.acquired)
	assert.Equal(t, r.acquired, r.released)
	for i, att := range res.Attempts {
		assert.Equal(t, strategy.All()[i], att.Strategy)
		assert.False(t, att.Fits)
	}
}

func TestFitToOnePage_AttemptErrorsMeanDoesNotFit(t *testing.T) {
	r := &fakeRenderer{heights: []int{500}, pdfErr: errors.New("printer on fire")}
	res, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

	require.Error(t, err)
	var fitErr *FitError
	require.ErrorAs(t, err, &fitErr)
	assert.Len(t, fitErr.Attempts, len(strategy.All()))
	assert.Contains(t, fitErr.Attempts[0].Error, "printer on fire")
	assert.Empty(t, res.PDF)
	assert.Equal(t, r.acquired, r.released)
}

func TestFitToOnePage_SetContentFailureReleasesPage(t *testing.T) {
	r := &fakeRenderer{setErr: errors.New("tab crashed")}
	_, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

	require.Error(t, err)
	assert.Equal(t, 6, r.acquired)
	assert.Equal(t, r.acquired, r.released)
}

func TestFitToOnePage_SetContentPanicReleasesPage(t *testing.T) {
	r := &fakeRenderer{setPanic: "devtools connection lost"}
	assert.PanicsWithValue(t, "devtools connection lost", func() {
		_, _ = newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})
	})

	assert.Equal(t, 1, r.acquired)
	assert.Equal(t, 1, r.released)
}

func TestFitToOnePage_EngineUnavailable(t *testing.T) {
	r := &fakeRenderer{acquireErr: &engine.EngineError{Message: "start browser", Cause: errors.New("no chrome")}}
	_, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{})

	require.Error(t, err)
	var engErr *engine.EngineError
	assert.ErrorAs(t, err, &engErr)
	assert.Contains(t, err.Error(), "forced render failed")
}

func TestFitToOnePage_HostOverride(t *testing.T) {
	windows := strategy.Windows
	r := &fakeRenderer{heights: []int{2000, 800}}
	res, err := newTestFitter(r).FitToOnePage(context.Background(), testRecord(), Options{Override: &windows})

	require.NoError(t, err)
	assert.Equal(t, strategy.Compact, res.Strategy, "attempts keep the ladder's names")
	require.Len(t, r.html, 2)
	for _, html := range r.html {
		assert.True(t, strings.Contains(html, "font-size: 12px"), "content uses the windows profile")
	}
}

func TestFitToOnePage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeRenderer{heights: []int{100}}
	_, err := newTestFitter(r).FitToOnePage(ctx, testRecord(), Options{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, r.acquired)
}
