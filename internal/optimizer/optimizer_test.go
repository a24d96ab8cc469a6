package optimizer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/onepager/internal/compress"
	"github.com/jonathan/onepager/internal/llm"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompressor records calls and returns fixed values.
type stubCompressor struct {
	summaryCalls   int
	educationCalls int
	positions      []int
	panicOn        string
}

func (s *stubCompressor) Summary(_ context.Context, text string, limit int) string {
	s.summaryCalls++
	if s.panicOn == "summary" {
		panic("summary exploded")
	}
	return fmt.Sprintf("summary<=%d", limit)
}

func (s *stubCompressor) ExperienceBullets(_ context.Context, exp types.Experience, position int) (string, []string) {
	s.positions = append(s.positions, position)
	if s.panicOn == "experience" {
		panic("experience exploded")
	}
	bullets := []string{exp.JobTitle + " bullet one", exp.JobTitle + " bullet two"}
	return strings.Join(bullets, " | "), bullets
}

func (s *stubCompressor) EducationDescription(_ context.Context, edu types.Education, limit int) string {
	s.educationCalls++
	return fmt.Sprintf("edu<=%d", limit)
}

func newTestOptimizer(c Compressor) *Optimizer {
	logger, _ := test.NewNullLogger()
	return New(c, logger)
}

func bigRecord() types.ResumeRecord {
	rec := types.ResumeRecord{
		Name:    "Test Person",
		Summary: strings.Repeat("Led platform teams delivering reliable services. ", 10),
	}
	for i := 0; i < 8; i++ {
		rec.Experience = append(rec.Experience, types.Experience{
			JobTitle:    fmt.Sprintf("Role %d", i),
			Company:     "Acme",
			Description: "Maintained the payments application for years. Coordinated staff across three offices.",
		})
	}
	for i := 0; i < 4; i++ {
		rec.Education = append(rec.Education, types.Education{
			Institution: fmt.Sprintf("School %d", i),
			Description: strings.Repeat("Graduated with honors in computing. ", 5),
		})
	}
	for i := 0; i < 20; i++ {
		rec.Skills = append(rec.Skills, types.Skill{Name: fmt.Sprintf("skill-%d", i)})
	}
	for i := 0; i < 6; i++ {
		rec.Certifications = append(rec.Certifications, types.Certification{Name: fmt.Sprintf("cert-%d", i)})
		rec.Projects = append(rec.Projects, types.Project{Name: fmt.Sprintf("project-%d", i)})
	}
	return rec
}

func TestOptimize_UsesCompressor(t *testing.T) {
	stub := &stubCompressor{}
	o := newTestOptimizer(stub)

	res := o.Optimize(context.Background(), bigRecord(), strategy.Compact)

	assert.False(t, res.Degraded)
	assert.Equal(t, strategy.Compact, res.Strategy)
	assert.Equal(t, "summary<=200", res.Record.Summary)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, stub.positions)
	assert.Equal(t, []string{"Role 0 bullet one", "Role 0 bullet two"}, res.Record.Experience[0].BulletPoints)
	assert.Equal(t, 2, stub.educationCalls)
	assert.Equal(t, "edu<=75", res.Record.Education[0].Description)
}

func TestOptimize_SkipsShortFields(t *testing.T) {
	stub := &stubCompressor{}
	o := newTestOptimizer(stub)
	rec := types.ResumeRecord{
		Summary:   "Short.",
		Education: []types.Education{{Description: "Brief."}},
	}

	res := o.Optimize(context.Background(), rec, strategy.Normal)

	assert.Equal(t, 0, stub.summaryCalls)
	assert.Equal(t, 0, stub.educationCalls)
	assert.Equal(t, "Short.", res.Record.Summary)
}

func TestOptimize_CapInvariant(t *testing.T) {
	for _, s := range strategy.All() {
		t.Run(s.String(), func(t *testing.T) {
			res := newTestOptimizer(compress.New(nil, nil, compress.Timeouts{})).Optimize(context.Background(), bigRecord(), s)

			assert.LessOrEqual(t, len(res.Record.Experience), 5)
			assert.LessOrEqual(t, len(res.Record.Education), 2)
			assert.LessOrEqual(t, len(res.Record.Skills), 12)
			assert.LessOrEqual(t, len(res.Record.Certifications), 3)
			assert.LessOrEqual(t, len(res.Record.Projects), 2)
			assert.LessOrEqual(t, utf8.RuneCountInString(res.Record.Summary), s.Profile().Limits.Summary)
		})
	}
}

func TestOptimize_PanicFallsBackToBasic(t *testing.T) {
	for _, where := range []string{"summary", "experience"} {
		t.Run(where, func(t *testing.T) {
			o := newTestOptimizer(&stubCompressor{panicOn: where})
			rec := bigRecord()

			res := o.Optimize(context.Background(), rec, strategy.Ultra)

			assert.True(t, res.Degraded)
			assert.Equal(t, Basic(rec, strategy.Ultra).Summary, res.Record.Summary)
			assert.Equal(t, []string{
				"Developed maintained the payments application for years",
				"Led coordinated staff across three offices",
			}, res.Record.Experience[0].BulletPoints)
		})
	}
}

// panickingClient fails inside the bounded generation goroutine.
type panickingClient struct{}

func (panickingClient) Generate(context.Context, string, llm.Options) (string, error) {
	panic("provider sdk failure")
}

func (panickingClient) Close() error { return nil }

func TestOptimize_ClientPanicUsesFieldFallbacks(t *testing.T) {
	logger, _ := test.NewNullLogger()
	compressor := compress.New(panickingClient{}, logger, compress.Timeouts{})
	rec := bigRecord()

	var res Result
	require.NotPanics(t, func() {
		res = newTestOptimizer(compressor).Optimize(context.Background(), rec, strategy.Compact)
	})

	assert.False(t, res.Degraded)
	assert.Equal(t, compress.Condense(rec.Summary, strategy.Compact.Profile().Limits.Summary), res.Record.Summary)
	assert.LessOrEqual(t, utf8.RuneCountInString(res.Record.Summary), strategy.Compact.Profile().Limits.Summary)
	assert.NotEmpty(t, res.Record.Experience[0].BulletPoints)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	rec := bigRecord()
	before := rec.Experience[0]
	summary := rec.Summary

	newTestOptimizer(&stubCompressor{}).Optimize(context.Background(), rec, strategy.Extreme)

	assert.Equal(t, before, rec.Experience[0])
	assert.Equal(t, summary, rec.Summary)
	assert.Len(t, rec.Experience, 8)
}

func TestOptimize_InvalidStrategyBehavesAsNormal(t *testing.T) {
	res := newTestOptimizer(&stubCompressor{}).Optimize(context.Background(), bigRecord(), strategy.Strategy(42))

	assert.Equal(t, strategy.Normal, res.Strategy)
	assert.Equal(t, "summary<=300", res.Record.Summary)
}

func TestOptimize_AttachesScoreAndIssues(t *testing.T) {
	rec := types.ResumeRecord{
		Summary: "I am very passionate and responsible for many things, etc.",
		Skills:  []types.Skill{{Name: "Python"}, {Name: "AWS"}},
	}

	res := newTestOptimizer(&stubCompressor{}).Optimize(context.Background(), rec, strategy.Normal)

	assert.Equal(t, res.ATS.Score, res.Record.ATSScore)
	assert.GreaterOrEqual(t, res.Record.ATSScore, 65)
	assert.LessOrEqual(t, res.Record.ATSScore, 100)
	assert.Contains(t, res.Issues, "First person pronouns detected - consider using third person")
	assert.Contains(t, res.Issues, "Weak action verbs detected - consider stronger alternatives")
	assert.Equal(t, "I am very passionate and responsible for many things, etc.", res.Record.Summary)
}

func TestBasic(t *testing.T) {
	rec := bigRecord()
	rec.Experience[1].Description = "Tiny."
	rec.Experience[2].Description = ""

	out := Basic(rec, strategy.Windows)

	limits := strategy.Windows.Profile().Limits
	require.Len(t, out.Experience, 5)
	assert.LessOrEqual(t, utf8.RuneCountInString(out.Summary), limits.Summary)
	assert.Equal(t, []string{"Tiny."}, out.Experience[1].BulletPoints)
	assert.Empty(t, out.Experience[2].BulletPoints)
	assert.LessOrEqual(t, utf8.RuneCountInString(out.Education[0].Description), limits.EducationDescription)
	assert.Equal(t, strings.Join(out.Experience[0].BulletPoints, " | "), out.Experience[0].Description)
}
