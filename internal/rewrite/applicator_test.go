package rewrite

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iabetor/mathspeak/internal/config"
	"github.com/iabetor/mathspeak/internal/subcontext"
	"github.com/iabetor/mathspeak/internal/vocab"
)

var builtin = vocab.NewSet()

func newApplicator(opts Options) *Applicator {
	return New(builtin, opts)
}

func TestApply_Basic(t *testing.T) {
	a := newApplicator(Options{})
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"greek and plus", `\alpha + \beta`, "alpha plus beta"},
		{"fraction", `\frac{a}{b}`, "a over b"},
		{"double escaped fraction", `\\frac{a}{b}`, "a over b"},
		{"delimiters", `$\frac{a}{b}$`, "a over b"},
		{"infinity is not in", `\infty`, "infinity"},
		{"membership", `a \in B`, "a in B"},
		{"subscript", `a_{ij}`, "a sub i j"},
		{"nested root", `\sqrt{\frac{1}{2}}`, "the square root of one half"},
		{"duplicate article", `the \ln x`, "the natural log of x"},
		{"repeated variable a", `$a a = a^2$`, "a a equals a squared"},
		{"variable A before its transpose", `$A A^T$`, "A A transpose"},
		{"plain text", "no notation here", "no notation here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Apply(tt.in))
		})
	}
}

// 具体的上标规则不能被一般指数规则抢先匹配。
func TestApply_SpecificSuperscripts(t *testing.T) {
	a := newApplicator(Options{})
	tests := []struct {
		in   string
		want string
	}{
		{`M^T`, "M transpose"},
		{`x^{T}`, "x transpose"},
		{`x^{*}`, "x star"},
		{`x^*`, "x star"},
		{`x^{-1}`, "x inverse"},
		{`x^S`, "x to the S"},
		{`x^{n}`, "x to the n"},
		{`x^{Tk}`, "x to the power Tk"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Apply(tt.in))
		})
	}
}

func TestApply_NestedContentRenderedConsistently(t *testing.T) {
	a := newApplicator(Options{})
	alone := a.Apply(`a_{ij}`)
	nested := a.Apply(`\sqrt{a_{ij}}`)
	assert.Contains(t, nested, alone)
	assert.True(t, strings.HasPrefix(nested, "the square root of"))
}

func TestApply_NoMarkersSurvive(t *testing.T) {
	a := newApplicator(Options{EmphasizeStability: true, ClarifyAlgorithms: true, ClarifyTheorems: true})
	inputs := []string{
		"the explicit scheme is stable for RK4",
		"A compact Hausdorff space",
		"The BDF scheme is unconditionally stable but the error diverges.",
	}
	for _, in := range inputs {
		out := a.Apply(in)
		assert.NotContains(t, out, "{{", in)
		assert.NotContains(t, out, "}}", in)
	}
}

func TestApply_SpecialRulesGated(t *testing.T) {
	on := newApplicator(Options{EmphasizeStability: true})
	off := newApplicator(Options{})

	assert.Equal(t, "the scheme is, stable", on.Apply("the scheme is stable"))
	assert.Equal(t, "the scheme is stable", off.Apply("the scheme is stable"))
	// 代数语境不属于稳定性规则的分区
	assert.Equal(t, "the group is stable", on.Apply("the group is stable"))
}

func TestApply_Clarification(t *testing.T) {
	a := newApplicator(Options{ClarifyAlgorithms: true})
	assert.Equal(t,
		"RK4 (the classical fourth-order Runge-Kutta method) is a Runge-Kutta method",
		a.Apply("RK4 is a Runge-Kutta method"))
}

func TestApply_ProtectsReferences(t *testing.T) {
	a := newApplicator(Options{})
	assert.Equal(t, `see \ref{thm:main}`, a.Apply(`see \ref{thm:main}`))
	assert.Contains(t, a.Apply(`by \eqref{eq:1} and $x_{1}$`), `\eqref{eq:1}`)
}

func TestApply_RomanizeCJK(t *testing.T) {
	a := newApplicator(Options{RomanizeCJK: true})
	assert.Equal(t, "zhong wen", a.Apply(`\text{中文}`))
	assert.Equal(t, "zhong wen", toPinyin("中文"))
	assert.Equal(t, `\text{abc}`, romanizeText(`\text{abc}`))
}

func TestRewrite_RecoversPanic(t *testing.T) {
	set := vocab.NewSetFrom([]vocab.Rule{
		{Pattern: `boom`, Template: vocab.Computed(func([]string) string { panic("bad template") })},
	}, nil, nil)
	a := New(set, Options{})

	out, err := a.Rewrite("$boom$")
	require.Error(t, err)
	assert.Equal(t, "boom", out)
	assert.Equal(t, "boom", a.Apply("$boom$"))
}

func TestNew_SkipsMalformedRule(t *testing.T) {
	set := vocab.NewSetFrom([]vocab.Rule{
		{Pattern: `(`, Template: vocab.Static("never")},
		{Pattern: `foo`, Template: vocab.Static("bar")},
	}, nil, nil)
	a := New(set, Options{})
	assert.Equal(t, "bar", a.Apply("foo"))
}

func TestProcessor_UsesPartition(t *testing.T) {
	a := newApplicator(Options{})
	assert.Equal(t, "the closure of A", a.Processor(subcontext.Topology).Process(`\overline{A}`))
	assert.Equal(t, "A bar", a.Processor(subcontext.General).Process(`\overline{A}`))
	assert.Equal(t, subcontext.Topology, a.Processor(subcontext.General).DetectSubcontext("compact space"))

	ps := a.Processors()
	require.Len(t, ps, len(subcontext.Tags()))
	for i, tag := range subcontext.Tags() {
		assert.Equal(t, tag, ps[i].Tag())
	}
}

func TestSpeakSymbol(t *testing.T) {
	a := newApplicator(Options{})
	assert.Equal(t, "alpha", a.SpeakSymbol(`\alpha`))
	assert.Equal(t, "X", a.SpeakSymbol("X"))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	opts := OptionsFromConfig(cfg.Vocabulary)
	assert.True(t, opts.EmphasizeStability)
	assert.True(t, opts.ClarifyAlgorithms)
	assert.Equal(t, cfg.Vocabulary.MaxNestingDepth, opts.MaxNestingDepth)
}

func TestApply_Concurrent(t *testing.T) {
	a := newApplicator(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if got := a.Apply(`\frac{a}{b}`); got != "a over b" {
					t.Errorf("got %q", got)
				}
			}
		}()
	}
	wg.Wait()
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"the the set", "the set"},
		{"The the set", "the set"},
		{"a a b", "a a b"},
		{"A A to the T", "A A to the T"},
		{"x is {{EMPHASIS}}stable{{/EMPHASIS}} here", "x is, stable, here"},
		{"RK4 {{CLARIFY}}the classical method{{/CLARIFY}} is used", "RK4 (the classical method) is used"},
		{`\foo{x}`, "foo x"},
		{"a , b ,, c .", "a, b, c."},
		{"( x )", "(x)"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, postProcess(tt.in), tt.in)
	}
}

func TestProtectAndRestoreRefs(t *testing.T) {
	text, refs := protectRefs(`see \ref{a} and \cite{b}`)
	assert.Equal(t, "see ⟦0⟧ and ⟦1⟧", text)
	assert.Equal(t, `see \ref{a} and \cite{b}`, restoreRefs(text, refs))
}
