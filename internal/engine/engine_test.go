package engine

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iabetor/mathspeak/internal/config"
	"github.com/iabetor/mathspeak/internal/memory"
	"github.com/iabetor/mathspeak/internal/rewrite"
	"github.com/iabetor/mathspeak/internal/subcontext"
	"github.com/iabetor/mathspeak/internal/vocab"
)

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Vocabulary.EmphasizeStability = false
	cfg.Vocabulary.ClarifyAlgorithms = false
	cfg.Vocabulary.ClarifyTheorems = false
	return cfg
}

func newEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestNew_DefaultConfig(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	assert.Empty(t, e.Symbols())
	assert.NoError(t, e.Close())
}

func TestSpeak_DocumentScenario(t *testing.T) {
	e := newEngine(t, plainConfig())

	r := e.Speak("Let $X$ be a topological space.")
	assert.False(t, r.Degraded)
	assert.Equal(t, subcontext.Topology, r.Subcontext)
	require.Len(t, r.NewDefinitions, 1)
	assert.Equal(t, "X", r.NewDefinitions[0].Key)
	assert.NotContains(t, r.Text, "$")

	r = e.Speak("Theorem 3.2. Every closed subset of a compact space is compact.")
	assert.Equal(t, 1, r.Info.ActiveStructures)

	r = e.Speak(`Proof. Let $F \subseteq X$ be closed.`)
	assert.Equal(t, 2, r.Info.ActiveStructures)
	assert.Equal(t, memory.PositionMiddle, r.Info.ReadingPosition)

	r = e.Speak("Q.E.D.")
	assert.Equal(t, 1, r.Info.ActiveStructures)

	r = e.Speak("By Theorem 3.2, we conclude F is compact.")
	assert.Contains(t, r.Text, "theorem 3.2 (which states:")
	assert.NotContains(t, r.Text, "Theorem 3.2,")
	assert.Equal(t, 1, r.Info.ReferenceCount)
	assert.Len(t, e.Symbols(), 2)
}

// 存入记忆的陈述和定义都是口语文本，引用展开和提醒不会带出记号。
func TestSpeak_MemoryHoldsSpokenText(t *testing.T) {
	e := newEngine(t, plainConfig())

	e.Speak(`Theorem 4.1. If $f: X \to Y$ is continuous then $f(X)$ is compact.`)
	r := e.Speak("By Theorem 4.1, done.")
	assert.Contains(t, r.Text, "theorem 4.1 (which states: If f")
	assert.False(t, strings.ContainsAny(r.Text, `$\{}`), r.Text)

	e.Speak(`Let $g$ be $\frac{1}{x}$.`)
	e.Speak("$g + 1$")
	e.Speak("$2 g$")
	r = e.Speak("$g$ is smooth")
	assert.Contains(t, r.Text, "(recall: g is 1 over x)")
	assert.False(t, strings.ContainsAny(r.Text, `$\{}`), r.Text)
}

func TestSpeak_RepeatedFactorsSurvive(t *testing.T) {
	e := newEngine(t, plainConfig())
	assert.Equal(t, "a a equals a squared", e.Speak("$a a = a^2$").Text)
	assert.Equal(t, "A A transpose", e.Speak("$A A^T$").Text)
}

func TestSpeak_EquationReferenceDoesNotOpenStructure(t *testing.T) {
	e := newEngine(t, plainConfig())
	e.Speak("Theorem 1. Every map is a map.")

	r := e.Speak("Equation (5) shows it.")
	assert.Equal(t, 1, r.Info.ActiveStructures)
	assert.Equal(t, "within theorem 1", r.Info.Context)

	r = e.Speak("Hence $x = 1$.")
	assert.Equal(t, "We are now within theorem 1. Hence x equals 1.", r.Text)
}

func TestSpeak_DegradedLeavesMemoryUntouched(t *testing.T) {
	boom := vocab.Rule{Pattern: "boom", Template: vocab.Computed(func([]string) string { panic("bad template") })}
	e := &Engine{
		cfg:        plainConfig(),
		applicator: rewrite.New(vocab.NewSetFrom([]vocab.Rule{boom}, nil, nil), rewrite.Options{}),
		memory:     memory.NewContext(memory.Options{}),
	}

	r := e.Speak("Let $X$ be boom.")
	assert.True(t, r.Degraded)
	assert.NotEmpty(t, r.Text)
	assert.Empty(t, e.Symbols())
	assert.Equal(t, 0, r.Info.ExpressionsProcessed)

	r = e.Speak("Let $X$ be a set.")
	assert.False(t, r.Degraded)
	assert.Len(t, e.Symbols(), 1)
}

func TestEngine_Persistence(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := plainConfig()
			cfg.Memory.Persistence = true
			cfg.Memory.Backend = backend
			cfg.Memory.Path = filepath.Join(t.TempDir(), "state", "symbols."+backend)

			e, err := New(cfg)
			require.NoError(t, err)
			e.Speak("Let $X$ be a topological space.")
			e.Speak("$X$ is compact")
			require.NoError(t, e.Close())

			again := newEngine(t, cfg)
			syms := again.Symbols()
			require.Len(t, syms, 1)
			assert.Equal(t, "X", syms[0].Key)
			assert.Equal(t, "a topological space", syms[0].Definition)
			assert.Equal(t, 1, syms[0].UsageCount)
		})
	}
}

func TestEngine_ResetSession(t *testing.T) {
	e := newEngine(t, plainConfig())
	e.Speak("Theorem 1. Something holds.")
	first := e.Memory().Session().ID

	e.ResetSession()
	assert.NotEqual(t, first, e.Memory().Session().ID)
	assert.Equal(t, 0, e.Memory().Structures().Depth())
}

func TestEngine_Chunks(t *testing.T) {
	cfg := plainConfig()
	cfg.TTS.MaxChunkChars = 30
	e := newEngine(t, cfg)

	text := "Let X be a topological space. Every closed subset of a compact space is compact. Done."
	chunks := e.Chunks(text)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 30, c)
	}
	assert.Equal(t, "Done.", chunks[len(chunks)-1])
}

func TestEngine_Detect(t *testing.T) {
	e := newEngine(t, plainConfig())
	assert.Equal(t, subcontext.ODE, e.Detect(`Solve the IVP y' = y`))
	assert.Equal(t, subcontext.General, e.Detect(`x + 1`))
}
