package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mathspeak.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const plainConfig = `
vocabulary:
  emphasize_stability: false
  clarify_algorithms: false
  clarify_theorems: false
memory:
  persistence: false
log:
  level: error
`

func TestSpeak_Args(t *testing.T) {
	cfg := writeConfig(t, plainConfig)
	out, err := run(t, "", "--config", cfg, "speak", `\frac{a}{b}`)
	require.NoError(t, err)
	assert.Equal(t, "a over b\n", out)
}

func TestSpeak_StdinInDocumentOrder(t *testing.T) {
	cfg := writeConfig(t, plainConfig)
	doc := strings.Join([]string{
		"Theorem 3.2. Every closed subset of a compact space is compact.",
		"",
		"By Theorem 3.2, we conclude F is compact.",
	}, "\n")

	out, err := run(t, doc, "--config", cfg, "speak", "--info")
	require.NoError(t, err)
	assert.Contains(t, out, "theorem 3.2 (which states:")
	assert.Contains(t, out, "structures=1")
	assert.Equal(t, 2, strings.Count(out, "  [topology]"))
}

func TestSpeak_Chunks(t *testing.T) {
	cfg := writeConfig(t, plainConfig+"tts:\n  max_chunk_chars: 20\n")
	out, err := run(t, "", "--config", cfg, "speak", "--chunks", "the first sentence here. the second sentence here.")
	require.NoError(t, err)
	assert.Equal(t, "- the first sentence\n- here.\n- the second sentence\n- here.\n", out)
}

func TestSpeak_BadConfig(t *testing.T) {
	cfg := writeConfig(t, "memory:\n  backend: redis\n")
	_, err := run(t, "", "--config", cfg, "speak", "x")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	out, err := run(t, "", "detect", "a compact Hausdorff space")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "topology", lines[0])
	assert.Contains(t, out, "topology")
}

func TestSymbols_Persisted(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, `
memory:
  persistence: true
  backend: sqlite
  path: `+filepath.Join(dir, "mathspeak.db")+`
log:
  level: error
`)

	out, err := run(t, "", "--config", cfg, "symbols")
	require.NoError(t, err)
	assert.Contains(t, out, "没有已保存的符号")

	_, err = run(t, "", "--config", cfg, "speak", "Let $X$ be a topological space.")
	require.NoError(t, err)

	out, err = run(t, "", "--config", cfg, "symbols")
	require.NoError(t, err)
	assert.Contains(t, out, "a topological space")
	assert.Contains(t, out, "used 0x")
}

func TestSpeak_InfoOutline(t *testing.T) {
	cfg := writeConfig(t, plainConfig)
	out, err := run(t, "", "--config", cfg, "speak", "--info", "Lemma 1. Proof. trivial. QED")
	require.NoError(t, err)
	assert.Contains(t, out, "structures=1")
	assert.Contains(t, out, "outline:\n  - lemma 1\n    - proof\n")
}

func TestDetect_Render(t *testing.T) {
	out, err := run(t, "", "detect", "--render", `\overline{A}`)
	require.NoError(t, err)
	assert.Contains(t, out, "=> the closure of A")
	assert.Contains(t, out, "=> A bar")
}
