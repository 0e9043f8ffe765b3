package memory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	for i, name := range kindNames {
		k, ok := ParseKind(name)
		require.True(t, ok, name)
		assert.Equal(t, Kind(i), k)
		assert.Equal(t, name, k.String())
	}
	k, ok := ParseKind("  Theorem ")
	assert.True(t, ok)
	assert.Equal(t, KindTheorem, k)

	_, ok = ParseKind("conjecture")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(99).String())

	assert.True(t, KindLemma.TheoremLike())
	assert.False(t, KindProof.TheoremLike())
	assert.False(t, KindDefinition.TheoremLike())
}

func TestStructureNode_Name(t *testing.T) {
	assert.Equal(t, "theorem 3.2", (&StructureNode{Kind: KindTheorem, Identifier: "3.2"}).Name())
	assert.Equal(t, "equation", (&StructureNode{Kind: KindEquation, Label: "eq:1"}).Name(), "labels are not spoken")
	assert.Equal(t, "proof", (&StructureNode{Kind: KindProof}).Name())
}

func TestBeginEnd_DepthNeverNegative(t *testing.T) {
	sm := NewStructureMemory()

	node, ok := sm.End()
	assert.False(t, ok)
	assert.Nil(t, node)
	assert.Equal(t, 0, sm.Depth())

	sm.Begin(KindTheorem, "1", "")
	sm.Begin(KindProof, "", "")
	assert.Equal(t, 2, sm.Depth())

	for i := 0; i < 4; i++ {
		sm.End()
		assert.GreaterOrEqual(t, sm.Depth(), 0)
	}
	assert.Equal(t, 0, sm.Depth())
	assert.Len(t, sm.Nodes(), 2, "closed nodes stay reachable")
}

func TestBegin_ParentAndChildren(t *testing.T) {
	sm := NewStructureMemory()
	thm := sm.Begin(KindTheorem, "3.2", "thm:compact")
	proof := sm.Begin(KindProof, "", "")
	sm.End()
	sm.End()
	other := sm.Begin(KindLemma, "4", "")

	assert.Equal(t, NoHandle, sm.Node(thm).Parent)
	assert.Equal(t, thm, sm.Node(proof).Parent)
	assert.Equal(t, []Handle{proof}, sm.Node(thm).Children)
	assert.Equal(t, []Handle{thm, other}, sm.Roots())
	assert.Nil(t, sm.Node(Handle(42)))
	assert.Nil(t, sm.Node(NoHandle))
}

func TestEndKind(t *testing.T) {
	sm := NewStructureMemory()
	sm.Begin(KindSection, "2", "")
	sm.Begin(KindTheorem, "2.1", "")
	sm.Begin(KindProof, "", "")
	sm.Begin(KindEquation, "", "eq:a")

	node, ok := sm.EndKind(KindProof)
	require.True(t, ok)
	assert.Equal(t, KindProof, node.Kind)
	assert.Equal(t, 2, sm.Depth())

	node, ok = sm.EndKind(KindProof)
	assert.False(t, ok)
	assert.Nil(t, node)
	assert.Equal(t, 2, sm.Depth())
}

func TestCurrentContext(t *testing.T) {
	sm := NewStructureMemory()
	assert.Equal(t, "main text", sm.CurrentContext())

	sm.Begin(KindTheorem, "3.2", "")
	sm.Begin(KindProof, "", "")
	assert.Equal(t, "within theorem 3.2, inside proof", sm.CurrentContext())
	assert.True(t, sm.InKind(KindProof))
	assert.False(t, sm.InKind(KindLemma))
}

func TestSetLabelAndAppendContent(t *testing.T) {
	sm := NewStructureMemory()
	sm.AppendContent("ignored with nothing open")

	h := sm.Begin(KindDefinition, "1", "")
	sm.AppendContent("A space is compact")
	sm.AppendContent("  ")
	sm.AppendContent("if every cover has a finite subcover.")
	sm.SetLabel(h, "def:compact")
	sm.SetLabel(NoHandle, "nothing")

	node, ok := sm.ResolveReference("def:compact")
	require.True(t, ok)
	assert.Equal(t, "A space is compact if every cover has a finite subcover.", node.Content)
}

func TestResolveReference(t *testing.T) {
	sm := NewStructureMemory()
	sm.Begin(KindTheorem, "3.2", "thm:compact")
	sm.End()
	sm.Begin(KindLemma, "Zorn", "")
	sm.End()

	tests := []struct {
		ref    string
		wantOK bool
		want   string
	}{
		{"Theorem 3.2", true, "theorem 3.2"},
		{"theorem (3.2)", true, "theorem 3.2"},
		{"3.2", true, "theorem 3.2"},
		{"thm:compact", true, "theorem 3.2"},
		{"zorn", true, "lemma Zorn"},
		{"Zor", true, "lemma Zorn"},
		{"9.9", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			node, ok := sm.ResolveReference(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, node.Name())
			}
		})
	}
}

func TestResolveReference_AfterReset(t *testing.T) {
	sm := NewStructureMemory()
	sm.Begin(KindTheorem, "1", "")
	sm.Reset()
	_, ok := sm.ResolveReference("Theorem 1")
	assert.False(t, ok)
	assert.Equal(t, 0, sm.Depth())
	assert.Empty(t, sm.Nodes())
}

func TestDetectStructures(t *testing.T) {
	sm := NewStructureMemory()
	tests := []struct {
		name string
		in   string
		want []Candidate
	}{
		{
			name: "numbered theorem",
			in:   "Theorem 3.2. Every closed subset of a compact space is compact.",
			want: []Candidate{{Kind: KindTheorem, Identifier: "3.2", Body: "Every closed subset of a compact space is compact."}},
		},
		{
			name: "proof heading",
			in:   `Proof. Let $F \subseteq X$ be closed.`,
			want: []Candidate{{Kind: KindProof, Body: `Let $F \subseteq X$ be closed.`}},
		},
		{
			name: "proof of",
			in:   "Proof of Theorem 3.2. Suppose not.",
			want: []Candidate{{Kind: KindProof, Body: "Suppose not."}},
		},
		{
			name: "titled lemma",
			in:   "Lemma 2 (Zorn). Every chain has an upper bound.",
			want: []Candidate{{Kind: KindLemma, Identifier: "2", Body: "Every chain has an upper bound."}},
		},
		{
			name: "title only",
			in:   "Definition (Compactness): A space is compact if...",
			want: []Candidate{{Kind: KindDefinition, Identifier: "Compactness", Body: "A space is compact if..."}},
		},
		{
			name: "bare section",
			in:   "Section 2",
			want: []Candidate{{Kind: KindSection, Identifier: "2"}},
		},
		{
			name: "terminal marker",
			in:   "Q.E.D.",
			want: []Candidate{{Kind: KindProof, Closing: true}},
		},
		{
			name: "heading and terminal marker",
			in:   "Proof. Trivial. ∎",
			want: []Candidate{
				{Kind: KindProof, Body: "Trivial. ∎"},
				{Kind: KindProof, Closing: true},
			},
		},
		{
			name: "environment markup",
			in:   `\begin{theorem}[Heine-Borel] \label{thm:hb} Closed and bounded sets are compact. \end{theorem}`,
			want: []Candidate{
				{Kind: KindTheorem, Identifier: "Heine-Borel", Label: "thm:hb", Body: "Closed and bounded sets are compact."},
				{Kind: KindTheorem, Closing: true},
			},
		},
		{
			name: "qed inside proof markup closes once",
			in:   `\begin{proof} Trivial. \qed \end{proof}`,
			want: []Candidate{
				{Kind: KindProof, Body: `Trivial. \qed`},
				{Kind: KindProof, Closing: true},
			},
		},
		{
			name: "headings at sentence starts",
			in:   "Lemma 1. Proof. trivial. QED",
			want: []Candidate{
				{Kind: KindLemma, Identifier: "1"},
				{Kind: KindProof, Body: "trivial. QED"},
				{Kind: KindProof, Closing: true},
			},
		},
		{
			name: "label belongs to the heading that contains it",
			in:   `Theorem 1. A. Proof. B. \label{prf:one}`,
			want: []Candidate{
				{Kind: KindTheorem, Identifier: "1", Body: "A."},
				{Kind: KindProof, Label: "prf:one", Body: "B."},
			},
		},
		{name: "mid-text heading needs punctuation", in: "As shown above. Theorem 2 says more.", want: nil},
		{name: "equation number is a reference", in: "Equation (5) shows it.", want: nil},
		{name: "reference is not a heading", in: "By Theorem 3.2, we conclude F is compact.", want: nil},
		{name: "prose proof", in: "Proof that the map is continuous", want: nil},
		{name: "plain math", in: "x^2 + y^2 = 1", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sm.DetectStructures(tt.in)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreUnexported(Candidate{})); diff != "" {
				t.Errorf("DetectStructures(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
	assert.Equal(t, 0, sm.Depth(), "detection must not change state")
}

func TestTerminalMarkers(t *testing.T) {
	for _, in := range []string{"Q.E.D.", "QED", "done ∎", "□", `\qed`, `\\blacksquare`} {
		assert.True(t, terminalRe.MatchString(in), in)
	}
	for _, in := range []string{"qualified", "QEDs", "the square of x"} {
		assert.False(t, terminalRe.MatchString(in), in)
	}
}
