package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newResolver() (*StructureMemory, *ReferenceResolver) {
	sm := NewStructureMemory()
	h := sm.Begin(KindTheorem, "3.2", "thm:compact")
	sm.Node(h).Content = "Every closed subset of a compact space is compact."
	sm.End()
	h = sm.Begin(KindDefinition, "2.1", "")
	sm.Node(h).Content = "A space is compact if every open cover has a finite subcover."
	sm.End()
	sm.Begin(KindEquation, "", "eq:circle")
	sm.End()
	h = sm.Begin(KindLemma, "", "lem:key")
	sm.Node(h).Content = "Bounded sets are small."
	sm.End()
	return sm, NewReferenceResolver(sm, 0)
}

func TestProcessReferences(t *testing.T) {
	_, r := newResolver()
	tests := []struct {
		name      string
		in        string
		want      string
		wantCount int
	}{
		{
			name:      "natural theorem reference",
			in:        "By Theorem 3.2, we conclude F is compact.",
			want:      "By theorem 3.2 (which states: Every closed subset of a compact space is compact), we conclude F is compact.",
			wantCount: 1,
		},
		{
			name:      "definition reference",
			in:        "from Definition 2.1",
			want:      "from definition 2.1 (which defines: A space is compact if every open cover has a finite subcover)",
			wantCount: 1,
		},
		{
			name:      "unresolved",
			in:        "see Lemma 4.1 for details",
			want:      "see the reference 4.1 for details",
			wantCount: 1,
		},
		{
			name:      "label reference",
			in:        `by \ref{thm:compact}`,
			want:      "by theorem 3.2 (which states: Every closed subset of a compact space is compact)",
			wantCount: 1,
		},
		{
			name:      "equation label",
			in:        `combining \eqref{eq:circle} and \cite{knuth}`,
			want:      "combining the equation and the reference knuth",
			wantCount: 2,
		},
		{
			name:      "label only lemma",
			in:        `using \ref{lem:key}`,
			want:      "using the lemma (which states: Bounded sets are small)",
			wantCount: 1,
		},
		{
			name:      "bare equation number",
			in:        "equation (7) gives",
			want:      "the reference 7 gives",
			wantCount: 1,
		},
		{name: "no references", in: "x plus y", want: "x plus y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := r.ProcessReferences(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestProcessReferences_SnippetLimit(t *testing.T) {
	sm, _ := newResolver()
	r := NewReferenceResolver(sm, 20)
	got, _ := r.ProcessReferences("By Theorem 3.2.")
	assert.Equal(t, "By theorem 3.2 (which states: Every closed subset...).", got)
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short.", 80, "short"},
		{"  a   b  ", 80, "a b"},
		{"one two three four", 9, "one two..."},
		{"one, two three", 5, "one..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Snippet(tt.in, tt.max), tt.in)
	}
}
