package memory

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ReferenceResolver 把文本中的交叉引用展开为对已记录结构的描述。
type ReferenceResolver struct {
	structures   *StructureMemory
	snippetChars int
}

// NewReferenceResolver 创建解析器。snippetChars 为陈述摘要的最大字符数。
func NewReferenceResolver(structures *StructureMemory, snippetChars int) *ReferenceResolver {
	if snippetChars <= 0 {
		snippetChars = 80
	}
	return &ReferenceResolver{structures: structures, snippetChars: snippetChars}
}

type refPattern struct {
	re *regexp.Regexp
	// render 根据捕获组返回引用文本的替换结果
	render func(r *ReferenceResolver, g []string) string
}

var refPatterns = []refPattern{
	{
		re: regexp.MustCompile(`(?i)\b(see|by|from|in|using|via|cf\.|compare)\s+(` + kindAlternation + `)\s+\(?([0-9]+(?:\.[0-9]+)*)\)?`),
		render: func(r *ReferenceResolver, g []string) string {
			return g[1] + " " + r.describe(g[2]+" "+g[3], g[3])
		},
	},
	{
		re: regexp.MustCompile(`\\{1,2}eqref\{([^{}]+)\}`),
		render: func(r *ReferenceResolver, g []string) string {
			return r.describe(g[1], g[1])
		},
	},
	{
		re: regexp.MustCompile(`\\{1,2}(?:ref|autoref|cref)\{([^{}]+)\}`),
		render: func(r *ReferenceResolver, g []string) string {
			return r.describe(g[1], g[1])
		},
	},
	{
		re: regexp.MustCompile(`\\{1,2}cite\{([^{}]+)\}`),
		render: func(r *ReferenceResolver, g []string) string {
			return r.describe(g[1], g[1])
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bequation\s+\(([0-9]+(?:\.[0-9]+)*)\)`),
		render: func(r *ReferenceResolver, g []string) string {
			return r.describe("equation "+g[1], g[1])
		},
	},
}

// ProcessReferences 展开文本中的全部引用，返回新文本和处理的引用数。
// 无法解析的引用读作 "the reference N"，不会原样保留。
func (r *ReferenceResolver) ProcessReferences(text string) (string, int) {
	count := 0
	for _, p := range refPatterns {
		p := p
		text = p.re.ReplaceAllStringFunc(text, func(m string) string {
			count++
			return p.render(r, p.re.FindStringSubmatch(m))
		})
	}
	return text, count
}

// describe 解析 ref；display 是无法解析时读出的编号。
func (r *ReferenceResolver) describe(ref, display string) string {
	node, ok := r.structures.ResolveReference(ref)
	if !ok {
		return "the reference " + strings.TrimSpace(display)
	}
	phrase := node.Name()
	if node.Identifier == "" {
		phrase = "the " + phrase
	}
	snippet := Snippet(node.Content, r.snippetChars)
	if snippet == "" {
		return phrase
	}
	switch {
	case node.Kind.TheoremLike():
		return phrase + " (which states: " + snippet + ")"
	case node.Kind == KindDefinition:
		return phrase + " (which defines: " + snippet + ")"
	}
	return phrase
}

// Snippet 把文本截断到 max 个字符以内，尽量在词边界处截断，去掉结尾标点。
func Snippet(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > max {
		runes := []rune(text)
		cut := string(runes[:max])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return strings.TrimRight(cut, " ,.;:") + "..."
	}
	return strings.TrimRight(text, " ,.;:")
}
