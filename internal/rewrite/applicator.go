// Package rewrite 实现 Rule Applicator：按子语境选择词表分区，
// 依次执行缩写展开、嵌套内容规整、词表替换、上下文规则和后处理。
package rewrite

import (
	"fmt"
	"strings"

	"github.com/iabetor/mathspeak/internal/config"
	"github.com/iabetor/mathspeak/internal/logger"
	"github.com/iabetor/mathspeak/internal/subcontext"
	"github.com/iabetor/mathspeak/internal/vocab"
)

// Options 控制改写行为。
type Options struct {
	EmphasizeStability bool
	ClarifyAlgorithms  bool
	ClarifyTheorems    bool
	RomanizeCJK        bool
	MaxNestingDepth    int
}

// OptionsFromConfig 从词表配置构造 Options。
func OptionsFromConfig(cfg config.VocabularyConfig) Options {
	return Options{
		EmphasizeStability: cfg.EmphasizeStability,
		ClarifyAlgorithms:  cfg.ClarifyAlgorithms,
		ClarifyTheorems:    cfg.ClarifyTheorems,
		RomanizeCJK:        cfg.RomanizeCJK,
		MaxNestingDepth:    cfg.MaxNestingDepth,
	}
}

// Applicator 把数学记号改写为口语文本。构造后只读，可在多个 goroutine 间共享。
type Applicator struct {
	set   *vocab.Set
	opts  Options
	flags map[vocab.Flag]bool
}

// New 创建 Applicator。set 为 nil 时编译内置词表。
func New(set *vocab.Set, opts Options) *Applicator {
	if set == nil {
		set = vocab.NewSet()
	}
	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = 8
	}
	return &Applicator{
		set:  set,
		opts: opts,
		flags: map[vocab.Flag]bool{
			vocab.FlagEmphasizeStability: opts.EmphasizeStability,
			vocab.FlagClarifyAlgorithms:  opts.ClarifyAlgorithms,
			vocab.FlagClarifyTheorems:    opts.ClarifyTheorems,
		},
	}
}

// Apply 检测子语境后改写文本。内部异常只记录日志，返回去掉定界符的原文。
func (a *Applicator) Apply(text string) string {
	out, err := a.Rewrite(text)
	if err != nil {
		logger.Warnf("[rewrite] %v", err)
	}
	return out
}

// Rewrite 与 Apply 相同，但把内部异常作为 error 返回。
func (a *Applicator) Rewrite(text string) (string, error) {
	return a.RewriteIn(text, subcontext.Detect(text))
}

// RewriteIn 使用指定子语境改写文本。
func (a *Applicator) RewriteIn(text string, tag subcontext.Tag) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = strings.TrimSpace(spacesRe.ReplaceAllString(stripDelimiters(text), " "))
			err = fmt.Errorf("改写表达式失败 (subcontext=%s): %v", tag, r)
		}
	}()
	return a.applyIn(text, tag), nil
}

// SpeakSymbol 把单个符号读作口语，供 memory 生成符号的显示名。
func (a *Applicator) SpeakSymbol(symbol string) string {
	out, err := a.RewriteIn(symbol, subcontext.General)
	if err != nil || out == "" {
		return strings.TrimSpace(symbol)
	}
	return out
}

func (a *Applicator) applyIn(text string, tag subcontext.Tag) string {
	domain := vocab.Domain(tag)

	text, refs := protectRefs(stripDelimiters(text))
	if a.opts.RomanizeCJK {
		text = romanizeText(text)
	}
	for _, m := range a.set.AbbreviationMatchers(domain) {
		text = a.replace(text, m, nil, 0)
	}

	ms := a.set.Matchers(domain)
	text = a.normalizeNested(text, ms, 0)
	text = a.applyMatchers(text, ms, 0)
	text = a.applySpecial(text, domain)

	return restoreRefs(postProcess(text), refs)
}

func (a *Applicator) render(text string, ms []*vocab.Matcher, depth int) string {
	return a.applyMatchers(a.normalizeNested(text, ms, depth), ms, depth)
}

func (a *Applicator) applyMatchers(text string, ms []*vocab.Matcher, depth int) string {
	for _, m := range ms {
		next := a.replace(text, m, ms, depth)
		// 相邻的裸命令共用边界字符，需要再扫一遍
		for i := 0; m.Boundary && next != text && i < 4; i++ {
			text = next
			next = a.replace(text, m, ms, depth)
		}
		text = next
	}
	return text
}

func (a *Applicator) applySpecial(text string, domain vocab.Domain) string {
	for _, sm := range a.set.Special() {
		if !a.flags[sm.Flag] || !sm.Applies(domain) {
			continue
		}
		text = a.replace(text, sm.Matcher, nil, 0)
	}
	return text
}

// replace 用一个匹配器替换全部命中。ms 非空时，含记号的捕获组先用同一词表渲染。
func (a *Applicator) replace(text string, m *vocab.Matcher, ms []*vocab.Matcher, depth int) string {
	locs := m.Re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		boundary := ""
		if m.Boundary {
			boundary = groups[len(groups)-1]
			groups = groups[:len(groups)-1]
		}
		if ms != nil && !m.Rule.RawGroups && depth < a.opts.MaxNestingDepth {
			for i := 1; i < len(groups); i++ {
				if hasNotation(groups[i]) {
					groups[i] = a.render(groups[i], ms, depth+1)
				}
			}
		}

		b.WriteString(text[last:loc[0]])
		b.WriteString(" ")
		b.WriteString(decorate(m.Rule, m.Rule.Template.Expand(groups)))
		b.WriteString(" ")
		b.WriteString(boundary)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// decorate 按规则标志包上强调或说明标记。
func decorate(r vocab.Rule, out string) string {
	if r.Emphasize {
		out = vocab.EmphasisOpen + out + vocab.EmphasisClose
	}
	if r.AddClarification && r.Clarification != "" {
		out += " " + vocab.ClarifyOpen + r.Clarification + vocab.ClarifyClose
	}
	return out
}

// hasNotation 判断捕获组是否还含有未改写的记号。
func hasNotation(s string) bool {
	return strings.ContainsAny(s, `\^_{`)
}

// normalizeNested 由内向外渲染自身还含有花括号的 {…} 分组，深度受 MaxNestingDepth 限制。
func (a *Applicator) normalizeNested(text string, ms []*vocab.Matcher, depth int) string {
	if depth >= a.opts.MaxNestingDepth || !strings.Contains(text, "{") {
		return text
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			b.WriteString(text[i : i+2])
			i += 2
			continue
		}
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		end := matchBrace(text, i)
		if end < 0 {
			b.WriteString(text[i:])
			break
		}
		body := text[i+1 : end]
		if hasBrace(body) {
			body = a.render(body, ms, depth+1)
		}
		b.WriteByte('{')
		b.WriteString(body)
		b.WriteByte('}')
		i = end + 1
	}
	return b.String()
}

// matchBrace 返回与 start 处 '{' 配对的 '}' 下标，找不到返回 -1。转义的花括号不计。
func matchBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func hasBrace(body string) bool {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			return true
		}
	}
	return false
}
