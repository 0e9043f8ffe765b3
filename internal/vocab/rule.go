// Package vocab 保存数学记号到口语短语的词表（Term Rule）以及把词表编译为
// 有序匹配器的 Pattern Compiler。
package vocab

import (
	"regexp"
	"strconv"
	"strings"
)

// Domain 表示一条规则所属的词表分区。
type Domain string

const (
	General       Domain = "general"
	Calculus      Domain = "calculus"
	LinearAlgebra Domain = "linear_algebra"
	SetLogic      Domain = "set_logic"
	Topology      Domain = "topology"
	ODE           Domain = "ode"
	Numerical     Domain = "numerical"
	Probability   Domain = "probability"
	Complex       Domain = "complex"
	Algebra       Domain = "algebra"
	NumberTheory  Domain = "number_theory"
)

// Domains 返回除 General 外的全部分区，顺序固定。
func Domains() []Domain {
	return []Domain{
		Calculus, LinearAlgebra, SetLogic, Topology, ODE,
		Numerical, Probability, Complex, Algebra, NumberTheory,
	}
}

// 内联标记，由 Rule Applicator 的后处理步骤展开为普通标点。
const (
	EmphasisOpen  = "{{EMPHASIS}}"
	EmphasisClose = "{{/EMPHASIS}}"
	ClarifyOpen   = "{{CLARIFY}}"
	ClarifyClose  = "{{/CLARIFY}}"
)

// TemplateKind 区分静态模板与计算模板。
type TemplateKind int

const (
	StaticTemplate TemplateKind = iota
	ComputedTemplate
)

// Template 是规则的输出模板：静态字符串（含 $1 / ${1} 位置占位符）
// 或者由捕获组计算结果的函数。
type Template struct {
	kind TemplateKind
	text string
	fn   func(groups []string) string
}

// Static 创建静态模板。
func Static(text string) Template {
	return Template{kind: StaticTemplate, text: text}
}

// Computed 创建计算模板。groups[0] 为整个匹配，groups[i] 为第 i 个捕获组。
func Computed(fn func(groups []string) string) Template {
	return Template{kind: ComputedTemplate, fn: fn}
}

// Kind 返回模板类型。
func (t Template) Kind() TemplateKind { return t.kind }

// Expand 用捕获组展开模板。
func (t Template) Expand(groups []string) string {
	switch t.kind {
	case ComputedTemplate:
		if t.fn == nil {
			return ""
		}
		return t.fn(groups)
	default:
		return expandStatic(t.text, groups)
	}
}

var placeholderRe = regexp.MustCompile(`\$(\d)|\$\{(\d+)\}`)

func expandStatic(text string, groups []string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(ph string) string {
		m := placeholderRe.FindStringSubmatch(ph)
		idx := m[1]
		if idx == "" {
			idx = m[2]
		}
		n, err := strconv.Atoi(idx)
		if err != nil || n >= len(groups) {
			return ""
		}
		return groups[n]
	})
}

// Rule 是一条记号到口语的替换规则。
type Rule struct {
	// Pattern 为正则源码，命令前缀写成单转义形式（`\\frac`）即可，
	// 编译时会生成同时接受 `\frac` 与 `\\frac` 的匹配器。
	Pattern  string
	Template Template
	Priority int
	Domain   Domain
	// Emphasize 为 true 时输出包裹在强调标记中。
	Emphasize bool
	// AddClarification 为 true 时在输出后追加 Clarification 说明。
	AddClarification bool
	Clarification    string
	// RawGroups 为 true 时捕获组不经过嵌套渲染，原样交给模板。
	RawGroups bool
}

// cmd 构造一条裸命令规则，如 cmd("alpha", "alpha") 匹配 \alpha。
func cmd(name, spoken string) Rule {
	return Rule{Pattern: `\\` + name, Template: Static(spoken)}
}

// sym 构造一条字面量规则。
func sym(literal, spoken string) Rule {
	return Rule{Pattern: regexp.QuoteMeta(literal), Template: Static(spoken)}
}

// rx 构造一条静态模板正则规则。
func rx(pattern, tpl string) Rule {
	return Rule{Pattern: pattern, Template: Static(tpl)}
}

// fn 构造一条计算模板正则规则。
func fn(pattern string, f func(g []string) string) Rule {
	return Rule{Pattern: pattern, Template: Computed(f)}
}

// prio 设置优先级。
func (r Rule) prio(p int) Rule {
	r.Priority = p
	return r
}

// raw 让捕获组原样传给模板。
func (r Rule) raw() Rule {
	r.RawGroups = true
	return r
}

// clarify 为规则附加说明文字。
func (r Rule) clarify(text string) Rule {
	r.AddClarification = true
	r.Clarification = text
	return r
}

// inDomain 为一组规则设置分区标签。
func inDomain(d Domain, rules ...Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Domain = d
		out[i] = r
	}
	return out
}
