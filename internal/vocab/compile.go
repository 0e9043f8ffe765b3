package vocab

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/iabetor/mathspeak/internal/logger"
)

// Matcher 是编译后的规则。
type Matcher struct {
	Rule Rule
	Re   *regexp.Regexp
	// Boundary 为 true 时最后一个捕获组是命令名之后的边界字符，
	// 它不属于匹配内容，替换时需原样保留。
	Boundary bool
	order    int
}

// leadingCommandRe 识别正则源码开头的转义命令：`\\name` 或 `\\\\name`。
var leadingCommandRe = regexp.MustCompile(`^(?:\\\\){1,2}([A-Za-z]+)`)

// DualEscape 把正则源码开头的转义命令改写为同时接受单、双反斜杠的形式。
// 返回改写后的源码，以及该源码是否仅由这个命令构成。
func DualEscape(pattern string) (string, bool) {
	loc := leadingCommandRe.FindStringSubmatchIndex(pattern)
	if loc == nil {
		return pattern, false
	}
	name := pattern[loc[2]:loc[3]]
	rest := pattern[loc[1]:]
	return `\\{1,2}` + name + rest, rest == ""
}

// Compile 编译单条规则。
func Compile(rule Rule) (*Matcher, error) {
	if rule.Pattern == "" {
		return nil, fmt.Errorf("规则模式为空")
	}
	src, bare := DualEscape(rule.Pattern)
	if bare {
		// 裸命令后必须跟非字母，避免 \in 命中 \infty
		src += `([^A-Za-z]|$)`
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("编译规则 %q 失败: %w", rule.Pattern, err)
	}
	return &Matcher{Rule: rule, Re: re, Boundary: bare}, nil
}

// CompileSet 编译一组规则。编译失败的规则被跳过并记录警告，其余规则照常编译。
// 结果按模式长度降序、优先级降序、声明顺序稳定排序。
func CompileSet(rules []Rule) []*Matcher {
	out := make([]*Matcher, 0, len(rules))
	for i, r := range rules {
		m, err := Compile(r)
		if err != nil {
			logger.Warnf("[vocab] 跳过无效规则 (domain=%s): %v", r.Domain, err)
			continue
		}
		m.order = i
		out = append(out, m)
	}
	SortMatchers(out)
	return out
}

// SortMatchers 按模式长度降序、优先级降序、声明顺序稳定排序。
func SortMatchers(ms []*Matcher) {
	sort.SliceStable(ms, func(i, j int) bool {
		li, lj := len(ms[i].Rule.Pattern), len(ms[j].Rule.Pattern)
		if li != lj {
			return li > lj
		}
		if ms[i].Rule.Priority != ms[j].Rule.Priority {
			return ms[i].Rule.Priority > ms[j].Rule.Priority
		}
		return ms[i].order < ms[j].order
	})
}

// Set 是按分区预编译好的词表。
type Set struct {
	byDomain map[Domain][]*Matcher
	abbrevs  map[Domain][]*Matcher
	special  []*SpecialMatcher
}

// NewSet 编译内置词表。每个分区的匹配器列表包含 General 规则和该分区规则，
// 只在构造时排序一次。
func NewSet() *Set {
	return NewSetFrom(AllRules(), Abbreviations(), SpecialRules())
}

// NewSetFrom 用给定规则构造词表，主要供测试使用。
func NewSetFrom(rules []Rule, abbrevs []Rule, special []SpecialRule) *Set {
	s := &Set{
		byDomain: make(map[Domain][]*Matcher),
		abbrevs:  make(map[Domain][]*Matcher),
	}

	for _, d := range append([]Domain{General}, Domains()...) {
		s.byDomain[d] = CompileSet(filterDomain(rules, d))
		s.abbrevs[d] = CompileSet(filterDomain(abbrevs, d))
	}

	for _, sr := range special {
		m, err := Compile(sr.Rule)
		if err != nil {
			logger.Warnf("[vocab] 跳过无效的上下文规则: %v", err)
			continue
		}
		s.special = append(s.special, &SpecialMatcher{Matcher: m, Flag: sr.Flag, Domains: sr.Domains})
	}

	total := 0
	for _, ms := range s.byDomain {
		total += len(ms)
	}
	logger.Debugf("[vocab] 词表编译完成: %d 个分区, %d 个匹配器, %d 条上下文规则",
		len(s.byDomain), total, len(s.special))
	return s
}

// filterDomain 选出 General 规则和指定分区的规则。
func filterDomain(rules []Rule, d Domain) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		dom := r.Domain
		if dom == "" {
			dom = General
		}
		if dom == General || dom == d {
			out = append(out, r)
		}
	}
	return out
}

// Matchers 返回指定分区（含 General）的有序匹配器；未知分区回退到 General。
func (s *Set) Matchers(d Domain) []*Matcher {
	if ms, ok := s.byDomain[d]; ok {
		return ms
	}
	return s.byDomain[General]
}

// AbbreviationMatchers 返回指定分区的缩写展开匹配器。
func (s *Set) AbbreviationMatchers(d Domain) []*Matcher {
	if ms, ok := s.abbrevs[d]; ok {
		return ms
	}
	return s.abbrevs[General]
}

// Special 返回所有上下文规则。
func (s *Set) Special() []*SpecialMatcher {
	return s.special
}

// AllRules 汇总全部内置分区的规则。
func AllRules() []Rule {
	var all []Rule
	all = append(all, generalRules()...)
	all = append(all, calculusRules()...)
	all = append(all, linearAlgebraRules()...)
	all = append(all, setLogicRules()...)
	all = append(all, topologyRules()...)
	all = append(all, odeRules()...)
	all = append(all, numericalRules()...)
	all = append(all, probabilityRules()...)
	all = append(all, complexRules()...)
	all = append(all, algebraRules()...)
	all = append(all, numberTheoryRules()...)
	return all
}

// spaced 在短字母序列的字符之间插入空格，用于下标 ij 读作 "i j"。
func spaced(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 4 {
		return s
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return s
		}
	}
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, " ")
}
