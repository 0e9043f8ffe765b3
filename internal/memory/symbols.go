// Package memory 跟踪文档状态：已定义的符号、嵌套的定理/证明结构、交叉引用，
// 并由 Context 把它们组合成逐条处理表达式的会话。
package memory

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/iabetor/mathspeak/internal/logger"
)

// Symbol 是一个已定义的符号。
type Symbol struct {
	Key         string
	DisplayName string
	Definition  string
	Context     string
	CreatedAt   time.Time
	UsageCount  int
	Aliases     []string
}

// Definition 是 ExtractDefinitions 找到的一处定义。
type Definition struct {
	Symbol string // 原始符号记号
	Body   string // 定义内容，如 "a topological space"
	Source string // 命中的原文片段
}

// SymbolMemory 是有容量上限的符号表，超出容量时按插入顺序淘汰最旧的符号。
type SymbolMemory struct {
	maxSymbols int
	symbols    map[string]*Symbol
	order      []string
	aliases    map[string]string
}

// NewSymbolMemory 创建符号表。maxSymbols <= 0 时使用默认值 500。
func NewSymbolMemory(maxSymbols int) *SymbolMemory {
	if maxSymbols <= 0 {
		maxSymbols = 500
	}
	return &SymbolMemory{
		maxSymbols: maxSymbols,
		symbols:    make(map[string]*Symbol),
		aliases:    make(map[string]string),
	}
}

var (
	canonDelimRe = regexp.MustCompile(`^(?:\$+|\\\(|\\\[)|(?:\$+|\\\)|\\\])$`)
	canonSpaceRe = regexp.MustCompile(`\s+`)
)

// Canonical 返回符号的规范键：NFC 规范化，去掉定界符、外层花括号、前导反斜杠和多余空白。
func Canonical(symbol string) string {
	s := norm.NFC.String(strings.TrimSpace(symbol))
	for {
		prev := s
		s = strings.TrimSpace(canonDelimRe.ReplaceAllString(s, ""))
		if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
		s = strings.TrimLeft(s, `\`)
		if s == prev {
			break
		}
	}
	return canonSpaceRe.ReplaceAllString(s, " ")
}

// Define 定义或更新符号。已存在的键原地更新，保留使用次数；
// 新符号插入后若超出容量则淘汰最旧的符号及其别名。
func (m *SymbolMemory) Define(symbol, name, definition, context string) *Symbol {
	key := Canonical(symbol)
	if key == "" {
		return nil
	}
	if target, ok := m.aliases[key]; ok {
		key = target
	}
	if name == "" {
		name = key
	}

	if s, ok := m.symbols[key]; ok {
		logger.Debugf("[memory] 符号 %q 已存在，覆盖定义: %q -> %q", key, s.Definition, definition)
		s.DisplayName = name
		s.Definition = definition
		s.Context = context
		s.CreatedAt = time.Now()
		return s
	}

	s := &Symbol{
		Key:         key,
		DisplayName: name,
		Definition:  definition,
		Context:     context,
		CreatedAt:   time.Now(),
	}
	m.symbols[key] = s
	m.order = append(m.order, key)
	m.evict()
	return s
}

func (m *SymbolMemory) evict() {
	for len(m.order) > m.maxSymbols {
		oldest := m.order[0]
		m.order = m.order[1:]
		if s, ok := m.symbols[oldest]; ok {
			for _, a := range s.Aliases {
				delete(m.aliases, a)
			}
		}
		delete(m.symbols, oldest)
		logger.Infof("[memory] 符号表已满 (%d)，淘汰最早的符号 %q", m.maxSymbols, oldest)
	}
}

// Recall 按规范键查找符号，其次查别名表。命中时使用次数加一。
func (m *SymbolMemory) Recall(symbol string) (*Symbol, bool) {
	s, ok := m.Lookup(symbol)
	if ok {
		s.UsageCount++
	}
	return s, ok
}

// Lookup 与 Recall 相同，但不改变使用次数。
func (m *SymbolMemory) Lookup(symbol string) (*Symbol, bool) {
	key := Canonical(symbol)
	if s, ok := m.symbols[key]; ok {
		return s, true
	}
	if target, ok := m.aliases[key]; ok {
		s, ok := m.symbols[target]
		return s, ok
	}
	return nil, false
}

// AddAlias 注册从 alias 到 canonical 的单向映射。canonical 未定义、
// 两者相同或 alias 本身已是定义过的符号时返回 false。
func (m *SymbolMemory) AddAlias(alias, canonical string) bool {
	a, c := Canonical(alias), Canonical(canonical)
	if a == "" || c == "" || a == c {
		return false
	}
	if target, ok := m.aliases[c]; ok {
		c = target
	}
	s, ok := m.symbols[c]
	if !ok {
		return false
	}
	if _, taken := m.symbols[a]; taken {
		return false
	}
	if prev, ok := m.aliases[a]; ok {
		if prev == c {
			return true
		}
		if old, ok := m.symbols[prev]; ok {
			old.Aliases = removeString(old.Aliases, a)
		}
	}
	m.aliases[a] = c
	s.Aliases = append(s.Aliases, a)
	return true
}

// Len 返回符号数量。
func (m *SymbolMemory) Len() int { return len(m.order) }

// All 按插入顺序返回全部符号。
func (m *SymbolMemory) All() []*Symbol {
	out := make([]*Symbol, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.symbols[k])
	}
	return out
}

// Clear 清空符号表。
func (m *SymbolMemory) Clear() {
	m.symbols = make(map[string]*Symbol)
	m.aliases = make(map[string]string)
	m.order = nil
}

// Snapshot 返回符号的副本，用于持久化。
func (m *SymbolMemory) Snapshot() []Symbol {
	out := make([]Symbol, 0, len(m.order))
	for _, s := range m.All() {
		c := *s
		c.Aliases = append([]string(nil), s.Aliases...)
		out = append(out, c)
	}
	return out
}

// Restore 按给定顺序载入符号，保留使用次数和别名，仍受容量限制。
func (m *SymbolMemory) Restore(symbols []Symbol) {
	for _, s := range symbols {
		key := Canonical(s.Key)
		if key == "" {
			continue
		}
		if _, exists := m.symbols[key]; !exists {
			m.order = append(m.order, key)
		}
		c := s
		c.Key = key
		c.Aliases = nil
		if c.DisplayName == "" {
			c.DisplayName = key
		}
		m.symbols[key] = &c
		for _, a := range s.Aliases {
			m.AddAlias(a, key)
		}
	}
	m.evict()
}

// Occurrences 返回在 text 中以独立记号形式出现的符号，按插入顺序。
func (m *SymbolMemory) Occurrences(text string) []*Symbol {
	var out []*Symbol
	for _, s := range m.All() {
		if indexToken(text, s.Key) >= 0 {
			out = append(out, s)
			continue
		}
		for _, a := range s.Aliases {
			if indexToken(text, a) >= 0 {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// indexToken 返回 tok 在 text 中第一次独立出现的位置：前后不能紧挨字母或数字。
func indexToken(text, tok string) int {
	if tok == "" {
		return -1
	}
	for from := 0; from <= len(text)-len(tok); {
		i := strings.Index(text[from:], tok)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(tok)
		if !isWordByte(text, i-1) && !isWordByte(text, end) {
			return i
		}
		from = i + 1
	}
	return -1
}

func isWordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// 定义触发模式。sym 匹配 $…$、\(…\)、命令名或带下标/参数的单个字母。
const symPattern = `(\$[^$]+\$|\\\([^)]*\\\)|\\[A-Za-z]+|[A-Za-z](?:_\{?[A-Za-z0-9]+\}?)?(?:\([^()]*\))?)`

var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\blet\s+` + symPattern + `\s+(?:be|denote|denotes)\s+([^.;]*)`),
	regexp.MustCompile(`(?i)\bdefine\s+` + symPattern + `\s*(?:=|:=|\bas\b|\bto be\b|\bby\b)\s*([^.;]*)`),
	regexp.MustCompile(`(?i)\bwhere\s+` + symPattern + `\s+(?:is|denotes|represents|stands for)\s+([^.;]*)`),
	regexp.MustCompile(symPattern + `\s*(?::=|\\coloneqq)\s*([^.;,$]*)`),
}

// 关系符号之前的部分才是被定义的符号，如 "F \subseteq X" 中的 F。
var relationSplitRe = regexp.MustCompile(`\\(?:subseteq|subset|in|colon|le|leq|ge|geq|neq)\b|[=:<>]`)

// ExtractDefinitions 扫描文本中的定义语句，按出现顺序返回，同一符号只返回一次。
// 不修改符号表。
func (m *SymbolMemory) ExtractDefinitions(text string) []Definition {
	type hit struct {
		pos int
		def Definition
	}
	var hits []hit
	for _, re := range definitionPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			sym := symbolHead(text[loc[2]:loc[3]])
			if sym == "" {
				continue
			}
			hits = append(hits, hit{pos: loc[2], def: Definition{
				Symbol: sym,
				Body:   strings.TrimSpace(strings.Trim(text[loc[4]:loc[5]], "$")),
				Source: strings.TrimSpace(text[loc[0]:loc[1]]),
			}})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool)
	var out []Definition
	for _, h := range hits {
		key := Canonical(h.def.Symbol)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h.def)
	}
	return out
}

// symbolHead 去掉定界符后取关系符号之前的部分，并去掉函数参数。
func symbolHead(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimSuffix(s, "$"), "$")
	s = strings.TrimPrefix(strings.TrimSuffix(s, `\)`), `\(`)
	if loc := relationSplitRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if i := strings.Index(s, "("); i > 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
