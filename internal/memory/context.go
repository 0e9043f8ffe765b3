package memory

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/iabetor/mathspeak/internal/logger"
)

// Namer 把记号读作口语：SpeakSymbol 生成符号的显示名，
// Apply 渲染定义正文和结构内容，使引用摘要和提醒里只剩口语文本。
type Namer interface {
	SpeakSymbol(symbol string) string
	Apply(text string) string
}

// NamerFunc 让普通函数实现 Namer，两个方法都调用 f。
type NamerFunc func(string) string

// SpeakSymbol 实现 Namer。
func (f NamerFunc) SpeakSymbol(s string) string { return f(s) }

// Apply 实现 Namer。
func (f NamerFunc) Apply(text string) string { return f(text) }

// Options 是 Context 的构造参数。
type Options struct {
	MaxSymbols   int
	SnippetChars int
	// Store 为 nil 时不持久化，ResetSession 会同时清空符号表。
	Store Store
	Namer Namer
}

// Info 是一次 ProcessExpression 后的上下文摘要。
type Info struct {
	SessionID            string
	SymbolCount          int
	ActiveStructures     int
	ReferenceCount       int
	ReadingPosition      ReadingPosition
	Context              string
	ExpressionsProcessed int
}

// Result 是 ProcessExpression 的返回值。
type Result struct {
	EnhancedText   string
	Info           Info
	NewDefinitions []*Symbol
}

// Context 组合符号记忆、结构记忆和引用解析，按文档顺序逐条处理表达式。
// 一个实例只服务一个文档会话，不做并发保护。
type Context struct {
	symbols    *SymbolMemory
	structures *StructureMemory
	refs       *ReferenceResolver
	store      Store
	namer      Namer
	session    Session
}

// NewContext 创建上下文。配置了 Store 时立即载入已保存的符号，失败只记录日志。
func NewContext(opts Options) *Context {
	structures := NewStructureMemory()
	c := &Context{
		symbols:    NewSymbolMemory(opts.MaxSymbols),
		structures: structures,
		refs:       NewReferenceResolver(structures, opts.SnippetChars),
		store:      opts.Store,
		namer:      opts.Namer,
		session:    newSession(),
	}
	c.load()
	return c
}

func (c *Context) load() {
	if c.store == nil {
		return
	}
	rec, err := c.store.Load()
	if err != nil {
		logger.Warnf("[memory] 载入符号记忆失败（将使用空记忆）: %v", err)
		return
	}
	c.symbols.Restore(rec.symbols())
	if c.symbols.Len() > 0 {
		logger.Infof("[memory] 已载入 %d 个符号", c.symbols.Len())
	}
}

// Save 保存符号记忆。未配置 Store 时什么也不做；失败只记录日志。
func (c *Context) Save() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(recordFromSymbols(c.symbols.Snapshot())); err != nil {
		logger.Warnf("[memory] 保存符号记忆失败: %v", err)
		return
	}
	logger.Debugf("[memory] 已保存 %d 个符号", c.symbols.Len())
}

// Symbols 返回符号记忆。
func (c *Context) Symbols() *SymbolMemory { return c.symbols }

// Structures 返回结构记忆。
func (c *Context) Structures() *StructureMemory { return c.structures }

// Session 返回当前会话状态的副本。
func (c *Context) Session() Session { return c.session }

// ProcessExpression 用原始记号更新符号和结构，再展开草稿口语文本中的引用。
func (c *Context) ProcessExpression(raw, draft string) Result {
	c.session.ExpressionsProcessed++
	c.session.LastExpression = raw

	// 已知符号再次出现即计一次使用
	for _, s := range c.symbols.Occurrences(mathRegions(raw)) {
		c.symbols.Recall(s.Key)
	}

	structureContext := c.structures.CurrentContext()
	var newDefs []*Symbol
	for _, d := range c.symbols.ExtractDefinitions(raw) {
		_, existed := c.symbols.Lookup(d.Symbol)
		name := ""
		if c.namer != nil {
			name = c.namer.SpeakSymbol(d.Symbol)
		}
		definition := d.Body
		if definition == "" {
			definition = d.Source
		}
		s := c.symbols.Define(d.Symbol, name, c.speak(definition), structureContext)
		if s != nil && !existed {
			newDefs = append(newDefs, s)
		}
	}

	terminal, plain := c.applyStructures(raw)

	// 先解析引用再追加内容，避免摘要里出现本条表达式自身
	text, refCount := c.refs.ProcessReferences(draft)
	if plain {
		c.structures.AppendContent(c.speak(labelRe.ReplaceAllString(raw, "")))
	}
	// 公式节点只在本条表达式内有效，未写 \end{equation} 也不会一直留在栈上
	c.structures.EndKind(KindEquation)
	c.session.ReadingPosition = computePosition(c.session.ExpressionsProcessed, c.structures.InKind(KindProof), terminal)

	return Result{
		EnhancedText:   text,
		NewDefinitions: newDefs,
		Info: Info{
			SessionID:            c.session.ID,
			SymbolCount:          c.symbols.Len(),
			ActiveStructures:     c.structures.Depth(),
			ReferenceCount:       refCount,
			ReadingPosition:      c.session.ReadingPosition,
			Context:              c.structures.CurrentContext(),
			ExpressionsProcessed: c.session.ExpressionsProcessed,
		},
	}
}

// applyStructures 执行检测到的结构变化。terminal 表示本条关闭了证明，
// plain 表示没有任何结构变化，调用方应把文本追加到栈顶结构。
// 新结构先关闭栈顶所有同级或更深的结构。
func (c *Context) applyStructures(raw string) (terminal, plain bool) {
	candidates := c.structures.DetectStructures(raw)
	for _, cand := range candidates {
		if cand.Closing {
			if _, ok := c.structures.EndKind(cand.Kind); ok && cand.Kind == KindProof {
				terminal = true
			} else if !ok {
				logger.Debugf("[memory] 忽略多余的 %s 结束标记", cand.Kind)
			}
			continue
		}
		for {
			top, ok := c.structures.Top()
			if !ok || top.Kind.rank() < cand.Kind.rank() {
				break
			}
			c.structures.End()
		}
		h := c.structures.Begin(cand.Kind, cand.Identifier, cand.Label)
		c.structures.Node(h).Content = c.speak(cand.Body)
	}
	if len(candidates) > 0 {
		return terminal, false
	}
	if m := labelRe.FindStringSubmatch(raw); m != nil {
		if top, ok := c.structures.topHandle(); ok {
			c.structures.SetLabel(top, m[1])
		}
	}
	return false, true
}

// speak 把记号渲染为口语。没有 Namer 时只去掉定界符和命令前的反斜杠。
func (c *Context) speak(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if c.namer != nil {
		return strings.TrimSpace(c.namer.Apply(text))
	}
	return plainNotation(text)
}

var (
	notationDelimRe = regexp.MustCompile(`\$+|\\{1,2}[()\[\]]`)
	notationCmdRe   = regexp.MustCompile(`\\+([A-Za-z]*)`)
)

func plainNotation(text string) string {
	text = notationDelimRe.ReplaceAllString(text, " ")
	text = notationCmdRe.ReplaceAllString(text, " $1 ")
	text = strings.NewReplacer("{", " ", "}", " ").Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

var (
	resultMarkerRe = regexp.MustCompile(`(?i)=|\bequals\b|\btherefore\b|\bhence\b|\bthus\b`)
	mathRegionRe   = regexp.MustCompile(`\$\$?([^$]+)\$\$?|\\\((.*?)\\\)|\\\[(.*?)\\\]`)
)

// 在口语文本里不当作符号查找的单字母，它们通常是英文单词。
var stopSymbols = map[string]bool{"a": true, "A": true, "I": true}

// EnhanceWithContext 为再次使用的符号在第一次出现处追加定义提醒；
// 在结构内部且文本含等式或结论标记时加上所处结构的前缀。
// 只读，重复调用不会重复添加提醒或前缀。
func (c *Context) EnhanceWithContext(text string) string {
	type insertion struct {
		pos  int
		note string
	}
	var inserts []insertion
	for _, s := range c.symbols.All() {
		if s.UsageCount < 2 || s.Definition == "" {
			continue
		}
		display := s.DisplayName
		if display == "" {
			display = s.Key
		}
		note := " (recall: " + display + " is " + strings.TrimRight(s.Definition, ". ") + ")"
		if strings.Contains(text, note) {
			continue
		}
		pos := -1
		for _, tok := range []string{display, s.Key} {
			if stopSymbols[tok] {
				continue
			}
			if i := indexToken(text, tok); i >= 0 {
				pos = i + len(tok)
				break
			}
		}
		if pos >= 0 {
			inserts = append(inserts, insertion{pos: pos, note: note})
		}
	}

	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].pos > inserts[j].pos })
	for _, in := range inserts {
		text = text[:in.pos] + in.note + text[in.pos:]
	}

	if c.structures.Depth() > 0 && resultMarkerRe.MatchString(text) {
		prefix := "We are now " + c.structures.CurrentContext() + ". "
		if !strings.HasPrefix(text, "We are now ") {
			text = prefix + text
		}
	}
	return text
}

// ResetSession 保存符号（如启用持久化）后清空结构记忆和会话计数。
// 未启用持久化时符号表也一并清空。
func (c *Context) ResetSession() {
	c.Save()
	c.structures.Reset()
	if c.store == nil {
		c.symbols.Clear()
	}
	old := c.session
	c.session = newSession()
	logger.Infof("[memory] 会话 %s 结束（%d 条表达式，历时 %s），新会话 %s",
		old.ID, old.ExpressionsProcessed, time.Since(old.StartedAt).Round(time.Millisecond), c.session.ID)
}

// Close 结束会话并保存符号记忆。
func (c *Context) Close() error {
	c.Save()
	return nil
}

// mathRegions 返回文本中定界符内的数学片段；没有定界符时返回原文。
func mathRegions(text string) string {
	matches := mathRegionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		for _, g := range m[1:] {
			if g != "" {
				parts = append(parts, g)
			}
		}
	}
	return strings.Join(parts, " ")
}
