package memory

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/iabetor/mathspeak/internal/logger"
)

// Kind 是结构节点的类型。
type Kind int

const (
	KindDefinition Kind = iota
	KindTheorem
	KindLemma
	KindProposition
	KindCorollary
	KindProof
	KindExample
	KindRemark
	KindNotation
	KindEquation
	KindSection
	KindChapter
)

var kindNames = [...]string{
	"definition",
	"theorem",
	"lemma",
	"proposition",
	"corollary",
	"proof",
	"example",
	"remark",
	"notation",
	"equation",
	"section",
	"chapter",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind 把名称（不区分大小写）解析为 Kind。
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// TheoremLike 表示引用时需要附带陈述摘要的类型。
func (k Kind) TheoremLike() bool {
	switch k {
	case KindTheorem, KindLemma, KindProposition, KindCorollary:
		return true
	}
	return false
}

// rank 决定嵌套关系：新节点会先关闭栈顶所有 rank 不低于它的节点。
// 因此证明嵌套在定理之内，而新的定理会关闭上一个定理。
func (k Kind) rank() int {
	switch k {
	case KindChapter:
		return 0
	case KindSection:
		return 1
	case KindProof:
		return 3
	case KindEquation:
		return 4
	}
	return 2
}

// Handle 是结构节点在 arena 中的下标。
type Handle int

// NoHandle 表示没有父节点。
const NoHandle Handle = -1

// StructureNode 是一个定理、证明、定义等结构。父节点只以 Handle 引用，
// 子节点列表归父节点所有。
type StructureNode struct {
	Kind       Kind
	Identifier string
	Label      string
	Content    string
	CreatedAt  time.Time
	Parent     Handle
	Children   []Handle
}

// Name 返回 "theorem 3.2" 形式的名称。标签是源码里的键，不读出来，
// 只有标签的节点读作类型名。
func (n *StructureNode) Name() string {
	if n.Identifier == "" {
		return n.Kind.String()
	}
	return n.Kind.String() + " " + n.Identifier
}

// StructureMemory 用栈跟踪当前打开的结构，节点关闭后仍可通过 arena 和索引访问。
type StructureMemory struct {
	nodes    []*StructureNode
	stack    []Handle
	roots    []Handle
	byID     map[string]Handle
	byKindID map[string]Handle
	byLabel  map[string]Handle
}

// NewStructureMemory 创建空的结构记忆，初始处于正文状态。
func NewStructureMemory() *StructureMemory {
	sm := &StructureMemory{}
	sm.Reset()
	return sm
}

// Reset 清空全部节点和索引。
func (sm *StructureMemory) Reset() {
	sm.nodes = nil
	sm.stack = nil
	sm.roots = nil
	sm.byID = make(map[string]Handle)
	sm.byKindID = make(map[string]Handle)
	sm.byLabel = make(map[string]Handle)
}

// Begin 把新节点压栈，作为当前栈顶的子节点（栈空时作为根节点），并建立索引。
func (sm *StructureMemory) Begin(kind Kind, identifier, label string) Handle {
	h := Handle(len(sm.nodes))
	node := &StructureNode{
		Kind:       kind,
		Identifier: strings.TrimSpace(identifier),
		Label:      strings.TrimSpace(label),
		CreatedAt:  time.Now(),
		Parent:     NoHandle,
	}
	if top, ok := sm.topHandle(); ok {
		node.Parent = top
		sm.nodes[top].Children = append(sm.nodes[top].Children, h)
	} else {
		sm.roots = append(sm.roots, h)
	}
	sm.nodes = append(sm.nodes, node)
	sm.stack = append(sm.stack, h)

	if node.Identifier != "" {
		sm.byID[strings.ToLower(node.Identifier)] = h
		sm.byKindID[kindKey(kind, node.Identifier)] = h
	}
	if node.Label != "" {
		sm.byLabel[node.Label] = h
	}
	logger.Debugf("[memory] 进入 %s (depth=%d)", node.Name(), len(sm.stack))
	return h
}

// End 弹出栈顶节点。栈为空时返回 nil, false。
func (sm *StructureMemory) End() (*StructureNode, bool) {
	h, ok := sm.topHandle()
	if !ok {
		return nil, false
	}
	sm.stack = sm.stack[:len(sm.stack)-1]
	node := sm.nodes[h]
	logger.Debugf("[memory] 离开 %s (depth=%d)", node.Name(), len(sm.stack))
	return node, true
}

// EndKind 关闭最近打开的 kind 节点以及它内部仍打开的节点。没有打开的 kind 时不做任何事。
func (sm *StructureMemory) EndKind(kind Kind) (*StructureNode, bool) {
	if !sm.InKind(kind) {
		return nil, false
	}
	for {
		node, ok := sm.End()
		if !ok || node.Kind == kind {
			return node, ok
		}
	}
}

// SetLabel 为节点设置标签并建立索引。
func (sm *StructureMemory) SetLabel(h Handle, label string) {
	node := sm.Node(h)
	label = strings.TrimSpace(label)
	if node == nil || label == "" {
		return
	}
	node.Label = label
	sm.byLabel[label] = h
}

// AppendContent 把文本追加到栈顶节点的内容中。
func (sm *StructureMemory) AppendContent(text string) {
	h, ok := sm.topHandle()
	if !ok {
		return
	}
	node := sm.nodes[h]
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if node.Content == "" {
		node.Content = text
	} else {
		node.Content += " " + text
	}
}

func (sm *StructureMemory) topHandle() (Handle, bool) {
	if len(sm.stack) == 0 {
		return NoHandle, false
	}
	return sm.stack[len(sm.stack)-1], true
}

// Top 返回栈顶节点。
func (sm *StructureMemory) Top() (*StructureNode, bool) {
	h, ok := sm.topHandle()
	if !ok {
		return nil, false
	}
	return sm.nodes[h], true
}

// Depth 返回栈深度。
func (sm *StructureMemory) Depth() int { return len(sm.stack) }

// Node 按 Handle 返回节点，越界返回 nil。
func (sm *StructureMemory) Node(h Handle) *StructureNode {
	if h < 0 || int(h) >= len(sm.nodes) {
		return nil
	}
	return sm.nodes[h]
}

// Nodes 按创建顺序返回全部节点。
func (sm *StructureMemory) Nodes() []*StructureNode {
	return append([]*StructureNode(nil), sm.nodes...)
}

// Roots 返回顶层节点。
func (sm *StructureMemory) Roots() []Handle {
	return append([]Handle(nil), sm.roots...)
}

// InKind 判断栈中是否有 kind 类型的节点。
func (sm *StructureMemory) InKind(kind Kind) bool {
	for _, h := range sm.stack {
		if sm.nodes[h].Kind == kind {
			return true
		}
	}
	return false
}

// CurrentContext 描述当前所处的结构，如 "within theorem 3.2, inside proof"。
func (sm *StructureMemory) CurrentContext() string {
	if len(sm.stack) == 0 {
		return "main text"
	}
	parts := make([]string, 0, len(sm.stack))
	for _, h := range sm.stack {
		parts = append(parts, sm.nodes[h].Name())
	}
	return "within " + strings.Join(parts, ", inside ")
}

var kindRefRe = regexp.MustCompile(`(?i)^(definition|theorem|lemma|proposition|corollary|proof|example|remark|notation|equation|section|chapter)\s+\(?([^()]+?)\)?$`)

// ResolveReference 依次按 "类型 编号"、编号、标签、编号的不区分大小写子串查找节点。
func (sm *StructureMemory) ResolveReference(ref string) (*StructureNode, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	if m := kindRefRe.FindStringSubmatch(ref); m != nil {
		kind, _ := ParseKind(m[1])
		if h, ok := sm.byKindID[kindKey(kind, m[2])]; ok {
			return sm.nodes[h], true
		}
		ref = m[2]
	}
	if h, ok := sm.byID[strings.ToLower(ref)]; ok {
		return sm.nodes[h], true
	}
	if h, ok := sm.byLabel[ref]; ok {
		return sm.nodes[h], true
	}

	lower := strings.ToLower(ref)
	for i := len(sm.nodes) - 1; i >= 0; i-- {
		n := sm.nodes[i]
		for _, id := range []string{n.Identifier, n.Label} {
			if id == "" {
				continue
			}
			if strings.Contains(strings.ToLower(id), lower) {
				return n, true
			}
		}
	}
	return nil, false
}

func kindKey(kind Kind, id string) string {
	return kind.String() + " " + strings.ToLower(strings.TrimSpace(id))
}

// Candidate 是 DetectStructures 找到的一次结构变化。
type Candidate struct {
	Kind       Kind
	Identifier string
	Label      string
	Body       string // 标题之后的正文
	Closing    bool
	pos        int
}

const kindAlternation = `definition|theorem|lemma|proposition|corollary|proof|example|remark|notation|equation|section|chapter`

// 公式不以标题形式出现："Equation (5)" 是引用，只有 \begin{equation} 打开公式节点。
const headingAlternation = `definition|theorem|lemma|proposition|corollary|proof|example|remark|notation|section|chapter`

var (
	headingRe       = regexp.MustCompile(`(?i)^\s*(` + headingAlternation + `)\b\s*([0-9]+(?:\.[0-9]+)*)?\s*(?:\(([^()]*)\))?\s*([.:]|of\b.*?[.:](?:\s|$)|$)?`)
	sentenceStartRe = regexp.MustCompile(`[.!?:;]\s+`)
	beginMarkupRe   = regexp.MustCompile(`\\{1,2}begin\{(` + kindAlternation + `)\*?\}(?:\[([^\]]*)\])?`)
	endMarkupRe     = regexp.MustCompile(`\\{1,2}end\{(` + kindAlternation + `)\*?\}`)
	labelRe         = regexp.MustCompile(`\\{1,2}label\{([^{}]+)\}`)
	terminalRe      = regexp.MustCompile(`Q\.E\.D\.?|\bQED\b|∎|□|\\{1,2}(?:qed|qedhere|blacksquare|square)\b`)
)

// DetectStructures 扫描每个句首的结构标题、\begin{…}/\end{…} 标记和证明结束符，
// 按出现位置返回候选。不修改状态。
func (sm *StructureMemory) DetectStructures(text string) []Candidate {
	label, labelPos := "", -1
	if m := labelRe.FindStringSubmatchIndex(text); m != nil {
		label, labelPos = text[m[2]:m[3]], m[0]
	}

	out := detectHeadings(text, label, labelPos)

	for _, m := range beginMarkupRe.FindAllStringSubmatchIndex(text, -1) {
		kind, _ := ParseKind(text[m[2]:m[3]])
		body := text[m[1]:]
		if loc := endMarkupRe.FindStringIndex(body); loc != nil {
			body = body[:loc[0]]
		}
		out = append(out, Candidate{
			Kind:       kind,
			Identifier: sub(text, m, 2),
			Label:      label,
			Body:       strings.TrimSpace(labelRe.ReplaceAllString(body, "")),
			pos:        m[0],
		})
	}
	for _, m := range endMarkupRe.FindAllStringSubmatchIndex(text, -1) {
		kind, _ := ParseKind(text[m[2]:m[3]])
		out = append(out, Candidate{Kind: kind, Closing: true, pos: m[0]})
	}
	if loc := terminalRe.FindStringIndex(text); loc != nil && !endsProofMarkup(text) {
		out = append(out, Candidate{Kind: KindProof, Closing: true, pos: loc[0]})
	}

	sortCandidates(out)
	return out
}

// detectHeadings 在文本开头和每个句首查找标题。句中的标题必须以 "." 或 ":" 结尾，
// 避免把 "Theorem 2 says…" 这样的正文当成标题。每个标题的正文截止到下一个标题，
// 标签归属于包含它的那个标题。
func detectHeadings(text, label string, labelPos int) []Candidate {
	starts := []int{0}
	for _, loc := range sentenceStartRe.FindAllStringIndex(text, -1) {
		if loc[1] < len(text) {
			starts = append(starts, loc[1])
		}
	}

	var out []Candidate
	var bodyStarts []int
	next := 0
	for _, start := range starts {
		if start < next {
			continue
		}
		rest := text[start:]
		m := headingRe.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}
		kind, _ := ParseKind(rest[m[2]:m[3]])
		id := sub(rest, m, 2)
		title := sub(rest, m, 3)
		term := sub(rest, m, 4)
		if start > 0 && term == "" {
			continue
		}
		// 无编号、无标题的标题词后必须紧跟标点或 "of"，避免把正文里的 "Proof that…" 当成标题
		if id == "" && title == "" && term == "" && m[1] != len(rest) {
			continue
		}
		if id == "" {
			id = title
		}
		out = append(out, Candidate{
			Kind:       kind,
			Identifier: id,
			pos:        start + m[0],
		})
		bodyStarts = append(bodyStarts, start+m[1])
		next = start + m[1]
	}

	for i := range out {
		end := len(text)
		if i+1 < len(out) {
			end = out[i+1].pos
		}
		out[i].Body = strings.TrimSpace(labelRe.ReplaceAllString(text[bodyStarts[i]:end], ""))
		if labelPos >= out[i].pos && labelPos < end {
			out[i].Label = label
		}
	}
	return out
}

// endsProofMarkup 为 true 时 \end{proof} 已经产生了关闭候选，结束符不再重复关闭。
func endsProofMarkup(text string) bool {
	for _, m := range endMarkupRe.FindAllStringSubmatch(text, -1) {
		if strings.EqualFold(m[1], "proof") {
			return true
		}
	}
	return false
}

func sortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].pos < cs[j].pos })
}

// sub 返回第 i 个捕获组，未参与匹配时返回空串。
func sub(text string, loc []int, i int) string {
	if 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return ""
	}
	return strings.TrimSpace(text[loc[2*i]:loc[2*i+1]])
}
