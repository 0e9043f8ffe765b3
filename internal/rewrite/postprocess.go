package rewrite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iabetor/mathspeak/internal/vocab"
)

var (
	emphasisRe = regexp.MustCompile(regexp.QuoteMeta(vocab.EmphasisOpen) + `(.*?)` + regexp.QuoteMeta(vocab.EmphasisClose))
	clarifyRe  = regexp.MustCompile(`\s*` + regexp.QuoteMeta(vocab.ClarifyOpen) + `(.*?)` + regexp.QuoteMeta(vocab.ClarifyClose))
	markerRe   = regexp.MustCompile(`\{\{/?(?:EMPHASIS|CLARIFY)\}\}`)

	leftoverCmdRe = regexp.MustCompile(`\\+([A-Za-z]+)`)
	backslashRe   = regexp.MustCompile(`\\+`)
	// 只合并 "the the"：单独的 a/A 可能是变量
	articlesRe    = regexp.MustCompile(`(?i)\bthe\s+(the\b)`)
	spacesRe      = regexp.MustCompile(`\s+`)
	spaceBeforeRe = regexp.MustCompile(`\s+([,.;:!?)])`)
	spaceAfterRe  = regexp.MustCompile(`\(\s+`)
	dupCommaRe    = regexp.MustCompile(`,(\s*,)+`)
	commaStopRe   = regexp.MustCompile(`,\s*([.;:!?)])`)
	emptyParenRe  = regexp.MustCompile(`\(\s*\)`)

	delimRe = regexp.MustCompile(`\$+|\\{1,2}[()\[\]]`)
	refRe   = regexp.MustCompile(`\\{1,2}(?:ref|eqref|autoref|cref|cite)\{[^{}]+\}`)
	slotRe  = regexp.MustCompile(`⟦([0-9]+)⟧`)
)

// stripDelimiters 去掉 $…$、\(…\)、\[…\] 等数学定界符。
func stripDelimiters(text string) string {
	return delimRe.ReplaceAllString(text, " ")
}

// protectRefs 把交叉引用命令换成占位符，避免被词表规则改写。
// 交叉引用由 memory 包的解析器统一展开。
func protectRefs(text string) (string, []string) {
	var refs []string
	out := refRe.ReplaceAllStringFunc(text, func(m string) string {
		refs = append(refs, m)
		return "⟦" + strconv.Itoa(len(refs)-1) + "⟧"
	})
	return out, refs
}

func restoreRefs(text string, refs []string) string {
	if len(refs) == 0 {
		return text
	}
	return slotRe.ReplaceAllStringFunc(text, func(m string) string {
		n, err := strconv.Atoi(slotRe.FindStringSubmatch(m)[1])
		if err != nil || n >= len(refs) {
			return m
		}
		return refs[n]
	})
}

// postProcess 把内联标记展开为标点，清理残留记号并规整空白。
func postProcess(text string) string {
	text = emphasisRe.ReplaceAllString(text, ", $1,")
	text = clarifyRe.ReplaceAllString(text, " ($1)")
	text = markerRe.ReplaceAllString(text, " ")

	text = leftoverCmdRe.ReplaceAllString(text, " $1 ")
	text = backslashRe.ReplaceAllString(text, " ")
	text = strings.NewReplacer("{", " ", "}", " ").Replace(text)

	for {
		next := articlesRe.ReplaceAllString(text, "$1")
		if next == text {
			break
		}
		text = next
	}

	text = spacesRe.ReplaceAllString(text, " ")
	text = spaceBeforeRe.ReplaceAllString(text, "$1")
	text = spaceAfterRe.ReplaceAllString(text, "(")
	text = emptyParenRe.ReplaceAllString(text, "")
	text = dupCommaRe.ReplaceAllString(text, ",")
	text = commaStopRe.ReplaceAllString(text, "$1")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.Trim(text, " ,")
}
