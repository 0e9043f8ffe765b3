package rewrite

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var textCmdRe = regexp.MustCompile(`\\{1,2}(text|textrm|mbox|textit|textbf)\{([^{}]*)\}`)

// romanizeText 把 \text{} 中的汉字转写为不带声调的拼音，便于英文语音引擎朗读。
func romanizeText(text string) string {
	if !containsHan(text) {
		return text
	}
	return textCmdRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := textCmdRe.FindStringSubmatch(m)
		if !containsHan(sub[2]) {
			return m
		}
		return `\` + sub[1] + "{" + toPinyin(sub[2]) + "}"
	})
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// toPinyin 逐字转写，相邻汉字之间用空格分开，非汉字字符保持原样。
func toPinyin(text string) string {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal

	var b strings.Builder
	lastWasHan := false
	for _, r := range text {
		if !unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
			lastWasHan = false
			continue
		}
		py := pinyin.Pinyin(string(r), args)
		if len(py) == 0 || len(py[0]) == 0 {
			b.WriteRune(r)
			lastWasHan = false
			continue
		}
		if lastWasHan {
			b.WriteString(" ")
		}
		b.WriteString(py[0][0])
		lastWasHan = true
	}
	return b.String()
}
