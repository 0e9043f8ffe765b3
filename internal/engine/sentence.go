package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// extractSentence 尝试从文本中提取第一个完整句子。
// 英文句号只有后面跟空白或位于末尾时才算句末，"3.2" 和 "e.g" 中的点不切分。
func extractSentence(text string) (string, string, bool) {
	for i, r := range text {
		switch r {
		case '。', '！', '？', '；', '!', '?', ';', '\n':
		case '.':
			next, _ := utf8.DecodeRuneInString(text[i+1:])
			if i+1 < len(text) && !unicode.IsSpace(next) {
				continue
			}
		default:
			continue
		}
		splitAt := i + utf8.RuneLen(r)
		return text[:splitAt], text[splitAt:], true
	}
	return "", text, false
}

// mergeSentences 将文本按句分割后合并为大段，每段不超过 maxChars 个字符。
// 单句超长时在词边界处硬切。
func mergeSentences(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 200
	}

	var chunks []string
	var current strings.Builder
	remaining := text

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	add := func(sentence string) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			return
		}
		for _, piece := range splitLong(sentence, maxChars) {
			pieceLen := utf8.RuneCountInString(piece)
			currentLen := utf8.RuneCountInString(current.String())
			// 如果当前段追加后超限，先刷出当前段
			if current.Len() > 0 && currentLen+1+pieceLen > maxChars {
				flush()
			}
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(piece)
		}
	}

	for {
		sentence, rest, found := extractSentence(remaining)
		if !found {
			add(remaining)
			break
		}
		remaining = rest
		add(sentence)
	}
	flush()
	return chunks
}

// splitLong 把超过 maxChars 的句子在空格处切开；没有空格时按字符数切。
func splitLong(sentence string, maxChars int) []string {
	var out []string
	for utf8.RuneCountInString(sentence) > maxChars {
		runes := []rune(sentence)
		cut := string(runes[:maxChars])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		out = append(out, strings.TrimSpace(cut))
		sentence = strings.TrimSpace(sentence[len(cut):])
	}
	if sentence != "" {
		out = append(out, sentence)
	}
	return out
}
