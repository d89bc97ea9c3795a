package recall

import (
	"strings"
	"unicode"
)

// SplitSentences cuts text after '.', '?' or '!' when followed by whitespace.
// A period does not end a sentence after a single-letter initial ("A."), inside a
// dotted abbreviation ("e.g.", "U.S.") or after a two-letter title ("Mr.", "Dr.").
func SplitSentences(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			continue
		}
		prev := runes[i-1]
		if prev != '.' && prev != '?' && prev != '!' {
			continue
		}
		if prev == '.' && guardedPeriod(runes[:i]) {
			continue
		}
		out = appendTrimmed(out, string(runes[start:i]))
		start = i + 1
	}
	if start < len(runes) {
		out = appendTrimmed(out, string(runes[start:]))
	}
	return out
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

// guardedPeriod inspects head, which ends with '.'.
func guardedPeriod(head []rune) bool {
	n := len(head)
	// w.w.
	if n >= 4 && isWordRune(head[n-4]) && head[n-3] == '.' && isWordRune(head[n-2]) {
		return true
	}
	word := 0
	for j := n - 2; j >= 0 && isWordRune(head[j]); j-- {
		word++
	}
	switch word {
	case 1:
		return unicode.IsLetter(head[n-2])
	case 2:
		return head[n-3] >= 'A' && head[n-3] <= 'Z' && head[n-2] >= 'a' && head[n-2] <= 'z'
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

type span struct{ start, end int }

// wordSpans returns byte ranges of maximal word-character runs.
func wordSpans(s string) []span {
	var out []span
	in := false
	begin := 0
	for i, r := range s {
		switch {
		case isWordRune(r) && !in:
			in, begin = true, i
		case !isWordRune(r) && in:
			in = false
			out = append(out, span{begin, i})
		}
	}
	if in {
		out = append(out, span{begin, len(s)})
	}
	return out
}
