package legacy

import (
	"regexp"
	"strings"
)

// SentenceSeparator joins sentences back into one block of text.
const SentenceSeparator = "  "

var sentenceEndPattern = regexp.MustCompile(`[.!]+\s+`)

// SplitSentences breaks text after each run of '.' or '!' that is followed by
// whitespace. The punctuation stays with its sentence; line breaks also end a
// sentence and blank segments are dropped.
func SplitSentences(text string) []string {
	sentences := []string{}
	start := 0
	for _, loc := range sentenceEndPattern.FindAllStringIndex(text, -1) {
		punctEnd := loc[0] + len(strings.TrimRight(text[loc[0]:loc[1]], " \t\r\n\f\v"))
		sentences = appendLines(sentences, text[start:punctEnd])
		start = loc[1]
	}
	return appendLines(sentences, text[start:])
}

func appendLines(dst []string, chunk string) []string {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			dst = append(dst, line)
		}
	}
	return dst
}

// JoinSentences is the inverse of SplitSentences for well-formed sentences.
func JoinSentences(sentences []string) string {
	return strings.Join(sentences, SentenceSeparator)
}
