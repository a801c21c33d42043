package utils

import (
	"regexp"
	"strings"
)

var (
	wordPattern  = regexp.MustCompile(`[A-Za-z0-9\-']{2,}`)
	tokenPattern = regexp.MustCompile(`[A-Za-z0-9\-']{3,}`)
)

// NormalizeWord lowercases a word and strips common plural suffixes so
// "kiwis", "Kiwi" and "KIWI" compare equal. This is a heuristic
// singularizer, not a dictionary lookup; irregular plurals can be
// over- or under-stripped.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(strings.ToLower(word))

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "oes") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"), strings.HasSuffix(word, "xes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ses") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}

// NormalizeText tokenizes the message, normalizes each word and rejoins
// with single spaces. Words shorter than 2 characters are dropped.
func NormalizeText(text string) string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	for i, w := range words {
		words[i] = NormalizeWord(w)
	}
	return strings.Join(words, " ")
}

// Tokens extracts normalized tokens of length >= 3 for overlap scoring.
func Tokens(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, NormalizeWord(t))
	}
	return tokens
}
