package ats

import (
	"regexp"
	"strings"
)

// tokenPattern keeps +, # and . inside tokens so "c++", "c#" and "3.5"
// survive tokenization as single tokens.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9+#.]+`)

// Tokenize splits text into lower-cased tokens. No stemming, no stop words.
func Tokenize(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ToLower(m))
	}
	return tokens
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	addTokens(set, text)
	return set
}

func addTokens(set map[string]struct{}, text string) {
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
}
