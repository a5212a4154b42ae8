package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reBracketed   = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]`)
	reOpenBracket = regexp.MustCompile(`\s*[\(\[].*$`)
	reNonAlnum    = regexp.MustCompile(`[^a-z0-9 ]+`)
)

func NormalizeSpaces(input string) string {
	s := strings.ReplaceAll(input, " ", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// StripAnnotations drops parenthetical and bracketed suffixes such as win-loss
// records or betting odds: "Boston Celtics (14-2)" -> "Boston Celtics".
// An unclosed bracket truncates the rest of the text.
func StripAnnotations(input string) string {
	s := reBracketed.ReplaceAllString(input, "")
	s = reOpenBracket.ReplaceAllString(s, "")
	return NormalizeSpaces(s)
}

// NormalizeTeamText lower-cases and strips annotations and punctuation so free
// text can be compared against registry names.
func NormalizeTeamText(input string) string {
	s := strings.ToLower(StripAnnotations(input))
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", "")
	s = reNonAlnum.ReplaceAllString(s, " ")
	return NormalizeSpaces(s)
}

// SplitRankPrefix splits "12. Utah Jazz (3-9)" into ("12", "Utah Jazz (3-9)").
// ok is false when the text does not start with a numbered prefix.
func SplitRankPrefix(text string) (rank, rest string, ok bool) {
	text = NormalizeSpaces(text)
	idx := strings.Index(text, ". ")
	if idx <= 0 {
		return "", text, false
	}
	rank = strings.TrimSpace(text[:idx])
	for _, r := range rank {
		if r < '0' || r > '9' {
			return "", text, false
		}
	}
	return rank, strings.TrimSpace(text[idx+2:]), true
}
