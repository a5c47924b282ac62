package analyzer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// embeddedSymbols may appear inside a token after its first word character.
const embeddedSymbols = "@#$%&!-"

// tokenPattern finds a word character followed by word characters or embedded
// symbols. A match can end on a symbol; trimTrailingSymbols pulls the end back
// to the last word character so that every token also ends on a word boundary.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_@#$%&!\-]*`)

// dottedCapitalI lowercases U+0130 to i plus a combining dot above, which is
// not a word character, so the i stands alone.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

// Tokenizer lowercases text and splits it into word tokens.
type Tokenizer struct{}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the word tokens of text in order, plus any matched token
// that fails the word predicate.
func (t *Tokenizer) Tokenize(text string) ([]string, []string) {
	text = strings.ToLower(dottedCapitalI.Replace(text))
	matches := tokenPattern.FindAllString(text, -1)

	words := make([]string, 0, len(matches))
	var punctuation []string
	for _, m := range matches {
		m = trimTrailingSymbols(m)
		if isWord(m) {
			words = append(words, m)
		} else {
			punctuation = append(punctuation, m)
		}
	}
	return words, punctuation
}

// isWordChar reports whether r is in the word class: letters, digits, underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isWord reports whether tok starts with a word character and contains only
// word characters or embedded symbols.
func isWord(tok string) bool {
	first, size := utf8.DecodeRuneInString(tok)
	if size == 0 || !isWordChar(first) {
		return false
	}
	for _, r := range tok[size:] {
		if !isWordChar(r) && !strings.ContainsRune(embeddedSymbols, r) {
			return false
		}
	}
	return true
}

func trimTrailingSymbols(tok string) string {
	return strings.TrimRightFunc(tok, func(r rune) bool {
		return !isWordChar(r)
	})
}
