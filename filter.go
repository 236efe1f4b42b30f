package capline

import (
	"strings"
	"unicode"
)

// FilterMode selects which word lists apply.
type FilterMode int

const (
	// FilterNone disables word filtering.
	FilterNone FilterMode = iota
	// FilterSlurs censors only the slur list.
	FilterSlurs
	// FilterProfanity censors the slur list and the profanity list.
	FilterProfanity
)

// CensorText replaces filtered words in rendered output. The leading
// space preserves word spacing after substitution.
const CensorText = " [__]"

// ProfanityFilter decides whether the word starting at tokens[index]
// should be censored. It is consulted only at word-boundary tokens and
// returns the number of tokens to replace with the censor marker, or 0
// to leave the word alone.
type ProfanityFilter interface {
	SkipCount(tokens []Token, index int, mode FilterMode) int
}

// WordListFilter censors words found in its lists. A word is a
// word-boundary token plus the unflagged fragments that follow it;
// sentence punctuation stays outside the word. Matching uses letters
// only, case-insensitively.
type WordListFilter struct {
	slurs     map[string]struct{}
	profanity map[string]struct{}
}

// NewWordListFilter builds a filter from explicit word lists.
func NewWordListFilter(slurs, profanity []string) *WordListFilter {
	f := &WordListFilter{
		slurs:     make(map[string]struct{}, len(slurs)),
		profanity: make(map[string]struct{}, len(profanity)),
	}
	for _, w := range slurs {
		if n := normalizeWord(w); n != "" {
			f.slurs[n] = struct{}{}
		}
	}
	for _, w := range profanity {
		if n := normalizeWord(w); n != "" {
			f.profanity[n] = struct{}{}
		}
	}
	return f
}

// DefaultFilter returns a filter with the built-in profanity list and
// no slur entries. Deployments provide their own slur list.
func DefaultFilter() *WordListFilter {
	return NewWordListFilter(nil, defaultProfanity)
}

var defaultProfanity = []string{
	"fuck", "fucking", "shit", "bitch", "asshole", "cunt", "dickhead",
}

// SkipCount implements ProfanityFilter.
func (f *WordListFilter) SkipCount(tokens []Token, index int, mode FilterMode) int {
	if mode == FilterNone || index >= len(tokens) {
		return 0
	}
	end := index + 1
	for end < len(tokens) && tokens[end].Flags == 0 {
		end++
	}
	var b strings.Builder
	for _, t := range tokens[index:end] {
		b.WriteString(t.Text)
	}
	word := normalizeWord(b.String())
	if word == "" {
		return 0
	}
	if _, ok := f.slurs[word]; ok {
		return end - index
	}
	if mode == FilterProfanity {
		if _, ok := f.profanity[word]; ok {
			return end - index
		}
	}
	return 0
}

// normalizeWord reduces a word to its lower-cased letters.
func normalizeWord(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
