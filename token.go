package capline

// TokenFlags is a bit set of recognizer-assigned token attributes.
type TokenFlags uint32

const (
	// FlagWordBoundary marks a token adjacent to whitespace, i.e. a
	// safe point to break a line or apply word filtering.
	FlagWordBoundary TokenFlags = 1 << iota
	// FlagSentenceEnd marks a token that terminates a sentence.
	FlagSentenceEnd
)

// WordBoundary reports whether the word boundary bit is set.
func (f TokenFlags) WordBoundary() bool { return f&FlagWordBoundary != 0 }

// SentenceEnd reports whether the sentence end bit is set.
func (f TokenFlags) SentenceEnd() bool { return f&FlagSentenceEnd != 0 }

// Token is one unit of recognizer output. Recognizers rebuild the full
// token sequence on every hypothesis revision, so an index into the
// sequence identifies a token within a single Update call only.
type Token struct {
	Text    string
	Flags   TokenFlags
	LogProb float64
}
