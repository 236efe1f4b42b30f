package capline

import "strings"

// tokenCapitalizer decides, token by token, whether a token should
// start with an upper-case letter. It is rewound at the start of every
// update so re-rendering the same token array is deterministic, and
// snapshotted by finish when the current line is frozen.
type tokenCapitalizer struct {
	isEnglish         bool
	previousWasPeriod bool
	finishedAtPeriod  bool
	forceNextCap      bool
}

func newTokenCapitalizer() tokenCapitalizer {
	return tokenCapitalizer{isEnglish: true, previousWasPeriod: true}
}

// next consumes one token, strictly left to right. lookahead is the
// immediately following token, or nil at the end of the sequence.
func (tc *tokenCapitalizer) next(tok Token, lookahead *Token) bool {
	if tok.Flags.SentenceEnd() {
		tc.previousWasPeriod = true
		return false
	}

	if tc.forceNextCap {
		tc.forceNextCap = false
		return true
	}

	if tc.previousWasPeriod && tok.Flags.WordBoundary() {
		// A bare space cannot itself be capitalized; push the decision
		// onto the following token.
		if tok.Text == " " {
			tc.forceNextCap = true
		}
		tc.previousWasPeriod = false
		return true
	}

	// English-specific: the pronoun "I".
	// TODO: names and places need a proper truecasing model.
	if tc.isEnglish && tok.Text == " I" {
		if lookahead == nil {
			return true
		}
		if lookahead.Flags&(FlagWordBoundary|FlagSentenceEnd) != 0 ||
			strings.HasPrefix(lookahead.Text, "'") {
			return true
		}
	}

	return false
}

// finish snapshots the period state when the current line is frozen.
func (tc *tokenCapitalizer) finish() {
	tc.finishedAtPeriod = tc.previousWasPeriod
	tc.previousWasPeriod = false
	tc.forceNextCap = false
}

// rewind restores the state recorded by the last finish so an update
// re-derives the same decisions across the frozen boundary.
func (tc *tokenCapitalizer) rewind() {
	tc.previousWasPeriod = tc.finishedAtPeriod
	tc.forceNextCap = false
}
