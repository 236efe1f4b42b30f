package capline

// Settings is the per-update snapshot of user preferences. Callers
// read their settings store once per Update so a mid-update change can
// never produce a half-old, half-new rendering.
type Settings struct {
	// FadeText wraps each token in an opacity annotation derived from
	// recognizer confidence.
	FadeText bool
	// Uppercase keeps recognizer output as-is (most models emit
	// upper-case text). When false, tokens are lower-cased and
	// sentence-cased.
	Uppercase bool
	// Filter selects word filtering, applied at word boundaries.
	Filter FilterMode
}
