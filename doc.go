// Package capline renders a live stream of speech-recognition tokens
// into a fixed-size window of word-wrapped caption lines.
//
// The package is built for incremental re-rendering: every update
// receives the full token sequence of the current utterance (not a
// delta) and re-derives the visible lines in place. Earlier lines stay
// frozen while the newest line is extended and re-wrapped as tokens
// arrive or as the recognizer revises its hypothesis.
//
// Core properties:
//   - Deterministic re-render; identical input yields identical output
//   - Measurement-driven wrapping with backtrack to word boundaries
//   - Bounded window rotation when hypotheses shrink or lines overflow
//   - Sentence casing that survives repeated re-renders
//
// Example:
//
//	gen := capline.NewLineGenerator(capline.WithMaxWidth(40))
//	gen.Update(tokens, capline.Settings{FadeText: true})
//	gen.SetText(capline.WriterSink(os.Stdout))
//
// Collaborators such as text measurement, word filtering and the
// display sink are small interfaces so callers can plug in their own
// font metrics, word lists and widgets. Window output uses span markup
// when confidence fade is on; RenderANSI converts a window into
// ANSI-styled text for terminal sinks.
package capline
