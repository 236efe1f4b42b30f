package capline

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// WidthOracle measures the display width of rendered text in the
// active font or cell layout.
type WidthOracle interface {
	Measure(text string) int
}

// WidthFunc adapts a function to the WidthOracle interface.
type WidthFunc func(string) int

// Measure implements WidthOracle.
func (f WidthFunc) Measure(text string) int { return f(text) }

// TerminalWidth measures text in terminal cells, one grapheme cluster
// at a time so combining sequences count once.
func TerminalWidth() WidthOracle {
	return WidthFunc(func(text string) int {
		width := 0
		g := graphemes.FromString(text)
		for g.Next() {
			width += runewidth.StringWidth(g.Value())
		}
		return width
	})
}

// AnsiWidth measures printable terminal cells, skipping ANSI escape
// sequences, for sinks that style caption text before display.
func AnsiWidth() WidthOracle {
	return WidthFunc(ansi.PrintableRuneWidth)
}
