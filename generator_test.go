package capline

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

type captureSink struct {
	frames []string
}

func (c *captureSink) Display(markup string) {
	c.frames = append(c.frames, markup)
}

func windowText(t *testing.T, lg *LineGenerator) string {
	t.Helper()
	sink := &captureSink{}
	lg.SetText(sink)
	return sink.frames[len(sink.frames)-1]
}

// runeCount stands in for font metrics so breaks happen at predictable
// token positions.
func runeCount() WidthOracle {
	return WidthFunc(utf8.RuneCountInString)
}

func newTestGenerator(maxWidth int) *LineGenerator {
	return NewLineGenerator(WithMaxWidth(maxWidth), WithWidthOracle(runeCount()))
}

func TestUpdateIdempotent(t *testing.T) {
	lg := newTestGenerator(16)
	tokens := ScriptTokens("the quick brown fox jumps over the lazy dog.")
	lg.Update(tokens, Settings{})
	first := windowText(t, lg)
	lg.Update(tokens, Settings{})
	second := windowText(t, lg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated update changed the window (-first +second):\n%s", diff)
	}
}

func TestSentenceCaseAcrossBareSpace(t *testing.T) {
	lg := newTestGenerator(40)
	tokens := []Token{
		{Text: " hello", Flags: FlagWordBoundary},
		{Text: ".", Flags: FlagSentenceEnd},
		{Text: " ", Flags: FlagWordBoundary},
		{Text: "there"},
	}
	lg.Update(tokens, Settings{})
	want := "\n\n hello. There"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPronounIRendering(t *testing.T) {
	lg := newTestGenerator(40)
	tokens := []Token{
		{Text: " SO", Flags: FlagWordBoundary},
		{Text: " I", Flags: FlagWordBoundary},
		{Text: "'M"},
	}
	lg.Update(tokens, Settings{})
	if got, want := windowText(t, lg), "\n\n so I'm"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	lg = newTestGenerator(40)
	tokens = []Token{
		{Text: " SO", Flags: FlagWordBoundary},
		{Text: " I", Flags: FlagWordBoundary},
		{Text: "NVALID"},
	}
	lg.Update(tokens, Settings{})
	if got, want := windowText(t, lg), "\n\n so invalid"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetLanguageDisablesPronounRule(t *testing.T) {
	lg := newTestGenerator(40)
	lg.SetLanguage("sv-SE")
	tokens := []Token{
		{Text: " SO", Flags: FlagWordBoundary},
		{Text: " I", Flags: FlagWordBoundary},
		{Text: "'M"},
	}
	lg.Update(tokens, Settings{})
	if got, want := windowText(t, lg), "\n\n so i'm"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineBreakAtWordBoundary(t *testing.T) {
	lg := newTestGenerator(12)
	tokens := []Token{
		{Text: " the", Flags: FlagWordBoundary},
		{Text: " quick", Flags: FlagWordBoundary},
		{Text: " brown", Flags: FlagWordBoundary},
		{Text: " fox", Flags: FlagWordBoundary},
	}
	lg.Update(tokens, Settings{})
	want := "\n the quick\n brown fox"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineBreakMidWordWithoutBoundary(t *testing.T) {
	lg := newTestGenerator(7)
	tokens := []Token{
		{Text: " ab", Flags: FlagWordBoundary},
		{Text: "cd"},
		{Text: "ef"},
		{Text: "gh"},
	}
	lg.Update(tokens, Settings{})
	// No boundary before the overflow token, so the break lands exactly
	// at the overflow position.
	want := "\n abcd\nefgh"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineBreakKeepsFrozenPrefix(t *testing.T) {
	lg := newTestGenerator(12)
	lg.Update([]Token{
		{Text: " hello", Flags: FlagWordBoundary},
		{Text: ".", Flags: FlagSentenceEnd},
	}, Settings{})
	lg.Finalize()

	lg.Update([]Token{
		{Text: " longish", Flags: FlagWordBoundary},
		{Text: " word", Flags: FlagWordBoundary},
	}, Settings{})
	// The continuation does not fit after the frozen prefix; the whole
	// new utterance moves down, then wraps again on its own.
	want := " hello.\n Longish\n word"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShrinkStepsBackOneLine(t *testing.T) {
	lg := newTestGenerator(12)
	tokens := []Token{
		{Text: " the", Flags: FlagWordBoundary},
		{Text: " quick", Flags: FlagWordBoundary},
		{Text: " brown", Flags: FlagWordBoundary},
		{Text: " fox", Flags: FlagWordBoundary},
	}
	lg.Update(tokens, Settings{})
	if lg.currentLine != 1 {
		t.Fatalf("expected wrap onto line 1, got %d", lg.currentLine)
	}

	lg.Update(tokens[:1], Settings{})
	if lg.currentLine != 0 {
		t.Fatalf("cursor must step back exactly one line, got %d", lg.currentLine)
	}
	if got, want := windowText(t, lg), "\n\n the"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShrinkAcrossSeveralLines(t *testing.T) {
	lg := newTestGenerator(12)
	tokens := []Token{
		{Text: " the", Flags: FlagWordBoundary},
		{Text: " quick", Flags: FlagWordBoundary},
		{Text: " brown", Flags: FlagWordBoundary},
		{Text: " fox", Flags: FlagWordBoundary},
		{Text: " jumps", Flags: FlagWordBoundary},
	}
	lg.Update(tokens, Settings{})
	if lg.currentLine != 2 {
		t.Fatalf("expected wrap onto line 2, got %d", lg.currentLine)
	}

	lg.Update(tokens[:1], Settings{})
	if lg.currentLine != 0 {
		t.Fatalf("cursor must fold back to line 0, got %d", lg.currentLine)
	}
	if got, want := windowText(t, lg), "\n\n the"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBreakStartsEmptyLine(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " hello", Flags: FlagWordBoundary}}, Settings{})
	lg.Break()
	if got, want := windowText(t, lg), "\n hello\n"; got != want {
		t.Fatalf("after break got %q, want %q", got, want)
	}
	lg.Update([]Token{{Text: " fresh", Flags: FlagWordBoundary}}, Settings{})
	if got, want := windowText(t, lg), "\n hello\n fresh"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFinalizeContinuesOnSameLine(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " one", Flags: FlagWordBoundary}}, Settings{})
	lg.Finalize()
	lg.Update([]Token{{Text: " two", Flags: FlagWordBoundary}}, Settings{})
	if got, want := windowText(t, lg), "\n\n one two"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmptyUpdateKeepsFrozenPrefix(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " hi", Flags: FlagWordBoundary}}, Settings{})
	lg.Finalize()
	lg.Update(nil, Settings{})
	if got, want := windowText(t, lg), "\n\n hi"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUppercasePreferenceKeepsRawTokens(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " HELLO", Flags: FlagWordBoundary}}, Settings{Uppercase: true})
	if got, want := windowText(t, lg), "\n\n HELLO"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestConfidenceAlpha(t *testing.T) {
	cases := []struct {
		logprob float64
		want    int
	}{
		{0.0, 40960},
		{-2.0, 32768},
		{2.0, 49152},
		{-100.0, 10000},
		{100.0, 65535},
	}
	for _, tt := range cases {
		if got := confidenceAlpha(tt.logprob); got != tt.want {
			t.Fatalf("confidenceAlpha(%v) = %d, want %d", tt.logprob, got, tt.want)
		}
	}
}

func TestFadeRendersSpanMarkup(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " ok", Flags: FlagWordBoundary, LogProb: 0}}, Settings{FadeText: true})
	want := "\n\n<span fgalpha=\"40960\"> ok</span>"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarkupMetacharactersEscaped(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " <b>&", Flags: FlagWordBoundary}}, Settings{})
	want := "\n\n &lt;b&gt;&amp;"
	if got := windowText(t, lg); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterCensorsAcrossTokens(t *testing.T) {
	filter := NewWordListFilter(nil, []string{"badword"})
	lg := NewLineGenerator(
		WithMaxWidth(40),
		WithWidthOracle(runeCount()),
		WithFilter(filter),
	)
	tokens := []Token{
		{Text: " bad", Flags: FlagWordBoundary},
		{Text: "word"},
		{Text: " ok", Flags: FlagWordBoundary},
	}
	lg.Update(tokens, Settings{Filter: FilterProfanity})
	if got, want := windowText(t, lg), "\n\n [__] ok"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Slur-only mode leaves the profanity list alone.
	lg = NewLineGenerator(
		WithMaxWidth(40),
		WithWidthOracle(runeCount()),
		WithFilter(filter),
	)
	lg.Update(tokens, Settings{Filter: FilterSlurs})
	if got, want := windowText(t, lg), "\n\n badword ok"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNearCapacityStopsLine(t *testing.T) {
	lg := NewLineGenerator(WithMaxWidth(1<<30), WithWidthOracle(runeCount()))
	chunk := strings.Repeat("x", 100)
	tokens := make([]Token, 40)
	for i := range tokens {
		tokens[i] = Token{Text: chunk}
	}
	lg.Update(tokens, Settings{Uppercase: true})
	got := windowText(t, lg)
	lines := strings.Split(got, "\n")
	last := lines[len(lines)-1]
	if len(last) != 3600 {
		t.Fatalf("expected the line to stop at the safety margin, got %d bytes", len(last))
	}
}

func TestMalformedTokenKeepsRawRemainder(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update([]Token{{Text: " CAF\xffE", Flags: FlagWordBoundary}}, Settings{})
	if got, want := windowText(t, lg), "\n\n cafE"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCaseConversionTruncatesAtScratch(t *testing.T) {
	lg := newTestGenerator(1 << 30)
	lg.Update([]Token{{Text: strings.Repeat("A", 100), Flags: FlagWordBoundary}}, Settings{})
	got := windowText(t, lg)
	want := "\n\n" + strings.Repeat("a", 69)
	if got != want {
		t.Fatalf("got %d trailing bytes, want %d", len(got)-2, len(want)-2)
	}
}
