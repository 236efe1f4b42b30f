package capline

import "testing"

func TestSkipCountAssemblesWordAcrossTokens(t *testing.T) {
	f := NewWordListFilter(nil, []string{"badword"})
	tokens := []Token{
		{Text: " bad", Flags: FlagWordBoundary},
		{Text: "word"},
		{Text: " ok", Flags: FlagWordBoundary},
	}
	if got := f.SkipCount(tokens, 0, FilterProfanity); got != 2 {
		t.Fatalf("got skip %d, want 2", got)
	}
	if got := f.SkipCount(tokens, 2, FilterProfanity); got != 0 {
		t.Fatalf("clean word skipped: got %d", got)
	}
}

func TestSkipCountIgnoresCaseAndPunctuation(t *testing.T) {
	f := NewWordListFilter(nil, []string{"badword"})
	tokens := []Token{
		{Text: " BadWord", Flags: FlagWordBoundary},
		{Text: ".", Flags: FlagSentenceEnd},
	}
	if got := f.SkipCount(tokens, 0, FilterProfanity); got != 1 {
		t.Fatalf("got skip %d, want 1", got)
	}
}

func TestSlurListAppliesInBothModes(t *testing.T) {
	f := NewWordListFilter([]string{"slurword"}, []string{"badword"})
	tokens := []Token{{Text: " slurword", Flags: FlagWordBoundary}}
	if got := f.SkipCount(tokens, 0, FilterSlurs); got != 1 {
		t.Fatalf("slur not censored in slur mode")
	}
	if got := f.SkipCount(tokens, 0, FilterProfanity); got != 1 {
		t.Fatalf("slur not censored in profanity mode")
	}
	profane := []Token{{Text: " badword", Flags: FlagWordBoundary}}
	if got := f.SkipCount(profane, 0, FilterSlurs); got != 0 {
		t.Fatalf("profanity censored in slur-only mode")
	}
}

func TestFilterNoneNeverCensors(t *testing.T) {
	f := DefaultFilter()
	tokens := []Token{{Text: " fuck", Flags: FlagWordBoundary}}
	if got := f.SkipCount(tokens, 0, FilterNone); got != 0 {
		t.Fatalf("FilterNone must not censor")
	}
	if got := f.SkipCount(tokens, 0, FilterProfanity); got != 1 {
		t.Fatalf("default profanity list must censor")
	}
}
