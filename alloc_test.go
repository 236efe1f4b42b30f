package capline

import "testing"

func TestUpdateAllocations(t *testing.T) {
	lg := newTestGenerator(16)
	tokens := ScriptTokens("the quick brown fox jumps over the lazy dog")
	lg.Update(tokens, Settings{})
	allocs := testing.AllocsPerRun(100, func() {
		lg.Update(tokens, Settings{})
	})
	if allocs > 64 {
		t.Fatalf("too many allocations per Update: got %.2f", allocs)
	}
}

func TestSetTextAllocations(t *testing.T) {
	lg := newTestGenerator(16)
	lg.Update(ScriptTokens("the quick brown fox jumps over the lazy dog."), Settings{})
	sink := SinkFunc(func(string) {})
	allocs := testing.AllocsPerRun(100, func() {
		lg.SetText(sink)
	})
	if allocs > 4 {
		t.Fatalf("too many allocations per SetText: got %.2f", allocs)
	}
}
