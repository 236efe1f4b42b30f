package capline

import "testing"

func TestStatsCountsBreaksAndShrinks(t *testing.T) {
	lg := newTestGenerator(10)
	tokens := ScriptTokens("aaaa bbbb cccc")
	lg.Update(tokens, Settings{})
	st := lg.Stats()
	if st.Updates != 1 || st.LineBreaks != 2 {
		t.Fatalf("after growth: %+v", st)
	}

	// Dropping to one token strands the current line twice over.
	lg.Update(tokens[:1], Settings{})
	st = lg.Stats()
	if st.Updates != 2 || st.Shrinks != 2 {
		t.Fatalf("after shrink: %+v", st)
	}
	if st.RetriesExhausted != 0 || st.CapacityStops != 0 || st.Truncations != 0 {
		t.Fatalf("unexpected counters: %+v", st)
	}
}

func TestStatsCountsTruncation(t *testing.T) {
	lg := newTestGenerator(40)
	lg.Update(make([]Token, maxTokens+1), Settings{})
	if st := lg.Stats(); st.Truncations != 1 {
		t.Fatalf("truncations = %d, want 1", st.Truncations)
	}
}

func TestStatsCountsExhaustedRetries(t *testing.T) {
	lg := newTestGenerator(4)
	lg.Update([]Token{{Text: " aaaaaaaa", Flags: FlagWordBoundary}}, Settings{})
	if st := lg.Stats(); st.RetriesExhausted != 1 {
		t.Fatalf("retriesExhausted = %d, want 1", st.RetriesExhausted)
	}
}
