package capline

// Stats is a snapshot of cumulative generator activity. Counters are
// maintained on the caller's goroutine like every other generator
// operation, so a snapshot is consistent with the call that preceded
// it.
type Stats struct {
	// Updates counts calls to Update.
	Updates uint64
	// LineBreaks counts window rotations caused by the current line
	// exceeding the maximum width.
	LineBreaks uint64
	// Shrinks counts fold-backs of the current line after the token
	// sequence shrank below its start index.
	Shrinks uint64
	// RetriesExhausted counts updates that gave up re-rendering after
	// the per-call rotation budget.
	RetriesExhausted uint64
	// CapacityStops counts render stops on lines close to their byte
	// capacity.
	CapacityStops uint64
	// Truncations counts updates whose token sequence was cut to the
	// supported maximum.
	Truncations uint64
}

// Stats returns the activity counters accumulated since the generator
// was created.
func (lg *LineGenerator) Stats() Stats { return lg.stats }
