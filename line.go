package capline

const (
	// LineCount is the number of visual lines in the caption window.
	LineCount = 3

	// lineCap bounds the rendered markup of one line. Writes that come
	// within lineSafety bytes of lineCap stop the line for this update
	// instead of overflowing.
	lineCap    = 4096
	lineSafety = 512
)

// line is one slot of the caption window. The frozen prefix
// (startHead, startWidth) is set only by Finalize and Break; the
// working cursors are re-derived from it at the start of every update.
type line struct {
	buf        [lineCap]byte
	head       int
	width      int
	startHead  int
	startWidth int
}

// reset rewinds the working cursors to the frozen prefix.
func (l *line) reset() {
	l.head = l.startHead
	l.width = l.startWidth
}

// clear drops both frozen and working state.
func (l *line) clear() {
	l.head, l.width = 0, 0
	l.startHead, l.startWidth = 0, 0
}

// freeze makes the current working state the permanent prefix.
func (l *line) freeze() {
	l.startHead = l.head
	l.startWidth = l.width
}

// nearCapacity reports whether further writes would enter the safety
// margin.
func (l *line) nearCapacity() bool {
	return l.head > lineCap-lineSafety
}

// write appends rendered bytes, truncating at capacity.
func (l *line) write(b []byte) {
	l.head += copy(l.buf[l.head:], b)
}

// text returns the rendered bytes of the line.
func (l *line) text() []byte { return l.buf[:l.head] }
