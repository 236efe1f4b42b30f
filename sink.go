package capline

import "io"

// Sink receives the concatenated caption window from SetText.
type Sink interface {
	Display(markup string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(string)

// Display implements Sink.
func (f SinkFunc) Display(markup string) { f(markup) }

// WriterSink returns a Sink that writes each window to w followed by a
// newline.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(markup string) {
		_, _ = io.WriteString(w, markup)
		_, _ = io.WriteString(w, "\n")
	})
}
