package capline

import (
	"io"

	"pkt.systems/capline/internal/markup"
)

// RenderANSI converts a caption window produced by SetText into
// ANSI-styled terminal text. Fade spans are mapped onto the xterm
// grayscale ramp, so low-confidence tokens show dimmer than settled
// ones, and escaped markup entities are decoded back to their literal
// characters. Plain windows (FadeText off) come back as the bare text.
func RenderANSI(window string) string {
	return string(markup.AppendANSI(nil, window))
}

// ANSISink returns a Sink that writes each window to w as ANSI-styled
// terminal text followed by a newline.
func ANSISink(w io.Writer) Sink {
	return SinkFunc(func(window string) {
		_, _ = io.WriteString(w, RenderANSI(window))
		_, _ = io.WriteString(w, "\n")
	})
}
