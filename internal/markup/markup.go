// Package markup emits the Pango-style span markup used by caption
// sinks, and converts it back into ANSI for terminal display. The API
// is append-style to avoid intermediate buffers in the per-token
// render path.
package markup

import "strconv"

const ansiReset = "\x1b[0m"

// AppendText appends text with markup metacharacters escaped.
func AppendText(dst []byte, text string) []byte {
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// AppendSpan appends text wrapped in a span carrying a foreground
// alpha channel value in [0, 65535].
func AppendSpan(dst []byte, alpha int, text string) []byte {
	dst = append(dst, `<span fgalpha="`...)
	dst = strconv.AppendInt(dst, int64(alpha), 10)
	dst = append(dst, `">`...)
	dst = AppendText(dst, text)
	dst = append(dst, "</span>"...)
	return dst
}

// AppendANSI appends src converted for terminal display: fgalpha spans
// become 256-color grayscale SGR sequences, the three escaped entities
// are decoded, and everything else passes through verbatim. Unknown or
// malformed tags are kept as literal text.
func AppendANSI(dst []byte, src string) []byte {
	const (
		spanOpen  = `<span fgalpha="`
		spanClose = "</span>"
	)
	for i := 0; i < len(src); {
		switch src[i] {
		case '<':
			if hasPrefix(src[i:], spanClose) {
				dst = append(dst, ansiReset...)
				i += len(spanClose)
				continue
			}
			if hasPrefix(src[i:], spanOpen) {
				j := i + len(spanOpen)
				alpha := 0
				digits := 0
				for j < len(src) && src[j] >= '0' && src[j] <= '9' {
					alpha = alpha*10 + int(src[j]-'0')
					digits++
					j++
				}
				if digits > 0 && hasPrefix(src[j:], `">`) {
					dst = append(dst, "\x1b[38;5;"...)
					dst = strconv.AppendInt(dst, int64(grayLevel(alpha)), 10)
					dst = append(dst, 'm')
					i = j + 2
					continue
				}
			}
			dst = append(dst, '<')
			i++
		case '&':
			switch {
			case hasPrefix(src[i:], "&amp;"):
				dst = append(dst, '&')
				i += 5
			case hasPrefix(src[i:], "&lt;"):
				dst = append(dst, '<')
				i += 4
			case hasPrefix(src[i:], "&gt;"):
				dst = append(dst, '>')
				i += 4
			default:
				dst = append(dst, '&')
				i++
			}
		default:
			dst = append(dst, src[i])
			i++
		}
	}
	return dst
}

// grayLevel maps a foreground alpha onto the xterm grayscale ramp,
// colors 232 through 255, so faded spans render dimmer than settled
// text.
func grayLevel(alpha int) int {
	const lo, hi = 10000, 65535
	if alpha < lo {
		alpha = lo
	}
	if alpha > hi {
		alpha = hi
	}
	return 232 + (alpha-lo)*23/(hi-lo)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
