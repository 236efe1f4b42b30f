package capline

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"pkt.systems/capline/internal/markup"
)

const (
	// defaultMaxWidth is the wrap width when no option overrides it,
	// in width oracle units.
	defaultMaxWidth = 60

	// maxTokens bounds the per-update capitalization table.
	maxTokens = 1024

	// tokenScratchCap bounds the case-converted form of one token.
	tokenScratchCap = 72
)

// inactive marks a window slot with no assigned token range.
const inactive = -1

// relLine maps an offset relative to a window slot onto the circular
// slot array.
func relLine(head, idx int) int {
	return (4*LineCount + head + idx) % LineCount
}

// LineGenerator maintains the sliding window of caption lines and
// re-renders it from the full token sequence on every update.
//
// All methods must be called from a single goroutine; the engine is
// synchronous and expected to run on the caller's event thread.
type LineGenerator struct {
	lines       [LineCount]line
	activeStart [LineCount]int
	currentLine int

	maxWidth int
	oracle   WidthOracle
	filter   ProfanityFilter
	logger   *slog.Logger

	tcap  tokenCapitalizer
	stats Stats

	shouldCap     []bool
	shouldCapArr  [maxTokens]bool
	tokenScratch  [tokenScratchCap]byte
	renderScratch [lineSafety]byte
	outputArr     [LineCount*lineCap + LineCount]byte
}

// NewLineGenerator returns a generator with an empty window whose
// current line starts at token index zero.
func NewLineGenerator(opts ...Option) *LineGenerator {
	cfg := generatorConfig{maxWidth: defaultMaxWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.oracle == nil {
		cfg.oracle = TerminalWidth()
	}
	if cfg.filter == nil {
		cfg.filter = DefaultFilter()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	lg := &LineGenerator{
		maxWidth: cfg.maxWidth,
		oracle:   cfg.oracle,
		filter:   cfg.filter,
		logger:   cfg.logger,
		tcap:     newTokenCapitalizer(),
	}
	for i := range lg.activeStart {
		lg.activeStart[i] = inactive
	}
	lg.activeStart[0] = 0
	return lg
}

// SetLanguage enables or disables English-specific capitalization
// based on the leading language subtag of code.
func (lg *LineGenerator) SetLanguage(code string) {
	code = strings.ToLower(strings.TrimSpace(code))
	lg.tcap.isEnglish = strings.HasPrefix(code, "en")
}

// Update re-renders every active line from the complete token sequence
// of the current utterance. The sequence may differ arbitrarily from
// the previous call; the window rotates and the pass restarts when the
// current line overflows or the sequence shrinks below its start
// index. Rotations are bounded per call, after which the window keeps
// a best-effort rendering until the next update.
func (lg *LineGenerator) Update(tokens []Token, settings Settings) {
	lg.stats.Updates++
	if len(tokens) > maxTokens {
		lg.stats.Truncations++
		lg.logger.Warn("token sequence truncated",
			"count", len(tokens), "max", maxTokens)
		tokens = tokens[:maxTokens]
	}
	for retry := 0; ; retry++ {
		if lg.renderPass(tokens, settings) {
			return
		}
		if retry >= LineCount {
			lg.stats.RetriesExhausted++
			lg.logger.Warn("window retry budget exhausted",
				"tokens", len(tokens))
			return
		}
	}
}

// renderPass renders all active lines once. It reports false when a
// window rotation was requested and the pass must be re-run.
func (lg *LineGenerator) renderPass(tokens []Token, settings Settings) bool {
	lg.tcap.rewind()
	lg.shouldCap = lg.shouldCapArr[:len(tokens)]
	for j := range tokens {
		var lookahead *Token
		if j+1 < len(tokens) {
			lookahead = &tokens[j+1]
		}
		lg.shouldCap[j] = lg.tcap.next(tokens[j], lookahead)
	}

	for i := 0; i < LineCount; i++ {
		if lg.activeStart[i] == inactive {
			continue
		}
		start := lg.activeStart[i]
		curr := &lg.lines[i]

		curr.reset()

		if len(tokens) == 0 {
			continue
		}

		if start >= len(tokens) {
			if i == lg.currentLine {
				// The revised hypothesis no longer reaches this line;
				// fold back into the previous one and re-run.
				lg.stats.Shrinks++
				lg.activeStart[i] = inactive
				lg.currentLine = relLine(lg.currentLine, -1)
				return false
			}
			// A stale frozen line keeps its frozen prefix as-is.
			continue
		}

		end := lg.activeStart[relLine(i, 1)]
		if end == inactive || i == lg.currentLine {
			end = len(tokens)
		}
		// A frozen line's end may point past a shrunk token array.
		if end > len(tokens) {
			end = len(tokens)
		}

		if !lg.renderLine(i, curr, tokens, start, end, settings) {
			return false
		}
	}
	return true
}

// renderLine walks tokens[start:end] into one line. It reports false
// when the current line overflowed and the window was rotated.
func (lg *LineGenerator) renderLine(i int, curr *line, tokens []Token, start, end int, settings Settings) bool {
	for j := start; j < end; {
		skipahead := 1
		text := tokens[j].Text

		if !settings.Uppercase || lg.shouldCap[j] {
			text = lg.transformCase(text, !settings.Uppercase, lg.shouldCap[j])
		}

		if settings.Filter != FilterNone && tokens[j].Flags.WordBoundary() {
			if skip := lg.filter.SkipCount(tokens, j, settings.Filter); skip > 0 {
				skipahead = skip
				text = CensorText
			}
		}

		if curr.nearCapacity() {
			lg.stats.CapacityStops++
			lg.logger.Warn("caption line near capacity, leaving incomplete",
				"line", i, "head", curr.head)
			break
		}

		if i == lg.currentLine {
			curr.width += lg.oracle.Measure(text)
			if curr.width >= lg.maxWidth {
				tgt := j
				for tgt > start && !tokens[tgt].Flags.WordBoundary() {
					tgt--
				}
				// Breaking a fresh line at its own start would
				// recreate the identical line; break at the overflow
				// token instead.
				if tgt == start && (!tokens[tgt].Flags.WordBoundary() || curr.startHead == 0) {
					tgt = j
				}

				lg.stats.LineBreaks++
				lg.currentLine = relLine(lg.currentLine, 1)
				lg.activeStart[lg.currentLine] = tgt
				lg.lines[lg.currentLine].startHead = 0
				lg.lines[lg.currentLine].startWidth = 0
				return false
			}
		}

		out := lg.renderScratch[:0]
		if settings.FadeText {
			out = markup.AppendSpan(out, confidenceAlpha(tokens[j].LogProb), text)
		} else {
			out = markup.AppendText(out, text)
		}
		curr.write(out)

		j += skipahead
	}
	return true
}

// transformCase lower-cases the token and/or upper-cases its first
// cased letter, writing into the token scratch buffer. Capitalization
// lands on the first rune with a distinct upper-case form, skipping
// leading punctuation and spaces. Malformed UTF-8 stops the
// conversion; the unconverted remainder is kept raw.
func (lg *LineGenerator) transformCase(text string, lower, capitalize bool) string {
	if !lower && !capitalize {
		return text
	}
	out := lg.tokenScratch[:0]
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			lg.logger.Debug("malformed utf-8 in token", "offset", i)
			i++
			break
		}
		if lower {
			r = unicode.ToLower(r)
		}
		if capitalize {
			if u := unicode.ToUpper(r); u != r {
				r = u
				capitalize = false
			}
		}
		if len(out)+utf8.UTFMax > tokenScratchCap {
			lg.logger.Debug("case conversion truncated at scratch capacity",
				"len", len(text))
			return string(out)
		}
		out = utf8.AppendRune(out, r)
		i += size
	}
	if i < len(text) {
		rest := text[i:]
		if room := tokenScratchCap - len(out); len(rest) > room {
			rest = rest[:room]
		}
		out = append(out, rest...)
	}
	return string(out)
}

// confidenceAlpha maps a recognizer log-probability onto a foreground
// alpha channel value. Higher confidence renders more opaque.
func confidenceAlpha(logprob float64) int {
	alpha := int((logprob + 2.0) / 8.0 * 65536.0)
	alpha /= 2
	alpha += 32768
	if alpha < 10000 {
		alpha = 10000
	}
	if alpha > 65535 {
		alpha = 65535
	}
	return alpha
}

// Finalize freezes the current line and reopens it for the next
// utterance, whose tokens restart at index zero after the frozen
// prefix. Used when an utterance ends but the caption should stay
// visible and the next sentence may continue on the same visual line.
func (lg *LineGenerator) Finalize() {
	for i := range lg.activeStart {
		lg.activeStart[i] = inactive
	}
	lg.lines[lg.currentLine].freeze()
	lg.tcap.finish()
	lg.activeStart[lg.currentLine] = 0
}

// Break rotates to a strictly new, empty current line. Used on a hard
// gap such as detected silence.
func (lg *LineGenerator) Break() {
	lg.currentLine = relLine(lg.currentLine, 1)
	for i := range lg.activeStart {
		lg.activeStart[i] = inactive
	}
	lg.activeStart[lg.currentLine] = 0
	lg.lines[lg.currentLine].clear()
}

// SetText concatenates the window, oldest line first, and hands the
// result to the sink. It does not mutate generator state.
func (lg *LineGenerator) SetText(sink Sink) {
	out := lg.outputArr[:0]
	for i := LineCount - 1; i >= 0; i-- {
		curr := &lg.lines[relLine(lg.currentLine, -i)]
		out = append(out, curr.text()...)
		if i != 0 {
			out = append(out, '\n')
		}
	}
	sink.Display(string(out))
}
