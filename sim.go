package capline

import (
	"fmt"
	"strings"
	"time"
)

// SimulateRequest configures Simulate.
type SimulateRequest struct {
	// Script is the text to replay, one utterance per line. Blank
	// lines become hard breaks, as a recognizer's silence gap would.
	Script    string
	Generator *LineGenerator
	Sink      Sink
	Settings  Settings
	// TokensPerStep is how many tokens each simulated decoder pass
	// adds. Defaults to 1.
	TokensPerStep int
	// Delay pauses between decoder passes.
	Delay time.Duration
}

// Simulate replays a plain-text script through a LineGenerator the way
// a recognizer drives it: each utterance grows token by token with the
// full sequence re-sent on every pass, a finalize between utterances,
// and a hard break on blank script lines. The sink receives a window
// frame after every pass.
func Simulate(req SimulateRequest) error {
	if req.Generator == nil {
		return fmt.Errorf("simulate: Generator is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("simulate: Sink is nil")
	}
	step := req.TokensPerStep
	if step <= 0 {
		step = 1
	}
	for _, utterance := range strings.Split(req.Script, "\n") {
		if strings.TrimSpace(utterance) == "" {
			req.Generator.Break()
			req.Generator.SetText(req.Sink)
			continue
		}
		tokens := ScriptTokens(utterance)
		for n := step; ; n += step {
			if n > len(tokens) {
				n = len(tokens)
			}
			req.Generator.Update(tokens[:n], req.Settings)
			req.Generator.SetText(req.Sink)
			if req.Delay > 0 {
				time.Sleep(req.Delay)
			}
			if n == len(tokens) {
				break
			}
		}
		req.Generator.Finalize()
	}
	return nil
}

// ScriptTokens converts one scripted utterance into recognizer-style
// tokens: upper-case fragments with a leading space on each word,
// boundary flags, and sentence-ending punctuation split into its own
// token. Confidence values are deterministic per word so fade output
// is reproducible.
func ScriptTokens(utterance string) []Token {
	words := strings.Fields(utterance)
	tokens := make([]Token, 0, len(words)+1)
	for _, word := range words {
		trailing := ""
		if n := len(word); n > 1 {
			switch word[n-1] {
			case '.', '!', '?':
				trailing = word[n-1:]
				word = word[:n-1]
			}
		}
		tokens = append(tokens, Token{
			Text:    " " + strings.ToUpper(word),
			Flags:   FlagWordBoundary,
			LogProb: scriptLogProb(word),
		})
		if trailing != "" {
			tokens = append(tokens, Token{
				Text:  trailing,
				Flags: FlagSentenceEnd,
			})
		}
	}
	return tokens
}

func scriptLogProb(word string) float64 {
	h := 0
	for i := 0; i < len(word); i++ {
		h = h*31 + int(word[i])
	}
	if h < 0 {
		h = -h
	}
	return -0.25 * float64(h%8)
}
