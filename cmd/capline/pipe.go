package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"pkt.systems/capline"
)

// event is one recognizer event on the JSONL stdin feed. Settings
// fields are pointers so an absent field keeps the previous value.
type event struct {
	Event     string      `json:"event,omitempty"`
	Language  string      `json:"language,omitempty"`
	Fade      *bool       `json:"fade,omitempty"`
	Uppercase *bool       `json:"uppercase,omitempty"`
	Filter    string      `json:"filter,omitempty"`
	Tokens    []pipeToken `json:"tokens,omitempty"`
}

type pipeToken struct {
	Text         string  `json:"text"`
	WordBoundary bool    `json:"word_boundary"`
	SentenceEnd  bool    `json:"sentence_end"`
	LogProb      float64 `json:"logprob"`
}

// runPipe drives the generator from newline-delimited JSON events.
// Token events carry the full sequence for the current utterance;
// "finalize", "break" and "language" events map onto the engine verbs,
// and "settings" adjusts display preferences for subsequent updates.
// Output frames keep the span markup so a GUI label can consume them.
func runPipe(gen *capline.LineGenerator, settings capline.Settings, r io.Reader, w io.Writer, follow bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sink := capline.WriterSink(w)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var ev event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return fmt.Errorf("pipe: line %d: %w", lineNo, err)
		}
		switch ev.Event {
		case "", "update":
			gen.Update(pipeTokens(ev.Tokens), settings)
		case "finalize":
			gen.Finalize()
		case "break":
			gen.Break()
		case "language":
			gen.SetLanguage(ev.Language)
		case "settings":
			if ev.Fade != nil {
				settings.FadeText = *ev.Fade
			}
			if ev.Uppercase != nil {
				settings.Uppercase = *ev.Uppercase
			}
			mode, err := parseFilterMode(ev.Filter)
			if err != nil {
				return fmt.Errorf("pipe: line %d: %w", lineNo, err)
			}
			if ev.Filter != "" {
				settings.Filter = mode
			}
		default:
			return fmt.Errorf("pipe: line %d: unknown event %q", lineNo, ev.Event)
		}
		if follow {
			gen.SetText(sink)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("pipe: read: %w", err)
	}
	if !follow {
		gen.SetText(sink)
	}
	return nil
}

// parseFilterMode maps a filter name onto the engine mode. The empty
// string counts as no filtering.
func parseFilterMode(s string) (capline.FilterMode, error) {
	switch s {
	case "", "none":
		return capline.FilterNone, nil
	case "slurs":
		return capline.FilterSlurs, nil
	case "profanity":
		return capline.FilterProfanity, nil
	}
	return capline.FilterNone, fmt.Errorf("unknown filter %q", s)
}

func pipeTokens(in []pipeToken) []capline.Token {
	tokens := make([]capline.Token, len(in))
	for i, t := range in {
		var flags capline.TokenFlags
		if t.WordBoundary {
			flags |= capline.FlagWordBoundary
		}
		if t.SentenceEnd {
			flags |= capline.FlagSentenceEnd
		}
		tokens[i] = capline.Token{Text: t.Text, Flags: flags, LogProb: t.LogProb}
	}
	return tokens
}
