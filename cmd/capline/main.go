package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/capline"
	"pkt.systems/capline/internal/config"
	"pkt.systems/version"
)

const (
	defaultSimStep  = 2
	defaultSimDelay = 120 * time.Millisecond
)

const demoScript = `the quick brown fox jumps over the lazy dog while the caption window wraps each line as new tokens arrive.
speech recognizers revise earlier words so the current line is re-rendered until the utterance is finalized.

after a silence gap the window breaks to a fresh line and older captions scroll away.
I'm told this demo loops until you quit.`

func init() {
	version.SetDefaultModule("pkt.systems/capline")
}

func main() {
	var (
		cfgPath   string
		widthFlag int
		language  string
		fade      bool
		uppercase bool
		filterArg string
		simulate  bool
		simStep   int
		simDelay  time.Duration
		watch     bool
		follow    bool
		showVer   bool
	)

	flags := pflag.NewFlagSet("capline", pflag.ExitOnError)
	flags.StringVarP(&cfgPath, "config", "c", "", "YAML config file")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Caption width override (0 uses terminal width, then config)")
	flags.StringVarP(&language, "language", "l", "", "Recognizer language code")
	flags.BoolVar(&fade, "fade", false, "Fade tokens by recognizer confidence")
	flags.BoolVar(&uppercase, "uppercase", false, "Keep recognizer casing instead of sentence case")
	flags.StringVar(&filterArg, "filter", "", "Word filter: none|slurs|profanity")
	flags.BoolVar(&simulate, "simulate", false, "Replay a plain-text script from stdin (or a demo)")
	flags.IntVar(&simStep, "simulate-step", defaultSimStep, "Tokens added per simulated decoder pass")
	flags.DurationVar(&simDelay, "simulate-delay", defaultSimDelay, "Delay per simulated decoder pass")
	flags.BoolVar(&watch, "watch", false, "Live caption view")
	flags.BoolVar(&follow, "follow", false, "Print a frame after every stdin event")
	flags.BoolVarP(&showVer, "version", "V", false, "Print version and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fatal(err)
	}

	if showVer {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		return
	}

	// A .env in the working directory feeds the CAPLINE_* overrides;
	// its absence is fine.
	_ = godotenv.Load()

	explicit := flags.Changed("config")
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Loader{}.Load(path, explicit)
	if err != nil {
		fatal(err)
	}
	if flags.Changed("width") {
		cfg.Width = widthFlag
	}
	if flags.Changed("language") {
		cfg.Language = language
	}
	if flags.Changed("fade") {
		cfg.FadeText = fade
	}
	if flags.Changed("uppercase") {
		cfg.Uppercase = uppercase
	}
	if flags.Changed("filter") {
		mode, err := parseFilterMode(filterArg)
		if err != nil {
			fatal(err)
		}
		cfg.FilterSlurs = mode == capline.FilterSlurs
		cfg.FilterProfanity = mode == capline.FilterProfanity
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	width := cfg.Width
	if widthFlag == 0 {
		if w, ok := terminalWidth(); ok {
			width = w
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	gen := capline.NewLineGenerator(
		capline.WithMaxWidth(width),
		capline.WithLogger(logger),
	)
	gen.SetLanguage(cfg.Language)
	settings := cfg.Settings()

	switch {
	case watch:
		err = runWatch(gen, settings, readScript(), simStep, simDelay, width)
	case simulate:
		err = capline.Simulate(capline.SimulateRequest{
			Script:        readScript(),
			Generator:     gen,
			Sink:          frameSink(os.Stdout, width),
			Settings:      settings,
			TokensPerStep: simStep,
			Delay:         simDelay,
		})
	default:
		err = runPipe(gen, settings, os.Stdin, os.Stdout, follow)
	}
	if err != nil {
		fatal(err)
	}
}

func terminalWidth() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 4 {
		return 0, false
	}
	return w - 4, true
}

// readScript returns stdin when piped, otherwise the built-in demo.
func readScript() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return demoScript
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil || len(data) == 0 {
		return demoScript
	}
	return string(data)
}

// frameSink prints each window frame as ANSI-styled text followed by a
// rule so successive frames stay readable in a scrollback.
func frameSink(w io.Writer, width int) capline.Sink {
	if width > 72 {
		width = 72
	}
	rule := strings.Repeat("-", width)
	return capline.SinkFunc(func(window string) {
		fmt.Fprintf(w, "%s\n%s\n", capline.RenderANSI(window), rule)
	})
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "capline:", err)
	os.Exit(1)
}
