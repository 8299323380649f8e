package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"ilflow/internal/ilfmt"
	"ilflow/internal/render"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminalIO() bool {
	stdout := os.Stdout.Fd()
	return isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") || !isTerminalIO() {
		color.NoColor = true
	}
}

func decodeMode() ilfmt.Mode {
	if viper.GetBool("strict") {
		return ilfmt.ModeStrict
	}
	return ilfmt.ModeBestEffort
}

func decodeOptions() ilfmt.Options {
	return ilfmt.Options{
		Mode:            decodeMode(),
		MaxInstructions: viper.GetInt("max-instructions"),
	}
}

// newLogger returns a console logger on stderr at the configured level.
func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "log-level")
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// palette colours text output unless color is disabled.
func palette() render.Palette {
	if color.NoColor {
		return render.Plain
	}
	return render.Palette{Scope: paint(cyan), Block: paint(green), Edge: paint(faint)}
}

func paint(f func(a ...interface{}) string) func(string) string {
	return func(s string) string { return f(s) }
}

// readInput loads a method body. Hex input may contain whitespace and
// "0x" prefixes; "#" starts a comment that runs to the end of the line.
func readInput(path string, isHex bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if !isHex {
		return data, nil
	}
	out, err := parseHex(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return out, nil
}

func parseHex(s string) ([]byte, error) {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		}) {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			b.WriteString(field)
		}
	}
	return hex.DecodeString(b.String())
}

func writeJSON(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)
	if color.NoColor {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = prettyjson.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func printDiags(name string, diags []string) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, yellow(d))
	}
}
