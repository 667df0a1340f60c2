// Package detector selects the log format from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat is the rendering mode of the logger.
type LogFormat int

const (
	// FormatPretty renders coloured, human-readable lines.
	FormatPretty LogFormat = iota
	// FormatJSON renders one JSON object per line.
	FormatJSON
)

// DetectLogFormat returns FormatJSON when stderr is not a terminal or a CI
// environment is detected, and FormatPretty otherwise.
func DetectLogFormat() LogFormat {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) LogFormat {
	if !isTTY || ci == "true" || ci == "1" {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveLogFormat applies the --log-format flag to the detected format.
// Unknown values fall back to the detected format.
func ResolveLogFormat(detected LogFormat, flag string) LogFormat {
	switch flag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return detected
	}
}
