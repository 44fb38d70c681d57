// Package command parses remote-control command lines and applies them to
// the viewing context. All three transports (HTTP, bluetooth serial, IR)
// normalize into this one grammar: whitespace-separated tokens, first
// token the verb, case-insensitive.
package command

import (
	"strconv"
	"strings"
)

// Verb is the closed set of recognized command verbs.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbTest
	VerbDistance
	VerbBrightness
	VerbContrast
	VerbLanguage
	VerbNext
	VerbPrev
	VerbExit
)

// Command is one parsed command line.
type Command struct {
	Verb Verb
	Arg  string
}

// Parse splits a command line into a verb and its argument. Empty input
// and unknown verbs return ok=false and are treated as no-ops by the
// dispatcher.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}

	verb := verbFor(strings.ToLower(fields[0]))
	if verb == VerbUnknown {
		return Command{}, false
	}

	cmd := Command{Verb: verb}
	if len(fields) > 1 {
		cmd.Arg = fields[1]
	}
	return cmd, true
}

func verbFor(s string) Verb {
	switch s {
	case "test":
		return VerbTest
	case "distance":
		return VerbDistance
	case "brightness":
		return VerbBrightness
	case "contrast":
		return VerbContrast
	case "language":
		return VerbLanguage
	case "next":
		return VerbNext
	case "prev":
		return VerbPrev
	case "exit":
		return VerbExit
	default:
		return VerbUnknown
	}
}

// stepFor maps an up/down argument to a +/-10 step. ok is false for any
// other argument.
func stepFor(arg string) (int, bool) {
	switch strings.ToLower(arg) {
	case "up":
		return 10, true
	case "down":
		return -10, true
	default:
		return 0, false
	}
}

// distanceCm parses the distance argument in centimeters. Non-numeric and
// non-positive values are rejected, leaving state unchanged.
func distanceCm(arg string) (int, bool) {
	cm, err := strconv.Atoi(arg)
	if err != nil || cm < 1 {
		return 0, false
	}
	return cm, true
}
