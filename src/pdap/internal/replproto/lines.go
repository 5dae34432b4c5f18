// Package replproto decodes the line-oriented text protocol spoken by the Perl debugger
// and builds the commands sent to it.
//
// Every engine line is classified exactly once into a tagged shape, so that callers
// switch on a kind instead of re-running patterns.
package replproto

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind tags a single line of engine output.
type LineKind int

const (
	// LineText is any line that carries no protocol meaning (program output, source echo).
	LineText LineKind = iota
	// LinePrompt is the input prompt that ends every response.
	LinePrompt
	// LineLocation reports the current position, e.g. "main::foo(t.pl:12):".
	LineLocation
	// LineTerminated reports that the debugged program finished.
	LineTerminated
	// LineLoadedSource reports that a new source file was compiled.
	LineLoadedSource
	// LineContinue is the marker printed when the engine asks to be resumed.
	LineContinue
	// LineNotBreakable reports that a breakpoint line cannot hold a breakpoint.
	LineNotBreakable
	// LineNoFileMatching reports that a file context switch failed.
	LineNoFileMatching
	// LineNotFound reports that a subroutine does not exist.
	LineNotFound
	// LineCalledFrom is one frame of a stack trace.
	LineCalledFrom
)

var _lineKindNames = map[LineKind]string{
	LineText:           "text",
	LinePrompt:         "prompt",
	LineLocation:       "location",
	LineTerminated:     "terminated",
	LineLoadedSource:   "loadedSource",
	LineContinue:       "continue",
	LineNotBreakable:   "notBreakable",
	LineNoFileMatching: "noFileMatching",
	LineNotFound:       "notFound",
	LineCalledFrom:     "calledFrom",
}

// String implements fmt.Stringer.
func (k LineKind) String() string {
	if s, ok := _lineKindNames[k]; ok {
		return s
	}
	return "unknown"
}

var (
	_promptPattern         = regexp.MustCompile(`^\s*DB<+\d+>+\s*$`)
	_locationPattern       = regexp.MustCompile(`^([\w:']+)\(([^()]+):(\d+)\):`)
	_loadedSourcePattern   = regexp.MustCompile(`^loaded source (.+)$`)
	_continuePattern       = regexp.MustCompile(`^continue$`)
	_noFileMatchingPattern = regexp.MustCompile(`No file matching '(.*)' is loaded\.`)
	_calledFromPattern     = regexp.MustCompile(`^\s*[$@.]\s*=\s*(.*?)\s*called from file '(.+)' line (\d+)`)
	_scopeNamePattern      = regexp.MustCompile(`^([$@%][A-Za-z_][\w:]*) = `)
)

const (
	_terminatedMarker   = "Debugged program terminated"
	_notBreakableMarker = "not breakable"
	_notFoundMarker     = "not found"
)

// Line is a decoded line of engine output.
type Line struct {
	Kind LineKind
	Raw  string
	// Path is set for location, loaded source, no file matching and called from lines.
	Path string
	// Number is the line number of location and called from lines.
	Number int
	// Sub is the subroutine of a location line, or the call expression of a stack frame.
	Sub string
}

// IsPrompt reports whether the line is an engine prompt.
func IsPrompt(raw string) bool {
	return _promptPattern.MatchString(raw)
}

// Classify decodes a single line of engine output.
func Classify(raw string) Line {
	l := Line{Kind: LineText, Raw: raw}

	switch {
	case IsPrompt(raw):
		l.Kind = LinePrompt
	case strings.Contains(raw, _terminatedMarker):
		l.Kind = LineTerminated
	case _continuePattern.MatchString(raw):
		l.Kind = LineContinue
	default:
		if m := _locationPattern.FindStringSubmatch(raw); m != nil {
			l.Kind = LineLocation
			l.Sub = m[1]
			l.Path = m[2]
			l.Number, _ = strconv.Atoi(m[3])
		} else if m := _loadedSourcePattern.FindStringSubmatch(raw); m != nil {
			l.Kind = LineLoadedSource
			l.Path = strings.TrimSpace(m[1])
		} else if m := _noFileMatchingPattern.FindStringSubmatch(raw); m != nil {
			l.Kind = LineNoFileMatching
			l.Path = m[1]
		} else if m := _calledFromPattern.FindStringSubmatch(raw); m != nil {
			l.Kind = LineCalledFrom
			l.Sub = m[1]
			l.Path = m[2]
			l.Number, _ = strconv.Atoi(m[3])
		} else if strings.Contains(raw, _notBreakableMarker) {
			l.Kind = LineNotBreakable
		} else if strings.Contains(raw, _notFoundMarker) {
			l.Kind = LineNotFound
		}
	}
	return l
}

// ClassifyAll decodes every line of a response.
func ClassifyAll(raw []string) []Line {
	out := make([]Line, 0, len(raw))
	for _, r := range raw {
		out = append(out, Classify(r))
	}
	return out
}

// ScopeName extracts the variable name from a top-level line of a scope listing ("$x = 1").
func ScopeName(raw string) (string, bool) {
	m := _scopeNamePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FrameName returns a display name for the subroutine of a location line.
// File-level code is reported with a trailing "::" and is named after its package.
func FrameName(sub string) string {
	if strings.HasSuffix(sub, "::") {
		return strings.TrimSuffix(sub, "::")
	}
	return sub
}
