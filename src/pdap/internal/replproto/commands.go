package replproto

import (
	"fmt"
	"strings"
)

// Engine commands without arguments.
const (
	CmdContinue   = "c"
	CmdStepOver   = "n"
	CmdStepIn     = "s"
	CmdStepOut    = "r"
	CmdStackTrace = "T"
	CmdQuit       = "q"
)

// CmdLoadHook wraps DB::postponed, which perl calls after compiling each required file. The
// wrapper prints a loaded source line and the continue marker, then single-steps so that the
// engine pauses on the first statement of the file and its postponed breakpoints can be set
// before it runs.
const CmdLoadHook = `$DB::pdap_postponed = \&DB::postponed; no warnings 'redefine'; ` +
	`*DB::postponed = sub { if (ref \$_[0] eq 'GLOB' && "$_[0]" =~ /<(.*)$/s) ` +
	`{ print $DB::OUT "loaded source $1\ncontinue\n"; $DB::single = 1 } goto &$DB::pdap_postponed };`

// SetBreakpoint builds `b <line> [condition]`.
func SetBreakpoint(line int, condition string) string {
	return withCondition(fmt.Sprintf("b %d", line), condition)
}

// ClearBreakpoint builds `B <line>`.
func ClearBreakpoint(line int) string {
	return fmt.Sprintf("B %d", line)
}

// SetFunctionBreakpoint builds `b <subroutine> [condition]`.
func SetFunctionBreakpoint(name, condition string) string {
	return withCondition("b "+name, condition)
}

// SwitchFile builds `f <file>`, which makes the file the target of later line breakpoints.
func SwitchFile(path string) string {
	return "f " + path
}

// Assign builds a statement assigning value to the variable expression.
func Assign(expression, value string) string {
	return fmt.Sprintf("%s = %s;", expression, value)
}

// Dump builds the command printing every expression as one Data::Dumper hash keyed by expression.
// Aggregates are dumped through an anonymous copy so that their contents become children.
// Deepcopy prints a reference shared by several expressions in full each time instead of as a
// back-reference to the first one.
func Dump(expressions []string) string {
	entries := make([]string, 0, len(expressions))
	for _, e := range expressions {
		entries = append(entries, fmt.Sprintf("%s => %s", quote(e), dumpValue(e)))
	}
	return fmt.Sprintf(
		"require Data::Dumper; print $DB::OUT Data::Dumper->new([{%s}])->Indent(1)->Useqq(1)->Terse(1)->Sortkeys(1)->Deepcopy(1)->Dump;",
		strings.Join(entries, ", "),
	)
}

// HasSigil reports whether the expression names a scalar, array or hash.
func HasSigil(expression string) bool {
	e := strings.TrimSpace(expression)
	return e != "" && strings.ContainsRune("$@%", rune(e[0]))
}

func dumpValue(expression string) string {
	switch expression[0] {
	case '@':
		return "[" + expression + "]"
	case '%':
		return "{" + expression + "}"
	}
	return expression
}

func quote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

func withCondition(cmd, condition string) string {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return cmd
	}
	return cmd + " " + condition
}
