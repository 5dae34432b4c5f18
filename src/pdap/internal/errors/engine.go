package errors

import (
	"fmt"
	"strings"
	"time"
)

// ProtocolAnomalyError lists engine output lines that matched none of the expected shapes.
type ProtocolAnomalyError struct {
	Lines []string
}

// Error is an implementation of the error interface.
func (n *ProtocolAnomalyError) Error() string {
	return fmt.Sprintf("skipped %d unrecognized engine line(s): %q", len(n.Lines), n.Lines)
}

// BreakpointNotBreakableError indicates that no breakable line was found within the attempt budget.
type BreakpointNotBreakableError struct {
	Path     string
	Line     int
	Attempts int
}

// Error is an implementation of the error interface.
func (n *BreakpointNotBreakableError) Error() string {
	return fmt.Sprintf("no breakable line in %s starting at line %d after %d attempts", n.Path, n.Line, n.Attempts)
}

// FileNotLoadedError indicates that the engine has not compiled the given file yet.
type FileNotLoadedError struct {
	Path string
}

// Error is an implementation of the error interface.
func (n *FileNotLoadedError) Error() string {
	return fmt.Sprintf("file %q is not loaded", n.Path)
}

// FunctionNotFoundError indicates that a function breakpoint names an unknown subroutine.
type FunctionNotFoundError struct {
	Name string
}

// Error is an implementation of the error interface.
func (n *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("subroutine %q not found", n.Name)
}

// InvalidExpressionError indicates that an expression cannot be evaluated as a variable.
type InvalidExpressionError struct {
	Expression string
}

// Error is an implementation of the error interface.
func (n *InvalidExpressionError) Error() string {
	return fmt.Sprintf("expression %q must start with $, @ or %%", n.Expression)
}

// AssignmentRejectedError carries the engine output produced by a failed assignment.
type AssignmentRejectedError struct {
	Expression string
	Output     []string
}

// Error is an implementation of the error interface.
func (n *AssignmentRejectedError) Error() string {
	return fmt.Sprintf("assignment to %s failed: %s", n.Expression, strings.Join(n.Output, " "))
}

// UnknownHandleError indicates that a variables reference is not part of the current tree.
type UnknownHandleError struct {
	Handle int
}

// Error is an implementation of the error interface.
func (n *UnknownHandleError) Error() string {
	return fmt.Sprintf("unknown variables reference %d", n.Handle)
}

// RequestTimeoutError indicates that the engine did not answer a command in time.
type RequestTimeoutError struct {
	Command string
	Timeout time.Duration
}

// Error is an implementation of the error interface.
func (n *RequestTimeoutError) Error() string {
	return fmt.Sprintf("engine did not answer %q within %v", n.Command, n.Timeout)
}
