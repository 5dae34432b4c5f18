package entity

// SourceBreakpoint is a breakpoint requested by the client for a line of a file.
type SourceBreakpoint struct {
	Line      int
	Condition string
}

// BreakpointRecord is a breakpoint the engine accepted, at the line it was actually placed.
type BreakpointRecord struct {
	ID        int
	Path      string
	Line      int
	Condition string
}

// Breakpoint is the outcome of one requested breakpoint.
type Breakpoint struct {
	ID       int
	Verified bool
	Path     string
	Line     int
	Message  string
}

// FunctionBreakpoint stops when the named subroutine is entered.
type FunctionBreakpoint struct {
	Name      string
	Condition string
}

// BreakpointEventReason tells the client what happened to a breakpoint it already knows.
type BreakpointEventReason string

const (
	BreakpointChanged BreakpointEventReason = "changed"
	BreakpointRemoved BreakpointEventReason = "removed"
)
