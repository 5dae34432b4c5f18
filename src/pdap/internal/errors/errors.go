package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderr.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if one is found, sets
// target to that error value and returns true.
func As(err error, target any) bool {
	return stderr.As(err, target)
}

var (
	// ErrTransportClosed reports that the engine process is gone and no further commands can be answered.
	ErrTransportClosed = New("engine transport closed")
	// ErrSessionNotLaunched reports that a request needs a running engine before launch has completed.
	ErrSessionNotLaunched = New("debug session has not been launched")
	// ErrProgramTerminated reports that the debugged program already finished.
	ErrProgramTerminated = New("debugged program has terminated")
	// ErrProgramRunning reports that the program must be paused before it can be inspected or stepped.
	ErrProgramRunning = New("debugged program is running")
	// ErrNoDebug reports a request that needs the debugger in a session launched with noDebug.
	ErrNoDebug = New("program was launched without debugging")
	// ErrHandlesExhausted reports that the variable handle counter ran out of values below the scope threshold.
	ErrHandlesExhausted = New("variable handles exhausted")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	var invalidExpr *InvalidExpressionError
	var unknownHandle *UnknownHandleError
	return stderr.As(e, &invalidExpr) || stderr.As(e, &unknownHandle)
}

// IsTransportClosed reports whether the error chain includes ErrTransportClosed.
func IsTransportClosed(e error) bool {
	return stderr.Is(e, ErrTransportClosed)
}
