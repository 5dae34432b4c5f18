package entity

// Location is a position reported by the engine: the subroutine and the file line about to run.
type Location struct {
	Sub  string
	Path string
	Line int
}

// IsZero reports whether no location has been observed.
func (l Location) IsZero() bool {
	return l.Path == "" && l.Line == 0
}

// StackFrame is one frame of the program stack, innermost first.
type StackFrame struct {
	ID   int
	Name string
	Path string
	Line int
}

// Scope groups variables shown for a frame.
type Scope struct {
	Name      string
	Reference int
	Expensive bool
}

// Variable is one inspectable value. Reference is non-zero when it has children.
type Variable struct {
	Name         string
	Value        string
	Type         string
	Reference    int
	EvaluateName string
	Named        int
	Indexed      int
}

// LoadedSourceReason tells the client why a source is announced.
type LoadedSourceReason string

const (
	LoadedSourceNew     LoadedSourceReason = "new"
	LoadedSourceChanged LoadedSourceReason = "changed"
)
