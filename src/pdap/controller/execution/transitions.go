package execution

import (
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
)

// Kind is the execution command that produced a reply.
type Kind int

const (
	KindContinue Kind = iota
	KindNext
	KindStepIn
	KindStepOut
)

var _kindCommands = [...]string{
	KindContinue: replproto.CmdContinue,
	KindNext:     replproto.CmdStepOver,
	KindStepIn:   replproto.CmdStepIn,
	KindStepOut:  replproto.CmdStepOut,
}

var _kindNames = [...]string{
	KindContinue: "continue",
	KindNext:     "next",
	KindStepIn:   "stepIn",
	KindStepOut:  "stepOut",
}

// Command returns the engine command for k.
func (k Kind) Command() string {
	return _kindCommands[k]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return _kindNames[k]
}

// Observation is what a reply to an execution command revealed.
type Observation int

const (
	// ObsTerminated means the program finished.
	ObsTerminated Observation = iota
	// ObsSourceAtBreakpoint means a file was loaded and the engine already sits on one of its breakpoints.
	ObsSourceAtBreakpoint
	// ObsSourceResumable means a file was loaded and the engine asked to be resumed.
	ObsSourceResumable
	// ObsSource means a file was loaded.
	ObsSource
	// ObsPlain means the engine paused without loading anything.
	ObsPlain
)

var _observationNames = [...]string{
	ObsTerminated:         "terminated",
	ObsSourceAtBreakpoint: "sourceAtBreakpoint",
	ObsSourceResumable:    "sourceResumable",
	ObsSource:             "source",
	ObsPlain:              "plain",
}

// String implements fmt.Stringer.
func (o Observation) String() string {
	return _observationNames[o]
}

// Action is the reaction to an observation.
type Action struct {
	Terminate bool
	Resume    bool
	// Reason is set when the program stays paused.
	Reason entity.StopReason
}

var (
	_terminate      = Action{Terminate: true}
	_resume         = Action{Resume: true}
	_stopBreakpoint = Action{Reason: entity.StopReasonBreakpoint}
	_stopNewSource  = Action{Reason: entity.StopReasonNewSource}
	_stopStep       = Action{Reason: entity.StopReasonStep}
)

// Auto-resume is only offered for continue and next.
var _transitions = [4][5]Action{
	KindContinue: {_terminate, _stopBreakpoint, _resume, _stopNewSource, _stopBreakpoint},
	KindNext:     {_terminate, _stopBreakpoint, _resume, _stopNewSource, _stopStep},
	KindStepIn:   {_terminate, _stopBreakpoint, _stopNewSource, _stopNewSource, _stopStep},
	KindStepOut:  {_terminate, _stopBreakpoint, _stopNewSource, _stopNewSource, _stopStep},
}

// Transition looks up the reaction to obs after a command of kind k.
func Transition(k Kind, obs Observation) Action {
	return _transitions[k][obs]
}
