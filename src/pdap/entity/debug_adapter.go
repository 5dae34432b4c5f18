// Package entity contains the domain types of the perl debug adapter.
package entity

import (
	"github.com/gofrs/uuid"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// The engine runs the program in a single thread.
const (
	ThreadID   = 1
	ThreadName = "main"
)

// PathFormat is the representation of paths agreed with the client at initialize.
type PathFormat string

const (
	// PathFormatPath means plain file system paths.
	PathFormatPath PathFormat = "path"
	// PathFormatURI means file:// URIs.
	PathFormatURI PathFormat = "uri"
)

// Session entity representing a single front-end connection and the program it debugs.
type Session struct {
	UUID          uuid.UUID     `json:"uuid" zap:"uuid"`
	ClientID      string        `json:"clientID" zap:"clientID"`
	ClientName    string        `json:"clientName" zap:"clientName"`
	AdapterID     string        `json:"adapterID" zap:"adapterID"`
	PathFormat    PathFormat    `json:"pathFormat" zap:"pathFormat"`
	LinesStartAt1 bool          `json:"linesStartAt1" zap:"linesStartAt1"`
	Launch        *LaunchConfig `json:"launch,omitempty" zap:"-"`
	State         SessionState  `json:"state" zap:"state"`
}

// SessionState is the lifecycle position of a session.
type SessionState string

const (
	// SessionStateInitialized means initialize was answered and no program runs yet.
	SessionStateInitialized SessionState = "initialized"
	// SessionStateLaunched means the engine is running the program.
	SessionStateLaunched SessionState = "launched"
	// SessionStateTerminated means the program ended; restart may launch it again.
	SessionStateTerminated SessionState = "terminated"
)

// LaunchConfig is the launch request of a client, as found in launch.json.
type LaunchConfig struct {
	Program        string            `json:"program"`
	Cwd            string            `json:"cwd,omitempty"`
	PerlExecutable string            `json:"perlExecutable,omitempty"`
	Args           []string          `json:"args,omitempty"`
	Env            map[string]string `json:"env,omitempty"`
	// Inc lists extra library directories passed with -I.
	Inc         []string `json:"inc,omitempty"`
	StopOnEntry bool     `json:"stopOnEntry,omitempty"`
	NoDebug     bool     `json:"noDebug,omitempty"`
	// Threaded runs the engine with -dt.
	Threaded bool `json:"threaded,omitempty"`
	// Trace keeps a transcript of the engine dialogue.
	Trace bool `json:"trace,omitempty"`
}

// StopReason explains a pause to the client.
type StopReason string

const (
	StopReasonEntry      StopReason = "entry"
	StopReasonStep       StopReason = "step"
	StopReasonBreakpoint StopReason = "breakpoint"
	StopReasonNewSource  StopReason = "new source"
)

// OutputCategory routes program and adapter output in the client.
type OutputCategory string

const (
	OutputCategoryConsole OutputCategory = "console"
	OutputCategoryStdout  OutputCategory = "stdout"
	OutputCategoryStderr  OutputCategory = "stderr"
)
