package mapper

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/entity"
	"go.lsp.dev/uri"
)

const _fileScheme = "file://"

// InitializeArgumentsToSession copies the client's protocol preferences onto s.
func InitializeArgumentsToSession(args dap.InitializeRequestArguments, s *entity.Session) {
	s.ClientID = args.ClientID
	s.ClientName = args.ClientName
	s.AdapterID = args.AdapterID
	s.LinesStartAt1 = args.LinesStartAt1
	s.PathFormat = entity.PathFormatPath
	if args.PathFormat == string(entity.PathFormatURI) {
		s.PathFormat = entity.PathFormatURI
	}
}

// LaunchArgumentsToConfig decodes the free-form arguments of a launch request.
func LaunchArgumentsToConfig(raw json.RawMessage) (*entity.LaunchConfig, error) {
	cfg := &entity.LaunchConfig{}
	if len(raw) == 0 {
		return nil, fmt.Errorf("launch arguments are missing")
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decoding launch arguments: %w", err)
	}
	if cfg.Program == "" {
		return nil, fmt.Errorf("launch arguments must name a program")
	}
	return cfg, nil
}

// ClientPathToPath converts a path received from the client into a file system path.
func ClientPathToPath(s *entity.Session, p string) string {
	if s.PathFormat == entity.PathFormatURI || strings.HasPrefix(p, _fileScheme) {
		return uri.URI(p).Filename()
	}
	return p
}

// PathToClientPath converts a file system path into the representation the client expects.
func PathToClientPath(s *entity.Session, p string) string {
	if s.PathFormat == entity.PathFormatURI {
		return string(uri.File(p))
	}
	return p
}

// ClientLineToLine converts a client line number to the engine's one-based numbering.
func ClientLineToLine(s *entity.Session, line int) int {
	if s.LinesStartAt1 {
		return line
	}
	return line + 1
}

// LineToClientLine converts an engine line number to the client's numbering.
func LineToClientLine(s *entity.Session, line int) int {
	if s.LinesStartAt1 || line == 0 {
		return line
	}
	return line - 1
}

// PathToSource builds the DAP source for a file system path.
func PathToSource(s *entity.Session, p string) *dap.Source {
	if p == "" {
		return nil
	}
	return &dap.Source{
		Name: filepath.Base(p),
		Path: PathToClientPath(s, p),
	}
}

// SourceBreakpointsToEntity maps requested breakpoints to their entity equivalents.
func SourceBreakpointsToEntity(s *entity.Session, in []dap.SourceBreakpoint) []entity.SourceBreakpoint {
	out := make([]entity.SourceBreakpoint, 0, len(in))
	for _, bp := range in {
		out = append(out, entity.SourceBreakpoint{
			Line:      ClientLineToLine(s, bp.Line),
			Condition: bp.Condition,
		})
	}
	return out
}

// FunctionBreakpointsToEntity maps requested function breakpoints to their entity equivalents.
func FunctionBreakpointsToEntity(in []dap.FunctionBreakpoint) []entity.FunctionBreakpoint {
	out := make([]entity.FunctionBreakpoint, 0, len(in))
	for _, bp := range in {
		out = append(out, entity.FunctionBreakpoint{Name: bp.Name, Condition: bp.Condition})
	}
	return out
}

// BreakpointToDAP maps a breakpoint outcome to the DAP representation.
func BreakpointToDAP(s *entity.Session, bp entity.Breakpoint) dap.Breakpoint {
	return dap.Breakpoint{
		Id:       bp.ID,
		Verified: bp.Verified,
		Message:  bp.Message,
		Source:   PathToSource(s, bp.Path),
		Line:     LineToClientLine(s, bp.Line),
	}
}

// BreakpointsToDAP maps breakpoint outcomes in order.
func BreakpointsToDAP(s *entity.Session, in []entity.Breakpoint) []dap.Breakpoint {
	out := make([]dap.Breakpoint, 0, len(in))
	for _, bp := range in {
		out = append(out, BreakpointToDAP(s, bp))
	}
	return out
}

// StackFramesToDAP maps stack frames, innermost first.
func StackFramesToDAP(s *entity.Session, in []entity.StackFrame) []dap.StackFrame {
	out := make([]dap.StackFrame, 0, len(in))
	for _, f := range in {
		out = append(out, dap.StackFrame{
			Id:     f.ID,
			Name:   f.Name,
			Source: PathToSource(s, f.Path),
			Line:   LineToClientLine(s, f.Line),
			Column: 1,
		})
	}
	return out
}

// ScopesToDAP maps variable scopes.
func ScopesToDAP(in []entity.Scope) []dap.Scope {
	out := make([]dap.Scope, 0, len(in))
	for _, sc := range in {
		out = append(out, dap.Scope{
			Name:               sc.Name,
			VariablesReference: sc.Reference,
			Expensive:          sc.Expensive,
		})
	}
	return out
}

// VariablesToDAP maps variables. A nil input yields an empty, non-nil list.
func VariablesToDAP(in []entity.Variable) []dap.Variable {
	out := make([]dap.Variable, 0, len(in))
	for _, v := range in {
		out = append(out, VariableToDAP(v))
	}
	return out
}

// VariableToDAP maps a single variable.
func VariableToDAP(v entity.Variable) dap.Variable {
	return dap.Variable{
		Name:               v.Name,
		Value:              v.Value,
		Type:               v.Type,
		EvaluateName:       v.EvaluateName,
		VariablesReference: v.Reference,
		NamedVariables:     v.Named,
		IndexedVariables:   v.Indexed,
	}
}

// PathsToSources maps loaded source paths.
func PathsToSources(s *entity.Session, paths []string) []dap.Source {
	out := make([]dap.Source, 0, len(paths))
	for _, p := range paths {
		if src := PathToSource(s, p); src != nil {
			out = append(out, *src)
		}
	}
	return out
}

// VariableToEvaluateBody maps an evaluated expression to the evaluate response body.
func VariableToEvaluateBody(v entity.Variable) dap.EvaluateResponseBody {
	return dap.EvaluateResponseBody{
		Result:             v.Value,
		Type:               v.Type,
		VariablesReference: v.Reference,
		NamedVariables:     v.Named,
		IndexedVariables:   v.Indexed,
	}
}

// VariableToSetVariableBody maps an assigned variable to the setVariable response body.
func VariableToSetVariableBody(v entity.Variable) dap.SetVariableResponseBody {
	return dap.SetVariableResponseBody{
		Value:              v.Value,
		Type:               v.Type,
		VariablesReference: v.Reference,
		NamedVariables:     v.Named,
		IndexedVariables:   v.Indexed,
	}
}
