// Package breakpoints keeps the line and function breakpoints of a debug session and
// applies them to the engine, postponing line breakpoints for files the engine has not
// compiled yet.
package breakpoints

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"go.uber.org/zap"
)

// DefaultMaxAttempts is the number of consecutive lines tried for one breakpoint.
const DefaultMaxAttempts = 10

const (
	_msgPending      = "pending: file not loaded yet"
	_msgNotActive    = "pending: debugger not started yet"
	_postponedMetric = "postponed_applied"
)

// Engine sends a single command to the debugger and returns its reply.
type Engine interface {
	Request(ctx context.Context, cmd string) ([]string, error)
}

// Options configure a Registry.
type Options struct {
	Logger *zap.SugaredLogger
	Scope  tally.Scope
	// MaxAttempts bounds the line-advance retry. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// EnginePath converts a normalized path to the file name given to the engine.
	EnginePath func(path string) string
}

// FunctionIDBase offsets the ids of function breakpoints so that they never collide with the
// ids of line breakpoints in breakpoint events.
const FunctionIDBase = 1_000_000

// Registry owns the breakpoint state of one session.
type Registry struct {
	logger      *zap.SugaredLogger
	maxAttempts int
	enginePath  func(string) string
	applied     tally.Counter

	// opMu serializes operations that talk to the engine; mu guards the maps below.
	opMu      sync.Mutex
	mu        sync.Mutex
	engine    Engine
	nextID    int
	active    map[string][]entity.BreakpointRecord
	postponed map[string][]entity.SourceBreakpoint
	functions []entity.FunctionBreakpoint
}

// New creates an inactive Registry. Every breakpoint is postponed until Activate.
func New(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Scope == nil {
		opts.Scope = tally.NoopScope
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.EnginePath == nil {
		opts.EnginePath = func(p string) string { return p }
	}
	return &Registry{
		logger:      opts.Logger,
		maxAttempts: opts.MaxAttempts,
		enginePath:  opts.EnginePath,
		applied:     opts.Scope.Counter(_postponedMetric),
		nextID:      1,
		active:      make(map[string][]entity.BreakpointRecord),
		postponed:   make(map[string][]entity.SourceBreakpoint),
	}
}

// Activate attaches a running engine. Postponed breakpoints are not applied until ApplyPostponed.
func (r *Registry) Activate(engine Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine = engine
}

// Reset detaches the engine before a relaunch. Active breakpoints become postponed again and
// identifiers restart at 1.
func (r *Registry) Reset() {
	r.opMu.Lock()
	defer r.opMu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	r.engine = nil
	r.nextID = 1
	for path, records := range r.active {
		if _, ok := r.postponed[path]; ok {
			continue
		}
		requested := make([]entity.SourceBreakpoint, 0, len(records))
		for _, rec := range records {
			requested = append(requested, entity.SourceBreakpoint{Line: rec.Line, Condition: rec.Condition})
		}
		r.postponed[path] = requested
	}
	r.active = make(map[string][]entity.BreakpointRecord)
}

// SetBreakpointsInFile replaces the breakpoints of path and reports one result per requested
// breakpoint, in order.
func (r *Registry) SetBreakpointsInFile(ctx context.Context, path string, requested []entity.SourceBreakpoint) ([]entity.Breakpoint, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	r.nextID = 1
	engine := r.engine
	r.mu.Unlock()

	if engine == nil {
		return r.postpone(path, requested, _msgNotActive), nil
	}
	return r.apply(ctx, engine, path, requested)
}

// RemoveBreakpointsInFile clears every breakpoint of path.
func (r *Registry) RemoveBreakpointsInFile(ctx context.Context, path string) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	engine := r.engine
	records := r.active[path]
	delete(r.active, path)
	delete(r.postponed, path)
	r.mu.Unlock()

	if engine == nil || len(records) == 0 {
		return nil
	}
	loaded, err := r.switchFile(ctx, engine, path)
	if err != nil || !loaded {
		return err
	}
	for _, rec := range records {
		if _, err := engine.Request(ctx, replproto.ClearBreakpoint(rec.Line)); err != nil {
			return err
		}
	}
	return nil
}

// SetFunctionBreakpoints replaces the function breakpoints and applies them when the engine runs.
func (r *Registry) SetFunctionBreakpoints(ctx context.Context, requested []entity.FunctionBreakpoint) ([]entity.Breakpoint, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	r.functions = append([]entity.FunctionBreakpoint(nil), requested...)
	engine := r.engine
	r.mu.Unlock()

	if engine == nil {
		out := make([]entity.Breakpoint, 0, len(requested))
		for i := range requested {
			out = append(out, entity.Breakpoint{ID: FunctionIDBase + i + 1, Message: _msgNotActive})
		}
		return out, nil
	}
	return r.applyFunctions(ctx, engine, requested)
}

// ApplyPostponed applies every postponed line breakpoint and re-sends the function breakpoints.
// It is called once the engine reached its first prompt. Files that are still not loaded stay
// postponed.
func (r *Registry) ApplyPostponed(ctx context.Context) ([]entity.Breakpoint, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	engine := r.engine
	paths := make([]string, 0, len(r.postponed))
	for p := range r.postponed {
		paths = append(paths, p)
	}
	functions := append([]entity.FunctionBreakpoint(nil), r.functions...)
	r.mu.Unlock()

	if engine == nil {
		return nil, errors.ErrSessionNotLaunched
	}
	sort.Strings(paths)

	var out []entity.Breakpoint
	for _, p := range paths {
		results, applied, err := r.applyPostponedFile(ctx, engine, p)
		if err != nil {
			return out, err
		}
		if applied {
			out = append(out, results...)
		}
	}

	if len(functions) > 0 {
		results, err := r.applyFunctions(ctx, engine, functions)
		if err != nil {
			return out, err
		}
		out = append(out, results...)
	}
	return out, nil
}

// ApplyPostponedForFile applies the postponed breakpoints of a file the engine just loaded.
// It reports false when nothing was postponed for path.
func (r *Registry) ApplyPostponedForFile(ctx context.Context, path string) ([]entity.Breakpoint, bool, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	engine := r.engine
	r.mu.Unlock()
	if engine == nil {
		return nil, false, errors.ErrSessionNotLaunched
	}
	return r.applyPostponedFile(ctx, engine, path)
}

// HasBreakpointAt reports the identifier of the active breakpoint at path:line.
func (r *Registry) HasBreakpointAt(path string, line int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.active[path] {
		if rec.Line == line {
			return rec.ID, true
		}
	}
	return 0, false
}

// IsPostponed reports whether path has breakpoints waiting for the file to load.
func (r *Registry) IsPostponed(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.postponed[path]
	return ok
}

// Active returns a copy of the active records of path.
func (r *Registry) Active(path string) []entity.BreakpointRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.BreakpointRecord(nil), r.active[path]...)
}

// applyPostponedFile removes the postponed entry before applying it so that it is never
// applied twice. Called with opMu held.
func (r *Registry) applyPostponedFile(ctx context.Context, engine Engine, path string) ([]entity.Breakpoint, bool, error) {
	r.mu.Lock()
	requested, ok := r.postponed[path]
	delete(r.postponed, path)
	r.nextID = 1
	r.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	results, err := r.apply(ctx, engine, path, requested)
	if err != nil {
		return nil, false, err
	}
	if r.IsPostponed(path) {
		return nil, false, nil
	}
	r.applied.Inc(1)
	r.logger.Infow("applied postponed breakpoints", "path", path, "count", len(requested))
	return results, true, nil
}

// apply is called with opMu held.
func (r *Registry) apply(ctx context.Context, engine Engine, path string, requested []entity.SourceBreakpoint) ([]entity.Breakpoint, error) {
	loaded, err := r.switchFile(ctx, engine, path)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return r.postpone(path, requested, _msgPending), nil
	}

	r.mu.Lock()
	previous := r.active[path]
	delete(r.active, path)
	delete(r.postponed, path)
	r.mu.Unlock()

	for _, rec := range previous {
		if _, err := engine.Request(ctx, replproto.ClearBreakpoint(rec.Line)); err != nil {
			return nil, err
		}
	}

	results := make([]entity.Breakpoint, 0, len(requested))
	records := make([]entity.BreakpointRecord, 0, len(requested))
	for _, req := range requested {
		id := r.allocateID()
		line, err := r.setLine(ctx, engine, req)
		if err != nil {
			var notBreakable *errors.BreakpointNotBreakableError
			if !errors.As(err, &notBreakable) {
				return nil, err
			}
			notBreakable.Path = path
			results = append(results, entity.Breakpoint{ID: id, Path: path, Line: req.Line, Message: notBreakable.Error()})
			continue
		}
		records = append(records, entity.BreakpointRecord{ID: id, Path: path, Line: line, Condition: req.Condition})
		results = append(results, entity.Breakpoint{ID: id, Verified: true, Path: path, Line: line})
	}

	r.mu.Lock()
	if len(records) > 0 {
		r.active[path] = records
	}
	r.mu.Unlock()
	return results, nil
}

// setLine tries req.Line and the lines after it until the engine accepts one.
func (r *Registry) setLine(ctx context.Context, engine Engine, req entity.SourceBreakpoint) (int, error) {
	line := req.Line
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		reply, err := engine.Request(ctx, replproto.SetBreakpoint(line, req.Condition))
		if err != nil {
			return 0, err
		}
		if !hasKind(reply, replproto.LineNotBreakable) {
			return line, nil
		}
		r.logger.Debugw("line not breakable", "line", line, "attempt", attempt)
		line++
	}
	return 0, &errors.BreakpointNotBreakableError{Line: req.Line, Attempts: r.maxAttempts}
}

func (r *Registry) applyFunctions(ctx context.Context, engine Engine, requested []entity.FunctionBreakpoint) ([]entity.Breakpoint, error) {
	out := make([]entity.Breakpoint, 0, len(requested))
	for i, fb := range requested {
		reply, err := engine.Request(ctx, replproto.SetFunctionBreakpoint(fb.Name, fb.Condition))
		if err != nil {
			return nil, err
		}
		bp := entity.Breakpoint{ID: FunctionIDBase + i + 1, Verified: true}
		if hasKind(reply, replproto.LineNotFound) {
			bp.Verified = false
			bp.Message = (&errors.FunctionNotFoundError{Name: fb.Name}).Error()
		}
		out = append(out, bp)
	}
	return out, nil
}

// switchFile reports false when the engine has not loaded path.
func (r *Registry) switchFile(ctx context.Context, engine Engine, path string) (bool, error) {
	reply, err := engine.Request(ctx, replproto.SwitchFile(r.enginePath(path)))
	if err != nil {
		return false, fmt.Errorf("switching to %s: %w", path, err)
	}
	if hasKind(reply, replproto.LineNoFileMatching) {
		r.logger.Debugw("file not loaded", "error", &errors.FileNotLoadedError{Path: path})
		return false, nil
	}
	return true, nil
}

func (r *Registry) postpone(path string, requested []entity.SourceBreakpoint, message string) []entity.Breakpoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.active, path)
	if len(requested) == 0 {
		delete(r.postponed, path)
		return []entity.Breakpoint{}
	}
	r.postponed[path] = append([]entity.SourceBreakpoint(nil), requested...)

	out := make([]entity.Breakpoint, 0, len(requested))
	for _, req := range requested {
		out = append(out, entity.Breakpoint{ID: r.nextID, Path: path, Line: req.Line, Message: message})
		r.nextID++
	}
	r.logger.Infow("breakpoints postponed", "path", path, "count", len(requested))
	return out
}

func (r *Registry) allocateID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

func hasKind(reply []string, kind replproto.LineKind) bool {
	for _, raw := range reply {
		if replproto.Classify(raw).Kind == kind {
			return true
		}
	}
	return false
}
