// Package variables answers the scopes, variables, evaluate and setVariable requests of a
// paused program from lazily dumped engine state.
package variables

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/dump"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"github.com/uber/perl-dap/src/pdap/internal/vartree"
	"go.uber.org/zap"
)

const (
	_cmdListLocals  = "y 0"
	_cmdListGlobals = "V main"

	_scopeLocals  = "Locals"
	_scopeGlobals = "Globals"
)

// Engine is the part of the engine correlator used to inspect the program.
type Engine interface {
	Request(ctx context.Context, cmd string) ([]string, error)
	// Run resumes the program after an unexpected pause inside an evaluation.
	Run(ctx context.Context, cmd string) ([]string, error)
}

// Options configure a Controller.
type Options struct {
	Logger *zap.SugaredLogger
	Scope  tally.Scope
	// OnTerminated is called when the program ends while a value is being dumped.
	OnTerminated func()
}

// Controller owns the variable tree of one session.
type Controller struct {
	logger       *zap.SugaredLogger
	engine       Engine
	onTerminated func()
	anomalies    tally.Counter

	// mu serializes requests; the tree is rebuilt by Scopes.
	mu   sync.Mutex
	tree *vartree.Tree
}

// New creates a Controller with an empty tree.
func New(engine Engine, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Scope == nil {
		opts.Scope = tally.NoopScope
	}
	if opts.OnTerminated == nil {
		opts.OnTerminated = func() {}
	}
	return &Controller{
		logger:       opts.Logger,
		engine:       engine,
		onTerminated: opts.OnTerminated,
		anomalies:    opts.Scope.Counter("anomalies"),
		tree:         vartree.New(),
	}
}

// Scopes discards every handle of the previous stop and returns the scope categories.
func (c *Controller) Scopes(ctx context.Context) []entity.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree.Reset()
	return []entity.Scope{
		{Name: _scopeLocals, Reference: vartree.HandleLocals},
		{Name: _scopeGlobals, Reference: vartree.HandleGlobals, Expensive: true},
	}
}

// Variables returns the children of a scope or container handle. Scopes are dumped on first use.
func (c *Controller) Variables(ctx context.Context, handle int) ([]entity.Variable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tree.Known(handle) {
		return nil, &errors.UnknownHandleError{Handle: handle}
	}

	if vartree.IsScopeHandle(handle) && !c.tree.Populated(handle) {
		ok, err := c.populate(ctx, handle)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []entity.Variable{}, nil
		}
	}

	children := c.tree.Children(handle)
	out := make([]entity.Variable, 0, len(children))
	for _, n := range children {
		out = append(out, c.toVariable(handle, n))
	}
	return out, nil
}

// Evaluate dumps a single variable expression. Expressions must start with a sigil; anything
// else is rejected without contacting the engine.
func (c *Controller) Evaluate(ctx context.Context, expression string) (entity.Variable, error) {
	expression = strings.TrimSpace(expression)
	if !replproto.HasSigil(expression) {
		return entity.Variable{}, &errors.InvalidExpressionError{Expression: expression}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evaluate(ctx, expression)
}

// SetVariable assigns value to the named child of handle and returns the new value.
func (c *Controller) SetVariable(ctx context.Context, handle int, name, value string) (entity.Variable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tree.Known(handle) {
		return entity.Variable{}, &errors.UnknownHandleError{Handle: handle}
	}
	expression, err := c.tree.Expression(handle, name)
	if err != nil {
		return entity.Variable{}, err
	}
	if !replproto.HasSigil(expression) {
		return entity.Variable{}, &errors.InvalidExpressionError{Expression: expression}
	}

	reply, err := c.engine.Request(ctx, replproto.Assign(expression, value))
	if err != nil {
		return entity.Variable{}, err
	}
	if output := textLines(reply); len(output) > 0 {
		return entity.Variable{}, &errors.AssignmentRejectedError{Expression: expression, Output: output}
	}

	v, err := c.evaluate(ctx, expression)
	if err != nil {
		return entity.Variable{}, err
	}

	// Keep the tree in step so that later lookups below handle see the new value.
	if n, ok := c.tree.Child(0, expression); ok {
		n.Name = name
		n.Parent = handle
		c.tree.Add(n)
		v = c.toVariable(handle, n)
	}
	return v, nil
}

// evaluate is called with mu held.
func (c *Controller) evaluate(ctx context.Context, expression string) (entity.Variable, error) {
	res, ok, err := c.dump(ctx, []string{expression}, 0)
	if err != nil {
		return entity.Variable{}, err
	}
	if !ok {
		return entity.Variable{Name: expression}, nil
	}
	if len(res.Roots) == 0 {
		return entity.Variable{}, fmt.Errorf("evaluating %s: %s", expression, strings.Join(res.Preceding, " "))
	}
	return c.toVariable(0, res.Roots[0]), nil
}

// populate fills a scope from its name listing. It reports false when the program ended.
func (c *Controller) populate(ctx context.Context, scope int) (bool, error) {
	cmd := _cmdListLocals
	if scope == vartree.HandleGlobals {
		cmd = _cmdListGlobals
	}
	listing, err := c.engine.Request(ctx, cmd)
	if err != nil {
		return false, err
	}

	names := scopeNames(listing, scope == vartree.HandleGlobals)
	c.tree.MarkPopulated(scope)
	if len(names) == 0 {
		return true, nil
	}

	_, ok, err := c.dump(ctx, names, scope)
	return ok, err
}

// dump collects the dump of names below parent. When the engine pauses inside the evaluation
// the program is resumed and the dump collected again. It reports false when the program
// ended first.
func (c *Controller) dump(ctx context.Context, names []string, parent int) (dump.Result, bool, error) {
	reply, err := c.engine.Request(ctx, replproto.Dump(names))
	for {
		if err != nil {
			return dump.Result{}, false, err
		}

		res, parseErr := dump.Parse(reply, c.tree, parent)
		if parseErr != nil {
			return dump.Result{}, false, parseErr
		}
		if res.Found {
			if len(res.Anomalies) > 0 {
				c.anomalies.Inc(int64(len(res.Anomalies)))
				c.logger.Warnw("skipped anomalous dump lines", "error", &errors.ProtocolAnomalyError{Lines: res.Anomalies})
			}
			return res, true, nil
		}

		lines := replproto.ClassifyAll(reply)
		switch {
		case hasKind(lines, replproto.LineTerminated):
			c.logger.Infow("program terminated during evaluation")
			c.onTerminated()
			return dump.Result{}, false, nil
		case !hasKind(lines, replproto.LineLocation):
			// An evaluation error, nothing was dumped.
			return dump.Result{Preceding: textLines(reply)}, true, nil
		}

		c.logger.Infow("program paused during evaluation, resuming", "names", names)
		reply, err = c.engine.Run(ctx, replproto.CmdContinue)
	}
}

func (c *Controller) toVariable(parent int, n vartree.Node) entity.Variable {
	v := entity.Variable{
		Name:      n.Name,
		Value:     n.Value,
		Reference: n.Handle,
	}
	if expr, err := c.tree.Expression(parent, n.Name); err == nil {
		v.EvaluateName = expr
	}
	switch n.Kind {
	case vartree.KindArray:
		v.Type = typeName(n)
		v.Indexed = n.Count
	case vartree.KindHash:
		v.Type = typeName(n)
		v.Named = n.Count
	}
	return v
}

func typeName(n vartree.Node) string {
	if n.Class != "" {
		return n.Class
	}
	return n.Kind.String()
}

// scopeNames extracts the variable names of a `y` or `V` listing. Package stashes are
// skipped from global listings.
func scopeNames(listing []string, globals bool) []string {
	seen := make(map[string]bool)
	var names []string
	for _, raw := range listing {
		name, ok := replproto.ScopeName(raw)
		if !ok || seen[name] {
			continue
		}
		if globals && strings.Contains(name, "::") {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func textLines(reply []string) []string {
	var out []string
	for _, raw := range reply {
		if replproto.IsPrompt(raw) || strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

func hasKind(lines []replproto.Line, kind replproto.LineKind) bool {
	for _, l := range lines {
		if l.Kind == kind {
			return true
		}
	}
	return false
}
