package debugadapter

import (
	"context"

	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/mapper"
)

// Scopes starts a new inspection of the paused program. Handles from earlier stops become invalid.
func (c *controller) Scopes(ctx context.Context, args dap.ScopesArguments) ([]dap.Scope, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rt, err := ds.paused()
	if err != nil {
		return nil, err
	}
	return mapper.ScopesToDAP(rt.variables.Scopes(ctx)), nil
}

func (c *controller) Variables(ctx context.Context, args dap.VariablesArguments) ([]dap.Variable, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rt, err := ds.paused()
	if err != nil {
		return nil, err
	}

	vars, err := rt.variables.Variables(ctx, args.VariablesReference)
	if err != nil {
		return nil, err
	}
	return mapper.VariablesToDAP(vars), nil
}

func (c *controller) Evaluate(ctx context.Context, args dap.EvaluateArguments) (dap.EvaluateResponseBody, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return dap.EvaluateResponseBody{}, err
	}
	rt, err := ds.paused()
	if err != nil {
		return dap.EvaluateResponseBody{}, err
	}

	v, err := rt.variables.Evaluate(ctx, args.Expression)
	if err != nil {
		return dap.EvaluateResponseBody{}, err
	}
	return mapper.VariableToEvaluateBody(v), nil
}

func (c *controller) SetVariable(ctx context.Context, args dap.SetVariableArguments) (dap.SetVariableResponseBody, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return dap.SetVariableResponseBody{}, err
	}
	rt, err := ds.paused()
	if err != nil {
		return dap.SetVariableResponseBody{}, err
	}

	v, err := rt.variables.SetVariable(ctx, args.VariablesReference, args.Name, args.Value)
	if err != nil {
		return dap.SetVariableResponseBody{}, err
	}
	return mapper.VariableToSetVariableBody(v), nil
}
