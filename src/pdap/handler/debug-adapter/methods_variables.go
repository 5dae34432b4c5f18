package debugadapter

import (
	"context"

	"github.com/google/go-dap"
)

func (r *dapRouter) Scopes(ctx context.Context, req *dap.ScopesRequest) error {
	scopes, err := r.debugAdapter.Scopes(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.ScopesResponse{
		Response: newResponse(&req.Request),
		Body:     dap.ScopesResponseBody{Scopes: scopes},
	}, err)
}

func (r *dapRouter) Variables(ctx context.Context, req *dap.VariablesRequest) error {
	vars, err := r.debugAdapter.Variables(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.VariablesResponse{
		Response: newResponse(&req.Request),
		Body:     dap.VariablesResponseBody{Variables: vars},
	}, err)
}

// Evaluate only accepts variable expressions; anything else is answered with an error.
func (r *dapRouter) Evaluate(ctx context.Context, req *dap.EvaluateRequest) error {
	body, err := r.debugAdapter.Evaluate(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.EvaluateResponse{Response: newResponse(&req.Request), Body: body}, err)
}

func (r *dapRouter) SetVariable(ctx context.Context, req *dap.SetVariableRequest) error {
	body, err := r.debugAdapter.SetVariable(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.SetVariableResponse{Response: newResponse(&req.Request), Body: body}, err)
}
