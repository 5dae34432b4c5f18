package breakpoints

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
)

const _prompt = "  DB<1> "

type fakeEngine struct {
	mu       sync.Mutex
	commands []string
	reply    func(cmd string) []string
	err      error
}

func (f *fakeEngine) Request(ctx context.Context, cmd string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	if f.reply != nil {
		out = f.reply(cmd)
	}
	return append(out, _prompt), nil
}

func (f *fakeEngine) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// notBreakable answers like the debugger for every line in lines.
func notBreakable(lines ...int) func(string) []string {
	return func(cmd string) []string {
		for _, l := range lines {
			if cmd == fmt.Sprintf("b %d", l) || strings.HasPrefix(cmd, fmt.Sprintf("b %d ", l)) {
				return []string{fmt.Sprintf("Line %d not breakable.", l)}
			}
		}
		return nil
	}
}

func notLoaded(cmd string) []string {
	if strings.HasPrefix(cmd, "f ") {
		return []string{fmt.Sprintf("No file matching '%s' is loaded.", strings.TrimPrefix(cmd, "f "))}
	}
	return nil
}

func TestSetBreakpointsInactivePostpones(t *testing.T) {
	r := New(Options{})

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}, {Line: 9}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{
		{ID: 1, Path: "/work/t.pl", Line: 3, Message: _msgNotActive},
		{ID: 2, Path: "/work/t.pl", Line: 9, Message: _msgNotActive},
	}, got)
	assert.True(t, r.IsPostponed("/work/t.pl"))
}

func TestLineAdvance(t *testing.T) {
	e := &fakeEngine{reply: notBreakable(5, 6, 7)}
	r := New(Options{EnginePath: func(p string) string { return strings.TrimPrefix(p, "/work/") }})
	r.Activate(e)

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{{Line: 5}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{{ID: 1, Verified: true, Path: "/work/t.pl", Line: 8}}, got)
	assert.Equal(t, []string{"f t.pl", "b 5", "b 6", "b 7", "b 8"}, e.sent())

	id, ok := r.HasBreakpointAt("/work/t.pl", 8)
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	_, ok = r.HasBreakpointAt("/work/t.pl", 5)
	assert.False(t, ok)
}

func TestLineAdvanceExhausted(t *testing.T) {
	all := make([]int, 0, 20)
	for i := 1; i <= 20; i++ {
		all = append(all, i)
	}
	e := &fakeEngine{reply: notBreakable(all...)}
	r := New(Options{})
	r.Activate(e)

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{{Line: 2}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Verified)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, "no breakable line in /work/t.pl starting at line 2 after 10 attempts", got[0].Message)

	// one file switch plus exactly ten attempts
	assert.Len(t, e.sent(), 11)
	assert.Empty(t, r.Active("/work/t.pl"))
}

func TestMaxAttemptsConfigurable(t *testing.T) {
	e := &fakeEngine{reply: notBreakable(1, 2, 3, 4)}
	r := New(Options{MaxAttempts: 3})
	r.Activate(e)

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{{Line: 1}})
	require.NoError(t, err)
	assert.False(t, got[0].Verified)
	assert.Equal(t, []string{"f /work/t.pl", "b 1", "b 2", "b 3"}, e.sent())
}

func TestResultsKeepRequestOrder(t *testing.T) {
	e := &fakeEngine{reply: notBreakable(10)}
	r := New(Options{})
	r.Activate(e)

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{
		{Line: 10},
		{Line: 4, Condition: "$i > 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{
		{ID: 1, Verified: true, Path: "/work/t.pl", Line: 11},
		{ID: 2, Verified: true, Path: "/work/t.pl", Line: 4},
	}, got)
	assert.Contains(t, e.sent(), "b 4 $i > 2")
	assert.Equal(t, []entity.BreakpointRecord{
		{ID: 1, Path: "/work/t.pl", Line: 11},
		{ID: 2, Path: "/work/t.pl", Line: 4, Condition: "$i > 2"},
	}, r.Active("/work/t.pl"))
}

func TestReplaceClearsPreviousLines(t *testing.T) {
	e := &fakeEngine{}
	r := New(Options{})
	r.Activate(e)
	ctx := context.Background()

	_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}})
	require.NoError(t, err)
	got, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 9}})
	require.NoError(t, err)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, []string{"f /work/t.pl", "b 3", "f /work/t.pl", "B 3", "b 9"}, e.sent())
	_, ok := r.HasBreakpointAt("/work/t.pl", 3)
	assert.False(t, ok)
}

func TestFileNotLoadedPostpones(t *testing.T) {
	e := &fakeEngine{reply: notLoaded}
	r := New(Options{})
	r.Activate(e)

	got, err := r.SetBreakpointsInFile(context.Background(), "/work/lib/Foo.pm", []entity.SourceBreakpoint{{Line: 7}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{{ID: 1, Path: "/work/lib/Foo.pm", Line: 7, Message: _msgPending}}, got)
	assert.True(t, r.IsPostponed("/work/lib/Foo.pm"))
	assert.Equal(t, []string{"f /work/lib/Foo.pm"}, e.sent())
}

func TestPostponedAppliedExactlyOnce(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	e := &fakeEngine{reply: notLoaded}
	r := New(Options{Scope: scope})
	r.Activate(e)
	ctx := context.Background()

	_, err := r.SetBreakpointsInFile(ctx, "/work/lib/Foo.pm", []entity.SourceBreakpoint{{Line: 7}, {Line: 12}})
	require.NoError(t, err)

	// The file gets compiled.
	e.reply = nil
	got, applied, err := r.ApplyPostponedForFile(ctx, "/work/lib/Foo.pm")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []entity.Breakpoint{
		{ID: 1, Verified: true, Path: "/work/lib/Foo.pm", Line: 7},
		{ID: 2, Verified: true, Path: "/work/lib/Foo.pm", Line: 12},
	}, got)
	assert.False(t, r.IsPostponed("/work/lib/Foo.pm"))

	sentBefore := len(e.sent())
	got, applied, err = r.ApplyPostponedForFile(ctx, "/work/lib/Foo.pm")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, got)
	assert.Len(t, e.sent(), sentBefore)

	assert.Equal(t, int64(1), scope.Snapshot().Counters()["postponed_applied+"].Value())
}

func TestApplyPostponedForFileStillNotLoaded(t *testing.T) {
	e := &fakeEngine{reply: notLoaded}
	r := New(Options{})
	r.Activate(e)
	ctx := context.Background()

	_, err := r.SetBreakpointsInFile(ctx, "/work/lib/Foo.pm", []entity.SourceBreakpoint{{Line: 7}})
	require.NoError(t, err)

	_, applied, err := r.ApplyPostponedForFile(ctx, "/work/lib/Foo.pm")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, r.IsPostponed("/work/lib/Foo.pm"))
}

func TestApplyPostponedAtLaunch(t *testing.T) {
	r := New(Options{})
	ctx := context.Background()

	_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}})
	require.NoError(t, err)
	_, err = r.SetBreakpointsInFile(ctx, "/work/lib/Foo.pm", []entity.SourceBreakpoint{{Line: 4}})
	require.NoError(t, err)
	fbs, err := r.SetFunctionBreakpoints(ctx, []entity.FunctionBreakpoint{{Name: "main::run"}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{{ID: FunctionIDBase + 1, Message: _msgNotActive}}, fbs)

	_, err = r.ApplyPostponed(ctx)
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)

	e := &fakeEngine{reply: func(cmd string) []string {
		if cmd == "f /work/lib/Foo.pm" {
			return notLoaded(cmd)
		}
		return nil
	}}
	r.Activate(e)

	got, err := r.ApplyPostponed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{
		{ID: 1, Verified: true, Path: "/work/t.pl", Line: 3},
		{ID: FunctionIDBase + 1, Verified: true},
	}, got)
	// Line and function breakpoints are told apart by id in breakpoint events.
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, []string{"f /work/lib/Foo.pm", "f /work/t.pl", "b 3", "b main::run"}, e.sent())
	assert.True(t, r.IsPostponed("/work/lib/Foo.pm"))
	assert.False(t, r.IsPostponed("/work/t.pl"))
}

func TestFunctionBreakpoints(t *testing.T) {
	e := &fakeEngine{reply: func(cmd string) []string {
		if cmd == "b main::nope" {
			return []string{"Subroutine main::nope not found."}
		}
		return nil
	}}
	r := New(Options{})
	r.Activate(e)

	got, err := r.SetFunctionBreakpoints(context.Background(), []entity.FunctionBreakpoint{
		{Name: "main::run", Condition: "$n == 3"},
		{Name: "main::nope"},
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{
		{ID: FunctionIDBase + 1, Verified: true},
		{ID: FunctionIDBase + 2, Message: `subroutine "main::nope" not found`},
	}, got)
	assert.Equal(t, []string{"b main::run $n == 3", "b main::nope"}, e.sent())
}

func TestRemoveBreakpointsInFile(t *testing.T) {
	ctx := context.Background()

	t.Run("clears each line", func(t *testing.T) {
		e := &fakeEngine{}
		r := New(Options{})
		r.Activate(e)
		_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}, {Line: 5}})
		require.NoError(t, err)

		require.NoError(t, r.RemoveBreakpointsInFile(ctx, "/work/t.pl"))
		assert.Equal(t, []string{"f /work/t.pl", "b 3", "b 5", "f /work/t.pl", "B 3", "B 5"}, e.sent())
		assert.Empty(t, r.Active("/work/t.pl"))
	})

	t.Run("file no longer located", func(t *testing.T) {
		e := &fakeEngine{}
		r := New(Options{})
		r.Activate(e)
		_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}})
		require.NoError(t, err)

		e.reply = notLoaded
		require.NoError(t, r.RemoveBreakpointsInFile(ctx, "/work/t.pl"))
		assert.Empty(t, r.Active("/work/t.pl"))
	})

	t.Run("postponed only", func(t *testing.T) {
		r := New(Options{})
		_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}})
		require.NoError(t, err)

		require.NoError(t, r.RemoveBreakpointsInFile(ctx, "/work/t.pl"))
		assert.False(t, r.IsPostponed("/work/t.pl"))
	})
}

func TestReset(t *testing.T) {
	e := &fakeEngine{reply: notBreakable(3)}
	r := New(Options{})
	r.Activate(e)
	ctx := context.Background()

	_, err := r.SetBreakpointsInFile(ctx, "/work/t.pl", []entity.SourceBreakpoint{{Line: 3, Condition: "$x"}})
	require.NoError(t, err)

	r.Reset()
	assert.True(t, r.IsPostponed("/work/t.pl"))
	assert.Empty(t, r.Active("/work/t.pl"))

	next := &fakeEngine{}
	r.Activate(next)
	got, err := r.ApplyPostponed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Breakpoint{{ID: 1, Verified: true, Path: "/work/t.pl", Line: 4}}, got)
	assert.Equal(t, []string{"f /work/t.pl", "b 4 $x"}, next.sent())
}

func TestEngineFailure(t *testing.T) {
	e := &fakeEngine{err: errors.ErrTransportClosed}
	r := New(Options{})
	r.Activate(e)

	_, err := r.SetBreakpointsInFile(context.Background(), "/work/t.pl", []entity.SourceBreakpoint{{Line: 3}})
	assert.True(t, errors.IsTransportClosed(err))
}
