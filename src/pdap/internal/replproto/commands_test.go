package replproto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakpointCommands(t *testing.T) {
	assert.Equal(t, "b 5", SetBreakpoint(5, ""))
	assert.Equal(t, "b 5 $x > 1", SetBreakpoint(5, " $x > 1 "))
	assert.Equal(t, "B 5", ClearBreakpoint(5))
	assert.Equal(t, "b main::foo", SetFunctionBreakpoint("main::foo", ""))
	assert.Equal(t, "b main::foo $n == 3", SetFunctionBreakpoint("main::foo", "$n == 3"))
	assert.Equal(t, "f lib/Foo.pm", SwitchFile("lib/Foo.pm"))
}

func TestAssign(t *testing.T) {
	assert.Equal(t, "$h{'a'} = 42;", Assign("$h{'a'}", "42"))
}

func TestDump(t *testing.T) {
	got := Dump([]string{"$x", "@a", "%h", "$h{'k'}"})
	assert.Equal(t,
		`require Data::Dumper; print $DB::OUT Data::Dumper->new([{'$x' => $x, '@a' => [@a], '%h' => {%h}, '$h{\'k\'}' => $h{'k'}}])->Indent(1)->Useqq(1)->Terse(1)->Sortkeys(1)->Deepcopy(1)->Dump;`,
		got,
	)
}

func TestLoadHook(t *testing.T) {
	// Sent as one debugger line; a leading brace would be taken as a pre-prompt command.
	assert.NotContains(t, CmdLoadHook, "\n")
	assert.True(t, strings.HasPrefix(CmdLoadHook, "$DB::"))
	assert.Contains(t, CmdLoadHook, "*DB::postponed = sub")
	assert.Contains(t, CmdLoadHook, "$DB::single = 1")

	// The lines the hook prints are the ones the execution controller reacts to.
	assert.Equal(t, LineLoadedSource, Classify("loaded source lib/Foo.pm").Kind)
	assert.Equal(t, "lib/Foo.pm", Classify("loaded source lib/Foo.pm").Path)
	assert.Equal(t, LineContinue, Classify("continue").Kind)
}

func TestHasSigil(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{expr: "$x", want: true},
		{expr: " @list", want: true},
		{expr: "%h", want: true},
		{expr: "x", want: false},
		{expr: "1 + 1", want: false},
		{expr: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, HasSigil(tt.expr))
		})
	}
}
