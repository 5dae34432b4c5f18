package replproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDump(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DumpLine
	}{
		{
			name: "named scalar",
			raw:  `  "a" => 1,`,
			want: DumpLine{Shape: DumpNamedScalar, Key: "a", Value: "1"},
		},
		{
			name: "named scalar with escaped sigil",
			raw:  `  "\$x" => "hello",`,
			want: DumpLine{Shape: DumpNamedScalar, Key: "$x", Value: `"hello"`},
		},
		{
			name: "single quoted key, last entry",
			raw:  `  'it\'s' => undef`,
			want: DumpLine{Shape: DumpNamedScalar, Key: "it's", Value: "undef"},
		},
		{
			name: "indexed scalar",
			raw:  `    "x => y",`,
			want: DumpLine{Shape: DumpIndexedScalar, Value: `"x => y"`},
		},
		{
			name: "named array open",
			raw:  `  "\@b" => [`,
			want: DumpLine{Shape: DumpNamedOpen, Key: "@b", Container: ContainerArray},
		},
		{
			name: "named blessed open",
			raw:  `  "obj" => bless( {`,
			want: DumpLine{Shape: DumpNamedOpen, Key: "obj", Container: ContainerHash, Blessed: true},
		},
		{
			name: "indexed open",
			raw:  `    {`,
			want: DumpLine{Shape: DumpIndexedOpen, Container: ContainerHash},
		},
		{
			name: "named empty",
			raw:  `  "e" => [],`,
			want: DumpLine{Shape: DumpNamedEmpty, Key: "e", Container: ContainerArray},
		},
		{
			name: "indexed blessed empty",
			raw:  `    bless( {}, 'Foo' ),`,
			want: DumpLine{Shape: DumpIndexedEmpty, Container: ContainerHash, Blessed: true, Class: "Foo"},
		},
		{
			name: "array close",
			raw:  `  ],`,
			want: DumpLine{Shape: DumpClose, Container: ContainerArray},
		},
		{
			name: "blessed close",
			raw:  `  }, 'Foo::Bar' )`,
			want: DumpLine{Shape: DumpClose, Container: ContainerHash, Class: "Foo::Bar"},
		},
		{
			name: "blank",
			raw:  "   ",
			want: DumpLine{Shape: DumpUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Raw = tt.raw
			assert.Equal(t, tt.want, ClassifyDump(tt.raw))
		})
	}
}

func TestDumpLineIsNamed(t *testing.T) {
	assert.True(t, ClassifyDump(`"a" => 1,`).IsNamed())
	assert.False(t, ClassifyDump(`1,`).IsNamed())
	assert.False(t, ClassifyDump(`}`).IsNamed())
}

func TestUnescapeDoubleQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `plain`, want: "plain"},
		{in: `\$x`, want: "$x"},
		{in: `a\nb\t`, want: "a\nb\t"},
		{in: `\x{263a}`, want: "☺"},
		{in: `\0`, want: "\x00"},
		{in: `\101`, want: "A"},
		{in: `q\"q`, want: `q"q`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeDoubleQuoted(tt.in))
		})
	}
}
