package replproto

import (
	"regexp"
	"strconv"
	"strings"
)

// DumpShape tags a single line of a variable dump.
type DumpShape int

const (
	// DumpUnknown is a line that fits none of the dump shapes.
	DumpUnknown DumpShape = iota
	// DumpNamedScalar is `"key" => value,`.
	DumpNamedScalar
	// DumpIndexedScalar is `value,`.
	DumpIndexedScalar
	// DumpNamedOpen is `"key" => [`, `"key" => {` or `"key" => bless( {`.
	DumpNamedOpen
	// DumpIndexedOpen is `[`, `{` or `bless( {`.
	DumpIndexedOpen
	// DumpNamedEmpty is `"key" => []`, `"key" => {}` or `"key" => bless( {}, 'Class' )`.
	DumpNamedEmpty
	// DumpIndexedEmpty is `[]`, `{}` or `bless( {}, 'Class' )`.
	DumpIndexedEmpty
	// DumpClose is `]` or `}`, optionally followed by `, 'Class' )` and a trailing comma.
	DumpClose
)

// Container is the aggregate kind named by an open or close marker.
type Container int

const (
	// ContainerNone is used by scalar shapes.
	ContainerNone Container = iota
	// ContainerArray is delimited by square brackets.
	ContainerArray
	// ContainerHash is delimited by curly braces.
	ContainerHash
)

// DumpLine is a decoded line of a variable dump.
type DumpLine struct {
	Shape DumpShape
	Raw   string
	// Key is the unescaped key of named shapes.
	Key string
	// Value is the literal of scalar shapes, without the trailing comma.
	Value string
	// Container is set for open, empty and close shapes.
	Container Container
	// Class is the package an empty or closed container was blessed into.
	Class   string
	Blessed bool
}

// IsNamed reports whether the line carries a key.
func (d DumpLine) IsNamed() bool {
	return d.Shape == DumpNamedScalar || d.Shape == DumpNamedOpen || d.Shape == DumpNamedEmpty
}

var (
	_dumpKeyPattern   = regexp.MustCompile(`^\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'|(-?\w+)) => (.*)$`)
	_dumpOpenPattern  = regexp.MustCompile(`^(bless\( )?([\[{])$`)
	_dumpEmptyPattern = regexp.MustCompile(`^(bless\( )?(\[\]|\{\})(?:, '([^']*)' \))?,?$`)
	_dumpClosePattern = regexp.MustCompile(`^\s*([\]}])(?:, '([^']*)' \))?,?\s*$`)
)

// ClassifyDump decodes a single line of a variable dump.
func ClassifyDump(raw string) DumpLine {
	d := DumpLine{Raw: raw}

	if m := _dumpClosePattern.FindStringSubmatch(raw); m != nil {
		d.Shape = DumpClose
		d.Container = containerOf(m[1])
		d.Class = m[2]
		return d
	}

	rest := strings.TrimSpace(raw)
	named := false
	if m := _dumpKeyPattern.FindStringSubmatch(raw); m != nil {
		named = true
		switch {
		case strings.HasPrefix(strings.TrimSpace(raw), `"`):
			d.Key = unescapeDoubleQuoted(m[1])
		case strings.HasPrefix(strings.TrimSpace(raw), `'`):
			d.Key = unescapeSingleQuoted(m[2])
		default:
			d.Key = m[3]
		}
		rest = strings.TrimSpace(m[4])
	}

	if rest == "" {
		return d
	}

	if m := _dumpOpenPattern.FindStringSubmatch(rest); m != nil {
		d.Shape = DumpIndexedOpen
		if named {
			d.Shape = DumpNamedOpen
		}
		d.Blessed = m[1] != ""
		d.Container = containerOf(m[2][:1])
		return d
	}

	if m := _dumpEmptyPattern.FindStringSubmatch(rest); m != nil {
		d.Shape = DumpIndexedEmpty
		if named {
			d.Shape = DumpNamedEmpty
		}
		d.Blessed = m[1] != ""
		d.Container = containerOf(m[2][:1])
		d.Class = m[3]
		return d
	}

	d.Shape = DumpIndexedScalar
	if named {
		d.Shape = DumpNamedScalar
	}
	d.Value = strings.TrimSuffix(rest, ",")
	return d
}

func containerOf(marker string) Container {
	switch marker {
	case "[", "]":
		return ContainerArray
	case "{", "}":
		return ContainerHash
	}
	return ContainerNone
}

func unescapeSingleQuoted(s string) string {
	return strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(s)
}

// unescapeDoubleQuoted undoes the escaping Data::Dumper applies with Useqq enabled.
func unescapeDoubleQuoted(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'a':
			b.WriteByte('\a')
		case 'e':
			b.WriteByte(0x1b)
		case 'x':
			// \x{263a}
			if i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i:], '}'); end > 0 {
					if r, err := strconv.ParseUint(s[i+2:i+end], 16, 32); err == nil {
						b.WriteRune(rune(r))
						i += end
						continue
					}
				}
			}
			b.WriteByte(e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			r, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(r))
			i = j - 1
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}
