package configfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `# sample
root_option = root value
[Section1]
option = one
; comment
[Section2]
[Section2.Section2A]
foo = fooo
  spaced   =   some value  
[Section3]
bar = yay
`

func TestParse(t *testing.T) {
	tree, err := ParseString("sample", sampleConfig, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"root_option"}, tree.OptionNames())
	assert.Equal(t, []string{"Section1", "Section2", "Section3"}, tree.ChildNames())

	sub, ok := tree.Subtree("Section2", "Section2A")
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "spaced"}, sub.OptionNames())

	v, _ := sub.Option("spaced")
	assert.Equal(t, "some value", v)

	s2, _ := tree.Subtree("Section2")
	assert.Empty(t, s2.OptionNames())
}

func TestParseHeaderResetsCurrentSection(t *testing.T) {
	tree, err := ParseString("t", "[A]\n[A.B]\n[C]\nx = 1\n", true)
	require.NoError(t, err)

	c, ok := tree.Subtree("C")
	require.True(t, ok)
	v, ok := c.Option("x")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	b, _ := tree.Subtree("A", "B")
	assert.True(t, b.Empty())
}

func TestParseOptionSplitsOnFirstEquals(t *testing.T) {
	tree, err := ParseString("t", "a = b = c\nempty =\n", true)
	require.NoError(t, err)

	v, _ := tree.Option("a")
	assert.Equal(t, "b = c", v)
	v, ok := tree.Option("empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestParseWithoutSubsections(t *testing.T) {
	_, err := ParseString("flat", "[A.B]\n", false)

	var perr *ParsingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.LineNo)

	tree, err := ParseString("flat", "[A]\nx = 1\n", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, tree.ChildNames())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   string
		lineNo int
	}{
		{"garbage", "a = 1\nnot an option\n", "not an option", 2},
		{"invalid header", "[a b]\n", "[a b]", 1},
		{"empty segment", "# c\n\n[a..b]\r\n", "[a..b]", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("file.ini", tt.text, true)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParsing))

			var perr *ParsingError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "file.ini", perr.Source)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, tt.lineNo, perr.LineNo)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		kind lineKind
	}{
		{"\n", lineBlank},
		{"   \t\n", lineBlank},
		{"# comment\n", lineComment},
		{"  ; comment = not an option\n", lineComment},
		{"key = value\n", lineOption},
		{"[Section]\n", lineSection},
		{"  [A.B]  \n", lineSection},
		{"[a=b]\n", lineOption},
		{"[]\n", lineInvalid},
		{"junk\n", lineInvalid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, classify(tt.raw, true).kind, "line %q", tt.raw)
	}

	l := classify("[A.B]\n", true)
	assert.Equal(t, []string{"A", "B"}, l.path)
	l = classify("[A.B]\n", false)
	assert.Equal(t, []string{"A.B"}, l.path)
}

func TestReadLinesKeepsTerminators(t *testing.T) {
	tree, err := ParseString("t", "a = 1\r\nb = 2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tree.OptionNames())

	v, _ := tree.Option("a")
	assert.Equal(t, "1", v)
}
