package configfile

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestExportRoundTrip(t *testing.T) {
	settings := testSettings()
	writeFile(t, settings.Fs, "/sample.ini", sampleConfig)

	root := NewSection(settings)
	require.NoError(t, root.Upgrade(File("/sample.ini")))
	require.NoError(t, root.ExportUpgrade("/sample.ini"))

	assert.Equal(t, sampleConfig, readFile(t, settings.Fs, "/sample.ini"))
}

func TestExportSectionHeaderModes(t *testing.T) {
	settings := testSettings()
	root := newTestSection(t, settings, sampleConfig)
	s3, err := root.Sub("Section3")
	require.NoError(t, err)

	require.NoError(t, s3.ExportReset("/full.ini"))
	assert.Equal(t, "[Section3]\nbar = yay\n", readFile(t, settings.Fs, "/full.ini"))

	require.NoError(t, s3.Export(ModeReset, false, "/relative.ini"))
	assert.Equal(t, "bar = yay\n", readFile(t, settings.Fs, "/relative.ini"))
}

func TestExportIntoMissingFile(t *testing.T) {
	settings := testSettings()
	root := newTestSection(t, settings, sampleConfig)

	require.NoError(t, root.ExportUpgrade("/a.ini", "/b.ini"))

	want := `root_option = root value

[Section1]
option = one

[Section2.Section2A]
foo = fooo
spaced = some value

[Section3]
bar = yay
`
	assert.Equal(t, want, readFile(t, settings.Fs, "/a.ini"))
	assert.Equal(t, want, readFile(t, settings.Fs, "/b.ini"))
}

func TestExportAdd(t *testing.T) {
	root := newTestSection(t, testSettings(), sampleConfig)

	s2, err := root.Sub("Section2")
	require.NoError(t, err)
	require.NoError(t, s2.Upgrade(Text("other", "[Section2C]\nan_option = 2\n")))
	require.NoError(t, root.SubSafe("Section1").Set("added", "v"))
	require.NoError(t, root.Set("root_option", "ignored"))

	out, err := root.Render([]byte(sampleConfig), ModeAdd, true)
	require.NoError(t, err)

	want := `# sample
root_option = root value
[Section1]
option = one
added = v
; comment
[Section2]
[Section2.Section2A]
foo = fooo
  spaced   =   some value  
[Section3]
bar = yay

[Section2.Section2C]
an_option = 2
`
	assert.Equal(t, want, string(out))
}

func TestExportUpgradeRewritesChangedValues(t *testing.T) {
	root := newTestSection(t, testSettings(), "root_option = new\n[Section1]\noption = one\n")

	out, err := root.Render([]byte("ROOT_OPTION = old  # trailing\n[section1]\noption = one\nstale = kept\n"), ModeUpgrade, true)
	require.NoError(t, err)

	assert.Equal(t, "ROOT_OPTION = new\n[section1]\noption = one\nstale = kept\n", string(out))
}

func TestExportUpdate(t *testing.T) {
	root := newTestSection(t, testSettings(), "a = 2\nb = 3\n[New]\nx = 1\n")

	out, err := root.Render([]byte("a = 1\n# end\n"), ModeUpdate, true)
	require.NoError(t, err)

	assert.Equal(t, "a = 2\n# end\n", string(out))
}

func TestExportResetPrunes(t *testing.T) {
	root := newTestSection(t, testSettings(), "a = 1\n[Keep]\nk = 2\n")

	existing := `# head
a = 1
old = x
[Keep]
k = 1
# gone comment
[Gone]
g = 1

[Keep.Sub]
s = 1
`
	out, err := root.Render([]byte(existing), ModeReset, true)
	require.NoError(t, err)

	assert.Equal(t, "a = 1\n\n[Keep]\nk = 2\n", string(out))
}

func TestExportLeavesOtherSectionsReadOnly(t *testing.T) {
	root := newTestSection(t, testSettings(), sampleConfig)
	s3, err := root.Sub("Section3")
	require.NoError(t, err)

	existing := `top = 1
[Other]
o = 1
[Section1]
option = stale
[Section3]
bar = old
`
	for _, mode := range []Mode{ModeUpgrade, ModeReset} {
		out, err := s3.Render([]byte(existing), mode, true)
		require.NoError(t, err)

		want := `top = 1
[Other]
o = 1
[Section1]
option = stale
[Section3]
bar = yay
`
		assert.Equal(t, want, string(out), mode.String())
	}
}

func TestExportRelativeHeaders(t *testing.T) {
	root := newTestSection(t, testSettings(), sampleConfig)
	s2, err := root.Sub("Section2")
	require.NoError(t, err)

	out, err := s2.Render([]byte("[Section2A]\nfoo = old\n"), ModeUpgrade, false)
	require.NoError(t, err)
	assert.Equal(t, "[Section2A]\nfoo = fooo\nspaced = some value\n", string(out))

	out, err = s2.Render(nil, ModeUpgrade, false)
	require.NoError(t, err)
	assert.Equal(t, "[Section2A]\nfoo = fooo\nspaced = some value\n", string(out))
}

func TestExportUnterminatedLastLine(t *testing.T) {
	root := newTestSection(t, testSettings(), "a = 1\nb = 2\n")

	out, err := root.Render([]byte("a = 1"), ModeUpgrade, true)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = 2\n", string(out))

	out, err = root.Render([]byte("a = 1"), ModeUpdate, true)
	require.NoError(t, err)
	assert.Equal(t, "a = 1", string(out))
}

func TestExportNoDoubleBlankLine(t *testing.T) {
	root := newTestSection(t, testSettings(), "a = 1\n[New]\nx = 1\n")

	out, err := root.Render([]byte("a = 1\n\n"), ModeUpgrade, true)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n\n[New]\nx = 1\n", string(out))
}

func TestExportDoesNotModifyTree(t *testing.T) {
	root := newTestSection(t, testSettings(), sampleConfig)

	_, err := root.Render([]byte("root_option = x\n"), ModeReset, true)
	require.NoError(t, err)

	v, err := root.Get("root_option")
	require.NoError(t, err)
	assert.Equal(t, "root value", v)
	assert.Len(t, root.Descendants(), 4)
}

func TestExportLongValue(t *testing.T) {
	settings := testSettings()
	big := strings.Repeat("x", 1<<20+16)

	root := NewSection(settings)
	require.NoError(t, root.Set("big", big))
	require.NoError(t, root.ExportUpgrade("/big.ini"))

	again := NewSection(settings)
	require.NoError(t, again.Upgrade(File("/big.ini")))
	v, err := again.Get("big")
	require.NoError(t, err)
	assert.Equal(t, big, v)

	require.NoError(t, again.ExportUpgrade("/big.ini"))
	assert.Equal(t, "big = "+big+"\n", readFile(t, settings.Fs, "/big.ini"))
}

func TestExportCaseRule(t *testing.T) {
	existing := []byte("[sec]\nfoo = 1\n")

	tests := []struct {
		name       string
		ignoreCase bool
		want       string
	}{
		{"ignore case", true, "[sec]\nfoo = 2\n"},
		{"case sensitive", false, "[sec]\nfoo = 1\n\n[Sec]\nFoo = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings()
			settings.IgnoreCase = tt.ignoreCase
			root := newTestSection(t, settings, "[Sec]\nFoo = 2\n")

			out, err := root.Render(existing, ModeUpgrade, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}
