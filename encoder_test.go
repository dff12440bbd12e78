package configfile

import (
	"testing"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoderTree() *Tree {
	t := NewTree().Set("name", "demo").Set("zone", "b")
	t.Child("server").Set("port", "8080").Child("tls")
	return t
}

func TestJSONEncoder(t *testing.T) {
	out, err := JSONEncoder.Encode(encoderTree())
	require.NoError(t, err)

	j, err := simplejson.NewJson(out)
	require.NoError(t, err)

	assert.Equal(t, "demo", j.Get("name").MustString())
	assert.Equal(t, "8080", j.GetPath("server", "port").MustString())

	tls, err := j.GetPath("server", "tls").Map()
	require.NoError(t, err)
	assert.Empty(t, tls)
}

func TestYAMLEncoderKeepsOrder(t *testing.T) {
	out, err := YAMLEncoder.Encode(encoderTree())
	require.NoError(t, err)

	assert.Contains(t, string(out), `port: "8080"`)

	tree, err := parseYAML(&Snapshot{Name: "encoded", Data: out})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "zone"}, tree.OptionNames())
	assert.Equal(t, []string{"server"}, tree.ChildNames())

	server, ok := tree.Subtree("server")
	require.True(t, ok)
	v, _ := server.Option("port")
	assert.Equal(t, "8080", v)
	assert.Equal(t, []string{"tls"}, server.ChildNames())
}

func TestEncodeSection(t *testing.T) {
	root := newTestSection(t, testSettings(), sampleConfig)

	out, err := YAMLEncoder.Encode(root.Tree(false))
	require.NoError(t, err)

	back := NewSection(testSettings())
	require.NoError(t, back.Upgrade(&yamlBytes{data: out}))

	a, err := root.Render(nil, ModeUpgrade, true)
	require.NoError(t, err)
	b, err := back.Render(nil, ModeUpgrade, true)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

type yamlBytes struct {
	data []byte
}

func (s *yamlBytes) Load(Settings) (*Tree, error) {
	return parseYAML(&Snapshot{Name: "bytes", Data: s.data})
}
