package configfile

import (
	"bytes"

	simplejson "github.com/bitly/go-simplejson"
	yaml "gopkg.in/yaml.v3"
)

// Encoder renders a tree in another configuration format.
type Encoder interface {
	Encode(t *Tree) ([]byte, error)
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(t *Tree) ([]byte, error)

// Encode calls f.
func (f EncoderFunc) Encode(t *Tree) ([]byte, error) {
	return f(t)
}

// JSONEncoder renders sections as nested objects and options as strings.
// JSON objects are unordered, keys come out sorted. When an option and a
// section share a name, the section wins.
var JSONEncoder Encoder = EncoderFunc(encodeJSON)

// YAMLEncoder renders sections as nested mappings, keeping the tree order.
var YAMLEncoder Encoder = EncoderFunc(encodeYAML)

func encodeJSON(t *Tree) ([]byte, error) {
	j := simplejson.New()
	jsonFill(j, t, nil)
	return j.EncodePretty()
}

func jsonFill(j *simplejson.Json, t *Tree, path []string) {
	if t.Empty() && len(path) > 0 {
		j.SetPath(path, map[string]any{})
		return
	}

	t.options.each(func(name, value string) bool {
		j.SetPath(appendPath(path, name), value)
		return true
	})
	t.children.each(func(name string, c *Tree) bool {
		jsonFill(j, c, appendPath(path, name))
		return true
	})
}

func appendPath(path []string, name string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, name)
}

func encodeYAML(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(yamlNode(t)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(t *Tree) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	t.options.each(func(name, value string) bool {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
		return true
	})
	t.children.each(func(name string, c *Tree) bool {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			yamlNode(c),
		)
		return true
	})

	return n
}
