package configfile

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

type yamlSource struct {
	fileRef
}

func (s *yamlSource) Load(settings Settings) (*Tree, error) {
	snap, err := s.read(settings.Fs)
	if err != nil {
		return nil, err
	}

	return parseYAML(snap)
}

// YAML creates a source from a YAML document. Mappings become sections,
// scalars and lists of scalars become options, in document order.
func YAML(path string, decoder ...Decoder) Source {
	return &yamlSource{fileRef{path: path, decoders: decoder}}
}

func parseYAML(snap *Snapshot) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(snap.Data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrInvalidSource, snap.Name, err)
	}

	t := NewTree()

	// empty document
	if len(doc.Content) == 0 {
		return t, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &InvalidObjectError{Key: snap.Name, Reason: "document root must be a mapping"}
	}

	if err := yamlFill(t, root, false); err != nil {
		return nil, err
	}
	return t, nil
}

// yamlFill copies a mapping node into t. Merge keys ("<<") only fill options
// not set explicitly.
func yamlFill(t *Tree, n *yaml.Node, onlyMissing bool) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], resolveAlias(n.Content[i+1])

		if isMergeKey(k) {
			if err := yamlMerge(t, v); err != nil {
				return err
			}
			continue
		}

		switch v.Kind {
		case yaml.MappingNode:
			if err := yamlFill(t.Child(k.Value), v, onlyMissing); err != nil {
				return err
			}
		default:
			if _, ok := t.Option(k.Value); ok && onlyMissing {
				continue
			}
			value, err := yamlScalar(k.Value, v)
			if err != nil {
				return err
			}
			t.Set(k.Value, value)
		}
	}
	return nil
}

func yamlMerge(t *Tree, v *yaml.Node) error {
	switch v.Kind {
	case yaml.MappingNode:
		return yamlFill(t, v, true)
	case yaml.SequenceNode:
		for _, item := range v.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return &InvalidObjectError{Key: "<<", Reason: "merge value must be a mapping"}
			}
			if err := yamlFill(t, item, true); err != nil {
				return err
			}
		}
		return nil
	default:
		return &InvalidObjectError{Key: "<<", Reason: "merge value must be a mapping"}
	}
}

func yamlScalar(key string, v *yaml.Node) (string, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			return "", nil
		}
		return v.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(v.Content))
		for _, item := range v.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return "", &InvalidObjectError{Key: key, Reason: "nested list values are not supported"}
			}
			s, err := yamlScalar(key, item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return scalarString(key, items)
	default:
		return "", &InvalidObjectError{Key: key, Reason: "unsupported value"}
	}
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && (k.Tag == "" || k.Tag == "!!merge")
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
