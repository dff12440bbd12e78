package configfile

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type tomlSource struct {
	fileRef
}

func (s *tomlSource) Load(settings Settings) (*Tree, error) {
	snap, err := s.read(settings.Fs)
	if err != nil {
		return nil, err
	}

	return parseTOML(snap)
}

// TOML creates a source from a TOML document. Tables become sections, in
// document order. Arrays of tables are rejected.
func TOML(path string, decoder ...Decoder) Source {
	return &tomlSource{fileRef{path: path, decoders: decoder}}
}

func parseTOML(snap *Snapshot) (*Tree, error) {
	var data map[string]any
	md, err := toml.Decode(string(snap.Data), &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrInvalidSource, snap.Name, err)
	}

	t := NewTree()
	for _, key := range md.Keys() {
		v, ok := tomlLookup(data, key)
		if !ok {
			continue
		}

		parent := t
		for _, name := range key[:len(key)-1] {
			parent = parent.Child(name)
		}
		name := key[len(key)-1]

		if _, isTable := v.(map[string]any); isTable {
			parent.Child(name)
			continue
		}

		value, err := scalarString(name, v)
		if err != nil {
			return nil, err
		}
		parent.Set(name, value)
	}

	// anything the key walk could not reach, such as arrays of tables
	if err := fillTree(t, data, true); err != nil {
		return nil, err
	}
	return t, nil
}

func tomlLookup(data map[string]any, key toml.Key) (any, bool) {
	if len(key) == 0 {
		return nil, false
	}

	var cur any = data
	for _, name := range key {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[name]; !ok {
			return nil, false
		}
	}
	return cur, true
}
