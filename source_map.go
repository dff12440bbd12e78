package configfile

import (
	"fmt"
	"sort"
	"strings"
)

// listSep joins list values into a single option value.
const listSep = ","

type mappingSource struct {
	options map[string]string
}

func (s *mappingSource) Load(Settings) (*Tree, error) {
	t := NewTree()
	for _, k := range sortedKeys(s.options) {
		t.Set(k, s.options[k])
	}
	return t, nil
}

// Mapping creates a source of root options. Go maps are unordered, so new
// options are added in name order.
func Mapping(options map[string]string) Source {
	return &mappingSource{options: options}
}

type nestedSource struct {
	data map[string]any
}

func (s *nestedSource) Load(Settings) (*Tree, error) {
	return treeFromMap(s.data)
}

// Nested creates a source from a nested map: map values become sections and
// every other value becomes an option.
func Nested(data map[string]any) Source {
	return &nestedSource{data: data}
}

// treeFromMap converts decoded documents, keys are visited in name order.
func treeFromMap(data map[string]any) (*Tree, error) {
	t := NewTree()
	if err := fillTree(t, data, false); err != nil {
		return nil, err
	}
	return t, nil
}

// fillTree copies data into t. With onlyMissing, existing options are kept.
func fillTree(t *Tree, data map[string]any, onlyMissing bool) error {
	for _, k := range sortedKeys(data) {
		switch v := data[k].(type) {
		case map[string]any:
			if err := fillTree(t.Child(k), v, onlyMissing); err != nil {
				return err
			}
		default:
			if _, ok := t.Option(k); ok && onlyMissing {
				continue
			}
			s, err := scalarString(k, v)
			if err != nil {
				return err
			}
			t.Set(k, s)
		}
	}
	return nil
}

// scalarString renders a decoded value as an option value. Lists of
// scalars are joined with listSep.
func scalarString(key string, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []string:
		return strings.Join(val, listSep), nil
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				return "", &InvalidObjectError{Key: key, Reason: "nested list values are not supported"}
			}
			s, err := scalarString(key, item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, listSep), nil
	case []map[string]any:
		return "", &InvalidObjectError{Key: key, Reason: "lists of tables are not supported"}
	case fmt.Stringer:
		return val.String(), nil
	default:
		return fmt.Sprint(val), nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
