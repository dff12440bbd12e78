package configfile

import "strings"

// orderedMap keeps entries in insertion order. When fold is set, keys are
// matched ignoring case but the casing of the first insertion is kept.
type orderedMap[V any] struct {
	fold  bool
	order []string
	items map[string]*entry[V]
}

type entry[V any] struct {
	name  string
	value V
}

func newOrderedMap[V any](fold bool) *orderedMap[V] {
	return &orderedMap[V]{
		fold:  fold,
		items: make(map[string]*entry[V]),
	}
}

func (m *orderedMap[V]) key(name string) string {
	if m.fold {
		return strings.ToLower(name)
	}
	return name
}

func (m *orderedMap[V]) get(name string) (V, bool) {
	e, ok := m.items[m.key(name)]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// lookup returns the stored name matching name.
func (m *orderedMap[V]) lookup(name string) (string, bool) {
	e, ok := m.items[m.key(name)]
	if !ok {
		return "", false
	}
	return e.name, true
}

// set replaces the value in place or appends a new entry.
func (m *orderedMap[V]) set(name string, value V) {
	k := m.key(name)
	if e, ok := m.items[k]; ok {
		e.value = value
		return
	}
	m.items[k] = &entry[V]{name: name, value: value}
	m.order = append(m.order, k)
}

func (m *orderedMap[V]) delete(name string) bool {
	k := m.key(name)
	if _, ok := m.items[k]; !ok {
		return false
	}
	delete(m.items, k)
	for i, o := range m.order {
		if o == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *orderedMap[V]) len() int {
	return len(m.order)
}

// keys returns the stored names in insertion order.
func (m *orderedMap[V]) keys() []string {
	names := make([]string, 0, len(m.order))
	for _, k := range m.order {
		names = append(names, m.items[k].name)
	}
	return names
}

// each visits entries in order, stopping when fn returns false.
func (m *orderedMap[V]) each(fn func(name string, value V) bool) {
	for _, k := range m.order {
		e := m.items[k]
		if !fn(e.name, e.value) {
			return
		}
	}
}

func (m *orderedMap[V]) clone() *orderedMap[V] {
	c := newOrderedMap[V](m.fold)
	m.each(func(name string, value V) bool {
		c.set(name, value)
		return true
	})
	return c
}

func (m *orderedMap[V]) clear() {
	m.order = nil
	m.items = make(map[string]*entry[V])
}
