package configfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapIgnoreCase(t *testing.T) {
	m := newOrderedMap[string](true)
	m.set("Foo", "1")
	m.set("bar", "2")
	m.set("FOO", "3")

	assert.Equal(t, []string{"Foo", "bar"}, m.keys())

	v, ok := m.get("foo")
	require.True(t, ok)
	assert.Equal(t, "3", v)

	name, ok := m.lookup("FOO")
	require.True(t, ok)
	assert.Equal(t, "Foo", name)

	assert.True(t, m.delete("BAR"))
	assert.False(t, m.delete("bar"))
	assert.Equal(t, 1, m.len())
}

func TestOrderedMapCaseSensitive(t *testing.T) {
	m := newOrderedMap[int](false)
	m.set("Foo", 1)
	m.set("foo", 2)

	assert.Equal(t, []string{"Foo", "foo"}, m.keys())
	_, ok := m.get("FOO")
	assert.False(t, ok)
}

func TestOrderedMapDeleteKeepsOrder(t *testing.T) {
	m := newOrderedMap[string](false)
	for _, k := range []string{"a", "b", "c", "d"} {
		m.set(k, k)
	}

	m.delete("b")
	m.set("b", "again")

	assert.Equal(t, []string{"a", "c", "d", "b"}, m.keys())
}

func TestOrderedMapClone(t *testing.T) {
	m := newOrderedMap[string](true)
	m.set("a", "1")

	c := m.clone()
	c.set("A", "2")
	c.set("b", "3")

	v, _ := m.get("a")
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, m.len())
	assert.Equal(t, []string{"a", "b"}, c.keys())

	c.clear()
	assert.Zero(t, c.len())
	assert.Empty(t, c.keys())
}
