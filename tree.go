package configfile

// Tree is the format-agnostic form of an import source: ordered options and
// ordered named child trees. Every source is turned into a Tree before it is
// merged into a Section, and Section.Tree produces one back, so a subsection
// of one store can be imported into another.
type Tree struct {
	options  *orderedMap[string]
	children *orderedMap[*Tree]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		options:  newOrderedMap[string](false),
		children: newOrderedMap[*Tree](false),
	}
}

// Set stores an option value and returns the tree for chaining.
func (t *Tree) Set(name, value string) *Tree {
	t.options.set(name, value)
	return t
}

// Child returns the named child tree, creating it when missing.
func (t *Tree) Child(name string) *Tree {
	if c, ok := t.children.get(name); ok {
		return c
	}
	c := NewTree()
	t.children.set(name, c)
	return c
}

// Subtree returns the child tree found by descending path.
func (t *Tree) Subtree(path ...string) (*Tree, bool) {
	cur := t
	for _, name := range path {
		c, ok := cur.children.get(name)
		if !ok {
			return nil, false
		}
		cur = c
	}
	return cur, true
}

// Option returns the value of the named option.
func (t *Tree) Option(name string) (string, bool) {
	return t.options.get(name)
}

// OptionNames returns option names in insertion order.
func (t *Tree) OptionNames() []string {
	return t.options.keys()
}

// ChildNames returns child names in insertion order.
func (t *Tree) ChildNames() []string {
	return t.children.keys()
}

// Empty reports whether the tree has neither options nor children.
func (t *Tree) Empty() bool {
	return t.options.len() == 0 && t.children.len() == 0
}
