package configfile

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Settings are fixed when a store is built and shared by every section of
// its tree.
type Settings struct {
	// IgnoreCase compares section and option names ignoring case.
	IgnoreCase bool
	// Subsections enables dotted section paths such as [A.B].
	Subsections bool
	// InheritOptions makes Get fall back to ancestor sections.
	InheritOptions bool
	// SafeCalls makes Sub return the closest existing ancestor instead of
	// failing on a missing section.
	SafeCalls bool

	// Fs is used to read sources and to export.
	Fs afero.Fs
}

// DefaultSettings returns case-insensitive settings with subsections enabled
// on the OS filesystem.
func DefaultSettings() Settings {
	return Settings{
		IgnoreCase:  true,
		Subsections: true,
		Fs:          afero.NewOsFs(),
	}
}

// Section is one node of the configuration hierarchy. The root section has
// no name and no parent.
//
// A Section tree is not safe for concurrent use.
type Section struct {
	name     string
	parent   *Section
	settings *Settings

	options  *orderedMap[string]
	children *orderedMap[*Section]
}

// KeyValue is an option name and its value.
type KeyValue struct {
	Name  string
	Value string
}

// NewSection creates an empty root section.
func NewSection(settings Settings) *Section {
	if settings.Fs == nil {
		settings.Fs = afero.NewOsFs()
	}
	return newSection("", nil, &settings)
}

func newSection(name string, parent *Section, settings *Settings) *Section {
	return &Section{
		name:     name,
		parent:   parent,
		settings: settings,
		options:  newOrderedMap[string](settings.IgnoreCase),
		children: newOrderedMap[*Section](settings.IgnoreCase),
	}
}

// Name returns the section name, empty for the root.
func (s *Section) Name() string {
	return s.name
}

// Parent returns the owning section, nil for the root.
func (s *Section) Parent() *Section {
	return s.parent
}

// IsRoot reports whether s is the root of its tree.
func (s *Section) IsRoot() bool {
	return s.parent == nil
}

// Root returns the root of the tree s belongs to.
func (s *Section) Root() *Section {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Settings returns a copy of the tree settings.
func (s *Section) Settings() Settings {
	return *s.settings
}

// Path returns the section names from the root down to s.
func (s *Section) Path() []string {
	var path []string
	for p := s; p.parent != nil; p = p.parent {
		path = append([]string{p.name}, path...)
	}
	return path
}

// String returns the dotted path of the section.
func (s *Section) String() string {
	return strings.Join(s.Path(), sectionSep)
}

// Ancestors returns the ancestors of s, nearest first.
func (s *Section) Ancestors() []*Section {
	var list []*Section
	for p := s.parent; p != nil; p = p.parent {
		list = append(list, p)
	}
	return list
}

// Descendants returns every section below s in pre-order, each section
// followed by its own descendants.
func (s *Section) Descendants() []*Section {
	var list []*Section
	s.children.each(func(_ string, c *Section) bool {
		list = append(list, c)
		list = append(list, c.Descendants()...)
		return true
	})
	return list
}

// isWithin reports whether s is base or one of its descendants.
func (s *Section) isWithin(base *Section) bool {
	for p := s; p != nil; p = p.parent {
		if p == base {
			return true
		}
	}
	return false
}

// child descends path strictly.
func (s *Section) child(path ...string) (*Section, bool) {
	cur := s
	for _, name := range path {
		c, ok := cur.children.get(name)
		if !ok {
			return nil, false
		}
		cur = c
	}
	return cur, true
}

// Sub returns the descendant section found by following path. With SafeCalls
// a missing section yields its closest existing ancestor.
func (s *Section) Sub(path ...string) (*Section, error) {
	cur := s
	for _, name := range path {
		c, ok := cur.children.get(name)
		if !ok {
			if s.settings.SafeCalls {
				return cur, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
		}
		cur = c
	}
	return cur, nil
}

// SubSafe is Sub that always falls back to the closest existing ancestor.
func (s *Section) SubSafe(path ...string) *Section {
	cur := s
	for _, name := range path {
		c, ok := cur.children.get(name)
		if !ok {
			break
		}
		cur = c
	}
	return cur
}

// HasSection reports whether a child with the given name exists.
func (s *Section) HasSection(name string) bool {
	_, ok := s.children.get(name)
	return ok
}

// Sections returns the child section names in order.
func (s *Section) Sections() []string {
	return s.children.keys()
}

// MakeSubsection creates an empty child section unless it already exists,
// and returns it.
func (s *Section) MakeSubsection(name string) (*Section, error) {
	t := NewTree()
	t.Child(name)
	if err := s.importTree(t, false, true); err != nil {
		return nil, err
	}
	c, _ := s.child(splitSectionPath(name, s.settings.Subsections)...)
	return c, nil
}

// Remove deletes s, and everything below it, from its parent.
func (s *Section) Remove() error {
	if s.parent == nil {
		return ErrRootSection
	}
	s.parent.children.delete(s.name)
	s.parent = nil
	return nil
}

type getOptions struct {
	inherit     bool
	fallback    *string
	trueTokens  []string
	falseTokens []string
	boolDefault *bool
}

// GetOption customizes a single option lookup.
type GetOption func(o *getOptions)

// Inherit overrides the tree InheritOptions setting for one lookup.
func Inherit(inherit bool) GetOption {
	return func(o *getOptions) {
		o.inherit = inherit
	}
}

// Fallback is returned instead of ErrOptionNotFound.
func Fallback(value string) GetOption {
	return func(o *getOptions) {
		o.fallback = &value
	}
}

func (s *Section) getOptions(opts []GetOption) getOptions {
	o := getOptions{inherit: s.settings.InheritOptions}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (s *Section) lookup(name string, inherit bool) (string, bool) {
	for p := s; p != nil; p = p.parent {
		if v, ok := p.options.get(name); ok {
			return v, true
		}
		if !inherit {
			break
		}
	}
	return "", false
}

// Get returns the value of the named option. When the option is missing it
// returns the Fallback if one was given, ErrOptionNotFound otherwise.
func (s *Section) Get(name string, opts ...GetOption) (string, error) {
	o := s.getOptions(opts)
	if v, ok := s.lookup(name, o.inherit); ok {
		return v, nil
	}
	if o.fallback != nil {
		return *o.fallback, nil
	}
	return "", fmt.Errorf("%w: %s", ErrOptionNotFound, name)
}

// Lookup returns the value of the named option and whether it was found.
func (s *Section) Lookup(name string) (string, bool) {
	return s.lookup(name, s.settings.InheritOptions)
}

// Has reports whether s itself defines the named option.
func (s *Section) Has(name string) bool {
	_, ok := s.options.get(name)
	return ok
}

// Set stores an option value, replacing an existing one in place.
func (s *Section) Set(name, value string) error {
	if err := validateOption(name, value); err != nil {
		return err
	}
	s.options.set(name, value)
	return nil
}

// Delete removes the named option from s.
func (s *Section) Delete(name string) error {
	if !s.options.delete(name) {
		return fmt.Errorf("%w: %s", ErrOptionNotFound, name)
	}
	return nil
}

// OptionNames returns the names of the options defined in s, in order.
func (s *Section) OptionNames() []string {
	return s.options.keys()
}

// Options returns a copy of the options of s. With inherit, options of the
// ancestors not shadowed by a nearer section are appended.
func (s *Section) Options(inherit bool) []KeyValue {
	merged := newOrderedMap[string](s.settings.IgnoreCase)
	for p := s; p != nil; p = p.parent {
		p.options.each(func(name, value string) bool {
			if _, ok := merged.get(name); !ok {
				merged.set(name, value)
			}
			return true
		})
		if !inherit {
			break
		}
	}

	list := make([]KeyValue, 0, merged.len())
	merged.each(func(name, value string) bool {
		list = append(list, KeyValue{Name: name, Value: value})
		return true
	})
	return list
}

// Tree returns a copy of s and its descendants. With withPath the copy is
// nested under the names of the ancestors of s, so importing it into a root
// recreates s at the same position.
func (s *Section) Tree(withPath bool) *Tree {
	t := s.tree()
	if !withPath {
		return t
	}

	for p := s; p.parent != nil; p = p.parent {
		outer := NewTree()
		outer.children.set(p.name, t)
		t = outer
	}
	return t
}

func (s *Section) tree() *Tree {
	t := NewTree()
	s.options.each(func(name, value string) bool {
		t.Set(name, value)
		return true
	})
	s.children.each(func(name string, c *Section) bool {
		t.children.set(name, c.tree())
		return true
	})
	return t
}
