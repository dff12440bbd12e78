package configfile

import (
	"fmt"
	"strings"

	"github.com/wjaoss/configfile/internal/logging"
)

// Mode selects what an import or export may do with options and sections
// existing on one side only, or on both sides with different values.
type Mode int

const (
	// ModeUpgrade overwrites existing values and adds missing ones:
	// {A:a,B:b,C:c} upgrade {A:d,D:e} => {A:d,B:b,C:c,D:e}
	ModeUpgrade Mode = iota
	// ModeUpdate only overwrites existing values:
	// {A:a,B:b,C:c} update {A:d,D:e} => {A:d,B:b,C:c}
	ModeUpdate
	// ModeAdd only adds missing values:
	// {A:a,B:b,C:c} add {A:d,D:e} => {A:a,B:b,C:c,D:e}
	ModeAdd
	// ModeReset drops everything and recreates it from the source:
	// {A:a,B:b,C:c} reset {A:d,D:e} => {A:d,D:e}
	ModeReset
)

var modeNames = map[Mode]string{
	ModeUpgrade: "upgrade",
	ModeUpdate:  "update",
	ModeAdd:     "add",
	ModeReset:   "reset",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unrecognized mode: %s", s)
}

// policy maps a mode to its primitives.
func (m Mode) policy() (overwrite, add, reset bool) {
	switch m {
	case ModeUpdate:
		return true, false, false
	case ModeAdd:
		return false, true, false
	case ModeReset:
		return true, true, true
	default:
		return true, true, false
	}
}

// Upgrade imports sources in upgrade mode.
func (s *Section) Upgrade(sources ...Source) error {
	return s.Import(ModeUpgrade, false, sources...)
}

// Update imports sources in update mode.
func (s *Section) Update(sources ...Source) error {
	return s.Import(ModeUpdate, false, sources...)
}

// Add imports sources in add mode.
func (s *Section) Add(sources ...Source) error {
	return s.Import(ModeAdd, false, sources...)
}

// Reset imports sources in reset mode.
func (s *Section) Reset(sources ...Source) error {
	return s.Import(ModeReset, false, sources...)
}

// Import merges each source into s, in order, with the given mode. Nil
// sources are skipped. When interpolate is set, option values of s and its
// descendants are interpolated after each source.
//
// Imports are not transactional: on error, s keeps whatever was merged
// before the failure.
func (s *Section) Import(mode Mode, interpolate bool, sources ...Source) error {
	overwrite, add, reset := mode.policy()

	for _, src := range sources {
		if src == nil {
			continue
		}

		t, err := src.Load(*s.settings)
		if err != nil {
			return err
		}
		if t == nil {
			continue
		}

		if reset {
			s.options.clear()
			s.children.clear()
		}

		if err := s.importTree(t, overwrite, add); err != nil {
			return err
		}

		if interpolate {
			if err := s.interpolate(); err != nil {
				return err
			}
		}

		logging.Debug().
			Str("section", s.String()).
			Stringer("mode", mode).
			Bool("interpolate", interpolate).
			Msg("imported source")
	}

	return nil
}

// importTree merges t into s. Existing child sections are always descended
// into; overwrite only governs option values.
func (s *Section) importTree(t *Tree, overwrite, add bool) error {
	var err error

	t.options.each(func(name, value string) bool {
		if err = validateOption(name, value); err != nil {
			return false
		}
		if _, ok := s.options.get(name); ok {
			if overwrite {
				s.options.set(name, value)
			}
		} else if add {
			s.options.set(name, value)
		}
		return true
	})
	if err != nil {
		return err
	}

	// without subsections only the root holds sections, as a file could not
	// name deeper ones
	if !s.settings.Subsections && !s.IsRoot() && t.children.len() > 0 {
		return &InvalidObjectError{Key: t.ChildNames()[0], Reason: "nested section without subsections"}
	}

	t.children.each(func(name string, sub *Tree) bool {
		if !validSectionName(name, s.settings.Subsections) {
			err = &InvalidObjectError{Key: name, Reason: "invalid section name"}
			return false
		}
		err = s.importChild(splitSectionPath(name, s.settings.Subsections), sub, overwrite, add)
		return err == nil
	})

	return err
}

func (s *Section) importChild(path []string, t *Tree, overwrite, add bool) error {
	name := path[0]

	if c, ok := s.children.get(name); ok {
		if len(path) > 1 {
			return c.importChild(path[1:], t, overwrite, add)
		}
		return c.importTree(t, overwrite, add)
	}

	if !add {
		return nil
	}

	// nothing exists below a new section, so it is fully populated
	c := newSection(name, s, s.settings)
	var err error
	if len(path) > 1 {
		err = c.importChild(path[1:], t, true, true)
	} else {
		err = c.importTree(t, true, true)
	}
	if err != nil {
		return err
	}

	s.children.set(name, c)
	return nil
}

func validateOption(name, value string) error {
	if !reIdentifier.MatchString(name) {
		return &InvalidObjectError{Key: name, Value: value, Reason: "invalid option name"}
	}
	if strings.ContainsAny(value, "\r\n") {
		return &InvalidObjectError{Key: name, Value: value, Reason: "invalid option value"}
	}
	return nil
}
