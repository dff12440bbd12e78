package configfile

import (
	"fmt"
	"strings"
)

// Interpolation markers. A "$" followed by anything else is plain text.
const (
	interpSpecial = "$"
	interpEscape  = "$$"
	interpStart   = "${"
	interpSep     = "$:"
	interpEnd     = "$}"
)

type token struct {
	marker string
	text   string
}

// tokenize splits value on the four interpolation markers, scanning left to
// right so that "$$}" is an escape followed by "}".
func tokenize(value string) []token {
	var (
		tokens []token
		text   strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(value); i++ {
		if value[i] == '$' && i+1 < len(value) {
			switch m := value[i : i+2]; m {
			case interpEscape, interpStart, interpSep, interpEnd:
				flush()
				tokens = append(tokens, token{marker: m})
				i++
				continue
			}
		}
		text.WriteByte(value[i])
	}
	flush()

	return tokens
}

// interpolate rewrites every option value of s and its descendants once,
// replacing ${section$:section$:option$} references. Sections are visited in
// pre-order, each option in order, so a reference to an option not visited
// yet sees its raw value.
func (s *Section) interpolate() error {
	root := s.Root()

	for _, name := range s.options.keys() {
		raw, _ := s.options.get(name)
		value, err := s.interpolateValue(root, raw)
		if err != nil {
			return fmt.Errorf("interpolating %s in [%s]: %w", name, s, err)
		}
		s.options.set(name, value)
	}

	var err error
	s.children.each(func(_ string, c *Section) bool {
		err = c.interpolate()
		return err == nil
	})
	return err
}

func (s *Section) interpolateValue(root *Section, raw string) (string, error) {
	var (
		value   strings.Builder
		resolve []string
		inPath  bool
	)

	for _, tok := range tokenize(raw) {
		if !inPath {
			switch tok.marker {
			case interpEscape:
				value.WriteString(interpSpecial)
			case interpStart:
				inPath = true
				resolve = []string{""}
			default:
				value.WriteString(tok.marker + tok.text)
			}
			continue
		}

		last := len(resolve) - 1
		switch tok.marker {
		case interpEscape:
			resolve[last] += interpSpecial
		case interpSep:
			resolve = append(resolve, "")
		case interpEnd:
			v, err := s.resolve(root, resolve)
			if err != nil {
				return "", err
			}
			value.WriteString(v)
			inPath = false
			resolve = nil
		default:
			resolve[last] += tok.marker + tok.text
		}
	}

	// an unclosed path is plain text
	if inPath {
		value.WriteString(interpStart + strings.Join(resolve, interpSep))
	}

	return value.String(), nil
}

// resolve looks up a reference path. A single item is an option of s; a path
// starting with an empty item is relative to s; anything else starts at the
// root.
func (s *Section) resolve(root *Section, path []string) (string, error) {
	opt := path[len(path)-1]
	sections := path[:len(path)-1]

	from := root
	switch {
	case len(sections) == 0:
		from = s
	case sections[0] == "":
		from = s
		sections = sections[1:]
	}

	target, ok := from.child(sections...)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, strings.Join(sections, sectionSep))
	}

	return target.Get(opt)
}
