package configfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/wjaoss/configfile/internal/logging"
)

// ExportUpgrade writes s to targets in upgrade mode with full section paths.
func (s *Section) ExportUpgrade(targets ...string) error {
	return s.Export(ModeUpgrade, true, targets...)
}

// ExportUpdate writes s to targets in update mode with full section paths.
func (s *Section) ExportUpdate(targets ...string) error {
	return s.Export(ModeUpdate, true, targets...)
}

// ExportAdd writes s to targets in add mode with full section paths.
func (s *Section) ExportAdd(targets ...string) error {
	return s.Export(ModeAdd, true, targets...)
}

// ExportReset writes s to targets in reset mode with full section paths.
func (s *Section) ExportReset(targets ...string) error {
	return s.Export(ModeReset, true, targets...)
}

// Export rewrites every target file with the content of s. Existing lines
// keep their order; comments and unknown lines are kept unless a reset drops
// them. With fullPath, section headers are written and resolved from the
// root of the tree, otherwise relative to s, and the options of s go to the
// top of the file.
//
// A missing target is treated as an empty file. The file is read and then
// rewritten in place, without any atomicity guarantee.
func (s *Section) Export(mode Mode, fullPath bool, targets ...string) error {
	fsys := s.settings.Fs

	for _, target := range targets {
		perm := os.FileMode(0o644)
		existing, err := afero.ReadFile(fsys, target)
		switch {
		case err == nil:
			if fi, err := fsys.Stat(target); err == nil {
				perm = fi.Mode().Perm()
			}
		case errors.Is(err, fs.ErrNotExist):
			existing = nil
		default:
			return openError(target, err)
		}

		out, err := s.Render(existing, mode, fullPath)
		if err != nil {
			return fmt.Errorf("export to %s: %w", target, err)
		}

		if err := afero.WriteFile(fsys, target, out, perm); err != nil {
			return fmt.Errorf("export to %s: %w", target, err)
		}

		logging.Debug().
			Str("section", s.String()).
			Str("target", target).
			Stringer("mode", mode).
			Bool("full_path", fullPath).
			Msg("exported section")
	}

	return nil
}

// Render returns existing, the content of a configuration file, rewritten
// with s as Export would write it.
func (s *Section) Render(existing []byte, mode Mode, fullPath bool) ([]byte, error) {
	lines, err := readLines(bytes.NewReader(existing))
	if err != nil {
		return nil, err
	}

	e := newExporter(s, mode, fullPath)
	e.run(lines)
	return e.out.Bytes(), nil
}

// exporter matches the lines of an existing file against a section tree.
// pending is the scratch copy of the options not written yet, for base and
// each of its descendants; the live tree is never modified.
type exporter struct {
	base     *Section
	root     *Section
	fullPath bool

	overwrite bool
	add       bool
	reset     bool

	pending map[*Section]*orderedMap[string]
	order   []*Section
	seen    map[*Section]bool

	// current is the live section, nil in read-only and pruned regions
	current  *Section
	readonly bool

	other []string
	blank bool
	out   bytes.Buffer
}

func newExporter(base *Section, mode Mode, fullPath bool) *exporter {
	overwrite, add, reset := mode.policy()

	e := &exporter{
		base:      base,
		root:      base.Root(),
		fullPath:  fullPath,
		overwrite: overwrite,
		add:       add,
		reset:     reset,
		pending:   make(map[*Section]*orderedMap[string]),
		seen:      make(map[*Section]bool),
	}

	// options above the first header belong to the root, which is only the
	// exported section when it is the root or when paths are relative
	switch {
	case base.IsRoot() || !fullPath:
		e.current = base
	default:
		e.readonly = true
		e.order = append(e.order, base)
	}

	e.order = append(e.order, base.Descendants()...)
	e.pending[base] = base.options.clone()
	for _, d := range e.order {
		e.pending[d] = d.options.clone()
	}

	return e
}

func (e *exporter) run(lines []string) {
	subsections := e.base.settings.Subsections

	for _, raw := range lines {
		l := classify(raw, subsections)

		switch l.kind {
		case lineOption:
			e.flushOther()
			e.option(l)
		case lineSection:
			if e.add {
				e.flushPending()
			}
			e.flushOtherBeforeSection()
			e.section(l)
		default:
			// comments, blank and unrecognized lines
			e.other = append(e.other, raw)
		}
	}

	if e.add {
		e.flushPending()
	}

	// trailing lines were not meant to separate further sections, so they
	// are restored as they are
	e.flushOther()

	if e.add {
		e.remainingSections()
	}
}

func (e *exporter) option(l line) {
	if e.readonly {
		e.write(l.raw)
		return
	}

	if e.current != nil {
		rem := e.pending[e.current]
		if name, ok := rem.lookup(l.key); ok {
			value, _ := rem.get(name)
			if e.overwrite && value != l.value {
				e.write(l.key + optionSep + value + lineBreak)
			} else {
				e.write(l.raw)
			}
			rem.delete(name)
			return
		}
	}

	if !e.reset {
		e.write(l.raw)
	}
}

func (e *exporter) section(l line) {
	start := e.base
	if e.fullPath {
		start = e.root
	}

	target, found := start, true
	for _, name := range l.path {
		c, ok := target.children.get(name)
		if !ok {
			found = false
			break
		}
		target = c
	}

	switch {
	case found && target.isWithin(e.base):
		e.current = target
		e.readonly = false
		e.seen[target] = true
		e.write(l.raw)
	case e.reset && target.isWithin(e.base):
		// a section of the exported subtree that no longer exists
		e.current = nil
		e.readonly = false
	default:
		e.current = nil
		e.readonly = true
		e.write(l.raw)
	}
}

// flushPending writes the options of the live section not found in the file.
func (e *exporter) flushPending() {
	if e.readonly || e.current == nil {
		return
	}

	rem := e.pending[e.current]
	rem.each(func(name, value string) bool {
		e.write(name + optionSep + value + lineBreak)
		return true
	})
	rem.clear()
}

func (e *exporter) flushOther() {
	if e.readonly || !e.reset {
		for _, raw := range e.other {
			e.write(raw)
		}
	}
	e.other = e.other[:0]
}

func (e *exporter) flushOtherBeforeSection() {
	if e.readonly || !e.reset {
		e.flushOther()
		return
	}

	// dropped lines are replaced by a single separator
	e.blank = true
	e.other = e.other[:0]
}

// remainingSections appends the sections never met in the file.
func (e *exporter) remainingSections() {
	for _, sec := range e.order {
		if e.seen[sec] {
			continue
		}

		rem := e.pending[sec]
		if rem.len() == 0 {
			continue
		}

		e.blank = true
		e.write("[" + e.header(sec) + "]" + lineBreak)
		rem.each(func(name, value string) bool {
			e.write(name + optionSep + value + lineBreak)
			return true
		})
		rem.clear()
	}
}

func (e *exporter) header(sec *Section) string {
	var names []string
	for p := sec; p.parent != nil; p = p.parent {
		if !e.fullPath && p == e.base {
			break
		}
		names = append([]string{p.name}, names...)
	}
	return strings.Join(names, sectionSep)
}

// write appends one line. An unterminated last line gets its terminator
// first, and a requested separator is only written when the output does not
// already end with a blank line.
func (e *exporter) write(s string) {
	b := e.out.Bytes()
	if len(b) > 0 && b[len(b)-1] != '\n' {
		e.out.WriteString(lineBreak)
	}

	if e.blank {
		if e.out.Len() > 0 && !endsWithBlankLine(e.out.Bytes()) {
			e.out.WriteString(lineBreak)
		}
		e.blank = false
	}

	e.out.WriteString(s)
}

func endsWithBlankLine(b []byte) bool {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		return false
	}
	body := b[:len(b)-1]
	last := body[bytes.LastIndexByte(body, '\n')+1:]
	return len(bytes.TrimSpace(last)) == 0
}
