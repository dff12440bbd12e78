package configfile

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var (
	reIgnore     = regexp.MustCompile(`^\s*$`)
	reComment    = regexp.MustCompile(`^\s*[#;]\s*(.*?)\s*$`)
	reOption     = regexp.MustCompile(`^\s*([^=]+?)\s*=\s*(.*?)\s*$`)
	reSection    = regexp.MustCompile(`^\s*\[(.+)\]\s*$`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reSubsection = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

const (
	sectionSep = "."
	optionSep  = " = "
	lineBreak  = "\n"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineOption
	lineSection
	lineInvalid
)

// line is one classified line. raw keeps the line terminator.
type line struct {
	raw   string
	kind  lineKind
	key   string
	value string
	path  []string
}

// classify applies the line grammars in order, first match wins.
func classify(raw string, subsections bool) line {
	l := line{raw: raw}
	text := strings.TrimRight(raw, "\r\n")

	switch {
	case reIgnore.MatchString(text):
		l.kind = lineBlank
	case reComment.MatchString(text):
		l.kind = lineComment
	default:
		if m := reOption.FindStringSubmatch(text); m != nil {
			l.kind = lineOption
			l.key, l.value = m[1], m[2]
			return l
		}
		if m := reSection.FindStringSubmatch(text); m != nil {
			l.kind = lineSection
			l.key = m[1]
			l.path = splitSectionPath(m[1], subsections)
			return l
		}
		l.kind = lineInvalid
	}

	return l
}

func validSectionName(name string, subsections bool) bool {
	if subsections {
		return reSubsection.MatchString(name)
	}
	return reIdentifier.MatchString(name)
}

func splitSectionPath(name string, subsections bool) []string {
	if subsections {
		return strings.Split(name, sectionSep)
	}
	return []string{name}
}

// readLines reads r fully, keeping line terminators.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 4096)
	var lines []string

	for {
		s, err := br.ReadString('\n')
		if len(s) > 0 {
			lines = append(lines, s)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Parse reads configuration text into a Tree. name identifies the source in
// parsing errors. Comments and blank lines are not retained.
func Parse(name string, r io.Reader, subsections bool) (*Tree, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	return parseLines(name, lines, subsections)
}

// ParseString is Parse on an in-memory string.
func ParseString(name, text string, subsections bool) (*Tree, error) {
	return Parse(name, strings.NewReader(text), subsections)
}

func parseLines(name string, lines []string, subsections bool) (*Tree, error) {
	root := NewTree()
	current := root

	for i, raw := range lines {
		l := classify(raw, subsections)

		switch l.kind {
		case lineBlank, lineComment:
			continue
		case lineOption:
			current.Set(l.key, l.value)
		case lineSection:
			if !validSectionName(l.key, subsections) {
				return nil, newParsingError(name, raw, i+1)
			}
			current = root
			for _, s := range l.path {
				current = current.Child(s)
			}
		default:
			return nil, newParsingError(name, raw, i+1)
		}
	}

	return root, nil
}

func newParsingError(name, raw string, lineNo int) error {
	return &ParsingError{
		Source: name,
		Line:   strings.TrimRight(raw, "\r\n"),
		LineNo: lineNo,
	}
}
