package configfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// fileRef is the part shared by every source read from a path.
type fileRef struct {
	path     string
	decoders []Decoder
}

func (f fileRef) watchPath() string {
	return f.path
}

// read loads the file into a snapshot, applying the decoders in order.
func (f fileRef) read(fsys afero.Fs) (*Snapshot, error) {
	b, err := afero.ReadFile(fsys, f.path)
	if err != nil {
		return nil, openError(f.path, err)
	}

	for _, d := range f.decoders {
		b = d.Decode(b)
	}

	return &Snapshot{Name: f.path, Data: b}, nil
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: cannot find %s (%v)", ErrNotExist, path, err)
	}
	return fmt.Errorf("%w: cannot import configuration from %s (%v)", ErrInvalidSource, path, err)
}

type textFileSource struct {
	fileRef
}

func (s *textFileSource) Load(settings Settings) (*Tree, error) {
	snap, err := s.read(settings.Fs)
	if err != nil {
		return nil, err
	}

	return Parse(snap.Name, bytes.NewReader(snap.Data), settings.Subsections)
}

// File creates a source parsing the configuration file at path. Decoders,
// when given, run on the raw content before parsing.
func File(path string, decoder ...Decoder) Source {
	return &textFileSource{fileRef{path: path, decoders: decoder}}
}

type readerSource struct {
	name string
	r    io.Reader
}

func (s *readerSource) Load(settings Settings) (*Tree, error) {
	t, err := Parse(s.name, s.r, settings.Subsections)
	if err != nil && !errors.Is(err, ErrParsing) {
		return nil, fmt.Errorf("%w: %s (%v)", ErrInvalidSource, s.name, err)
	}
	return t, err
}

// Reader creates a source parsing configuration text from r. The reader is
// consumed by the first import.
func Reader(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

type textSource struct {
	name string
	text string
}

func (s *textSource) Load(settings Settings) (*Tree, error) {
	return ParseString(s.name, s.text, settings.Subsections)
}

// Text creates a source parsing configuration text held in memory.
func Text(name, text string) Source {
	return &textSource{name: name, text: text}
}
