package configfile

import (
	"context"
	"crypto/md5"
	"fmt"
)

// Source is anything that can be imported into a Section. Every source is
// read into a Tree once, at the import call.
type Source interface {
	Load(settings Settings) (*Tree, error)
}

// Load makes a Tree a Source of itself.
func (t *Tree) Load(Settings) (*Tree, error) {
	return t, nil
}

// FromTree returns t as a Source. Use Section.Tree to import a subtree of
// another store.
func FromTree(t *Tree) Source {
	return t
}

// Snapshot contains point of time loaded source data
type Snapshot struct {
	Name     string
	Data     []byte
	checksum string
}

// Checksum return md5 checksum of snapshot data
func (s *Snapshot) Checksum() string {
	if s.checksum == "" {
		s.checksum = checksum(s.Data)
	}

	return s.checksum
}

// Decoder decode source stream before it is parsed
// which can be used to decrypt encoded files
type Decoder interface {
	Decode([]byte) []byte
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func([]byte) []byte

// Decode calls f.
func (f DecoderFunc) Decode(b []byte) []byte {
	return f(b)
}

// watchable is implemented by sources backed by a file.
type watchable interface {
	watchPath() string
}

// notifier is implemented by remote sources able to push changes.
type notifier interface {
	watch(ctx context.Context, notify func()) error
}

func checksum(b []byte) string {
	return fmt.Sprintf("%x", md5.Sum(b))
}
