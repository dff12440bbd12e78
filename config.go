package configfile

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/wjaoss/configfile/internal/logging"
)

// ConfigFile is a configuration store: the root section of a tree built
// from an ordered list of sources. It is not safe for concurrent use; Watch
// only signals changes and callers Reload from their own goroutine.
type ConfigFile struct {
	*Section

	opts Options

	// checksum of the rendered tree
	checksum string
}

// New initialize configuration with customizable options
// merge ordering start from first source and last source as final source
func New(opts ...Option) (*ConfigFile, error) {
	init := Options{
		settings: DefaultSettings(),
		mode:     ModeUpgrade,
	}

	c := &ConfigFile{
		opts: mergeOptions(init, opts...),
	}

	root, sum, err := c.build()
	if err != nil {
		return nil, err
	}
	c.Section, c.checksum = root, sum

	return c, nil
}

// build imports every source into a fresh root.
func (c *ConfigFile) build() (*Section, string, error) {
	root := NewSection(c.opts.settings)
	if err := root.Import(c.opts.mode, c.opts.interpolation, c.opts.sources...); err != nil {
		return nil, "", err
	}

	b, err := root.Render(nil, ModeUpgrade, true)
	if err != nil {
		return nil, "", err
	}

	return root, checksum(b), nil
}

// Checksum returns the md5 checksum of the tree as it was last loaded.
func (c *ConfigFile) Checksum() string {
	return c.checksum
}

// Reload imports the sources again into a new tree and swaps it in when its
// content changed. On error, or without change, the current tree is kept.
// Changes made through Set since the last load are lost on swap, and
// sections obtained before a swap belong to the old tree.
func (c *ConfigFile) Reload() (bool, error) {
	root, sum, err := c.build()
	if err != nil {
		return false, err
	}

	if sum == c.checksum {
		return false, nil
	}

	c.Section, c.checksum = root, sum
	logging.Debug().Str("checksum", sum).Msg("configuration reloaded")

	return true, nil
}

// Watch signals on the returned channel when a file source is written,
// created, renamed or removed, or when a remote source reports a change.
// Signals are coalesced. The channel is closed once ctx is done.
func (c *ConfigFile) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// directories are watched so that files replaced by a rename are seen
	files := make(map[string]bool)
	for _, src := range c.opts.sources {
		w, ok := src.(watchable)
		if !ok {
			continue
		}

		path, err := filepath.Abs(w.watchPath())
		if err != nil {
			watcher.Close()
			return nil, err
		}

		if !files[path] {
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				watcher.Close()
				return nil, err
			}
		}
		files[path] = true
	}

	// buffered channel to prevent blocking
	ch := make(chan struct{}, 1)
	signal := func() {
		select {
		case ch <- struct{}{}:
		default:
			// overflow
		}
	}

	var wg sync.WaitGroup
	for _, src := range c.opts.sources {
		n, ok := src.(notifier)
		if !ok {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.watch(ctx, signal); err != nil {
				logging.Warn().Err(err).Msg("remote source watch stopped")
			}
		}()
	}

	go func() {
		defer close(ch)
		defer wg.Wait()
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				path, err := filepath.Abs(event.Name)
				if err != nil || !files[path] {
					continue
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					logging.Debug().Str("file", path).Stringer("op", event.Op).Msg("configuration file changed")
					signal()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn().Err(err).Msg("watch configuration files")
			}
		}
	}()

	return ch, nil
}
