package configfile

import "github.com/spf13/afero"

// Option define method to modify store options
type Option func(o *Options)

// Options of a configuration store
type Options struct {
	settings Settings

	// sources imported in order, with mode
	sources []Source
	mode    Mode

	// interpolate values after each source
	interpolation bool
}

// WithSource add new configuration source
func WithSource(sources ...Source) Option {
	return func(o *Options) {
		o.sources = append(o.sources, sources...)
	}
}

// WithMode sets the mode sources are imported with, ModeUpgrade by default.
func WithMode(mode Mode) Option {
	return func(o *Options) {
		o.mode = mode
	}
}

// IgnoreCase sets whether section and option names are compared without
// case. Enabled by default.
func IgnoreCase(enabled bool) Option {
	return func(o *Options) {
		o.settings.IgnoreCase = enabled
	}
}

// Subsections sets whether dotted section names denote nested sections.
// Enabled by default.
func Subsections(enabled bool) Option {
	return func(o *Options) {
		o.settings.Subsections = enabled
	}
}

// InheritOptions sets whether option lookups fall back to ancestors.
func InheritOptions(enabled bool) Option {
	return func(o *Options) {
		o.settings.InheritOptions = enabled
	}
}

// SafeCalls sets whether a missing subsection resolves to its closest
// existing ancestor.
func SafeCalls(enabled bool) Option {
	return func(o *Options) {
		o.settings.SafeCalls = enabled
	}
}

// Interpolation enables ${...} substitution after each imported source.
func Interpolation(enabled bool) Option {
	return func(o *Options) {
		o.interpolation = enabled
	}
}

// WithFs sets the filesystem files are read from and exported to.
func WithFs(fs afero.Fs) Option {
	return func(o *Options) {
		o.settings.Fs = fs
	}
}

func mergeOptions(dest Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&dest)
	}

	return dest
}
