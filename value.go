package configfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	defaultTrueTokens  = []string{"true", "1", "yes", "on", "enabled"}
	defaultFalseTokens = []string{"false", "0", "no", "off", "disabled"}
)

// BoolTokens replaces the words GetBool accepts as true and false. A nil set
// keeps its defaults.
func BoolTokens(trueTokens, falseTokens []string) GetOption {
	return func(o *getOptions) {
		o.trueTokens = trueTokens
		o.falseTokens = falseTokens
	}
}

// BoolDefault is returned by GetBool for a value matching no token.
func BoolDefault(value bool) GetOption {
	return func(o *getOptions) {
		o.boolDefault = &value
	}
}

// GetString is Get.
func (s *Section) GetString(name string, opts ...GetOption) (string, error) {
	return s.Get(name, opts...)
}

// GetInt returns the named option as an int.
func (s *Section) GetInt(name string, opts ...GetOption) (int, error) {
	v, err := s.Get(name, opts...)
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, conversionError(name, v, "int")
	}
	return i, nil
}

// GetFloat64 returns the named option as a float64.
func (s *Section) GetFloat64(name string, opts ...GetOption) (float64, error) {
	v, err := s.Get(name, opts...)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, conversionError(name, v, "float64")
	}
	return f, nil
}

// GetDuration returns the named option parsed by time.ParseDuration.
func (s *Section) GetDuration(name string, opts ...GetOption) (time.Duration, error) {
	v, err := s.Get(name, opts...)
	if err != nil {
		return 0, err
	}

	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, conversionError(name, v, "duration")
	}
	return d, nil
}

// GetBool returns the named option as a boolean. Tokens are compared without
// case; see BoolTokens and BoolDefault.
func (s *Section) GetBool(name string, opts ...GetOption) (bool, error) {
	v, err := s.Get(name, opts...)
	if err != nil {
		return false, err
	}

	o := s.getOptions(opts)
	trueTokens, falseTokens := o.trueTokens, o.falseTokens
	if trueTokens == nil {
		trueTokens = defaultTrueTokens
	}
	if falseTokens == nil {
		falseTokens = defaultFalseTokens
	}

	v = strings.TrimSpace(v)
	switch {
	case containsFold(trueTokens, v):
		return true, nil
	case containsFold(falseTokens, v):
		return false, nil
	case o.boolDefault != nil:
		return *o.boolDefault, nil
	}

	return false, fmt.Errorf("%w: %s = %s", ErrUnrecognizedBool, name, v)
}

// GetStringSlice splits the named option on commas. Items are trimmed and
// empty items dropped.
func (s *Section) GetStringSlice(name string, opts ...GetOption) ([]string, error) {
	v, err := s.Get(name, opts...)
	if err != nil {
		return nil, err
	}

	var items []string
	for _, item := range strings.Split(v, listSep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func conversionError(name, value, kind string) error {
	return fmt.Errorf("%w: %s = %q is not a valid %s", ErrConversion, name, value, kind)
}

func containsFold(tokens []string, v string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, v) {
			return true
		}
	}
	return false
}
