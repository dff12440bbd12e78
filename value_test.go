package configfile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valuesConfig = `int = 42
float = 1.5
bad = nope
timeout = 1m30s
list = a, b,,c
on = Yes
off = DISABLED
maybe = perhaps
`

func TestTypedGetters(t *testing.T) {
	s := newTestSection(t, testSettings(), valuesConfig)

	i, err := s.GetInt("int")
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	f, err := s.GetFloat64("float")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	d, err := s.GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	list, err := s.GetStringSlice("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, list)

	str, err := s.GetString("bad")
	require.NoError(t, err)
	assert.Equal(t, "nope", str)

	i, err = s.GetInt("missing", Fallback("7"))
	require.NoError(t, err)
	assert.Equal(t, 7, i)
}

func TestTypedGetterErrors(t *testing.T) {
	s := newTestSection(t, testSettings(), valuesConfig)

	_, err := s.GetInt("bad")
	assert.True(t, errors.Is(err, ErrConversion))

	_, err = s.GetFloat64("bad")
	assert.True(t, errors.Is(err, ErrConversion))

	_, err = s.GetDuration("int")
	assert.True(t, errors.Is(err, ErrConversion))

	_, err = s.GetInt("missing")
	assert.True(t, errors.Is(err, ErrOptionNotFound))
}

func TestGetBool(t *testing.T) {
	s := newTestSection(t, testSettings(), valuesConfig)

	b, err := s.GetBool("on")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = s.GetBool("off")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = s.GetBool("maybe")
	assert.True(t, errors.Is(err, ErrUnrecognizedBool))

	b, err = s.GetBool("maybe", BoolDefault(true))
	require.NoError(t, err)
	assert.True(t, b)

	b, err = s.GetBool("maybe", BoolTokens([]string{"perhaps"}, []string{"never"}))
	require.NoError(t, err)
	assert.True(t, b)

	_, err = s.GetBool("on", BoolTokens([]string{"perhaps"}, []string{"never"}))
	assert.True(t, errors.Is(err, ErrUnrecognizedBool))

	// a token set left nil keeps its defaults
	b, err = s.GetBool("off", BoolTokens([]string{"perhaps"}, nil))
	require.NoError(t, err)
	assert.False(t, b)

	b, err = s.GetBool("on", BoolTokens(nil, []string{"never"}))
	require.NoError(t, err)
	assert.True(t, b)

	_, err = s.GetBool("missing")
	assert.True(t, errors.Is(err, ErrOptionNotFound))
	assert.False(t, errors.Is(err, ErrUnrecognizedBool))
}
