package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", zerolog.DebugLevel},
		{"  debug  ", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	_, err := ParseLevel("bogus")
	assert.Error(t, err)
}

func TestInitFiltersLevel(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	Init(Config{Level: zerolog.WarnLevel, Output: &buf})

	Debug().Msg("hidden")
	Warn().Str("section", "A").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"section":"A"`)
	assert.Contains(t, out, `"module":"configfile"`)
}

func TestInitConsole(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	Init(Config{Level: zerolog.DebugLevel, Output: &buf, Console: true})

	Error().Str("target", "app.ini").Msg("export failed")

	out := buf.String()
	assert.Contains(t, out, "export failed")
	assert.Contains(t, out, "target=app.ini")
	assert.NotContains(t, out, "{")
}
