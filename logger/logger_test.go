package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beka-birhanu/mazesolver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Rejects bad arguments", func(t *testing.T) {
		_, err := New("", config.ColorCyan, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = New("app", config.ColorCyan, nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})

	t.Run("Writes one tagged line per message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("maze", config.ColorCyan, &buf)
		require.NoError(t, err)

		l.Info("carved")
		l.Warning("cache down")
		l.Error("boom")

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)

		assert.Contains(t, lines[0], config.ColorCyan+"[MAZE]"+config.ColorReset)
		assert.Contains(t, lines[0], "[INFO]")
		assert.True(t, strings.HasSuffix(lines[0], " carved"))

		assert.Contains(t, lines[1], config.ColorYellow+"[WARNING]")
		assert.True(t, strings.HasSuffix(lines[1], " cache down"))

		assert.Contains(t, lines[2], config.ColorRed+"[ERROR]")
		assert.True(t, strings.HasSuffix(lines[2], " boom"))
	})
}
