package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFloatFormatter(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		expected  string
	}{
		{2, 3.14159, "3.14"},
		{0, 3.14159, "3"},
		{1, 80, "80.0"},
		{2, -42.567, "-42.57"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, newFloatFormatter(tt.precision)(tt.value))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []string{"a", "b"}))
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	assert.ErrorContains(t, err, "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"name", "note"}, func(w *csv.Writer) error {
		return w.Write([]string{"Ada", "calm, focused"})
	})
	require.NoError(t, err)
	assert.Equal(t, "name,note\nAda,\"calm, focused\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error { return assert.AnError })
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("content"))
			return err
		}, "Wrote text")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		err := writeWithFile(filepath.Join(t.TempDir(), "x"), func(io.Writer) error { return assert.AnError }, "")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "")
		assert.Error(t, err)
	})
}

func TestJoinKeys(t *testing.T) {
	assert.Equal(t, "-", joinKeys([]schema.ArchetypeKey{}, ", "))
	assert.Equal(t, "autonomous|avoidant", joinKeys([]schema.ArchetypeKey{schema.Autonomous, schema.Avoidant}, "|"))
	assert.Equal(t, "q1, q2", joinKeys([]string{"q1", "q2"}, ", "))
}
