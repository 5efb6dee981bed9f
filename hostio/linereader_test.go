package hostio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/ports"
)

func TestBufferedLineReader(t *testing.T) {
	var out bytes.Buffer
	r := NewBufferedLineReader(strings.NewReader("first\r\nsecond\nlast"), &out)

	line, err := r.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = r.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = r.ReadLine("? ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = r.ReadLine("")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> ? ", out.String())
}

func TestBufferedLineReader_NilOut(t *testing.T) {
	r := NewBufferedLineReader(strings.NewReader("x\n"), nil)
	line, err := r.ReadLine("prompt")
	require.NoError(t, err)
	assert.Equal(t, "x", line)
}

type closingReader struct {
	*BufferedLineReader
	closed int
}

func (c *closingReader) Close() error {
	c.closed++
	return nil
}

func TestConsoleLineReader_OpensOnFirstRead(t *testing.T) {
	opened := 0
	inner := &closingReader{BufferedLineReader: NewBufferedLineReader(strings.NewReader("a\nb\n"), nil)}
	c := &ConsoleLineReader{open: func() (ports.LineReader, func() error) {
		opened++
		return inner, inner.Close
	}}

	require.NoError(t, c.Close())
	assert.Zero(t, opened, "closing an unused reader must not open it")

	line, err := c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "a", line)
	line, err = c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "b", line)
	assert.Equal(t, 1, opened)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, inner.closed)
}

func TestNewConsoleLineReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	c := NewConsoleLineReader(f, &out)
	line, err := c.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Equal(t, "> ", out.String())
	assert.NoError(t, c.Close())
}
