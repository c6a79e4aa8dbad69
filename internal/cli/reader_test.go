package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderReadLine(t *testing.T) {
	reader := NewLineReader(strings.NewReader("first line\nsecond line\n"))
	ctx := context.Background()

	line, err := reader.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first line", line)

	line, err = reader.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second line", line)
}

func TestLineReaderTrimsWhitespace(t *testing.T) {
	reader := NewLineReader(strings.NewReader("  padded  \n"))

	line, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "padded", line)
}

func TestLineReaderFinalUnterminatedLine(t *testing.T) {
	reader := NewLineReader(strings.NewReader("no newline"))

	line, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no newline", line)
}

func TestLineReaderEOF(t *testing.T) {
	reader := NewLineReader(strings.NewReader(""))

	_, err := reader.ReadLine(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestLineReaderContextCancellation(t *testing.T) {
	// A pipe with no writer blocks forever; cancellation must unblock the caller.
	pr, _ := io.Pipe()
	reader := NewLineReader(pr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.ReadLine(ctx)
	require.ErrorIs(t, err, ErrInputCancelled)
}

func TestLineReaderNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewLineReader(nil) })
}
