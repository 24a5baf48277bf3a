package pdfext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRejectsInvalidInput(t *testing.T) {
	t.Run("empty bytes", func(t *testing.T) {
		_, err := Extract(nil)
		assert.ErrorIs(t, err, ErrInvalidPDF)
	})

	t.Run("not a PDF", func(t *testing.T) {
		_, err := Extract([]byte("hello, this is plain text"))
		assert.ErrorIs(t, err, ErrInvalidPDF)
	})
}

func TestChunkShortContentSinglePiece(t *testing.T) {
	chunks := Chunk("short text", 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestChunkEmptyContent(t *testing.T) {
	assert.Nil(t, Chunk("   ", 1000))
	assert.Nil(t, Chunk("", 1000))
}

func TestChunkSplitsOnParagraphs(t *testing.T) {
	paraA := strings.Repeat("a", 40)
	paraB := strings.Repeat("b", 40)
	paraC := strings.Repeat("c", 40)
	content := paraA + "\n\n" + paraB + "\n\n" + paraC

	chunks := Chunk(content, 90)

	require.Len(t, chunks, 2)
	assert.Equal(t, paraA+"\n\n"+paraB, chunks[0])
	assert.Equal(t, paraC, chunks[1])
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 90)
	}
}

func TestChunkHardSplitsOversizedParagraph(t *testing.T) {
	content := strings.Repeat("x", 250)

	chunks := Chunk(content, 100)

	require.Len(t, chunks, 3)
	assert.Equal(t, 100, len(chunks[0]))
	assert.Equal(t, 100, len(chunks[1]))
	assert.Equal(t, 50, len(chunks[2]))
}

func TestChunkPreservesAllContent(t *testing.T) {
	content := "first paragraph here\n\nsecond paragraph here\n\nthird paragraph here"

	chunks := Chunk(content, 25)

	joined := strings.Join(chunks, "\n\n")
	assert.Equal(t, content, joined)
}
