package fstree

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := mustReplay(t, sampleTranscript).Summarize()

	assert.Equal(t, 4, s.Directories)
	assert.Equal(t, 10, s.Files)
	assert.Equal(t, 0, s.Retired)
	assert.Equal(t, uint64(48381165), s.TotalSize)
	assert.Equal(t, uint64(14848514), s.LargestFile)
	assert.Equal(t, 3, s.MaxDepth)
	assert.NotEmpty(t, s.ReplayfsVersion)
}

func TestSummary_Save(t *testing.T) {
	s := mustReplay(t, sampleTranscript).Summarize()

	t.Run("directory path", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, s.Save(dir))
		assertSummaryFile(t, filepath.Join(dir, "summary.json"), s)
	})

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, s.Save(path))
		assertSummaryFile(t, path, s)
	})
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error {
	return f.err
}

func TestSummary_SaveReportsCloseError(t *testing.T) {
	s := mustReplay(t, sampleTranscript).Summarize()
	closeErr := errors.New("disk quota exceeded")

	w := &failingCloser{err: closeErr}
	assert.ErrorIs(t, s.writeTo(w), closeErr)
	assert.NotZero(t, w.Len())

	assert.NoError(t, s.writeTo(&failingCloser{}))
}

func assertSummaryFile(t *testing.T, path string, want Summary) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
