package fstree

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/dendrascience/replayfs/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReplay_FilesInRoot(t *testing.T) {
	tree := mustReplay(t, "$ cd /\n$ ls\n10 a.txt\n20 b.txt\n")

	assert.Equal(t, uint64(30), tree.Size(tree.Root()))
	assert.Len(t, tree.Children(tree.Root()), 2)
}

func TestReplay_RevisitedDirectoryIsNotDuplicated(t *testing.T) {
	tree := mustReplay(t, "$ cd /\n$ cd x\n5 f\n$ cd ..\n$ cd x\n7 g\n")

	var named []NodeID
	for id, n := range tree.Directories() {
		if n.Name == "x" {
			named = append(named, id)
		}
	}
	require.Len(t, named, 1)
	assert.Equal(t, uint64(12), tree.Size(named[0]))
	assert.Equal(t, uint64(12), tree.Size(tree.Root()))
}

func TestReplay_SampleSizes(t *testing.T) {
	tree := mustReplay(t, sampleTranscript)

	tests := []struct {
		path []string
		want uint64
	}{
		{path: nil, want: 48381165},
		{path: []string{"a"}, want: 94853},
		{path: []string{"a", "e"}, want: 584},
		{path: []string{"d"}, want: 24933642},
	}
	for _, tt := range tests {
		id := mustLookupPath(t, tree, tt.path...)
		assert.Equal(t, tt.want, tree.Size(id), tree.Path(id))
	}
	require.NoError(t, tree.Verify())
}

func TestReplay_NavigateAboveRoot(t *testing.T) {
	_, err := replayString("$ cd /\n$ ls\n$ cd ..\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigateAboveRoot)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReplay_ParentMovesExactlyOneLevel(t *testing.T) {
	b := NewBuilder()
	names := []string{"a", "b", "c", "d"}
	for _, name := range names {
		require.NoError(t, b.Apply(transcript.Event{Kind: transcript.ChangeDir, Name: name}))
	}

	for depth := len(names); depth > 0; depth-- {
		before, err := b.Tree().Node(b.Cursor())
		require.NoError(t, err)
		require.Equal(t, depth, before.Depth)

		require.NoError(t, b.Apply(transcript.Event{Kind: transcript.ChangeDir, Name: transcript.ParentDir}))
		assert.Equal(t, before.Parent, b.Cursor())
	}

	assert.Equal(t, b.Tree().Root(), b.Cursor())
	err := b.Apply(transcript.Event{Kind: transcript.ChangeDir, Name: transcript.ParentDir})
	assert.ErrorIs(t, err, ErrNavigateAboveRoot)
	assert.Equal(t, b.Tree().Root(), b.Cursor())
}

func TestReplay_CdRootResetsCursor(t *testing.T) {
	b := NewBuilder()
	for _, line := range []string{"$ cd a", "$ cd b", "$ cd /", "1 top"} {
		ev, err := transcript.ParseLine(line, 0)
		require.NoError(t, err)
		require.NoError(t, b.Apply(ev))
	}
	top, ok := b.Tree().Lookup(b.Tree().Root(), "top")
	require.True(t, ok)
	assert.Equal(t, 1, mustNode(t, b.Tree(), top).Depth)
	assert.Equal(t, 4, b.Applied())
}

func TestReplay_ParseErrorAborts(t *testing.T) {
	tree, err := replayString("$ cd /\n$ ls\nbig file\n")
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, transcript.ErrSizeUnparseable)
}

func TestReplay_RootSizeEqualsGeneratedTotal(t *testing.T) {
	for range 5 {
		var buf bytes.Buffer
		total, err := transcript.Generate(&buf, transcript.GenerateOptions{
			Dirs: 50, Files: 400, MaxDepth: 6, MaxSize: 100000,
		})
		require.NoError(t, err)

		tree, err := Replay(transcript.Events(&buf))
		require.NoError(t, err)
		assert.Equal(t, total, tree.Size(tree.Root()))
		assert.NoError(t, tree.Verify())
	}
}

func TestReplay_SizesConsistentAfterEveryEvent(t *testing.T) {
	b := NewBuilder()
	for ev, err := range transcript.Events(strings.NewReader(sampleTranscript)) {
		require.NoError(t, err)
		require.NoError(t, b.Apply(ev))
		require.NoError(t, b.Tree().Verify(), "after %s", ev)
	}
}

func TestReplay_RelistingIsIdempotent(t *testing.T) {
	tree := mustReplay(t, "$ cd /\n$ ls\n10 a\ndir x\n$ ls\n10 a\ndir x\n")
	assert.Equal(t, uint64(10), tree.Size(tree.Root()))
	assert.Len(t, tree.Children(tree.Root()), 1)
}

func TestReplay_ConflictPolicies(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		rejectErr  bool
		wantSize   uint64 // root size under last-write-wins
		wantKind   Kind   // kind of "x" under last-write-wins
		wantRetire int    // retired nodes under last-write-wins
	}{
		{
			name:       "enter a file",
			input:      "$ cd /\n$ ls\n10 x\n$ cd x\n$ ls\n3 y\n",
			rejectErr:  true,
			wantSize:   3,
			wantKind:   Directory,
			wantRetire: 1,
		},
		{
			name:       "file shadows directory",
			input:      "$ cd /\n$ cd x\n5 f\n6 g\n$ cd ..\n7 x\n",
			rejectErr:  true,
			wantSize:   7,
			wantKind:   File,
			wantRetire: 3,
		},
		{
			name:       "file listed with new size",
			input:      "$ cd /\n$ ls\n10 x\n$ ls\n12 x\n",
			rejectErr:  true,
			wantSize:   12,
			wantKind:   File,
			wantRetire: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replayString(tt.input, WithConflictPolicy(ConflictReject))
			if tt.rejectErr {
				assert.ErrorIs(t, err, ErrNameConflict)
			}

			tree := mustReplay(t, tt.input,
				WithConflictPolicy(ConflictLastWriteWins),
				WithLogger(zap.NewNop()),
			)
			assert.Equal(t, tt.wantSize, tree.Size(tree.Root()))

			x := mustLookupPath(t, tree, "x")
			assert.Equal(t, tt.wantKind, mustNode(t, tree, x).Kind)
			assert.Equal(t, tt.wantRetire, tree.Summarize().Retired)
			assert.NoError(t, tree.Verify())
		})
	}
}

func TestReplay_SizeOverflow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "sum past the limit",
			input:   "$ cd /\n$ ls\n18446744073709551615 a\n2 b\n",
			wantErr: true,
		},
		{
			name:  "sum reaching the limit",
			input: "$ cd /\n$ cd d\n18446744073709551614 a\n$ cd ..\n1 b\n",
		},
		{
			name:  "resize reaching the limit",
			input: "$ cd /\n10 a\n18446744073709551600 b\n15 a\n",
		},
		{
			name:    "resize past the limit",
			input:   "$ cd /\n10 a\n18446744073709551600 b\n16 a\n",
			wantErr: true,
		},
		{
			name:    "file replacing a directory past the limit",
			input:   "$ cd /\n$ cd x\n1 f\n$ cd ..\n18446744073709551614 big\n3 x\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := replayString(tt.input, WithConflictPolicy(ConflictLastWriteWins))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSizeOverflow)
				assert.Nil(t, tree)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(math.MaxUint64), tree.Size(tree.Root()))
			assert.NoError(t, tree.Verify())
		})
	}
}

func TestReplay_RetiredSubtreeIsHidden(t *testing.T) {
	input := "$ cd /\n$ cd x\n$ cd deep\n5 f\n$ cd /\n8 x\n"
	tree := mustReplay(t, input, WithConflictPolicy(ConflictLastWriteWins))

	for _, n := range tree.Directories() {
		assert.NotEqual(t, "deep", n.Name)
	}
	assert.Equal(t, uint64(8), tree.SumAtMost(100, false))
	assert.Len(t, tree.Children(tree.Root()), 1)
}

func mustNode(t *testing.T, tree *Tree, id NodeID) Node {
	t.Helper()
	n, err := tree.Node(id)
	require.NoError(t, err)
	return n
}
