package fstree

import (
	"strings"
	"testing"

	"github.com/dendrascience/replayfs/transcript"
	"github.com/stretchr/testify/require"
)

// sampleTranscript produces directories of 48381165 (/), 94853 (/a),
// 584 (/a/e) and 24933642 (/d).
const sampleTranscript = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`

func replayString(input string, opts ...Option) (*Tree, error) {
	return Replay(transcript.Events(strings.NewReader(input)), opts...)
}

func mustReplay(t *testing.T, input string, opts ...Option) *Tree {
	t.Helper()
	tree, err := replayString(input, opts...)
	require.NoError(t, err)
	return tree
}

func mustLookupPath(t *testing.T, tree *Tree, names ...string) NodeID {
	t.Helper()
	id := tree.Root()
	for _, name := range names {
		next, ok := tree.Lookup(id, name)
		require.True(t, ok, "missing %q under %s", name, tree.Path(id))
		id = next
	}
	return id
}
