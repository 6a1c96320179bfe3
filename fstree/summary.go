package fstree

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/replayfs/version"
)

// Summary holds aggregate counts for a replayed tree.
type Summary struct {
	Directories     int    `json:"directories"`
	Files           int    `json:"files"`
	Retired         int    `json:"retired"`
	TotalSize       uint64 `json:"total_size"`
	LargestFile     uint64 `json:"largest_file"`
	MaxDepth        int    `json:"max_depth"`
	ReplayfsVersion string `json:"replayfs_version"`
}

// Summarize counts the live nodes of the tree.
func (t *Tree) Summarize() Summary {
	s := Summary{
		TotalSize:       t.Size(t.Root()),
		ReplayfsVersion: version.GetVersion(),
	}
	for _, n := range t.nodes {
		if n.Retired {
			s.Retired++
			continue
		}
		if n.IsDir() {
			s.Directories++
		} else {
			s.Files++
			s.LargestFile = max(s.LargestFile, n.Size)
		}
		s.MaxDepth = max(s.MaxDepth, n.Depth)
	}
	return s
}

// Save writes the summary as JSON. A path not ending in .json is treated as a
// directory and the file is named summary.json.
func (s Summary) Save(path string) error {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, "summary.json")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return s.writeTo(f)
}

// writeTo encodes the summary and closes w, reporting the first failure.
func (s Summary) writeTo(w io.WriteCloser) error {
	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	if err := je.Encode(s); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
