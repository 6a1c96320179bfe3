package transcript

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/bits"

	"github.com/google/uuid"
)

// GenerateOptions controls the shape of a synthetic transcript.
type GenerateOptions struct {
	Dirs     int    // directories below the root
	Files    int    // files spread over all directories, root included
	MaxDepth int    // deepest directory level below the root
	MaxSize  uint64 // largest file size
}

// DefaultGenerateOptions returns options producing a transcript of a few
// thousand lines.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Dirs:     200,
		Files:    2000,
		MaxDepth: 8,
		MaxSize:  400000,
	}
}

type genDir struct {
	name   string
	parent int
	depth  int
	dirs   []int
	files  []genFile
	names  map[string]bool
}

type genFile struct {
	name string
	size uint64
}

// Generate writes a random, well-formed transcript to w and returns the sum of
// all file sizes it lists. Every directory is entered exactly once and listed
// exactly once, so replaying the output yields a root size equal to the total.
func Generate(w io.Writer, opts GenerateOptions) (uint64, error) {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}
	opts.MaxSize = min(max(opts.MaxSize, 1), math.MaxInt64)

	dirs := []genDir{{name: RootDir, parent: -1, names: map[string]bool{}}}
	for len(dirs) <= opts.Dirs {
		n, err := randomInt(int64(len(dirs)))
		if err != nil {
			return 0, err
		}
		parent := int(n)
		// Climb until the new directory fits under the depth limit.
		for dirs[parent].depth >= opts.MaxDepth {
			parent = dirs[parent].parent
		}
		name := uniqueName(dirs[parent].names, "")
		dirs = append(dirs, genDir{
			name:   name,
			parent: parent,
			depth:  dirs[parent].depth + 1,
			names:  map[string]bool{},
		})
		dirs[parent].dirs = append(dirs[parent].dirs, len(dirs)-1)
	}

	var total uint64
	for range opts.Files {
		idx, err := randomInt(int64(len(dirs)))
		if err != nil {
			return 0, err
		}
		coin, err := randomInt(2)
		if err != nil {
			return 0, err
		}
		n, err := randomInt(int64(opts.MaxSize))
		if err != nil {
			return 0, err
		}

		ext := ".json"
		if coin == 1 {
			ext = ".txt"
		}
		size := uint64(n) + 1
		var carry uint64
		if total, carry = bits.Add64(total, size, 0); carry != 0 {
			return 0, fmt.Errorf("generated sizes exceed 2^64-1 bytes, lower the max size")
		}
		d := &dirs[idx]
		d.files = append(d.files, genFile{name: uniqueName(d.names, ext), size: size})
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$ cd %s\n", RootDir)
	emitDir(bw, dirs, 0)
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return total, nil
}

func emitDir(w io.Writer, dirs []genDir, idx int) {
	d := dirs[idx]
	fmt.Fprintln(w, "$ ls")
	for _, sub := range d.dirs {
		fmt.Fprintf(w, "dir %s\n", dirs[sub].name)
	}
	for _, f := range d.files {
		fmt.Fprintf(w, "%d %s\n", f.size, f.name)
	}
	for _, sub := range d.dirs {
		fmt.Fprintf(w, "$ cd %s\n", dirs[sub].name)
		emitDir(w, dirs, sub)
		fmt.Fprintf(w, "$ cd %s\n", ParentDir)
	}
}

// uniqueName draws short names from random UUIDs until one is unused among
// its siblings.
func uniqueName(used map[string]bool, ext string) string {
	for {
		name := uuid.New().String()[:8] + ext
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

var randReader io.Reader = rand.Reader

func randomInt(n int64) (int64, error) {
	v, err := rand.Int(randReader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("random source: %w", err)
	}
	return v.Int64(), nil
}
