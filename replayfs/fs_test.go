package replayfs

import (
	"context"
	"os"
	"strings"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/replayfs/fstree"
	"github.com/dendrascience/replayfs/transcript"
)

const testTranscript = `$ cd /
$ ls
dir a
100 top.txt
$ cd a
$ ls
7 inner.bin
`

func newTestFS(t *testing.T) *FS {
	t.Helper()
	tree, err := fstree.Replay(transcript.Events(strings.NewReader(testTranscript)))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	return NewFS(tree)
}

func rootDir(t *testing.T, f *FS) *Dir {
	t.Helper()
	node, err := f.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	return node.(*Dir)
}

func lookup(t *testing.T, d *Dir, name string) fs.Node {
	t.Helper()
	node, err := d.Lookup(context.Background(), name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return node
}

func TestRootAttr(t *testing.T) {
	root := rootDir(t, newTestFS(t))

	var a fuse.Attr
	if err := root.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Inode != 1 {
		t.Errorf("root inode = %d, want 1", a.Inode)
	}
	if !a.Mode.IsDir() {
		t.Errorf("root mode %v is not a directory", a.Mode)
	}
	if a.Size != 107 {
		t.Errorf("root size = %d, want 107", a.Size)
	}
}

func TestReadDirAll(t *testing.T) {
	root := rootDir(t, newTestFS(t))

	dirents, err := root.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	want := []struct {
		name string
		typ  fuse.DirentType
	}{
		{"top.txt", fuse.DT_File},
		{"a", fuse.DT_Dir},
	}
	if len(dirents) != len(want) {
		t.Fatalf("got %d dirents, want %d: %+v", len(dirents), len(want), dirents)
	}
	for i, w := range want {
		if dirents[i].Name != w.name || dirents[i].Type != w.typ {
			t.Errorf("dirent %d = %+v, want %s (%v)", i, dirents[i], w.name, w.typ)
		}
		if dirents[i].Inode < 2 {
			t.Errorf("dirent %s has inode %d, want > 1", dirents[i].Name, dirents[i].Inode)
		}
	}
}

func TestLookup(t *testing.T) {
	root := rootDir(t, newTestFS(t))

	sub, ok := lookup(t, root, "a").(*Dir)
	if !ok {
		t.Fatalf("a should be a directory")
	}
	var a fuse.Attr
	if err := sub.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Size != 7 {
		t.Errorf("a size = %d, want 7", a.Size)
	}

	if _, ok := lookup(t, sub, "inner.bin").(*File); !ok {
		t.Errorf("inner.bin should be a file")
	}

	_, err := root.Lookup(context.Background(), "missing")
	if err != syscall.ENOENT {
		t.Errorf("Lookup(missing) error = %v, want ENOENT", err)
	}
}

func TestFileAttrAndRead(t *testing.T) {
	root := rootDir(t, newTestFS(t))
	file := lookup(t, root, "top.txt").(*File)

	var a fuse.Attr
	if err := file.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Size != 100 {
		t.Errorf("size = %d, want 100", a.Size)
	}
	if a.Mode != os.FileMode(0o444) {
		t.Errorf("mode = %v, want read-only", a.Mode)
	}

	tests := []struct {
		name   string
		offset int64
		size   int
		want   int
	}{
		{name: "whole file", offset: 0, size: 4096, want: 100},
		{name: "middle", offset: 10, size: 20, want: 20},
		{name: "tail", offset: 90, size: 20, want: 10},
		{name: "past end", offset: 100, size: 20, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &fuse.ReadRequest{Offset: tt.offset, Size: tt.size}
			resp := &fuse.ReadResponse{}
			if err := file.Read(context.Background(), req, resp); err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if len(resp.Data) != tt.want {
				t.Errorf("read %d bytes, want %d", len(resp.Data), tt.want)
			}
			for _, b := range resp.Data {
				if b != 0 {
					t.Fatalf("content should be zero bytes")
				}
			}
		})
	}
}

func TestInodeFor(t *testing.T) {
	if got := InodeFor(0); got != 1 {
		t.Errorf("InodeFor(root) = %d, want 1", got)
	}
	if got := InodeFor(41); got != 42 {
		t.Errorf("InodeFor(41) = %d, want 42", got)
	}
}
