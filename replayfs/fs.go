package replayfs

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/replayfs/fstree"
	"go.uber.org/zap"
)

// FS serves a replayed tree through FUSE
type FS struct {
	tree    *fstree.Tree
	mounted time.Time // reported as every node's timestamps
	uid     uint32
	gid     uint32
}

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReader       = (*File)(nil)
)

// NewFS creates a filesystem view of tree. The tree must not be modified
// while it is served.
func NewFS(tree *fstree.Tree) *FS {
	return &FS{
		tree:    tree,
		mounted: time.Now(),
		uid:     uint32(os.Getuid()),
		gid:     uint32(os.Getgid()),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, id: f.tree.Root()}, nil
}

func (f *FS) nodeFor(id fstree.NodeID, n fstree.Node) fs.Node {
	if n.IsDir() {
		return &Dir{fs: f, id: id}
	}
	return &File{fs: f, id: id}
}

func (f *FS) fillAttr(a *fuse.Attr, id fstree.NodeID) {
	a.Inode = InodeFor(id)
	a.Mtime = f.mounted
	a.Ctime = f.mounted
	a.Atime = f.mounted
	a.Uid = f.uid
	a.Gid = f.gid
}

// Dir is a directory of the replayed tree
type Dir struct {
	fs *FS
	id fstree.NodeID
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	n, err := d.fs.tree.Node(d.id)
	if err != nil {
		return syscall.ENOENT
	}
	d.fs.fillAttr(a, d.id)
	a.Mode = os.ModeDir | 0o555
	a.Size = n.CumulativeSize
	return nil
}

// Lookup resolves a child name to a node
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	id, ok := d.fs.tree.Lookup(d.id, name)
	if !ok {
		return nil, syscall.ENOENT
	}
	n, err := d.fs.tree.Node(id)
	if err != nil {
		return nil, syscall.ENOENT
	}
	return d.fs.nodeFor(id, n), nil
}

// ReadDirAll lists the children in discovery order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	children := d.fs.tree.Children(d.id)
	dirents := make([]fuse.Dirent, 0, len(children))
	for _, id := range children {
		n, err := d.fs.tree.Node(id)
		if err != nil {
			return nil, err
		}
		typ := fuse.DT_File
		if n.IsDir() {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: InodeFor(id),
			Name:  n.Name,
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is a file of the replayed tree. Its content is all zero bytes.
type File struct {
	fs *FS
	id fstree.NodeID
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	n, err := f.fs.tree.Node(f.id)
	if err != nil {
		return syscall.ENOENT
	}
	f.fs.fillAttr(a, f.id)
	a.Mode = 0o444
	a.Size = n.Size
	return nil
}

// Read serves the requested range, clipped to the file size.
func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	n, err := f.fs.tree.Node(f.id)
	if err != nil {
		return syscall.ENOENT
	}
	if req.Offset < 0 {
		return syscall.EINVAL
	}
	off := uint64(req.Offset)
	if off >= n.Size {
		resp.Data = resp.Data[:0]
		return nil
	}
	resp.Data = make([]byte, min(uint64(req.Size), n.Size-off))
	return nil
}

// Mount mounts tree read-only at mountpoint and serves it until the kernel
// unmounts it or ctx is cancelled.
func Mount(ctx context.Context, tree *fstree.Tree, mountpoint string, logger *zap.Logger) error {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("replayfs"),
		fuse.Subtype("replayfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("unmounting", zap.String("mountpoint", mountpoint))
			if err := fuse.Unmount(mountpoint); err != nil {
				logger.Warn("unmount failed", zap.String("mountpoint", mountpoint), zap.Error(err))
			}
		case <-done:
		}
	}()

	logger.Info("serving replayed tree",
		zap.String("mountpoint", mountpoint),
		zap.Int("nodes", tree.Len()),
	)
	if err := fs.Serve(c, NewFS(tree)); err != nil {
		return fmt.Errorf("serve %s: %w", mountpoint, err)
	}
	return nil
}
