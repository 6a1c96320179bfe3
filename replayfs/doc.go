// Package replayfs exposes a replayed fstree.Tree as a read-only FUSE filesystem.
//
// The mounted view mirrors the reconstructed hierarchy exactly:
//   - directories report their cumulative size as st_size, so `ls -l` shows
//     the aggregated totals
//   - files report the size recorded in the transcript and read back as zero
//     bytes, since a transcript never captures content
//   - inode numbers are derived from node ids, with the root at inode 1
//
// Nothing can be created, renamed or removed; the filesystem is mounted with
// the ro option and the node types implement no mutating operations.
//
// The main entry point is NewFS, whose result can be served with
// bazil.org/fuse/fs.Serve, or Mount which does both steps.
package replayfs
