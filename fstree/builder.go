package fstree

import (
	"fmt"
	"iter"

	"github.com/dendrascience/replayfs/transcript"
	"go.uber.org/zap"
)

// Option configures a Builder.
type Option func(*Builder)

// WithConflictPolicy sets how name collisions are resolved. The default is
// ConflictReject.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithLogger sets the logger used to trace replayed events.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder replays transcript events against a cursor into a Tree.
type Builder struct {
	tree    *Tree
	cursor  NodeID
	policy  ConflictPolicy
	logger  *zap.Logger
	applied int
}

// NewBuilder returns a builder positioned at the root of an empty tree.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		tree:   New(),
		policy: ConflictReject,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.cursor = b.tree.Root()
	return b
}

// Tree returns the tree built so far.
func (b *Builder) Tree() *Tree {
	return b.tree
}

// Cursor returns the current directory.
func (b *Builder) Cursor() NodeID {
	return b.cursor
}

// Applied returns the number of events applied successfully.
func (b *Builder) Applied() int {
	return b.applied
}

// Apply replays a single event.
func (b *Builder) Apply(ev transcript.Event) error {
	if ce := b.logger.Check(zap.DebugLevel, "replaying event"); ce != nil {
		ce.Write(
			zap.Int("line", ev.Line),
			zap.Stringer("event", ev),
			zap.String("cwd", b.tree.Path(b.cursor)),
		)
	}

	var err error
	switch ev.Kind {
	case transcript.ChangeDir:
		err = b.changeDir(ev.Name)
	case transcript.List, transcript.DirEntry:
		// Listings only announce entries; directories appear once entered.
	case transcript.FileEntry:
		err = b.addFile(ev.Name, ev.Size)
	default:
		err = fmt.Errorf("unsupported event kind %v", ev.Kind)
	}
	if err != nil {
		if ev.Line > 0 {
			return fmt.Errorf("line %d: %w", ev.Line, err)
		}
		return err
	}
	b.applied++
	return nil
}

func (b *Builder) changeDir(target string) error {
	switch target {
	case transcript.RootDir:
		b.cursor = b.tree.Root()
		return nil
	case transcript.ParentDir:
		parent := b.tree.nodes[b.cursor].Parent
		if parent == NoNode {
			return ErrNavigateAboveRoot
		}
		b.cursor = parent
		return nil
	}

	if id, ok := b.tree.Lookup(b.cursor, target); ok {
		if b.tree.nodes[id].IsDir() {
			b.cursor = id
			return nil
		}
		if b.policy == ConflictReject {
			return fmt.Errorf("%w: cannot enter file %s", ErrNameConflict, b.tree.Path(id))
		}
		b.retire(id)
	}
	b.cursor = b.tree.add(b.cursor, target, Directory, 0)
	return nil
}

func (b *Builder) addFile(name string, size uint64) error {
	id, ok := b.tree.Lookup(b.cursor, name)
	if !ok {
		if !b.tree.fits(size, 0) {
			return b.overflow(name, size)
		}
		b.tree.add(b.cursor, name, File, size)
		return nil
	}

	existing := b.tree.nodes[id]
	switch {
	case !existing.IsDir() && existing.Size == size:
		// Same directory listed twice.
		return nil
	case b.policy == ConflictReject && existing.IsDir():
		return fmt.Errorf("%w: file %s shadows a directory", ErrNameConflict, b.tree.Path(id))
	case b.policy == ConflictReject:
		return fmt.Errorf("%w: file %s listed with size %d, previously %d",
			ErrNameConflict, b.tree.Path(id), size, existing.Size)
	case !b.tree.fits(size, existing.CumulativeSize):
		return b.overflow(name, size)
	case !existing.IsDir():
		b.logger.Debug("file size replaced",
			zap.String("path", b.tree.Path(id)),
			zap.Uint64("old", existing.Size),
			zap.Uint64("new", size),
		)
		b.tree.resize(id, size)
		return nil
	}

	b.retire(id)
	b.tree.add(b.cursor, name, File, size)
	return nil
}

func (b *Builder) overflow(name string, size uint64) error {
	return fmt.Errorf("%w: file %s of %d bytes in %s",
		ErrSizeOverflow, name, size, b.tree.Path(b.cursor))
}

func (b *Builder) retire(id NodeID) {
	path := b.tree.Path(id)
	count := b.tree.retire(id)
	b.logger.Debug("entry replaced",
		zap.String("path", path),
		zap.Int("retired", count),
	)
}

// Replay consumes events end to end and returns the finished tree. The first
// parse or replay error aborts the run and no tree is returned.
func Replay(events iter.Seq2[transcript.Event, error], opts ...Option) (*Tree, error) {
	b := NewBuilder(opts...)
	for ev, err := range events {
		if err != nil {
			return nil, err
		}
		if err := b.Apply(ev); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("replay finished",
		zap.Int("events", b.applied),
		zap.Int("nodes", b.tree.Len()),
		zap.Uint64("total_size", b.tree.Size(b.tree.Root())),
	)
	return b.tree, nil
}
