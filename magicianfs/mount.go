// Package magicianfs exposes a card store as a small FUSE filesystem
// with two files: the control file where the card is picked and read
// back, and the stream file that replays the picked card endlessly.
package magicianfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/hudmiller/magician/card"
	log "github.com/sirupsen/logrus"
)

// Names of the two entries in the mounted directory.
const (
	ControlFile = "card"
	StreamFile  = "magician"
)

// Options configures the mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	// It is created if it does not exist.
	Mountpoint string

	// Store is the shared card store both files operate on.
	Store *card.Store

	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool
}

// Mount mounts the magician filesystem at the configured mountpoint.
// The caller must call Unmount on the returned server when done.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	root := &rootNode{store: options.Store}

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		MountOptions: fuse.MountOptions{
			FsName:     "magician",
			Name:       "magician",
			AllowOther: options.AllowOther,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	log.Infof("magician filesystem mounted on %v", options.Mountpoint)
	return server, nil
}

// rootNode is the filesystem root. It has two children: the control
// file and the stream file.
type rootNode struct {
	gofuse.Inode
	store *card.Store
}

var _ gofuse.InodeEmbedder = (*rootNode)(nil)
var _ gofuse.NodeOnAdder = (*rootNode)(nil)

func (r *rootNode) OnAdd(ctx context.Context) {
	control := r.NewPersistentInode(ctx, &controlNode{store: r.store}, gofuse.StableAttr{Mode: syscall.S_IFREG})
	r.AddChild(ControlFile, control, true)

	stream := r.NewPersistentInode(ctx, &streamNode{store: r.store}, gofuse.StableAttr{Mode: syscall.S_IFREG})
	r.AddChild(StreamFile, stream, true)
}

// controlNode is the file where the card gets picked. Its size tracks
// the stored card, writes replace the card, and each read handle sees
// the card exactly once.
type controlNode struct {
	gofuse.Inode
	store *card.Store
}

var _ gofuse.InodeEmbedder = (*controlNode)(nil)
var _ gofuse.NodeGetattrer = (*controlNode)(nil)
var _ gofuse.NodeSetattrer = (*controlNode)(nil)
var _ gofuse.NodeOpener = (*controlNode)(nil)

func (c *controlNode) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFREG | 0o644
	out.Size = uint64(c.store.Len())
	return 0
}

// Setattr handles O_TRUNC from shell redirections: truncating to zero
// clears the card, other sizes cut it short.
func (c *controlNode) Setattr(ctx context.Context, f gofuse.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	if size, ok := in.GetSize(); ok {
		current := c.store.Card()
		if size < uint64(len(current)) {
			c.store.SetCard(current[:size])
		}
	}
	out.Mode = syscall.S_IFREG | 0o644
	out.Size = uint64(c.store.Len())
	return 0
}

// Open hands out a fresh control handle. Direct IO keeps the kernel
// from caching the card or clipping reads at a stale file size.
func (c *controlNode) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	return &controlHandle{control: c.store.OpenControl()}, fuse.FOPEN_DIRECT_IO, 0
}

type controlHandle struct {
	control *card.Control
}

var _ gofuse.FileReader = (*controlHandle)(nil)
var _ gofuse.FileWriter = (*controlHandle)(nil)

func (h *controlHandle) Read(ctx context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n := h.control.ReadAt(dest, off)
	return fuse.ReadResultData(dest[:n]), 0
}

func (h *controlHandle) Write(ctx context.Context, data []byte, off int64) (uint32, syscall.Errno) {
	n, err := h.control.Write(data)
	if err != nil {
		return 0, syscall.EIO
	}
	return uint32(n), 0
}

// streamNode is the endless replay file. Opening it claims the single
// reader slot, so a second open anywhere on the system gets EBUSY
// until the first handle is closed.
type streamNode struct {
	gofuse.Inode
	store *card.Store
}

var _ gofuse.InodeEmbedder = (*streamNode)(nil)
var _ gofuse.NodeGetattrer = (*streamNode)(nil)
var _ gofuse.NodeOpener = (*streamNode)(nil)

func (s *streamNode) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFREG | 0o666
	out.Size = 0
	return 0
}

// Open acquires the exclusive slot. Direct IO is required here: the
// reported size is zero, and without it the kernel would end every
// read before the stream produced a single byte.
func (s *streamNode) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	data, err := s.store.OpenData()
	if err != nil {
		if errors.Is(err, card.ErrBusy) {
			return nil, 0, syscall.EBUSY
		}
		return nil, 0, syscall.EIO
	}
	return &streamHandle{data: data}, fuse.FOPEN_DIRECT_IO, 0
}

type streamHandle struct {
	data *card.Data
}

var _ gofuse.FileReader = (*streamHandle)(nil)
var _ gofuse.FileWriter = (*streamHandle)(nil)
var _ gofuse.FileReleaser = (*streamHandle)(nil)

func (h *streamHandle) Read(ctx context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n, err := h.data.ReadAt(dest, off)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// no card picked yet, nothing to read
			return fuse.ReadResultData(nil), 0
		}
		return nil, syscall.EIO
	}
	return fuse.ReadResultData(dest[:n]), 0
}

func (h *streamHandle) Write(ctx context.Context, data []byte, off int64) (uint32, syscall.Errno) {
	n, _ := h.data.Write(data)
	return uint32(n), 0
}

func (h *streamHandle) Release(ctx context.Context) syscall.Errno {
	h.data.Close()
	return 0
}
