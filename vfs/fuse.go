package vfs

import (
	"context"
	"os"
	"strings"
	"sync"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// FuseFS serves a Tree as a read-only FUSE filesystem. File content is read
// through the same ContentReader a Navigator uses.
type FuseFS struct {
	tree   *Tree
	reader ContentReader

	inodeLock sync.Mutex
	inodes    map[*Node]uint64
	lastInode uint64
}

var (
	_ fs.FS                 = (*FuseFS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// NewFuseFS creates a FUSE view of tree.
func NewFuseFS(tree *Tree, reader ContentReader) *FuseFS {
	return &FuseFS{tree: tree, reader: reader, inodes: make(map[*Node]uint64)}
}

// inode returns the inode number of n, allocating one on first use. The root
// is always inode 1.
func (f *FuseFS) inode(n *Node) uint64 {
	f.inodeLock.Lock()
	defer f.inodeLock.Unlock()
	if ino, ok := f.inodes[n]; ok {
		return ino
	}
	f.lastInode++
	f.inodes[n] = f.lastInode
	return f.lastInode
}

// Root returns the root directory node
func (f *FuseFS) Root() (fs.Node, error) {
	f.inode(f.tree.root)
	return &Dir{fs: f, node: f.tree.root}, nil
}

// Dir is a directory node of the FUSE view.
type Dir struct {
	fs       *FuseFS
	node     *Node
	segments []string
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.fs.inode(d.node)
	a.Mode = os.ModeDir | 0o555
	return nil
}

// Lookup resolves a child name to a node
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	child, ok := d.node.Child(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	segments := append(d.segments[:len(d.segments):len(d.segments)], name)
	if child.IsDir() {
		return &Dir{fs: d.fs, node: child, segments: segments}, nil
	}
	return &File{fs: d.fs, node: child, path: strings.Join(segments, "/")}, nil
}

// ReadDirAll lists directory contents in insertion order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirents := make([]fuse.Dirent, 0, d.node.Len())
	for _, name := range d.node.order {
		child := d.node.children[name]
		typ := fuse.DT_File
		if child.IsDir() {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Inode: d.fs.inode(child), Name: name, Type: typ})
	}
	return dirents, nil
}

// File is a file node of the FUSE view. Content is loaded on first use.
type File struct {
	fs   *FuseFS
	node *Node
	path string

	once sync.Once
	data []byte
	err  error
}

func (f *File) load() ([]byte, error) {
	f.once.Do(func() {
		f.data, f.err = f.fs.reader.ReadFile(f.path)
	})
	return f.data, f.err
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	data, err := f.load()
	if err != nil {
		return syscall.EIO
	}
	a.Inode = f.fs.inode(f.node)
	a.Mode = 0o444
	a.Size = uint64(len(data))
	return nil
}

// ReadAll returns the whole file
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := f.load()
	if err != nil {
		return nil, syscall.EIO
	}
	return data, nil
}
