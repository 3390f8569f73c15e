package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"strings"
)

// LocalDir stores objects as files below a root directory. Keys cannot
// escape the root.
type LocalDir struct {
	root *os.Root
	dir  string
}

// NewLocalDir opens dir, creating it if needed.
func NewLocalDir(dir string) (*LocalDir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("assets dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalDir{root: root, dir: dir}, nil
}

// EnsureBucket is a no-op; the directory is created on open.
func (l *LocalDir) EnsureBucket(ctx context.Context) error {
	return nil
}

// Put writes an object, creating parent directories.
func (l *LocalDir) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	key = cleanKey(key)
	if dir := path.Dir(key); dir != "." {
		if err := l.root.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := l.root.Create(key)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Get opens an object. Directories are reported as missing.
func (l *LocalDir) Get(ctx context.Context, key string) (Object, error) {
	key = cleanKey(key)
	f, err := l.root.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Object{}, ErrNotFound
		}
		return Object{}, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Object{}, err
	}
	if info.IsDir() {
		_ = f.Close()
		return Object{}, ErrNotFound
	}
	return Object{
		Body:        f,
		ContentType: mime.TypeByExtension(path.Ext(key)),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// Delete removes an object.
func (l *LocalDir) Delete(ctx context.Context, key string) error {
	err := l.root.Remove(cleanKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// List returns the keys of all files whose key starts with prefix.
func (l *LocalDir) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := fs.WalkDir(l.root.FS(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(p, prefix) {
			keys = append(keys, p)
		}
		return nil
	})
	return keys, err
}

// Bucket returns the root directory.
func (l *LocalDir) Bucket() string {
	return l.dir
}

// Close releases the root directory handle.
func (l *LocalDir) Close() error {
	return l.root.Close()
}

func cleanKey(key string) string {
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}
