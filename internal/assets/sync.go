package assets

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/lafayette53/apiserver/internal/storage"
)

// SyncResult summarises a Sync run.
type SyncResult struct {
	Uploaded int
	Bytes    int64
	Deleted  int
}

// Sync uploads every file below dir to store, keyed by its slash-separated
// relative path. With prune, objects that have no local file are deleted.
func Sync(ctx context.Context, store storage.ObjectStorage, dir string, prune bool) (SyncResult, error) {
	var result SyncResult

	if err := store.EnsureBucket(ctx); err != nil {
		return result, fmt.Errorf("ensure bucket: %w", err)
	}

	local := make(map[string]struct{})
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		size, err := upload(ctx, store, p, key)
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		local[key] = struct{}{}
		result.Uploaded++
		result.Bytes += size
		return nil
	})
	if err != nil {
		return result, err
	}

	if !prune {
		return result, nil
	}
	keys, err := store.List(ctx, "")
	if err != nil {
		return result, fmt.Errorf("list objects: %w", err)
	}
	for _, key := range keys {
		if _, ok := local[key]; ok {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			return result, fmt.Errorf("delete %s: %w", key, err)
		}
		result.Deleted++
	}
	return result, nil
}

func upload(ctx context.Context, store storage.ObjectStorage, file, key string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if err := store.Put(ctx, key, f, info.Size(), mime.TypeByExtension(path.Ext(key))); err != nil {
		return 0, err
	}
	return info.Size(), nil
}
