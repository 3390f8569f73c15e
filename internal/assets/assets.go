// Package assets resolves frontend files from object storage.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lafayette53/apiserver/internal/storage"
)

// ErrNotFound is returned when no asset exists under a name.
var ErrNotFound = errors.New("asset not found")

const (
	defaultCacheSize = 256

	// Larger assets are served but not kept in memory.
	maxCachedBytes = 4 << 20
)

// Asset is a frontend file held in memory.
type Asset struct {
	Name        string
	ContentType string
	ModTime     time.Time
	Data        []byte
}

// Server reads assets from object storage through an LRU cache.
type Server struct {
	store storage.ObjectStorage
	cache *lru.Cache[string, Asset]
}

// NewServer constructs a Server caching up to size assets.
func NewServer(store storage.ObjectStorage, size int) (*Server, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, Asset](size)
	if err != nil {
		return nil, err
	}
	return &Server{store: store, cache: cache}, nil
}

// Open returns the asset stored under name.
func (s *Server) Open(ctx context.Context, name string) (Asset, error) {
	if asset, ok := s.cache.Get(name); ok {
		return asset, nil
	}

	obj, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Asset{}, ErrNotFound
		}
		return Asset{}, fmt.Errorf("open asset %s: %w", name, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("read asset %s: %w", name, err)
	}

	asset := Asset{
		Name:        name,
		ContentType: contentType(name, obj.ContentType, data),
		ModTime:     obj.ModTime,
		Data:        data,
	}
	if len(data) <= maxCachedBytes {
		s.cache.Add(name, asset)
	}
	return asset, nil
}

// Purge drops every cached asset.
func (s *Server) Purge() {
	s.cache.Purge()
}

func contentType(name, stored string, data []byte) string {
	if stored != "" && stored != "application/octet-stream" {
		return stored
	}
	if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
