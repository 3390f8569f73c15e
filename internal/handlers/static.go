package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/assets"
)

// AssetSource resolves frontend files by name.
type AssetSource interface {
	Open(ctx context.Context, name string) (assets.Asset, error)
}

// StaticHandler serves the frontend. Paths without a matching asset get the
// index file so client-side routes load the application.
type StaticHandler struct {
	assets AssetSource
	index  string
	logger *log.Logger
}

// NewStaticHandler constructs a StaticHandler.
func NewStaticHandler(source AssetSource, index string, logger *log.Logger) *StaticHandler {
	if index == "" {
		index = "index.html"
	}
	return &StaticHandler{assets: source, index: index, logger: logger}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = h.index
	}

	asset, err := h.assets.Open(r.Context(), name)
	if errors.Is(err, assets.ErrNotFound) && name != h.index {
		asset, err = h.assets.Open(r.Context(), h.index)
	}
	if err != nil {
		if !errors.Is(err, assets.ErrNotFound) && h.logger != nil {
			h.logger.Error("serve asset", "path", r.URL.Path, "err", err)
		}
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Content-Type", asset.ContentType)
	http.ServeContent(w, r, asset.Name, asset.ModTime, bytes.NewReader(asset.Data))
}
