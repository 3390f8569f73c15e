package server

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/assets"
	"github.com/lafayette53/apiserver/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadAssetsServesNewBuild(t *testing.T) {
	ctx := context.Background()
	objects, err := storage.NewLocalDir(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = objects.Close() })
	frontend, err := assets.NewServer(objects, 8)
	require.NoError(t, err)
	srv := &Server{frontend: frontend, logger: log.New(io.Discard)}

	require.NoError(t, objects.Put(ctx, "index.html", strings.NewReader("<html>v1</html>"), 15, ""))
	asset, err := frontend.Open(ctx, "index.html")
	require.NoError(t, err)
	require.Equal(t, "<html>v1</html>", string(asset.Data))

	require.NoError(t, objects.Put(ctx, "index.html", strings.NewReader("<html>v2</html>"), 15, ""))
	srv.ReloadAssets()

	asset, err = frontend.Open(ctx, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", string(asset.Data))
}
