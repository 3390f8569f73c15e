package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lafayette53/apiserver/config"
	"github.com/lafayette53/apiserver/internal/assets"
	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/internal/handlers"
	"github.com/lafayette53/apiserver/internal/mq"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/internal/stats"
	"github.com/lafayette53/apiserver/internal/storage"
	"github.com/lafayette53/apiserver/internal/store"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	stats      *stats.Server
	frontend   *assets.Server
	model      *store.Model
	objects    storage.ObjectStorage
	broker     mq.Backend
	logger     *log.Logger
}

// New constructs a Server from cfg.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*Server, error) {
	conn, err := db.Open(ctx, cfg.Database, logger.WithPrefix("db"))
	if err != nil {
		return nil, err
	}
	model := store.NewModel(conn)

	broker, err := mq.Open(ctx, cfg)
	if err != nil {
		_ = model.Close()
		return nil, fmt.Errorf("open mq: %w", err)
	}

	var notifier services.Notifier = notify.Discard{}
	if broker != nil {
		publisher, err := notify.NewPublisher(broker, cfg.Notify)
		if err != nil {
			closeAll(broker, model)
			return nil, err
		}
		notifier = publisher
	}

	objects, err := storage.Open(ctx, cfg)
	if err != nil {
		closeAll(broker, model)
		return nil, fmt.Errorf("open assets storage: %w", err)
	}
	frontend, err := assets.NewServer(objects, cfg.Assets.CacheSize)
	if err != nil {
		closeAll(objects, broker, model)
		return nil, err
	}

	api := handlers.NewAPI(
		services.NewUserService(model, notifier, logger),
		services.NewCatalogService(model),
		services.NewCurationService(model, notifier, logger),
		logger,
	)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(logger.WithPrefix("http")),
		middleware.Timeout(timeout),
	)
	handlers.Routes(router, api, handlers.NewStaticHandler(frontend, cfg.Assets.Index, logger), model)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: timeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		frontend: frontend,
		model:    model,
		objects:  objects,
		broker:   broker,
		logger:   logger,
	}
	if cfg.Stats.ListenAddr != "" {
		srv.stats = stats.NewServer(cfg.Stats)
	}
	return srv, nil
}

// ReloadAssets drops the cached frontend files so the next requests read
// them from storage again.
func (s *Server) ReloadAssets() {
	s.frontend.Purge()
	s.logger.Info("frontend cache purged")
}

// Start runs the HTTP server and, when configured, the metrics server. It
// blocks until the HTTP server stops.
func (s *Server) Start() error {
	if s.stats != nil {
		go func() {
			if err := s.stats.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("stats server", "err", err)
			}
		}()
	}
	s.logger.Info("listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and releases every dependency.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.stats != nil {
		err = errors.Join(err, s.stats.Shutdown(ctx))
	}
	closeAll(s.objects, s.broker, s.model)
	return err
}

// closeAll closes every dependency that holds resources.
func closeAll(deps ...any) {
	for _, dep := range deps {
		if c, ok := dep.(io.Closer); ok && c != nil {
			_ = c.Close()
		}
	}
}
