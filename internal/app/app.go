package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/catalog-engine/internal/catalog"
	config "github.com/DRSN-tech/catalog-engine/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-engine/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-engine/internal/usecase"
	"github.com/DRSN-tech/catalog-engine/pkg/cache"
	"github.com/DRSN-tech/catalog-engine/pkg/closer"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/DRSN-tech/catalog-engine/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	store   *catalog.Store
	httpSrv *v1Http.Server
	closer  *closer.Closer
}

// NewApp собирает все зависимости движка: хранилище каталога, кэш,
// ограничитель, usecase и HTTP-сервер.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	store := catalog.NewStore(cfg.Catalog, log)

	memo := cache.New[any](cfg.Cache.DefaultTTL, cfg.Cache.SweepInterval, log)
	cl.Add(func(ctx context.Context) error {
		memo.Stop()
		return nil
	})

	limiter := ratelimit.New(cfg.Limiter.MaxCalls, cfg.Limiter.Window)

	catalogUC := usecase.NewCatalogUC(store, memo, limiter, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, limiter, log)
	router.Init(catalogUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(httpSrv.Stop)

	return &App{
		cfg:     cfg,
		logger:  log,
		store:   store,
		httpSrv: httpSrv,
		closer:  cl,
	}, nil
}

// Run загружает каталог, запускает HTTP-сервер и блокируется
// до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	// Без каталога ни один catalog-зависимый запрос обслужен быть не может.
	if err := a.store.EnsureLoaded(); err != nil {
		a.logger.Errorf(err, "failed to load catalog")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}
