package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/AngelCh415/adspend/internal/analysis"
	"github.com/AngelCh415/adspend/internal/config"
)

const shutdownGrace = 15 * time.Second

// NewServer wires the router behind an http.Server configured from cfg.
func NewServer(cfg *config.Config, log *slog.Logger, eng *analysis.Engine) *http.Server {
	return &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: NewRouter(log, eng, Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		}),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout(),
	}
}

// Serve runs srv until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "http: listen")
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "http: shutdown")
	}
	return nil
}
