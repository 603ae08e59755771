package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jubris-Knifes/cardbase/api"
	"github.com/Jubris-Knifes/cardbase/config"
	"github.com/Jubris-Knifes/cardbase/migrations"
	"github.com/Jubris-Knifes/cardbase/repository"
	"github.com/Jubris-Knifes/cardbase/service"
	"github.com/olahol/melody"
	zrokEnvironment "github.com/openziti/zrok/environment"
	zrok "github.com/openziti/zrok/sdk/golang/sdk"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := config.Get()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: conf.LogLevel}))

	if err := run(logger, conf); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, conf config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := sql.Open("sqlite", conf.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	repo := repository.New(logger, db)
	svc := service.New(logger, repo)
	policy := service.SearchPolicy{
		MinLength:       conf.Search.MinLength,
		TooShortMessage: conf.Search.TooShortMessage,
	}

	opts := []api.Option{api.WithAllowedOrigins(conf.CORSAllowedOrigins)}
	if conf.LiveQueriesEnabled {
		m := melody.New()
		m.Upgrader.CheckOrigin = func(r *http.Request) bool { return true }
		live := service.NewLive(logger, svc, policy, m)
		defer live.Close()
		opts = append(opts, api.WithLive(live))
	}

	srv := &http.Server{
		Handler:           api.New(logger, svc, policy, opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", conf.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	listeners := []net.Listener{listener}

	if conf.Zrok.Enabled {
		zrokListener, cleanup, err := shareWithZrok(logger, conf)
		if err != nil {
			listener.Close()
			return fmt.Errorf("zrok share: %w", err)
		}
		defer cleanup()
		listeners = append(listeners, zrokListener)
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, l := range listeners {
		g.Go(func() error {
			logger.Info("serving card API", "address", l.Addr().String())
			return serve(srv, l)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func serve(srv *http.Server, l net.Listener) error {
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shareWithZrok exposes the API through a public zrok share, reusing the
// reserved share when one is configured.
func shareWithZrok(logger *slog.Logger, conf config.Config) (net.Listener, func(), error) {
	root, err := zrokEnvironment.LoadRoot()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	shareToken := conf.Zrok.ReservedName
	frontendEndpoint := fmt.Sprintf("https://%s.share.zrok.io", shareToken)

	if !conf.Zrok.UseReserved || conf.Zrok.ReservedName == "" {
		shr, err := zrok.CreateShare(root, &zrok.ShareRequest{
			BackendMode: zrok.ProxyBackendMode,
			ShareMode:   zrok.PublicShareMode,
			Frontends:   []string{"public"},
			Target:      fmt.Sprintf("http://localhost:%d", conf.Port),
		})
		if err != nil {
			return nil, nil, err
		}

		cleanup = func() {
			if err := zrok.DeleteShare(root, shr); err != nil {
				logger.Error("failed to delete zrok share", "error", err)
			}
		}
		shareToken = shr.Token
		frontendEndpoint, err = firstFrontend(shr)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	conn, err := zrok.NewListener(shareToken, root)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("share created", "frontend_endpoint", frontendEndpoint)

	return conn, func() {
		conn.Close()
		cleanup()
	}, nil
}

func firstFrontend(shr *zrok.Share) (string, error) {
	if len(shr.FrontendEndpoints) == 0 {
		return "", fmt.Errorf("zrok share %q has no frontend endpoint", shr.Token)
	}
	return shr.FrontendEndpoints[0], nil
}
