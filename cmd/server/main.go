package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"signup/internal/formtoken"
	"signup/internal/platform/config"
	"signup/internal/platform/httpserver"
	"signup/internal/platform/logger"
	"signup/internal/platform/metrics"
	"signup/internal/platform/redis"
	"signup/internal/platform/seal"
	"signup/internal/registration/handler"
	"signup/internal/registration/service"
	"signup/internal/registration/store"
	"signup/internal/registration/submitter"
	"signup/pkg/platform/secrets"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Form behaviour lives in internal/registration.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	drafts, err := newDraftStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer drafts.close()

	signingKey := cfg.SessionSigningKey
	if signingKey == "" {
		if signingKey, err = secrets.Generate(); err != nil {
			return err
		}
		log.Warn("SIGNUP_SESSION_KEY not set; form tokens will not survive a restart")
	}
	tokens := formtoken.NewService(signingKey, cfg.SessionTTL)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithSubmitTimeout(cfg.SubmitTimeout),
	}
	if drafts.locker != nil {
		opts = append(opts, service.WithLocker(drafts.locker))
	}
	forms := service.New(drafts.store,
		submitter.NewSimulated(submitter.WithLatency(cfg.SubmitLatency)),
		opts...,
	)
	pages := handler.New(forms, tokens, log, cfg.SecureCookies)

	router := newRouter(log, m, prometheus.DefaultGatherer, drafts.health, pages)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting signup", "addr", cfg.Addr, "draft_store", drafts.kind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	if drafts.memory != nil {
		g.Go(func() error {
			sweepExpired(gctx, drafts.memory, log)
			return nil
		})
	}

	return g.Wait()
}

type draftStore struct {
	kind   string
	store  service.Store
	locker service.Locker
	memory *store.InMemoryStore
	health func(context.Context) error
	close  func()
}

// newDraftStore keeps drafts in Redis when REDIS_URL is set and in process
// memory otherwise. Redis drafts are locked in Redis too, so any number of
// instances can share them.
func newDraftStore(ctx context.Context, cfg config.Server, log *slog.Logger) (*draftStore, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		mem := store.NewInMemoryStore(cfg.SessionTTL)
		return &draftStore{
			kind:   "memory",
			store:  mem,
			memory: mem,
			close:  func() {},
		}, nil
	}

	box, err := seal.New(cfg.DraftSealKey)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Info("drafts stored in redis")
	return &draftStore{
		kind:   "redis",
		store:  store.NewRedis(client, box, cfg.SessionTTL),
		locker: store.NewRedisLocker(client),
		health: client.Health,
		close: func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", "error", err)
			}
		},
	}, nil
}

func sweepExpired(ctx context.Context, mem *store.InMemoryStore, log *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Sweep(ctx); n > 0 {
				log.Debug("swept expired drafts", "count", n)
			}
		}
	}
}
