package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/ethos/internal/agent"
	"github.com/dropDatabas3/ethos/internal/config"
	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/http/handlers"
	"github.com/dropDatabas3/ethos/internal/http/router"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/revocation"
	"github.com/dropDatabas3/ethos/internal/store"
	"github.com/dropDatabas3/ethos/internal/token"
	"github.com/dropDatabas3/ethos/internal/vault"
)

func main() {
	_ = godotenv.Load(".env")

	var cfgPath string
	flag.StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "ruta al config YAML (opcional)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("config: " + err.Error())
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "ethos",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	secret := cfg.TokenSecret()
	if len(secret) == 0 {
		log.Fatal("token signing key not set", logger.String("env", cfg.Token.SecretEnv))
	}
	if !vault.IsReady() {
		// La clave se carga lazy; esto solo avisa temprano en el arranque.
		log.Warn("VAULT_MASTER_KEY not loaded yet; sealing operations will fail until set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	revoked, err := revocation.New(revocation.Config{
		Backend: cfg.Revocation.Backend,
		Redis: revocation.RedisConfig{
			Addr:     cfg.Revocation.Redis.Addr,
			Password: cfg.Revocation.Redis.Password,
			DB:       cfg.Revocation.Redis.DB,
			Prefix:   cfg.Revocation.Redis.Prefix,
		},
	})
	if err != nil {
		log.Fatal("revocation store", logger.Err(err))
	}
	defer func() { _ = revoked.Close() }()

	records, err := store.New(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		log.Fatal("vault store", logger.Err(err))
	}
	defer func() { _ = records.Close() }()

	tokens := token.NewService(secret, cfg.Token.Issuer, cfg.Token.TTL, revoked)
	gate := consent.NewGate(tokens)

	orchestrator := agent.New(agent.Deps{
		Gate:    gate,
		Sealer:  vault.Std{},
		Records: records,
		AgentID: cfg.Agent.ID,
	})

	handler := router.New(router.Deps{
		Agent:  handlers.NewAgentHandlers(orchestrator),
		Tokens: handlers.NewTokenHandlers(tokens),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", logger.Err(err))
		os.Exit(1)
	}
}
