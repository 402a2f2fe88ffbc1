package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Inventario-app/internal/application/auth"
	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/application/users"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/Inventario-app/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-app/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-app/internal/interfaces/cli"
	"github.com/jhoicas/Inventario-app/pkg/config"
	"github.com/jhoicas/Inventario-app/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 2
	}

	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := sessionStorage(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Session.Backend).Msg("almacenamiento de sesión")
		return 1
	}
	defer closeStore()

	bus := notify.NewBus()
	gw := gateway.New(cfg.Client.APIBaseURL,
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
		gateway.WithLogger(log.Named("gateway")),
	)

	var (
		authn auth.Authenticator
		inv   inventory.Store
	)
	switch cfg.Client.Mode {
	case config.ModeMock:
		authn = auth.NewMockAuthenticator()
		inv = inventory.NewMemoryStore(bus)
	default:
		authn = auth.NewRemoteAuthenticator(gw)
		inv = inventory.NewRemoteStore(gw, bus, log.Named("inventory"))
	}

	session, err := auth.NewSessionStore(ctx, store, authn, bus, log.Named("session"))
	if err != nil {
		log.Error().Err(err).Msg("restaurar sesión")
		return 1
	}
	gw.AttachSession(session)

	app := cli.New(cli.Deps{
		Session:   session,
		Inventory: inv,
		Users:     users.NewStore(bus),
		Reports:   infrapdf.NewMarotoReportGenerator(),
		Bus:       bus,
		Out:       os.Stdout,
		In:        os.Stdin,
	})

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if cli.IsViewError(err) {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		}
		log.Debug().Err(err).Msg("comando finalizado con error")
		return 1
	}
	return 0
}

// sessionStorage elige el backend de la sesión persistida.
func sessionStorage(ctx context.Context, cfg *config.Config) (auth.Storage, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rs, err := storage.NewRedisStorage(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case config.SessionBackendMemory:
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		return storage.NewFileStorage(cfg.Session.Path), func() {}, nil
	}
}
