// This is the main entry point of the todoquest application.
// It loads configuration, opens the selected store, builds the credential store,
// session authority and handlers, and serves the HTTP API with graceful shutdown.
// The `migrate` command applies or rolls back the PostgreSQL schema.
//
// @title TodoQuest API
// @version 1.0
// @description Multi-user todo API with bcrypt credentials and signed session tokens.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/config"
	"github.com/user/todoquest-go/db"
	"github.com/user/todoquest-go/logging"
	"github.com/user/todoquest-go/server"
	"github.com/user/todoquest-go/sqlite"
	"github.com/user/todoquest-go/todos"
	"github.com/user/todoquest-go/users"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	app := &cli.App{
		Name:   "todoquest",
		Usage:  "multi-user todo API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending PostgreSQL migrations before serving",
					},
				},
				Action: serve,
			},
			{
				Name:      "migrate",
				Usage:     "apply or roll back the PostgreSQL schema",
				ArgsUsage: "up|down",
				Action:    migrate,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrate(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	direction := c.Args().First()
	if direction == "" {
		direction = db.DirectionUp
	}
	if err := db.RunMigrations(cfg.DB.DSN(), direction); err != nil {
		return err
	}
	log.Printf("Migrations applied (%s)", direction)
	return nil
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Log, os.Stdout)

	if c.Bool("migrate") && cfg.Storage.Driver == config.DriverPostgres {
		if err := db.RunMigrations(cfg.DB.DSN(), db.DirectionUp); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied")
	}

	userRepo, todoRepo, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info(ctx, "storage ready", "driver", cfg.Storage.Driver)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	store := auth.NewCredentialStore(userRepo, hasher)
	sessions, err := auth.NewSessionAuthority(store, hasher, auth.SessionConfig{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Duration: cfg.Auth.TokenDuration,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("session authority: %w", err)
	}

	router := server.NewRouter(server.Deps{
		Auth:           auth.NewHandlers(store, sessions, logger),
		Sessions:       sessions,
		Todos:          todos.NewHandler(todos.NewService(todoRepo), logger),
		Users:          users.NewUserHandlers(users.NewUserService(store), logger),
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	addr := ":" + cfg.Server.Port
	srv := server.NewHTTPServer(addr, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info(shutdownCtx, "server stopped gracefully")
	return nil
}

// openStorage returns the user and todo repositories for the configured driver and a
// function releasing the underlying connections.
func openStorage(ctx context.Context, cfg *config.AppConfig) (auth.UserRepository, todos.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return auth.NewPostgresRepository(pool), todos.NewPostgresRepository(pool), pool.Close, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.Users(), store.Todos(), func() { _ = store.Close() }, nil
	default:
		return auth.NewMemoryRepository(), todos.NewMemoryRepository(), func() {}, nil
	}
}
