// Command rolegate runs the authentication and authorization service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/rolegate/internal/auth"
	"github.com/skillsenselab/rolegate/internal/config"
	"github.com/skillsenselab/rolegate/internal/httpapi"
	"github.com/skillsenselab/rolegate/internal/logger"
	"github.com/skillsenselab/rolegate/internal/observability"
	"github.com/skillsenselab/rolegate/internal/password"
	"github.com/skillsenselab/rolegate/internal/server"
	"github.com/skillsenselab/rolegate/internal/server/endpoint"
	"github.com/skillsenselab/rolegate/internal/server/middleware"
	"github.com/skillsenselab/rolegate/internal/token"
	"github.com/skillsenselab/rolegate/internal/user"
	"github.com/skillsenselab/rolegate/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rolegate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env", "", "path to .env file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("rolegate %s (%s, built %s)\n", info.Version, info.GitCommit, info.BuildTime)
		return nil
	}

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, ping, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	codec, err := token.NewCodec(&cfg.Token)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.Password)
	svc := auth.NewService(store, hasher, codec, log)
	handler := httpapi.NewHandler(svc, codec)

	tp, err := observability.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", logger.Fields("error", err.Error()))
			}
		}()
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	if tp != nil {
		srv.GinEngine().Use(middleware.Tracing())
	}

	engine := srv.GinEngine()
	engine.GET("/health", endpoint.Health(cfg.Name, ping))
	engine.GET("/version", endpoint.Version())
	handler.RegisterRoutes(engine)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return srv.Stop(context.Background())
}

// openStore builds the configured user store and a health pinger for it.
func openStore(cfg *config.Config, log *logger.Logger) (user.Store, endpoint.Pinger, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Info("Using in-memory user store")
		return user.NewMemoryStore(), func(ctx context.Context) error { return nil }, nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite database %s: %w", cfg.Database.DSN, err)
		}

		store := user.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrating user schema: %w", err)
		}
		log.Info("Using sqlite user store", logger.Fields("dsn", cfg.Database.DSN))

		ping := func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		return store, ping, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
