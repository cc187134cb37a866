package commands

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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pedidos_api/internal/config"
	"github.com/Skotchmaster/pedidos_api/internal/db"
	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/httpserver"
	loggingmw "github.com/Skotchmaster/pedidos_api/internal/middleware/logging"
	"github.com/Skotchmaster/pedidos_api/internal/repo"
	"github.com/Skotchmaster/pedidos_api/internal/search"
	"github.com/Skotchmaster/pedidos_api/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, logger)
	},
}

func newPublisher(cfg config.Config, logger *slog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka disabled: KAFKA_BROKERS is empty")
		return events.Nop{}
	}
	p, err := events.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		logger.Error("kafka producer", "error", err)
		return events.Nop{}
	}
	return p
}

func newProductIndex(cfg config.Config, logger *slog.Logger) search.ProductIndex {
	if cfg.ESURL == "" {
		logger.Info("search disabled: ES_URL is empty")
		return search.Disabled{}
	}
	client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		logger.Error("elasticsearch unavailable, search disabled", "error", err)
		return search.Disabled{}
	}
	return &search.Index{ES: client, Name: cfg.ESIndex}
}

func newServer(logger *slog.Logger, gdb *gorm.DB, pub events.Publisher, idx search.ProductIndex) *echo.Echo {
	r := &repo.GormRepo{DB: gdb}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CustomerHandler: &httpserver.CustomerHTTP{Svc: &service.CustomerService{Repo: r, Publisher: pub}},
		ProductHandler:  &httpserver.ProductHTTP{Svc: &service.ProductService{Repo: r, Publisher: pub, Index: idx}},
		OrderHandler:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Publisher: pub}},
		Ready:           func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})
	return e
}

// openStore opens the database and, when AUTO_MIGRATE is set, migrates it.
// The handle is closed again if migration fails.
func openStore(ctx context.Context, cfg config.Config, migrate func(context.Context, *gorm.DB) error) (*gorm.DB, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrate(ctx, gdb); err != nil {
			if cerr := db.Close(gdb); cerr != nil {
				err = errors.Join(err, cerr)
			}
			return nil, err
		}
	}
	return gdb, nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	gdb, err := openStore(ctx, cfg, db.Migrate)
	if err != nil {
		return err
	}

	pub := newPublisher(cfg, logger)
	idx := newProductIndex(cfg, logger)
	e := newServer(logger, gdb, pub, idx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", "error", err)
		}
	}

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
