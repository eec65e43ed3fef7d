package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/kreeda/idcard/internal/api"
	"github.com/kreeda/idcard/internal/config"
	imagepkg "github.com/kreeda/idcard/internal/image"
	"github.com/kreeda/idcard/internal/logger"
	"github.com/kreeda/idcard/internal/payment"
	"github.com/kreeda/idcard/internal/registration"
	"github.com/kreeda/idcard/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "idcard:", err)
		os.Exit(1)
	}
}

func run() error {
	confPath := os.Getenv("IDCARD_CONFIG")
	if confPath == "" {
		confPath = "config.yml"
	}
	conf, err := config.Load(confPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}
	if err := logger.Init(conf.Log.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer zap.L().Sync() //nolint:errcheck

	// Photo directory and log file are created up front, like on first run.
	photos, err := storage.NewPhotoDir(conf.Paths.Photos)
	if err != nil {
		return err
	}
	subLog, err := storage.OpenCSVLog(conf.Paths.Log)
	if err != nil {
		return err
	}

	catalog := payment.NewCatalog(paymentSources(conf))

	bold := imagepkg.LoadFont(conf.Paths.Asset(conf.Fonts.Bold), conf.Fonts.BoldSize)
	regular := imagepkg.LoadFont(conf.Paths.Asset(conf.Fonts.Regular), conf.Fonts.RegularSize)
	compositor := imagepkg.NewCompositor(imagepkg.DefaultLayout(), bold, regular)

	svc := registration.NewService(photos, subLog, catalog, compositor, conf.Paths.Asset(conf.Paths.Template))
	h := api.NewHandler(svc, catalog, subLog, conf.Paths.Asset(conf.Paths.Logo))
	s := api.NewServer(conf, h)

	srv := &http.Server{
		Addr:         ":" + conf.HTTP.Port,
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", "http://localhost:"+conf.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start the server -> %w", err)
	case <-quit:
	}

	zap.L().Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func paymentSources(conf *config.AppConfig) map[registration.Contest]payment.Source {
	out := map[registration.Contest]payment.Source{}
	for _, c := range registration.Contests {
		cc, ok := conf.Contests[c.Slug()]
		if !ok {
			continue
		}
		out[c] = payment.Source{
			Asset:      conf.Paths.Asset(cc.QR),
			PaymentURI: cc.PaymentURI,
		}
	}
	return out
}
