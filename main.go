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

	"restx/configs"
	"restx/middlewares"
	"restx/pkg/logger"
	"restx/repository"
	"restx/routes"
	"restx/services"
	"restx/utils"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := configs.LoadConfig()
	log := logger.Setup(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.WithError(err).Fatal("connect database")
	}
	db := configs.DB()

	// migrate + seed
	if err := configs.SetupDatabase(db); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	if err := configs.SeedLookups(db); err != nil {
		log.WithError(err).Fatal("seed lookups")
	}
	if err := configs.SeedOwner(db, cfg); err != nil {
		log.WithError(err).Fatal("seed owner")
	}
	if cfg.SeedFile != "" {
		if err := configs.SeedFromFile(db, cfg.SeedFile, cfg.PublicBaseURL); err != nil {
			log.WithError(err).Fatal("seed file")
		}
	}

	if err := utils.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("register validators")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("create upload dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// realtime
	tableSvc := services.NewTableService(db, repository.NewTableRepository(db), cfg.PublicBaseURL)
	hub := ws.NewHub(tableSvc, log)
	g.Go(func() error { return hub.Run(gctx) })

	if cfg.RabbitMQURL != "" {
		relay, err := ws.DialRelay(cfg.RabbitMQURL, log)
		if err != nil {
			log.WithError(err).Fatal("connect broadcast relay")
		}
		defer relay.Close()
		hub.UseRelay(relay)
		g.Go(func() error { return relay.Consume(gctx, hub.Deliver) })
		log.Info("broadcast relay enabled")
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	routes.RegisterRoutes(r, db, cfg, hub, tableSvc, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
	log.Info("server stopped")
}
