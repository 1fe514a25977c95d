package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/admin"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/config"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/middleware"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvpclient"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/session"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.LoadSite()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.SetLevel(cfg.Level())

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.SessionDBPath), 0755); err != nil {
		log.WithError(err).Fatal("failed to create session db directory")
	}

	sessions, err := session.NewBBoltStore(cfg.SessionDBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open session store")
	}
	defer sessions.Close()

	client := rsvpclient.New(cfg.CollaboratorURL,
		rsvpclient.WithHTTPClient(&http.Client{Timeout: cfg.CollaboratorTimeout}),
	)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	r.Use(middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	web.RegisterHandlers(r, web.NewHandler(client, web.Event{
		Date:         cfg.WeddingDate,
		RSVPDeadline: cfg.RSVPDeadline,
	}))

	srv := &http.Server{
		Handler:           r,
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	adminRouter := gin.New()
	adminRouter.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	admin.RegisterHandlers(adminRouter, admin.NewHandler(admin.NewGate(client, sessions)))

	adminSrv := &http.Server{
		Handler:           adminRouter,
		Addr:              net.JoinHostPort("0.0.0.0", cfg.AdminPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	go func() {
		log.WithField("addr", adminSrv.Addr).Info("starting admin server")
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("admin server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("admin server shutdown error")
	}
}
