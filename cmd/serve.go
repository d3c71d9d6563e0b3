package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AdityaD28/portfolio/internal/admin"
	"github.com/AdityaD28/portfolio/internal/config"
	"github.com/AdityaD28/portfolio/internal/content"
	"github.com/AdityaD28/portfolio/internal/logger"
	"github.com/AdityaD28/portfolio/internal/session"
	"github.com/AdityaD28/portfolio/internal/store"
	"github.com/AdityaD28/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// runServer blocks until SIGINT/SIGTERM or a listener error.
func runServer() error {
	log := logger.New("portfolio")
	zlog.Logger = log

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if cfg.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	p, err := content.Load(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	resolver, err := newResolver(cfg, p)
	if err != nil {
		return err
	}
	sender := newSender(cfg, p)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var adm *admin.Admin
	if cfg.TrackingEnabled {
		adm, err = admin.New(st, admin.Config{
			Username:  cfg.AdminUsername,
			Password:  cfg.AdminPassword,
			Retention: cfg.Retention,
			Dev:       cfg.Environment == config.EnvDevelopment,
		})
		if err != nil {
			return err
		}
	}

	sessions := session.NewStore(newBuilders(cfg, p, resolver, sender), cfg.SessionTTL)
	sessions.SetLimit(cfg.MaxSessions)
	sessions.StartJanitor(time.Minute)
	defer sessions.Close()

	router := web.NewRouter(web.Deps{
		Portfolio: p,
		Sessions:  sessions,
		Events:    st,
		Admin:     adm,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if adm != nil {
		go runCleanup(ctx, adm)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.HTTPPort).
			Str("resolver", resolver.Name()).
			Str("contact", sender.Name()).
			Msg("Portfolio server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		if err != nil {
			log.Error().Stack().Err(err).Msg("HTTP server failed")
		}
		return err
	}
}

// runCleanup applies the analytics retention window once a day.
func runCleanup(ctx context.Context, adm *admin.Admin) {
	adm.Cleanup(ctx)
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			adm.Cleanup(ctx)
		case <-ctx.Done():
			return
		}
	}
}

