package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gaayatricouture/couture/internal/api"
	"github.com/gaayatricouture/couture/internal/content"
	"github.com/gaayatricouture/couture/internal/editor"
	"github.com/gaayatricouture/couture/internal/middleware"
	"github.com/gaayatricouture/couture/internal/notify"
	"github.com/gaayatricouture/couture/internal/session"
	"github.com/gaayatricouture/couture/internal/store"
	"github.com/gaayatricouture/couture/internal/web"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides SERVER_HOST/SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// First run: create an admin so the site can be managed at all.
	if n, err := st.CountUsers(ctx); err != nil {
		return fmt.Errorf("counting users: %w", err)
	} else if n == 0 {
		password, err := createAdmin(ctx, st, defaultAdminEmail)
		if err != nil {
			return err
		}
		printAdminCredentials(cmd.OutOrStdout(), defaultAdminEmail, password)
	}

	jwtSecret, err := secret(ctx, st, cfg.Auth.JWTSecret, store.SettingJWTSecret)
	if err != nil {
		return err
	}
	sessionKey, err := secret(ctx, st, cfg.Auth.SessionKey, store.SettingSessionKey)
	if err != nil {
		return err
	}

	bucket, uploadDir, err := openBucket(ctx, cfg, logger)
	if err != nil {
		return err
	}

	holder, err := loadContent(cfg)
	if err != nil {
		return err
	}

	secure := strings.HasPrefix(cfg.Server.BaseURL, "https://")
	sessions := session.NewService(st, st, jwtSecret, logger)
	ed := editor.NewService(st, bucket, logger)

	// Set up routers.
	apiRouter := api.NewRouter(api.Options{
		Store:    st,
		Sessions: sessions,
		Editor:   ed,
	}, logger)
	webRouter, err := web.NewRouter(web.Options{
		Store:         st,
		Sessions:      sessions,
		Editor:        ed,
		Notifier:      notify.New(notify.NewCookieStore([]byte(sessionKey), secure), logger),
		Content:       holder,
		UploadDir:     uploadDir,
		SecureCookies: secure,
	}, logger)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	listen := addr
	if listen == "" {
		listen = cfg.Server.Address()
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           middleware.Recovery(logger)(middleware.Logging(logger)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", listen).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server forced to shutdown")
		}
		return nil
	})

	if cfg.ContentPath != "" {
		g.Go(func() error {
			return content.Watch(gctx, cfg.ContentPath, holder, logger)
		})
	}

	err = g.Wait()
	logger.Info().Msg("server stopped, closing database")
	return err
}
