package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	_ "github.com/artem13815/internhub/docs"

	apihttp "github.com/artem13815/internhub/api/http"
	"github.com/artem13815/internhub/api/http/handlers"
	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/auth"
	"github.com/artem13815/internhub/pkg/security/jwt"
)

const shutdownTimeout = 30 * time.Second

var serveWithWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the HTTP API. Enrichment runs according to ENRICH_MODE; with --worker the process also consumes the queue.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "worker", false, "also consume enrichment jobs from RabbitMQ")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, bootOptions{migrate: true, queue: serveWithWorker})
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, log := rt.cfg, rt.log

	app := fiber.New(fiber.Config{
		AppName:      "internhub",
		BodyLimit:    int(cfg.HTTP.MaxUploadBytes) + 1<<20, // форма поверх файла
		ErrorHandler: apihttp.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(apihttp.RequestLogger(log))

	jwtGen := jwt.NewGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	authUC := auth.NewAuthService(auth.Credentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, jwtGen)

	apihttp.Register(app, apihttp.Handlers{
		Auth:        handlers.NewAuthHandler(authUC),
		Health:      handlers.NewHealthHandler(rt.readiness()),
		Application: handlers.NewApplicationHandler(rt.svc, cfg.HTTP.MaxUploadBytes, cfg.HTTP.PublicURL),
		Admin:       handlers.NewAdminHandler(rt.svc),
	}, apihttp.Guards{
		Admin:  []fiber.Handler{jwt.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer), jwt.RequireAdmin()},
		Submit: apihttp.NewIPLimiter(cfg.HTTP.SubmitPerMinute, cfg.HTTP.SubmitBurst).Handler(),
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTP.Port).Str("store", rt.driver).Str("enrich_mode", cfg.Enrich.Mode).Msg("HTTP server listening")
		return app.Listen(":" + cfg.HTTP.Port)
	})
	if serveWithWorker && rt.mq != nil {
		g.Go(func() error {
			return rt.mq.Consume(gctx, enrichHandler(rt.svc))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
		// Фоновое обогащение дописывает результаты до закрытия хранилища.
		waitWithTimeout(rt.svc, shutdownTimeout)
		return nil
	})
	return g.Wait()
}

func waitWithTimeout(svc *application.Service, d time.Duration) {
	done := make(chan struct{})
	go func() {
		svc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
	}
}
