package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tarefahub-io/tarefahub/internal/auth"
	"github.com/tarefahub-io/tarefahub/internal/config"
	"github.com/tarefahub-io/tarefahub/internal/tasks"
	"github.com/tarefahub-io/tarefahub/internal/web"
)

type Api struct {
	Config config.Config
	Router *chi.Mux

	tokens *auth.TokenManager
	users  *auth.Service
	tasks  tasks.Store
}

func NewApi(cfg config.Config, db *sql.DB) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, fmt.Errorf("must have at least a port to start API")
	}

	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		tokens: auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		users:  auth.NewService(auth.NewUserStore(db, cfg.Database.Type)),
		tasks:  tasks.NewStore(db, cfg.Database.Type),
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Public routes
	r.Post("/login", api.LoginHandler)
	r.Post("/register", api.RegisterHandler)
	r.Post("/logout", api.LogoutHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(api.BearerAuthMiddleware)

		r.Get("/me", api.CurrentUserHandler)
		r.Get("/auth/verificar", api.CurrentUserHandler)

		r.Route("/tarefas", func(r chi.Router) {
			r.Get("/", api.ListTasksHandler)
			r.Post("/", api.CreateTaskHandler)
			r.Put("/{id}", api.UpdateTaskHandler)
			r.Delete("/{id}", api.DeleteTaskHandler)
		})
	})

	// The single-page client is served for everything else.
	web.Mount(r)
}

// Serve starts the HTTP server and blocks until shutdown.
func (api *Api) Serve() error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort),
		Handler: api.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
