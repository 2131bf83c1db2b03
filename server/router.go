// Package server assembles the HTTP router: global middleware, CORS, swagger UI and the
// public and session-protected route groups.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/auth"
	_ "github.com/user/todoquest-go/docs" // registers the swagger spec
	"github.com/user/todoquest-go/logging"
	"github.com/user/todoquest-go/todos"
	"github.com/user/todoquest-go/users"
)

// HealthMessage is the plain-text body of GET /.
const HealthMessage = "Todo List API is running"

// Server timeouts. RequestTimeout stays below WriteTimeout so a slow handler is
// answered with 504 before the connection's write deadline passes.
const (
	RequestTimeout = 10 * time.Second
	ReadTimeout    = 15 * time.Second
	WriteTimeout   = RequestTimeout + 5*time.Second
	IdleTimeout    = 60 * time.Second
)

// Deps are the constructed handlers and collaborators the router mounts.
type Deps struct {
	Auth           *auth.Handlers
	Sessions       *auth.SessionAuthority
	Todos          *todos.Handler
	Users          *users.UserHandlers
	Logger         logging.Logger
	AllowedOrigins []string
}

// NewHTTPServer wraps handler in an *http.Server listening on addr.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}
}

// NewRouter builds the application's chi router.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(recoverJSON(log))
	r.Use(middleware.Timeout(RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		// Bearer tokens travel in a header, cookies are never needed.
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(HealthMessage))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	mount := routes(d, log)
	mount(r)
	r.Route("/api", mount)

	return r
}

// routes returns a function registering the API on a router, so the same tree can be
// mounted at the root and under /api.
func routes(d Deps, log logging.Logger) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/register", d.Auth.HandleRegister())
		r.Post("/login", d.Auth.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(d.Sessions, log))

			r.Route("/todos", d.Todos.RegisterRoutes)
			r.Get("/users/me", d.Users.HandleGetUserProfile())
		})
	}
}

// accessLog writes one structured line per request once the response is complete.
func accessLog(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// recoverJSON turns a panic in a handler into a 500 with the usual error body.
func recoverJSON(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.Error(r.Context(), "panic recovered",
					"panic", fmt.Sprint(rvr),
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
				auth.WriteError(w, r, apperror.NewInternalError("Internal server error", nil))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
