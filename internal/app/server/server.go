package server

import (
	"context"
	"errors"
	"huddle/internal/app/server/handlers"
	"huddle/pkg/middleware"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	log        *slog.Logger
	app        string
	router     chi.Router
	httpServer *http.Server
	tokens     middleware.TokenValidator
	authReq    bool
	groups     *handlers.GroupHandler
	messages   *handlers.MessageHandler
	presence   *handlers.PresenceHandler
	ws         *handlers.WSHandler
}

type Handlers struct {
	Groups   *handlers.GroupHandler
	Messages *handlers.MessageHandler
	Presence *handlers.PresenceHandler
	WS       *handlers.WSHandler
}

func NewServer(
	log *slog.Logger,
	app string,
	addr string,
	tokens middleware.TokenValidator,
	authRequired bool,
	h Handlers,
) *Server {
	s := &Server{
		log:      log,
		app:      app,
		router:   chi.NewRouter(),
		tokens:   tokens,
		authReq:  authRequired,
		groups:   h.Groups,
		messages: h.Messages,
		presence: h.Presence,
		ws:       h.WS,
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.TracerMiddleware(s.app))
	r.Use(middleware.RequestLogger(s.log))

	// Public
	r.Get("/healthz", handlers.Health)

	// Identified
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(s.tokens, s.authReq))
		r.Get("/ws", s.ws.Handler)
		r.Get("/api/presence", s.presence.Online)

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", s.groups.Create)
			r.Get("/", s.groups.List)
			r.Delete("/messages/{messageID}", s.messages.DeleteGroup)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.groups.Get)
				r.Put("/", s.groups.Update)
				r.Delete("/", s.groups.Delete)
				r.Post("/members", s.groups.AddMembers)
				r.Delete("/members/{memberID}", s.groups.RemoveMember)
				r.Post("/messages", s.messages.SendGroup)
				r.Get("/messages", s.messages.ListGroup)
			})
		})

		r.Route("/api/messages", func(r chi.Router) {
			// {id} is a message id for DELETE and a peer user id otherwise.
			r.Delete("/{id}", s.messages.DeleteDirect)
			r.Post("/{id}", s.messages.SendDirect)
			r.Get("/{id}", s.messages.Conversation)
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info("server - start - listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server - shutdown - draining")
	return s.httpServer.Shutdown(ctx)
}
