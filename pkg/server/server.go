package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/tally/internal/errors"
	"github.com/vango-dev/tally/pkg/render"
	"github.com/vango-dev/tally/pkg/vdom"
)

// Route paths served by Server.
const (
	WebSocketPath = "/_tally/ws"
	HealthPath    = "/healthz"
)

// Server serves the root component over HTTP and keeps one live session
// per WebSocket connection.
type Server struct {
	config     *ServerConfig
	logger     *slog.Logger
	root       func() vdom.Component
	router     chi.Router
	upgrader   websocket.Upgrader
	middleware []EventMiddleware

	mu       sync.Mutex
	sessions map[string]*Session
	wg       sync.WaitGroup

	httpServer *http.Server
}

// New creates a server. root is called once for every server-rendered page
// and once for every session, so each session owns a fresh component.
func New(config *ServerConfig, root func() vdom.Component) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		logger:   config.Logger.With("component", "server"),
		root:     root,
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.router = s.routes()
	return s
}

// Use appends event middleware. Middleware runs in registration order
// around every handler dispatch. Use must be called before serving.
func (s *Server) Use(mw ...EventMiddleware) {
	s.middleware = append(s.middleware, mw...)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.PageHandler)
	r.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get(render.DefaultClientScript, serveClientScript)
	r.Get(WebSocketPath, s.HandleWebSocket)
	if s.config.MetricsHandler != nil {
		r.Handle(s.config.MetricsPath, s.config.MetricsHandler)
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// PageHandler renders a fresh root component into a full HTML document.
func (s *Server) PageHandler(w http.ResponseWriter, r *http.Request) {
	comp := s.root()
	if u, ok := comp.(vdom.Unmounter); ok {
		defer u.Unmount()
	}

	renderer := render.NewRenderer(render.RendererConfig{Pretty: s.config.DevMode})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := renderer.RenderPage(w, render.PageData{
		Body:  comp.Render(),
		Title: s.config.Title,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

// HandleWebSocket upgrades the connection and runs a session until the
// client disconnects or the server shuts down.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	session := newSession(r.Context(), newSessionID(), path, conn, s.root(), s.config, s.middleware)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.wg.Add(1)
	defer s.wg.Done()

	if s.config.OnSessionStart != nil {
		s.config.OnSessionStart(session.Context(), session)
	}
	s.logger.Info("session started", "session_id", session.ID, "remote", r.RemoteAddr)

	go session.ReadLoop()
	session.EventLoop()

	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	if s.config.OnSessionEnd != nil {
		s.config.OnSessionEnd(session)
	}
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.New("E080").WithDetail(s.config.Address).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("E080").Wrap(err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server within
// ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, session := range s.sessions {
		session.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	// Hijacked WebSocket connections are not tracked by http.Server.
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("server shutdown complete")
	return nil
}

func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
