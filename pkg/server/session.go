package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tally/internal/errors"
	"github.com/vango-dev/tally/pkg/protocol"
	"github.com/vango-dev/tally/pkg/reactive"
	"github.com/vango-dev/tally/pkg/render"
	"github.com/vango-dev/tally/pkg/vdom"
)

// ErrEventQueueFull is returned when a session cannot buffer another event.
var ErrEventQueueFull = stderrors.New("server: event queue full")

// Session is one live WebSocket connection with its own root component.
//
// The root component is only touched by the session's event loop, so the
// events of a session are handled one at a time, in arrival order.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Path is the page path the client connected from.
	Path string

	// CreatedAt is when the session was mounted.
	CreatedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc

	conn     *websocket.Conn
	config   *ServerConfig
	logger   *slog.Logger
	mw       []EventMiddleware
	root     vdom.Component
	renderer *render.Renderer
	handlers map[string]any

	unsubscribe func()
	dirty       atomic.Bool

	events chan protocol.Event
	done   chan struct{}
	closed atomic.Bool

	writeMu sync.Mutex
	seq     uint64

	eventCount  atomic.Uint64
	renderCount atomic.Uint64
}

// newSession creates a session whose context carries the values of parent
// and is cancelled when the session closes.
func newSession(parent context.Context, id, path string, conn *websocket.Conn, root vdom.Component, config *ServerConfig, mw []EventMiddleware) *Session {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	s := &Session{
		ID:        id,
		Path:      path,
		CreatedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		conn:      conn,
		config:    config,
		logger:    config.Logger.With("component", "session", "session_id", id),
		mw:        mw,
		root:      root,
		renderer:  render.NewRenderer(render.RendererConfig{}),
		handlers:  make(map[string]any),
		events:    make(chan protocol.Event, config.MaxEventQueue),
		done:      make(chan struct{}),
	}
	if obs, ok := root.(reactive.Observable); ok {
		s.unsubscribe = obs.Subscribe(reactive.ListenerFunc(func() {
			s.dirty.Store(true)
		}))
	}
	return s
}

// Context returns the session context. It carries the values of the
// upgrade request and is cancelled when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

// Events returns the number of events the session has dispatched.
func (s *Session) Events() uint64 { return s.eventCount.Load() }

// Renders returns the number of Render frames the session has sent.
func (s *Session) Renders() uint64 { return s.renderCount.Load() }

// Done returns a channel that is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// IsClosed reports whether the session has ended.
func (s *Session) IsClosed() bool { return s.closed.Load() }

// ReadLoop receives frames from the client and queues events for the
// event loop. It returns when the connection fails or the session closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		if msgType != websocket.BinaryMessage {
			s.sendError(errors.New("E060").WithDetail("expected a binary frame"))
			continue
		}

		ev, err := protocol.DecodeEvent(data)
		if err != nil {
			s.logger.Debug("event decode error", "error", err)
			s.sendError(errors.New("E060").Wrap(err))
			continue
		}

		if err := s.queue(ev); err != nil {
			s.logger.Warn("event queue full, dropping event", "hid", ev.HID, "event", ev.Event)
		}
	}
}

func (s *Session) queue(ev protocol.Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return nil
	default:
		return ErrEventQueueFull
	}
}

// EventLoop sends the initial render, then dispatches queued events and
// heartbeat pings until the session closes.
func (s *Session) EventLoop() {
	defer s.unmount()
	defer s.Close()

	if err := s.render(); err != nil {
		s.logger.Error("initial render failed", "error", err)
		return
	}

	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// handleEvent runs the handler registered for ev through the middleware
// chain and pushes a new render when the root component became dirty.
func (s *Session) handleEvent(ev protocol.Event) {
	s.eventCount.Add(1)

	key := ev.HID + "_on" + ev.Event
	handler, ok := s.handlers[key]
	if !ok {
		s.logger.Warn("handler not found", "hid", ev.HID, "event", ev.Event, "key", key)
		s.sendError(errors.New("E061").WithDetail(key))
		return
	}

	ctx := NewEventContext(s.ctx, s, ev.HID, ev.Event)
	err := chain(ctx, s.mw, func() error {
		return s.safeExecute(handler, ev)
	})()
	if err != nil {
		s.sendError(errors.FromError(err, "E001"))
	}

	if s.dirty.Swap(false) {
		if err := s.render(); err != nil {
			s.logger.Error("render failed", "error", err)
		}
	}
}

// safeExecute runs a handler with panic recovery.
func (s *Session) safeExecute(handler any, ev protocol.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", ev.HID,
				"event", ev.Event,
				"stack", string(debug.Stack()))
			err = errors.New("E001").WithDetailf("%v", r)
		}
	}()

	if !vdom.Invoke(handler, vdom.Event{Type: ev.Event, Target: ev.HID}) {
		return errors.New("E061").WithDetailf("unsupported handler type %T", handler)
	}
	return nil
}

// render renders the root component, refreshes the handler registry and
// sends the markup as a Render frame.
func (s *Session) render() error {
	html, err := s.renderer.RenderToString(s.root.Render())
	if err != nil {
		return err
	}
	s.handlers = s.renderer.GetHandlers()

	s.seq++
	frame, err := protocol.EncodeRender(protocol.Render{Seq: s.seq, HTML: html})
	if err != nil {
		return errors.New("E062").Wrap(err)
	}
	if err := s.write(websocket.BinaryMessage, frame); err != nil {
		return err
	}
	s.renderCount.Add(1)
	return nil
}

// sendError reports err to the client as an Error frame.
func (s *Session) sendError(err *errors.TallyError) {
	msg := err.Message
	switch {
	case err.Detail != "":
		msg = fmt.Sprintf("%s: %s", msg, err.Detail)
	case err.Wrapped != nil:
		msg = fmt.Sprintf("%s: %v", msg, err.Wrapped)
	}
	frame, encErr := protocol.EncodeError(protocol.ErrorMessage{Code: err.Code, Message: msg})
	if encErr != nil {
		s.logger.Error("error frame encode failed", "error", encErr)
		return
	}
	if werr := s.write(websocket.BinaryMessage, frame); werr != nil {
		s.logger.Debug("error frame write failed", "error", werr)
	}
}

func (s *Session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

func (s *Session) write(msgType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(msgType, data)
}

// unmount releases the root component. Called by the event loop on exit.
func (s *Session) unmount() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if u, ok := s.root.(vdom.Unmounter); ok {
		u.Unmount()
	}
	s.handlers = nil
}

// Close ends the session and closes the connection. It is safe to call
// more than once and from any goroutine.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.cancel()

	s.writeMu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.conn.Close()
	s.writeMu.Unlock()

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"renders", s.renderCount.Load(),
		"duration", time.Since(s.CreatedAt))
}
