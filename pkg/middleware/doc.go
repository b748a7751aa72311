// Package middleware provides observability middleware for tally event
// dispatch.
//
// # Prometheus Metrics
//
// Metrics collects:
//   - tally_events_total: events dispatched, by event and status
//   - tally_event_duration_seconds: dispatch duration, by event
//   - tally_event_errors_total: failed dispatches, by event and error code
//   - tally_active_sessions: live WebSocket sessions
//   - tally_sessions_total: sessions opened
//   - tally_renders_total: Render frames sent by closed sessions
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	srv := server.New(&server.ServerConfig{
//	    MetricsHandler: m.Handler(),
//	    OnSessionStart: m.SessionStarted,
//	    OnSessionEnd:   m.SessionEnded,
//	}, root)
//	srv.Use(m.Middleware())
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span around every event and stores the span
// context on the EventContext, so handlers downstream can read it with
// SpanFromContext or TraceContext.
//
//	srv.Use(middleware.OpenTelemetry(middleware.WithTracerName("tally")))
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the provider in main before starting the server.
package middleware
