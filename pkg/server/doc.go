// Package server serves a root component over HTTP and keeps it live over
// WebSocket.
//
// # Routes
//
//   - GET /                server-rendered page with the live client script
//   - GET /_tally/client.js embedded live client
//   - GET /_tally/ws       WebSocket session
//   - GET /healthz         "ok"
//   - GET /metrics         ServerConfig.MetricsHandler, when set
//
// # Sessions
//
// Every WebSocket connection mounts a fresh root component and sends its
// first Render frame. The session runs two goroutines:
//
//   - ReadLoop: receives frames, decodes events, queues them
//   - EventLoop: dispatches events through the middleware chain, re-renders
//     when the root component marked itself dirty, sends heartbeat pings
//
// The component is only touched by EventLoop, so activations of one session
// never interleave. Unknown handlers and malformed frames are reported as
// Error frames and the session carries on.
//
// # Example
//
//	srv := server.New(&server.ServerConfig{Address: ":3000"}, func() vdom.Component {
//	    return components.NewCounter(components.CounterProps{Message: "Count"})
//	})
//	srv.Use(middleware.Prometheus())
//	err := srv.Run(ctx)
package server
