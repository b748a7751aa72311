// Package config loads tally configuration files.
//
// Configuration lives in tally.yaml (or tally.yml / tally.json) at the
// project root. Every field is optional; missing values take the defaults
// returned by New.
//
//	server:
//	  host: localhost
//	  port: 3000
//	  shutdownTimeout: 10s
//	counter:
//	  message: Count
//	  step: 1
//	card:
//	  title: Welcome
//	  description: Click the counter
//	  payload: Served by tally
//	metrics:
//	  enabled: true
//	  path: /metrics
//	  namespace: tally
//	tracing:
//	  enabled: false
//	  tracerName: tally
//	log:
//	  level: info
//	  format: text
//	dev: false
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	logger := cfg.Log.NewLogger(os.Stderr)
package config
