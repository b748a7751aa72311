package server

import (
	_ "embed"
	"net/http"
)

//go:embed client.js
var clientScript []byte

func serveClientScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientScript)
}
