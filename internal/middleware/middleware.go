// Package middleware provides the HTTP middleware for the blog server.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSONMessage(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(messageResponse{Message: message})
}

// clientIP is the host part of the connection address. Forwarding headers
// are only honored through chi's RealIP, which the router installs when
// TRUST_PROXY is set and which rewrites RemoteAddr itself.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
