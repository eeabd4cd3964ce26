// Package http implements the HTTP transport layer of the go-auth-hub server.
//
// It exposes route wiring, request handlers, and middleware for the REST API
// and the chat websocket. Request tracing, access logging, panic recovery,
// request timeouts and bearer authentication are handled here before requests
// are delegated to the service layer. This package is the only place where
// service error kinds become HTTP status codes (see statusFromError).
package http
