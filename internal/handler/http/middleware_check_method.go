// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
)

var (
	errRouteNotFound    = errors.New("not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

// notFound answers unknown routes with the failure envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, r, http.StatusNotFound, errRouteNotFound)
}

// methodNotAllowed answers known routes called with an unsupported method.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, r, http.StatusMethodNotAllowed, errMethodNotAllowed)
}
