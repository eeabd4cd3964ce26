// Package registry keeps the live bidirectional connections of the server,
// keyed by client ID, and fans text messages out to all of them.
//
// Connections are never persisted. A client ID maps to at most one
// [Handle]; connecting again under the same ID replaces (and closes) the
// previous handle.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
)

const defaultSendTimeout = 5 * time.Second

// Close reasons sent to peers.
const (
	ReasonReplaced  = "replaced by a newer connection"
	ReasonSendError = "delivery failed"
	ReasonClosed    = "connection closed"
	ReasonShutdown  = "server shutting down"
)

// Handle is the sending side of one live connection. Implementations must be
// comparable (pointer types) and safe for concurrent SendText calls. Close
// must be idempotent.
type Handle interface {
	SendText(ctx context.Context, msg string) error
	Close(reason string)
}

// Registry maps client IDs to live handles. The zero value is not usable;
// create one with [New].
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Handle

	sendTimeout time.Duration

	logger *logger.Logger
}

func New(logger *logger.Logger) *Registry {
	return &Registry{
		conns:       make(map[string]Handle),
		sendTimeout: defaultSendTimeout,
		logger:      logger,
	}
}

// Connect registers h under id. Any handle previously registered under id is
// closed after it has been replaced.
func (r *Registry) Connect(id string, h Handle) {
	r.mu.Lock()
	old, existed := r.conns[id]
	r.conns[id] = h
	r.mu.Unlock()

	if existed && old != h {
		r.logger.Debug().Str("client_id", id).Msg("connection replaced")
		old.Close(ReasonReplaced)
	}
}

// Disconnect forgets whatever handle is registered under id. It does not
// close the handle and is a no-op for unknown IDs.
func (r *Registry) Disconnect(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

// DisconnectHandle removes id only while it still maps to h, so a session
// that was replaced cannot unregister its successor. It reports whether
// anything was removed.
func (r *Registry) DisconnectHandle(id string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.conns[id]; ok && current == h {
		delete(r.conns, id)
		return true
	}
	return false
}

type target struct {
	id     string
	handle Handle
}

// snapshot copies the current entries so that sends happen without the lock.
func (r *Registry) snapshot() []target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]target, 0, len(r.conns))
	for id, h := range r.conns {
		targets = append(targets, target{id: id, handle: h})
	}
	return targets
}

// Broadcast sends msg to every handle registered when the call started and
// returns how many sends succeeded. Sends run concurrently, each bounded by
// the send timeout. A failing handle is logged, removed and closed; it never
// affects delivery to the others.
func (r *Registry) Broadcast(ctx context.Context, msg string) int {
	targets := r.snapshot()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
	)
	for _, t := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, r.sendTimeout)
			err := t.handle.SendText(sendCtx, msg)
			cancel()

			if err != nil {
				r.logger.Warn().Err(err).Str("client_id", t.id).Msg("broadcast send failed, dropping connection")
				if r.DisconnectHandle(t.id, t.handle) {
					t.handle.Close(ReasonSendError)
				}
				return
			}

			mu.Lock()
			delivered++
			mu.Unlock()
		}()
	}
	wg.Wait()

	return delivered
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes and forgets every connection.
func (r *Registry) CloseAll(reason string) {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]Handle)
	r.mu.Unlock()

	for _, h := range conns {
		h.Close(reason)
	}
}
