package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"
)

// WSConn adapts a websocket connection to [Handle].
type WSConn struct {
	conn      *websocket.Conn
	closeOnce sync.Once
}

func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

func (c *WSConn) SendText(ctx context.Context, msg string) error {
	return c.conn.Write(ctx, websocket.MessageText, []byte(msg))
}

func (c *WSConn) Close(reason string) {
	c.closeOnce.Do(func() {
		_ = c.conn.Close(websocket.StatusNormalClosure, reason)
	})
}

// ServeChat registers conn under clientID and relays every text frame it
// receives to all connections as "<clientID>: <text>". It blocks until the
// peer goes away or ctx ends, then unregisters the connection.
func (r *Registry) ServeChat(ctx context.Context, clientID string, conn *websocket.Conn) {
	handle := NewWSConn(conn)
	r.Connect(clientID, handle)
	defer func() {
		r.DisconnectHandle(clientID, handle)
		handle.Close(ReasonClosed)
	}()

	log := r.logger.With().Str("client_id", clientID).Logger()
	log.Info().Msg("chat client connected")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if !isNormalClose(err) {
				log.Debug().Err(err).Msg("chat read ended")
			}
			log.Info().Msg("chat client disconnected")
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		r.Broadcast(ctx, fmt.Sprintf("%s: %s", clientID, data))
	}
}

func isNormalClose(err error) bool {
	status := websocket.CloseStatus(err)
	return status == websocket.StatusNormalClosure ||
		status == websocket.StatusGoingAway ||
		errors.Is(err, context.Canceled)
}
