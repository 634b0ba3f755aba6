// Package ws owns one client's streaming connection: it decodes inbound
// frames, forwards the structured requests to the hub, serializes
// hub-originated events back onto the wire, and watches liveness with a
// ping/pong heartbeat.
package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

// Conn abstracts the transport under a session for testability. A
// liveness signal is any inbound ping or pong control frame.
type Conn interface {
	// ReadFrame blocks until the next text frame arrives.
	ReadFrame() (string, error)

	// WriteFrame writes one text frame. Must be safe for concurrent use.
	WriteFrame(frame string) error

	// WritePing writes a ping control frame.
	WritePing() error

	// SetLivenessHandler registers the callback invoked on every inbound
	// ping or pong. Must be called before the first ReadFrame.
	SetLivenessHandler(fn func())

	// Close tears down the transport. Safe to call more than once.
	Close() error
}

// ErrNonTextFrame is returned when a client sends a binary frame; the
// protocol is text-only.
var ErrNonTextFrame = errors.New("unexpected non-text frame")

// GorillaConn adapts a gorilla/websocket connection to Conn.
type GorillaConn struct {
	conn *websocket.Conn
}

// NewGorillaConn wraps an upgraded websocket connection.
func NewGorillaConn(conn *websocket.Conn) *GorillaConn {
	return &GorillaConn{conn: conn}
}

// ReadFrame blocks until the next text frame. Control frames are handled
// by the registered gorilla handlers during the read.
func (g *GorillaConn) ReadFrame() (string, error) {
	messageType, data, err := g.conn.ReadMessage()
	if err != nil {
		return "", err
	}

	if messageType != websocket.TextMessage {
		return "", ErrNonTextFrame
	}

	return string(data), nil
}

// WriteFrame writes one text frame. gorilla connections do not support
// concurrent writers; the session guards writes with its own mutex.
func (g *GorillaConn) WriteFrame(frame string) error {
	return g.conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// WritePing writes a ping control frame.
func (g *GorillaConn) WritePing() error {
	return g.conn.WriteMessage(websocket.PingMessage, nil)
}

// SetLivenessHandler wires inbound ping/pong frames to fn. The default
// gorilla ping handler already answers with a pong; this keeps that
// behavior and additionally records the liveness signal.
func (g *GorillaConn) SetLivenessHandler(fn func()) {
	pong := g.conn.PingHandler()

	g.conn.SetPingHandler(func(appData string) error {
		fn()

		return pong(appData)
	})

	g.conn.SetPongHandler(func(string) error {
		fn()

		return nil
	})
}

// Close tears down the underlying connection.
func (g *GorillaConn) Close() error {
	return g.conn.Close()
}

// Ensure GorillaConn implements Conn.
var _ Conn = (*GorillaConn)(nil)
