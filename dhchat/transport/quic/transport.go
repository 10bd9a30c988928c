// Package quic carries the dhchat byte protocol over a single QUIC stream.
package quic

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"

	q "github.com/quic-go/quic-go"
)

// DefaultLinger bounds how long Close waits for the peer to finish reading
// before tearing the connection down.
const DefaultLinger = 2 * time.Second

type Listener struct {
	inner *q.Listener
}

func Listen(addr string) (*Listener, error) {
	tlsConf, err := ListenerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept waits for a connection and its first stream.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	conn, err := l.inner.Accept(ctx)
	if err != nil {
		return nil, err
	}
	st, err := conn.AcceptStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "")
		return nil, err
	}
	return newConn(conn, st), nil
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) Close() error { return l.inner.Close() }

func Dial(ctx context.Context, addr string) (*Conn, error) {
	conn, err := q.DialAddr(ctx, addr, DialerTLSConfig(), &q.Config{})
	if err != nil {
		return nil, err
	}
	st, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "")
		return nil, err
	}
	return newConn(conn, st), nil
}

// Conn adapts one QUIC stream to a net.Conn-like byte stream. A peer closing
// the connection with application code 0 reads as io.EOF.
type Conn struct {
	conn    q.Connection
	stream  q.Stream
	linger  time.Duration
	readEOF atomic.Bool
	closed  atomic.Bool
}

func newConn(conn q.Connection, st q.Stream) *Conn {
	return &Conn{conn: conn, stream: st, linger: DefaultLinger}
}

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.stream.Read(p)
	if err != nil {
		var appErr *q.ApplicationError
		if errors.As(err, &appErr) && appErr.ErrorCode == 0 {
			err = io.EOF
		}
		if errors.Is(err, io.EOF) {
			c.readEOF.Store(true)
		}
	}
	return n, err
}

func (c *Conn) Write(p []byte) (int, error) { return c.stream.Write(p) }

// Close finishes the send side and closes the connection once the peer has
// closed too, or after the linger period.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := c.stream.Close()
	if !c.readEOF.Load() {
		t := time.NewTimer(c.linger)
		select {
		case <-c.conn.Context().Done():
		case <-t.C:
		}
		t.Stop()
	}
	if cerr := c.conn.CloseWithError(0, ""); err == nil {
		err = cerr
	}
	return err
}

func (c *Conn) LocalAddr() net.Addr { return c.conn.LocalAddr() }

func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

func (c *Conn) SetDeadline(t time.Time) error { return c.stream.SetDeadline(t) }
