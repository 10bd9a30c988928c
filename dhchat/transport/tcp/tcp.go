// Package tcp implements the TCP transport.
package tcp

import (
	"context"
	"net"
)

type Listener struct {
	inner net.Listener
}

func Listen(ctx context.Context, addr string) (*Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept waits for one inbound connection. Cancelling ctx closes the listener.
func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		c, err := l.inner.Accept()
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		return r.conn, r.err
	case <-ctx.Done():
		_ = l.inner.Close()
		if r := <-done; r.conn != nil {
			_ = r.conn.Close()
		}
		return nil, ctx.Err()
	}
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) Close() error { return l.inner.Close() }

func Dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}
