// Package transport provides the byte-stream connections dhchat runs over.
//
// TCP is the native transport. QUIC carries the same byte protocol on a single
// bidirectional stream.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/TheusHen/dhchat/dhchat/transport/quic"
	"github.com/TheusHen/dhchat/dhchat/transport/tcp"
)

var (
	ErrUnknownKind = errors.New("transport: unknown kind")
)

// Conn is a reliable, ordered, bidirectional byte stream.
type Conn interface {
	io.ReadWriteCloser
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
	SetDeadline(t time.Time) error
}

// Listener accepts inbound connections.
type Listener interface {
	Accept(ctx context.Context) (Conn, error)
	Addr() net.Addr
	Close() error
}

// Kind selects a transport backend.
type Kind string

const (
	KindTCP  Kind = "tcp"
	KindQUIC Kind = "quic"
)

// ParseKind accepts "tcp" or "quic" in any case. The empty string selects TCP.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindTCP:
		return KindTCP, nil
	case KindQUIC:
		return KindQUIC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) String() string { return string(k) }

// Listen binds addr with the given backend.
func Listen(ctx context.Context, kind Kind, addr string) (Listener, error) {
	switch kind {
	case KindTCP, "":
		ln, err := tcp.Listen(ctx, addr)
		if err != nil {
			return nil, err
		}
		return tcpListener{ln}, nil
	case KindQUIC:
		ln, err := quic.Listen(addr)
		if err != nil {
			return nil, err
		}
		return quicListener{ln}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Dial opens one outbound connection to addr.
func Dial(ctx context.Context, kind Kind, addr string) (Conn, error) {
	switch kind {
	case KindTCP, "":
		return tcp.Dial(ctx, addr)
	case KindQUIC:
		c, err := quic.Dial(ctx, addr)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

type tcpListener struct{ *tcp.Listener }

func (l tcpListener) Accept(ctx context.Context) (Conn, error) {
	return l.Listener.Accept(ctx)
}

type quicListener struct{ *quic.Listener }

func (l quicListener) Accept(ctx context.Context) (Conn, error) {
	c, err := l.Listener.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}
