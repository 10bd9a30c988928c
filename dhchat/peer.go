package dhchat

import (
	"context"
	"errors"
	"time"

	"github.com/TheusHen/dhchat/dhchat/protocol"
	"github.com/TheusHen/dhchat/dhchat/session"
	"github.com/TheusHen/dhchat/dhchat/transport"
)

var (
	ErrNotListening = errors.New("dhchat: peer is not listening")
)

// Peer combines a transport with the session handshake.
type Peer struct {
	Transport transport.Kind
	Options   session.Options
	// HandshakeTimeout bounds the key exchange once a connection is up.
	// Zero means no limit.
	HandshakeTimeout time.Duration

	listener transport.Listener
}

func NewPeer(kind transport.Kind, opts session.Options) *Peer {
	return &Peer{Transport: kind, Options: opts}
}

func (p *Peer) Listen(ctx context.Context, addr string) error {
	ln, err := transport.Listen(ctx, p.Transport, addr)
	if err != nil {
		return err
	}
	p.listener = ln
	return nil
}

func (p *Peer) Close() error {
	if p.listener == nil {
		return nil
	}
	return p.listener.Close()
}

func (p *Peer) ListenAddr() string {
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// Accept waits for one inbound connection and runs the listener side of the
// handshake on it.
func (p *Peer) Accept(ctx context.Context) (*session.Session, error) {
	if p.listener == nil {
		return nil, ErrNotListening
	}
	conn, err := p.listener.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return p.handshake(ctx, conn, protocol.RoleListener)
}

// Dial connects to addr and runs the dialer side of the handshake.
func (p *Peer) Dial(ctx context.Context, addr string) (*session.Session, error) {
	conn, err := transport.Dial(ctx, p.Transport, addr)
	if err != nil {
		return nil, err
	}
	return p.handshake(ctx, conn, protocol.RoleDialer)
}

func (p *Peer) handshake(ctx context.Context, conn transport.Conn, role protocol.Role) (*session.Session, error) {
	if p.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.HandshakeTimeout)
		defer cancel()
	}
	opts := p.Options
	opts.Role = role
	sess, err := session.Handshake(ctx, conn, opts)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return sess, nil
}
