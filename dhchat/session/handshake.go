package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/TheusHen/dhchat/dhchat/crypto"
	"github.com/TheusHen/dhchat/dhchat/protocol"
)

var (
	ErrHandshake = errors.New("session: handshake failed")
)

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Exchange writes localPublic and then reads the peer's public key. Both roles
// call it the same way; eight bytes always fit in the send buffer, so two
// peers writing at once do not block each other.
func Exchange(rw io.ReadWriter, localPublic uint64) (uint64, error) {
	if err := protocol.WritePublicKey(rw, localPublic); err != nil {
		return 0, fmt.Errorf("send public key: %w", err)
	}
	peer, err := protocol.ReadPublicKey(rw)
	if err != nil {
		return 0, fmt.Errorf("receive public key: %w", err)
	}
	return peer, nil
}

// Handshake generates a keypair, exchanges public keys over conn and derives
// the session channel. Cancelling ctx aborts a blocked exchange. Any failure is
// final; the caller should close conn.
func Handshake(ctx context.Context, conn io.ReadWriteCloser, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	s := newSession(conn, opts)

	kp, err := crypto.GenerateKeyPair(opts.Params, opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	s.local = kp
	s.log.Debug("generated keypair", "public", protocol.PublicKeyHex(kp.PublicKey))

	stop := interruptOnDone(ctx, conn)
	peer, err := Exchange(conn, kp.PublicKey)
	interrupted := !stop()
	if interrupted {
		if d, ok := conn.(deadliner); ok {
			_ = d.SetDeadline(time.Time{})
		}
	}
	if err != nil {
		if interrupted && ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	s.peerPublic = peer

	secret := kp.Secret(opts.Params, peer)
	ch, err := crypto.NewChannel(opts.Params, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	s.channel = ch
	s.state.Store(int32(StateEstablished))

	s.log.Info("secure channel established",
		"peer_public", protocol.PublicKeyHex(peer),
		"fingerprint", crypto.Fingerprint(secret))
	return s, nil
}

// interruptOnDone unblocks I/O on conn once ctx is done, by expiring its
// deadline when it has one and closing it otherwise. The returned stop
// reports false if the interruption already happened.
func interruptOnDone(ctx context.Context, conn io.Closer) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		if d, ok := conn.(deadliner); ok {
			_ = d.SetDeadline(time.Unix(1, 0))
			return
		}
		_ = conn.Close()
	})
}
