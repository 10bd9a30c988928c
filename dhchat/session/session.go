package session

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/TheusHen/dhchat/dhchat/crypto"
	"github.com/TheusHen/dhchat/dhchat/protocol"
)

// Options configures a session. The zero value uses the default protocol
// parameters, crypto/rand and slog.Default.
type Options struct {
	Params crypto.Parameters
	Rand   io.Reader
	Role   protocol.Role
	Logger *slog.Logger

	// OnSend is called from the send loop after a line has been written.
	OnSend func(Message)
	// OnReceive is called from the receive loop for every decrypted chunk.
	OnReceive func(Message)
}

func (o Options) withDefaults() Options {
	if o.Params == (crypto.Parameters{}) {
		o.Params = crypto.DefaultParameters()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Direction tells inbound and outbound messages apart.
type Direction uint8

const (
	Outbound Direction = 1
	Inbound  Direction = 2
)

func (d Direction) String() string {
	switch d {
	case Outbound:
		return "OUT"
	case Inbound:
		return "IN"
	default:
		return "UNKNOWN"
	}
}

// Message is one encrypted unit: a local input line on the way out, or the
// bytes of one read on the way in. Inbound chunks need not line up with the
// sender's lines.
type Message struct {
	Direction  Direction
	Plaintext  []byte
	Ciphertext []byte
	// Text is set when Plaintext is valid UTF-8.
	Text  string
	Valid bool
	// Verified reports the replayed round trip for outbound messages.
	Verified bool
}

// Stats counts traffic since the handshake.
type Stats struct {
	MessagesSent     uint64
	BytesSent        uint64
	MessagesReceived uint64
	BytesReceived    uint64
}

// Session is an established dhchat connection.
type Session struct {
	conn io.ReadWriteCloser
	opts Options
	log  *slog.Logger

	local      crypto.KeyPair
	peerPublic uint64
	channel    *crypto.Channel

	state      atomic.Int32
	peerClosed atomic.Bool
	closeOnce  sync.Once
	closeErr   error

	msgsSent  atomic.Uint64
	bytesSent atomic.Uint64
	msgsRecv  atomic.Uint64
	bytesRecv atomic.Uint64
}

func newSession(conn io.ReadWriteCloser, opts Options) *Session {
	s := &Session{
		conn: conn,
		opts: opts,
		log:  opts.Logger.With("role", opts.Role.String()),
	}
	s.state.Store(int32(StateHandshaking))
	return s
}

func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) Role() protocol.Role { return s.opts.Role }

func (s *Session) Parameters() crypto.Parameters { return s.opts.Params }

// LocalKeyPair returns the keypair generated for this session.
func (s *Session) LocalKeyPair() crypto.KeyPair { return s.local }

func (s *Session) PeerPublicKey() uint64 { return s.peerPublic }

func (s *Session) Secret() uint64 { return s.channel.Secret() }

// Fingerprint returns the short digest of the shared secret.
func (s *Session) Fingerprint() string { return crypto.Fingerprint(s.channel.Secret()) }

func (s *Session) Channel() *crypto.Channel { return s.channel }

// PeerClosed reports whether the session ended because the peer closed the
// stream.
func (s *Session) PeerClosed() bool { return s.peerClosed.Load() }

func (s *Session) Stats() Stats {
	return Stats{
		MessagesSent:     s.msgsSent.Load(),
		BytesSent:        s.bytesSent.Load(),
		MessagesReceived: s.msgsRecv.Load(),
		BytesReceived:    s.bytesRecv.Load(),
	}
}

// Close closes the underlying connection and moves the session to Closed.
// It is safe to call more than once and concurrently with Run.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	s.state.Store(int32(StateClosed))
	return s.closeErr
}
