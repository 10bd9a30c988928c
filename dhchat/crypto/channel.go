package crypto

import (
	"errors"
)

var (
	ErrChannelNotEstablished = errors.New("crypto: channel not established")
)

// PreviewLength is the number of keystream bytes reported when a channel is
// set up.
const PreviewLength = 10

// Channel holds the two directions of a session. Both keystreams start from
// the same shared secret and advance independently with the traffic in their
// own direction. The send side must only be used by the sending goroutine and
// the receive side only by the receiving goroutine.
type Channel struct {
	params Parameters
	secret uint64
	send   *Keystream
	recv   *Keystream
}

// NewChannel seeds both directions from secret.
func NewChannel(params Parameters, secret uint64) (*Channel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Channel{
		params: params,
		secret: secret,
		send:   NewKeystream(params, secret),
		recv:   NewKeystream(params, secret),
	}, nil
}

// Encrypt encrypts an outbound message with the send keystream.
// The verification flag reports the outcome of the replayed round trip.
func (c *Channel) Encrypt(plaintext []byte) ([]byte, bool, error) {
	if c == nil || c.send == nil {
		return nil, false, ErrChannelNotEstablished
	}
	ciphertext, ok := c.send.EncryptAndVerify(plaintext)
	return ciphertext, ok, nil
}

// Decrypt decrypts one inbound chunk with the receive keystream.
func (c *Channel) Decrypt(ciphertext []byte) ([]byte, error) {
	if c == nil || c.recv == nil {
		return nil, ErrChannelNotEstablished
	}
	return c.recv.Process(ciphertext), nil
}

func (c *Channel) Secret() uint64 { return c.secret }

func (c *Channel) Parameters() Parameters { return c.params }

// SendStream exposes the send keystream for inspection.
func (c *Channel) SendStream() *Keystream { return c.send }

// RecvStream exposes the receive keystream for inspection.
func (c *Channel) RecvStream() *Keystream { return c.recv }
