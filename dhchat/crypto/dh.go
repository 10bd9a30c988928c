package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// KeyPair is one side of a Diffie-Hellman exchange.
// PrivateKey never leaves the process; PublicKey = g^PrivateKey mod p.
type KeyPair struct {
	PrivateKey uint64
	PublicKey  uint64
}

// GenerateKeyPair draws a uniform 64-bit private key from r (crypto/rand when
// nil) and derives the matching public key.
func GenerateKeyPair(params Parameters, r io.Reader) (KeyPair, error) {
	if err := params.Validate(); err != nil {
		return KeyPair{}, err
	}
	if r == nil {
		r = rand.Reader
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return KeyPair{}, err
	}
	return NewKeyPair(params, binary.BigEndian.Uint64(buf[:])), nil
}

// NewKeyPair builds the keypair for a known private key.
func NewKeyPair(params Parameters, private uint64) KeyPair {
	return KeyPair{
		PrivateKey: private,
		PublicKey:  ModPow(params.Generator, private, params.Modulus),
	}
}

// DeriveSecret computes peerPublic^private mod p.
func DeriveSecret(params Parameters, peerPublic, private uint64) uint64 {
	return ModPow(peerPublic, private, params.Modulus)
}

// Secret is shorthand for DeriveSecret with the pair's own private key.
func (kp KeyPair) Secret(params Parameters, peerPublic uint64) uint64 {
	return DeriveSecret(params, peerPublic, kp.PrivateKey)
}
