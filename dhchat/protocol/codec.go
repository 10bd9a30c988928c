package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrShortPublicKey = errors.New("protocol: short public key")
)

// EncodePublicKey returns the big-endian wire form of key.
func EncodePublicKey(key uint64) [PublicKeySize]byte {
	var b [PublicKeySize]byte
	binary.BigEndian.PutUint64(b[:], key)
	return b
}

// DecodePublicKey parses a big-endian public key.
func DecodePublicKey(b []byte) (uint64, error) {
	if len(b) != PublicKeySize {
		return 0, fmt.Errorf("%w: %d bytes", ErrShortPublicKey, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// WritePublicKey writes key as exactly PublicKeySize bytes.
func WritePublicKey(w io.Writer, key uint64) error {
	b := EncodePublicKey(key)
	_, err := w.Write(b[:])
	return err
}

// ReadPublicKey blocks until PublicKeySize bytes have been read.
// A stream that ends early yields ErrShortPublicKey.
func ReadPublicKey(r io.Reader) (uint64, error) {
	var b [PublicKeySize]byte
	n, err := io.ReadFull(r, b[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: got %d of %d bytes", ErrShortPublicKey, n, PublicKeySize)
		}
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}
