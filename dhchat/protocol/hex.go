package protocol

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidHex = errors.New("protocol: invalid hex public key")
)

// PublicKeyHex returns the 16-digit upper-case hex form of key.
func PublicKeyHex(key uint64) string {
	b := EncodePublicKey(key)
	return strings.ToUpper(hex.EncodeToString(b[:]))
}

// ParsePublicKeyHex parses the output of PublicKeyHex. Shorter inputs are
// left-padded with zeros.
func ParsePublicKeyHex(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" || len(s) > 2*PublicKeySize {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	s = strings.Repeat("0", 2*PublicKeySize-len(s)) + s
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return DecodePublicKey(b)
}

// HexDump formats data as space-separated lower-case byte pairs.
func HexDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString([]byte{b}))
	}
	return sb.String()
}
