package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	for _, key := range []uint64{0, 1, 0x0102030405060708, ^uint64(0)} {
		var buf bytes.Buffer
		if err := WritePublicKey(&buf, key); err != nil {
			t.Fatalf("WritePublicKey: %v", err)
		}
		if buf.Len() != PublicKeySize {
			t.Fatalf("wrote %d bytes", buf.Len())
		}
		got, err := ReadPublicKey(&buf)
		if err != nil {
			t.Fatalf("ReadPublicKey: %v", err)
		}
		if got != key {
			t.Fatalf("got %#x, want %#x", got, key)
		}
	}
}

func TestPublicKeyBigEndian(t *testing.T) {
	b := EncodePublicKey(0x0102030405060708)
	if !bytes.Equal(b[:], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected encoding %x", b)
	}
	got, err := DecodePublicKey(b[:])
	if err != nil || got != 0x0102030405060708 {
		t.Fatalf("DecodePublicKey = %#x, %v", got, err)
	}
	if _, err := DecodePublicKey(b[:7]); !errors.Is(err, ErrShortPublicKey) {
		t.Fatalf("expected ErrShortPublicKey, got %v", err)
	}
}

func TestReadPublicKeyShort(t *testing.T) {
	for _, in := range [][]byte{nil, {1, 2, 3}} {
		_, err := ReadPublicKey(bytes.NewReader(in))
		if !errors.Is(err, ErrShortPublicKey) {
			t.Fatalf("expected ErrShortPublicKey for %d bytes, got %v", len(in), err)
		}
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReadPublicKeyPropagatesErrors(t *testing.T) {
	boom := errors.New("reset")
	if _, err := ReadPublicKey(failingReader{boom}); !errors.Is(err, boom) {
		t.Fatalf("expected underlying error, got %v", err)
	}
	if _, err := ReadPublicKey(io.MultiReader(bytes.NewReader([]byte{0, 0}), bytes.NewReader(make([]byte, 6)))); err != nil {
		t.Fatalf("fragmented read: %v", err)
	}
}

func TestPublicKeyHex(t *testing.T) {
	cases := map[uint64]string{
		0:                  "0000000000000000",
		^uint64(0):         "FFFFFFFFFFFFFFFF",
		0xD87FA3E291B4C7F3: "D87FA3E291B4C7F3",
	}
	for key, want := range cases {
		s := PublicKeyHex(key)
		if s != want {
			t.Fatalf("PublicKeyHex(%#x) = %q, want %q", key, s, want)
		}
		got, err := ParsePublicKeyHex(s)
		if err != nil {
			t.Fatalf("ParsePublicKeyHex(%q): %v", s, err)
		}
		if got != key {
			t.Fatalf("ParsePublicKeyHex(%q) = %#x", s, got)
		}
	}

	if got, err := ParsePublicKeyHex("0x400"); err != nil || got != 0x400 {
		t.Fatalf("ParsePublicKeyHex(0x400) = %#x, %v", got, err)
	}
	for _, bad := range []string{"", "zz", "00000000000000000"} {
		if _, err := ParsePublicKeyHex(bad); !errors.Is(err, ErrInvalidHex) {
			t.Fatalf("ParsePublicKeyHex(%q) = %v, want ErrInvalidHex", bad, err)
		}
	}
}

func TestHexDump(t *testing.T) {
	if got := HexDump([]byte("hello")); got != "68 65 6c 6c 6f" {
		t.Fatalf("HexDump = %q", got)
	}
	if HexDump(nil) != "" {
		t.Fatalf("HexDump(nil) should be empty")
	}
}

func TestRoleString(t *testing.T) {
	if RoleListener.String() != "SERVER" || RoleDialer.String() != "CLIENT" || Role(0).String() != "UNKNOWN" {
		t.Fatalf("unexpected role names")
	}
}
