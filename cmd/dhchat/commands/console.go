package commands

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
	"sync"

	"github.com/TheusHen/dhchat/dhchat/crypto"
	"github.com/TheusHen/dhchat/dhchat/protocol"
	"github.com/TheusHen/dhchat/dhchat/session"
)

// console renders the chat for a terminal. The send and receive loops both
// print, so every write holds mu.
type console struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func newConsole(w io.Writer, quiet bool) *console {
	return &console{w: w, quiet: quiet}
}

func (c *console) Printf(format string, args ...any) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

func (c *console) hex(label string, data []byte) {
	fmt.Fprintf(c.w, "%s: %s\n", label, protocol.HexDump(data))
}

// Handshake prints the key exchange that produced sess.
func (c *console) Handshake(sess *session.Session) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	params := sess.Parameters()
	kp := sess.LocalKeyPair()
	fmt.Fprintf(c.w, "\n[DH] Key exchange (%s)\n", sess.Role())
	fmt.Fprintf(c.w, "p = %X (64-bit modulus - public)\n", params.Modulus)
	fmt.Fprintf(c.w, "g = %d (generator - public)\n", params.Generator)
	fmt.Fprintf(c.w, "private_key = %s (random 64-bit)\n", protocol.PublicKeyHex(kp.PrivateKey))
	fmt.Fprintf(c.w, "public_key = %s\n", protocol.PublicKeyHex(kp.PublicKey))
	fmt.Fprintf(c.w, "-> Sent our public: %s\n", protocol.PublicKeyHex(kp.PublicKey))
	fmt.Fprintf(c.w, "<- Received their public: %s\n", protocol.PublicKeyHex(sess.PeerPublicKey()))
	fmt.Fprintf(c.w, "secret = %X\n", sess.Secret())
	fmt.Fprintf(c.w, "\n[VERIFY] Fingerprint %s (must match the peer's)\n", sess.Fingerprint())

	fmt.Fprintf(c.w, "\n[STREAM] Keystream seeded from secret\n")
	fmt.Fprintf(c.w, "Algorithm: LCG (a=%d, c=%d, m=%s)\n", params.LCGMultiplier, params.LCGIncrement, formatModulus(params.LCGModulus))
	preview := sess.Channel().SendStream().Preview(crypto.PreviewLength)
	fmt.Fprintf(c.w, "Keystream: %s ...\n", strings.ToUpper(protocol.HexDump(preview)))
	fmt.Fprintf(c.w, "\nSecure channel established!\n")
}

func (c *console) Prompt() {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.w, "\n[CHAT] Type message:\n> ")
}

// Sent is the session's OnSend hook.
func (c *console) Sent(m session.Message) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "\n[ENCRYPT]\n")
	c.hex("Plain", m.Plaintext)
	fmt.Fprintf(c.w, "(%q)\n", m.Text)
	if m.Verified {
		fmt.Fprintf(c.w, "[TEST] Round-trip verified: %q -> encrypt -> decrypt -> %q\n", m.Text, m.Text)
	} else {
		fmt.Fprintf(c.w, "[TEST] Round-trip mismatch for %q\n", m.Text)
	}
	c.hex("Cipher", m.Ciphertext)
	fmt.Fprintf(c.w, "[+] Sent %d bytes\n", len(m.Ciphertext))
	fmt.Fprint(c.w, "\n[CHAT] Type message:\n> ")
}

// Received is the session's OnReceive hook.
func (c *console) Received(m session.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiet {
		if m.Valid {
			fmt.Fprintf(c.w, "< %s\n", strings.TrimSpace(m.Text))
		} else {
			fmt.Fprintf(c.w, "< [%d bytes] %s\n", len(m.Plaintext), protocol.HexDump(m.Plaintext))
		}
		return
	}

	fmt.Fprintf(c.w, "\n[NETWORK] Received encrypted message (%d bytes)\n", len(m.Ciphertext))
	c.hex("Cipher", m.Ciphertext)
	c.hex("Plain", m.Plaintext)
	if m.Valid {
		fmt.Fprintf(c.w, "\n[DECRYPTED MSG] %s\n", strings.TrimSpace(m.Text))
	}
	fmt.Fprint(c.w, "\n[CHAT] Type message:\n> ")
}

// formatModulus prints powers of two as 2^k.
func formatModulus(m uint64) string {
	if m != 0 && m&(m-1) == 0 {
		return fmt.Sprintf("2^%d", bits.TrailingZeros64(m))
	}
	return fmt.Sprintf("%d", m)
}
