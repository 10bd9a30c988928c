package crypto

import (
	"bytes"
	"sync"
)

// Keystream is a linear-congruential byte generator used as an XOR cipher.
// Each call to NextByte advances the state, so a Keystream is only restartable
// by resetting it to the original seed.
type Keystream struct {
	mu       sync.Mutex
	a, c, m  uint64
	seed     uint64
	state    uint64
	position uint64
}

// NewKeystream creates a keystream seeded with seed. Parameters are not
// validated here; a zero LCGModulus leaves the step reduced only by 64-bit
// wrapping.
func NewKeystream(params Parameters, seed uint64) *Keystream {
	return &Keystream{
		a:     params.LCGMultiplier,
		c:     params.LCGIncrement,
		m:     params.LCGModulus,
		seed:  seed,
		state: seed,
	}
}

// step advances state once and returns the top byte of the 32-bit result.
func (k *Keystream) step(state uint64) (uint64, byte) {
	state = k.a*state + k.c
	if k.m != 0 {
		state %= k.m
	}
	return state, byte(state >> 24)
}

// NextByte advances the generator and returns the next keystream byte.
func (k *Keystream) NextByte() byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	var b byte
	k.state, b = k.step(k.state)
	k.position++
	return b
}

func (k *Keystream) xor(data []byte) []byte {
	out := make([]byte, len(data))
	var ks byte
	for i, b := range data {
		k.state, ks = k.step(k.state)
		out[i] = b ^ ks
	}
	k.position += uint64(len(data))
	return out
}

// Process XORs data with the next len(data) keystream bytes.
// Encryption and decryption are the same operation.
func (k *Keystream) Process(data []byte) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.xor(data)
}

// EncryptAndVerify encrypts plaintext, replays the keystream from the same
// state to decrypt the preview, then encrypts again from that state. The whole
// sequence holds the lock, so other users of k never observe the rewind.
// The returned ciphertext is identical to Process(plaintext).
func (k *Keystream) EncryptAndVerify(plaintext []byte) ([]byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	state, pos := k.state, k.position
	preview := k.xor(plaintext)
	k.state, k.position = state, pos
	roundTrip := k.xor(preview)
	k.state, k.position = state, pos

	ciphertext := k.xor(plaintext)
	return ciphertext, bytes.Equal(roundTrip, plaintext)
}

// Preview returns the next n keystream bytes without advancing the state.
func (k *Keystream) Preview(n int) []byte {
	k.mu.Lock()
	state := k.state
	k.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		state, out[i] = k.step(state)
	}
	return out
}

// State returns the current generator register.
func (k *Keystream) State() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Position returns the number of keystream bytes consumed since the last reset.
func (k *Keystream) Position() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.position
}

// Seed returns the value the keystream was last seeded with.
func (k *Keystream) Seed() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.seed
}

// Reset reseeds the generator.
func (k *Keystream) Reset(seed uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.seed = seed
	k.state = seed
	k.position = 0
}
