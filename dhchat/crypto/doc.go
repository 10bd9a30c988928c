// Package crypto provides the primitives of the dhchat secure channel.
//
// Components:
//   - Parameters: the public group (modulus, generator) and keystream constants
//   - ModPow: 64-bit modular exponentiation with 128-bit intermediates
//   - KeyPair / DeriveSecret: a finite-field Diffie-Hellman exchange
//   - Keystream: a linear-congruential byte generator used as an XOR stream cipher
//   - Channel: one keystream per direction, both seeded from the shared secret
//
// None of this is a security primitive. The modulus is small and public and
// the keystream is trivially predictable; the package reproduces protocol
// mechanics only.
package crypto
