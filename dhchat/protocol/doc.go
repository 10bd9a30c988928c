// Package protocol defines the dhchat wire format.
//
// Each endpoint writes its public key as 8 big-endian bytes as soon as the
// connection is up, then reads 8 bytes from the peer. Both roles write before
// they read. After that the stream carries raw XOR ciphertext with no length
// prefix or delimiter.
package protocol
