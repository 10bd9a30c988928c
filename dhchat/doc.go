// Package dhchat provides a two-party chat channel over a single byte stream.
//
// One peer listens and accepts exactly one connection, the other dials it.
// Both run a 64-bit Diffie-Hellman exchange and seed one LCG keystream per
// direction from the shared secret; chat lines are XOR-encrypted with it.
// The construction is a protocol demonstration and provides no real
// confidentiality.
package dhchat
