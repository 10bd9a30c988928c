// Package session runs a dhchat session over an established byte stream.
//
// Handshake exchanges public keys and seeds a crypto.Channel from the shared
// secret. Run then drives two loops concurrently: a receive loop that
// decrypts whatever each read returns, and a send loop that encrypts one
// line of local input at a time. Whichever loop finishes first cancels the
// other and the connection is closed before Run returns.
//
// States progress Handshaking -> Established -> Duplex -> Closed.
package session
