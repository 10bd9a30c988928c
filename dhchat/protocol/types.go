package protocol

const (
	// PublicKeySize is the size of a public key on the wire.
	PublicKeySize = 8

	// ReadBufferSize bounds a single ciphertext read after the handshake.
	ReadBufferSize = 512
)

// Role is the side of the connection a peer is on.
type Role uint8

const (
	RoleListener Role = 1
	RoleDialer   Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleListener:
		return "SERVER"
	case RoleDialer:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}
