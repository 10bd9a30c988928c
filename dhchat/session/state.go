package session

// State is the lifecycle position of a Session.
type State int32

const (
	StateHandshaking State = iota
	StateEstablished
	StateDuplex
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateHandshaking:
		return "HANDSHAKING"
	case StateEstablished:
		return "ESTABLISHED"
	case StateDuplex:
		return "DUPLEX"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
