package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheusHen/dhchat/dhchat"
	"github.com/TheusHen/dhchat/dhchat/session"
)

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newPeer(con *console) *dhchat.Peer {
	p := dhchat.NewPeer(kind, session.Options{
		Logger:    logger,
		OnSend:    con.Sent,
		OnReceive: con.Received,
	})
	p.HandshakeTimeout = handshakeTimeout
	return p
}

// runChat runs an established session with input as the local side.
func runChat(ctx context.Context, sess *session.Session, con *console, input io.Reader) error {
	con.Handshake(sess)
	con.Prompt()
	err := sess.Run(ctx, input)
	if sess.PeerClosed() {
		con.Printf("\nConnection closed.\n")
	}
	return err
}
