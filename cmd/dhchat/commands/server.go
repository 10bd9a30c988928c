package commands

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultPort = 8080

// serverCmd listens on a port, accepts exactly one peer and chats with it.
func serverCmd() *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "server [port]",
		Short: "Wait for one peer to connect and chat with it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port := defaultPort
			if len(args) == 1 {
				p, err := parsePort(args[0])
				if err != nil {
					return err
				}
				port = p
			}
			addr := net.JoinHostPort(bind, strconv.Itoa(port))

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			con := newConsole(cmd.OutOrStdout(), quiet)
			peer := newPeer(con)
			if err := peer.Listen(ctx, addr); err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}
			con.Printf("[SERVER] Listening on %s (%s)\n", peer.ListenAddr(), kind)
			con.Printf("[SERVER] Waiting for client...\n")

			sess, err := peer.Accept(ctx)
			// Only the first peer is served.
			_ = peer.Close()
			if err != nil {
				return fmt.Errorf("accept: %w", err)
			}
			con.Printf("\n[CLIENT] Connected\n")
			return runChat(ctx, sess, con, cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "0.0.0.0", "address to bind")
	return cmd
}

func parsePort(s string) (int, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil || p == 0 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return int(p), nil
}
