package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clientCmd dials a listening peer and chats with it.
func clientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client <host:port>",
		Short: "Connect to a listening peer and chat with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := args[0]

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			con := newConsole(cmd.OutOrStdout(), quiet)
			con.Printf("[CLIENT] Connecting to %s (%s)...\n", addr, kind)
			sess, err := newPeer(con).Dial(ctx, addr)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", addr, err)
			}
			con.Printf("[CLIENT] Connected!\n")
			return runChat(ctx, sess, con, cmd.InOrStdin())
		},
	}
}
