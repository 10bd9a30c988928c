package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheusHen/dhchat/dhchat/transport"
)

var (
	transportName    string
	logLevel         string
	quiet            bool
	handshakeTimeout time.Duration

	kind   transport.Kind
	logger *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "dhchat",
		Short:        "Two-party chat over a Diffie-Hellman keyed XOR stream",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

			kind, err = transport.ParseKind(transportName)
			return err
		},
	}

	root.PersistentFlags().StringVar(&transportName, "transport", "tcp", "transport to use: tcp or quic")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print chat lines, no handshake or hex dumps")
	root.PersistentFlags().DurationVar(&handshakeTimeout, "handshake-timeout", 30*time.Second, "limit for the key exchange (0 disables)")

	root.AddCommand(serverCmd(), clientCmd())
	return root.Execute()
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", s)
	}
	return lvl, nil
}
