// Package commands defines the dhchat CLI.
//
// Commands
//
//   - server [port]     Listen for one peer (default port 8080) and chat with it
//   - client host:port  Connect to a listening peer and chat with it
//
// # Implementation
//
// The root command builds the slog logger from --log-level before any
// subcommand runs. Both subcommands share runChat, which prints the handshake
// summary, then runs the session with stdin as input until either side hangs
// up or the process is interrupted.
package commands
