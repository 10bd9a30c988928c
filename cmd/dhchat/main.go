package main

import (
	"os"

	"github.com/TheusHen/dhchat/cmd/dhchat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
