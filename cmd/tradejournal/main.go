package main

import (
	"os"
	_ "time/tzdata"

	"github.com/rustyeddy/tradejournal/cmd/tradejournal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
