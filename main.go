package main

import (
	"os"

	"github.com/scbirs/order-explorer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
