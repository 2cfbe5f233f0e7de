// Package main is the entry point for the donutsmp-bot.
package main

import (
	"os"

	"github.com/donaldgifford/donutsmp-bot/cmd/donutsmp-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
