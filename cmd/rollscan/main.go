package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/AzadNikarthil/rollscan/cmd/rollscan/commands"
)

func main() {
	// Ignore error if .env doesn't exist
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
