package main

import (
	"fmt"
	"os"

	"github.com/hearsay-nlp/hearsay/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; API keys usually arrive this way in dev.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
