package main

import (
	"os"

	"github.com/joho/godotenv"

	"palconv/cli"
)

func main() {
	// A missing .env is normal; it only supplies PALCONV_* overrides.
	_ = godotenv.Load()
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
