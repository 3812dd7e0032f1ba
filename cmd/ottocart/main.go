// ottocart drives the recipe and shopping-list workflows of a recipe
// server from the terminal.
//
// Usage:
//
//	ottocart [recipes] [--batch] [--by-ingredient] [--query q]
//	ottocart cook <recipe-id> [--redirect /main]
//	ottocart confirm <list-id> [--redirect /main|/search]
//	ottocart catalog
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
