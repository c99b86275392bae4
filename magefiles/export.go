//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Export builds the CLI and exports the images of every note in the vault
// at $VAULT (default: the current directory).
func Export() error {
	mg.Deps(Build)
	vault := os.Getenv("VAULT")
	if vault == "" {
		vault = "."
	}
	return sh.RunV("./"+binDir+"/"+binName, "export", "--all", "--vault", vault)
}
