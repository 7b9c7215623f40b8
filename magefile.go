//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "wortkarten"

// Build compiles the wortkarten binary into ./bin.
func Build() error {
	version, err := gitVersion()
	if err != nil {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-X codeberg.org/snonux/wortkarten/internal.Version=%s", version)
	return sh.RunV("go", "build", "-ldflags", ldflags,
		"-o", filepath.Join("bin", binaryName), "./cmd/wortkarten")
}

// Test runs all package tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/wortkarten")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll("bin")
}

func gitVersion() (string, error) {
	return sh.Output("git", "describe", "--tags", "--always", "--dirty")
}
