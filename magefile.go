//go:build mage

package main

import (
	"github.com/magefile/mage/sh"
)

// Build compiles both binaries into ./bin
func Build() error {
	if err := sh.Run("go", "build", "-o", "bin/arabify", "./cmd/arabify"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", "bin/arabify-upload", "./cmd/arabify-upload")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs both binaries with go install
func Install() error {
	if err := sh.Run("go", "install", "./cmd/arabify"); err != nil {
		return err
	}
	return sh.Run("go", "install", "./cmd/arabify-upload")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
