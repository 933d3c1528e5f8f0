//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed, reading flycam.toml from the repository root.
func (Run) Testbed() error {
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "-config", "flycam.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
