//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the testbed binary into bin/.
func (Build) Testbed() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/flycam", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests of every package.
func Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet followed by the unit tests.
func Check() error {
	mg.Deps(Vet)
	return Test()
}

func Vet() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
