//go:build mage

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const versionPkg = "github.com/prometheus/common/version"

func ldflags() string {
	rev, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	branch, _ := sh.Output("git", "rev-parse", "--abbrev-ref", "HEAD")
	tag, _ := sh.Output("git", "describe", "--tags", "--always")
	if tag == "" {
		tag = "dev"
	}
	flags := []string{
		fmt.Sprintf("-X %s.Version=%s", versionPkg, strings.TrimPrefix(tag, "v")),
		fmt.Sprintf("-X %s.Revision=%s", versionPkg, rev),
		fmt.Sprintf("-X %s.Branch=%s", versionPkg, branch),
		fmt.Sprintf("-X %s.BuildDate=%s", versionPkg, time.Now().UTC().Format("20060102-15:04:05")),
	}
	return strings.Join(flags, " ")
}

// Runs go mod download.
func Deps() error {
	return sh.Run("go", "mod", "download")
}

// Builds the neocli binary with version information.
func Build() error {
	mg.Deps(Deps)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/neocli", "./cmd/neocli")
}

// Installs neocli into GOBIN.
func Install() error {
	mg.Deps(Deps)
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/neocli")
}

// Runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Runs go vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
