//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildDecoder, BuildInspect, BuildMeasureAlgos)
	fmt.Println("Compilation finished")
	return nil
}

// All binaries link against libhdf5, CGO flags are taken from the environment
func BuildDecoder() error {
	fmt.Println("Building decoder executable...")
	return goBuild("./bin/decoder", "./decoder")
}

func BuildInspect() error {
	fmt.Println("Building inspect executable...")
	return goBuild("./bin/inspect", "./inspect")
}

func BuildMeasureAlgos() error {
	fmt.Println("Building measureAlgos executable...")
	return goBuild("./bin/measureAlgos", "./measureAlgos")
}

func Test() error {
	fmt.Println("Running tests...")
	cmd := exec.Command("go", "test", "./...")
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func goBuild(output string, pkg string) error {
	cmd := exec.Command("go", "build", "-o", output, pkg)
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func cgoEnv() []string {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	return append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
}
