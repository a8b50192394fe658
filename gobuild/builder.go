package gobuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// BuildError is returned when the compiler exits with a nonzero status.
type BuildError struct {
	ExitCode int
	Output   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed with exit code %d", e.ExitCode)
}

// Builder compiles a main package with the Go toolchain.
type Builder struct {
	// GoBin is the go command to run. Defaults to "go" on PATH.
	GoBin string
}

func (b Builder) goBin() string {
	if b.GoBin == "" {
		return "go"
	}
	return b.GoBin
}

// Args returns the arguments passed to the go command. Empty tags omit -tags.
func (b Builder) Args(mainPackage, output, tags string) []string {
	args := []string{"build"}
	if tags != "" {
		args = append(args, "-tags", tags)
	}
	return append(args, "-o", output, mainPackage)
}

// Build runs go build to completion. The process environment is inherited, so
// GOOS, GOARCH and CGO_ENABLED may be set beforehand.
func (b Builder) Build(ctx context.Context, mainPackage, output, tags string) error {
	args := b.Args(mainPackage, output, tags)
	log.Printf("building %s to %s: %s %s", mainPackage, output, b.goBin(), strings.Join(args, " "))

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, b.goBin(), args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &BuildError{ExitCode: exitErr.ExitCode(), Output: out.String()}
		}
		return fmt.Errorf("run %s: %w", b.goBin(), err)
	}
	return nil
}
