// Package toolchain compiles and publishes Move packages by shelling out to
// the move CLI. Sources arrive as in-memory strings from the playground and
// are scaffolded into a temporary package directory per invocation.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultBinary is the move CLI executable looked up on PATH.
	DefaultBinary = "move"

	defaultTimeout = 60 * time.Second
)

// ErrToolchainUnavailable indicates the move CLI could not be executed.
var ErrToolchainUnavailable = errors.New("move toolchain unavailable")

// Compiler runs move CLI commands against scaffolded packages.
type Compiler struct {
	binary     string
	timeout    time.Duration
	scratchDir string
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithBinary sets the CLI executable path.
func WithBinary(binary string) CompilerOption {
	return func(c *Compiler) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout sets the per-invocation timeout.
func WithTimeout(d time.Duration) CompilerOption {
	return func(c *Compiler) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithScratchDir sets the parent directory for package scaffolding. It must
// exist. Empty means the system temp directory.
func WithScratchDir(dir string) CompilerOption {
	return func(c *Compiler) {
		c.scratchDir = dir
	}
}

// NewCompiler creates a Compiler.
func NewCompiler(options ...CompilerOption) *Compiler {
	c := &Compiler{
		binary:  DefaultBinary,
		timeout: defaultTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Package is one compilable unit: named sources plus address bindings.
type Package struct {
	Name           string
	Sources        map[string]string
	NamedAddresses map[string]string
}

// Result is the outcome of a compile or publish run. A failed compilation is
// a Result with Success false and diagnostics, not an error; errors are
// reserved for the toolchain itself being unusable.
type Result struct {
	Success     bool
	Diagnostics []Diagnostic
	Output      string
}

// Compile builds the package and returns parsed diagnostics.
func (c *Compiler) Compile(ctx context.Context, pkg Package) (Result, error) {
	return c.run(ctx, pkg, "build")
}

// Publish builds and publishes the package through the CLI's configured
// account.
func (c *Compiler) Publish(ctx context.Context, pkg Package) (Result, error) {
	return c.run(ctx, pkg, "publish")
}

func (c *Compiler) run(ctx context.Context, pkg Package, command string) (Result, error) {
	dir, err := scaffoldPackage(pkg, c.scratchDir)
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(dir)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, command, "--path", dir)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("%w: %v", ErrToolchainUnavailable, err)
		}
		// Non-zero exit with output is a compilation failure.
		return Result{
			Success:     false,
			Diagnostics: ParseDiagnostics(output.String()),
			Output:      output.String(),
		}, nil
	}

	return Result{
		Success:     true,
		Diagnostics: ParseDiagnostics(output.String()),
		Output:      output.String(),
	}, nil
}

// scaffoldPackage writes the package into a fresh temporary directory laid
// out the way the move CLI expects: Move.toml plus a sources directory.
func scaffoldPackage(pkg Package, scratchDir string) (string, error) {
	if pkg.Name == "" {
		return "", errors.New("package name must not be empty")
	}
	if len(pkg.Sources) == 0 {
		return "", errors.New("package must contain at least one source")
	}

	dir, err := os.MkdirTemp(scratchDir, "movelab-pkg-")
	if err != nil {
		return "", fmt.Errorf("create package dir: %w", err)
	}

	cleanup := func(err error) (string, error) {
		os.RemoveAll(dir)
		return "", err
	}

	manifest := buildManifest(pkg)
	if err := os.WriteFile(filepath.Join(dir, "Move.toml"), []byte(manifest), 0o644); err != nil {
		return cleanup(fmt.Errorf("write manifest: %w", err))
	}

	sourcesDir := filepath.Join(dir, "sources")
	if err := os.Mkdir(sourcesDir, 0o755); err != nil {
		return cleanup(fmt.Errorf("create sources dir: %w", err))
	}

	for name, content := range pkg.Sources {
		name = filepath.Base(name)
		if !strings.HasSuffix(name, ".move") {
			name += ".move"
		}
		if err := os.WriteFile(filepath.Join(sourcesDir, name), []byte(content), 0o644); err != nil {
			return cleanup(fmt.Errorf("write source %s: %w", name, err))
		}
	}

	return dir, nil
}

func buildManifest(pkg Package) string {
	var b strings.Builder
	b.WriteString("[package]\n")
	fmt.Fprintf(&b, "name = %q\n", pkg.Name)
	b.WriteString("version = \"0.0.1\"\n")

	if len(pkg.NamedAddresses) > 0 {
		b.WriteString("\n[addresses]\n")
		names := make([]string, 0, len(pkg.NamedAddresses))
		for name := range pkg.NamedAddresses {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "%s = %q\n", name, pkg.NamedAddresses[name])
		}
	}

	return b.String()
}
