package service

import (
	"context"
	"fmt"

	"github.com/movelabhq/movelab/infrastructure/toolchain"
)

// PackageCompiler is the toolchain surface the package service needs.
type PackageCompiler interface {
	Compile(ctx context.Context, pkg toolchain.Package) (toolchain.Result, error)
	Publish(ctx context.Context, pkg toolchain.Package) (toolchain.Result, error)
}

// PackageService compiles and publishes playground packages.
type PackageService struct {
	compiler PackageCompiler
}

// NewPackageService creates a PackageService.
func NewPackageService(compiler PackageCompiler) *PackageService {
	return &PackageService{compiler: compiler}
}

// BuildOutcome is a compile or publish result in API-friendly form.
type BuildOutcome struct {
	Success     bool
	Diagnostics []toolchain.Diagnostic
	Output      string
}

// Compile builds a package from playground sources.
func (s *PackageService) Compile(ctx context.Context, pkg toolchain.Package) (BuildOutcome, error) {
	if err := validatePackage(pkg); err != nil {
		return BuildOutcome{}, err
	}

	result, err := s.compiler.Compile(ctx, pkg)
	if err != nil {
		return BuildOutcome{}, err
	}
	return BuildOutcome{
		Success:     result.Success,
		Diagnostics: result.Diagnostics,
		Output:      result.Output,
	}, nil
}

// Publish builds and publishes a package.
func (s *PackageService) Publish(ctx context.Context, pkg toolchain.Package) (BuildOutcome, error) {
	if err := validatePackage(pkg); err != nil {
		return BuildOutcome{}, err
	}

	result, err := s.compiler.Publish(ctx, pkg)
	if err != nil {
		return BuildOutcome{}, err
	}
	return BuildOutcome{
		Success:     result.Success,
		Diagnostics: result.Diagnostics,
		Output:      result.Output,
	}, nil
}

func validatePackage(pkg toolchain.Package) error {
	if pkg.Name == "" {
		return fmt.Errorf("%w: package name must not be empty", ErrInvalidInput)
	}
	if len(pkg.Sources) == 0 {
		return fmt.Errorf("%w: package must contain at least one source", ErrInvalidInput)
	}
	return nil
}
