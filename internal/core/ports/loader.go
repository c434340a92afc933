package ports

import "go.skade.ch/crashmin/internal/core/domain"

// ReproLoader parses a reproducer file into directives and the resolved
// input path.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ReproLoader interface {
	// Load reads the reproducer at path, resolving tool aliases against
	// tools. The input shape is discriminated by file extension: shell
	// scripts are parsed as crash-reproducer scripts, everything else is
	// scanned for RUN: directives.
	Load(path string, tools domain.ToolPaths) (*domain.Reproducer, error)
}
