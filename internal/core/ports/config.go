package ports

import "go.skade.ch/crashmin/internal/core/domain"

// ConfigLoader resolves the optional configuration file.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path triggers
	// discovery from cwd upward; no file at all yields the defaults.
	Load(path, cwd string) (*domain.Config, error)
}
