package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

// ConfigLoader loads and validates a driver configuration file (spec §6.1).
type ConfigLoader interface {
	Load(path string) (*domain.Config, error)
}
