package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repodigest/internal/domain/repositories"
	fsRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/filesystem"
	geminiRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/gemini"
	ghRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/gitlab"
	ollamaRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/ollama"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(entities.ProviderGitHub, ghRepo.NewProviderRepository)
		reg.Register(entities.ProviderGitLab, glRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ScannerRepository {
		return fsRepo.NewScannerRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.GeneratorRepository {
		return geminiRepo.NewGeneratorRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.LocalModelRepository {
		return ollamaRepo.NewLocalModelRepository()
	}); err != nil {
		return err
	}

	return nil
}
