package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConcurrency    = 6
	MaxConcurrency        = 32
	DefaultRequestTimeout = 30 * time.Second
	DefaultClientTimeout  = 120 * time.Second
	DefaultServerAddress  = "127.0.0.1:8080"
	DefaultGeneratorModel = "gemini-2.5-flash"
	DefaultLocalModelURL  = "http://localhost:11434"
)

// Settings is the top-level configuration for repodigest.
type Settings struct {
	Providers []ProviderConfig `yaml:"providers"`
	Ingest    IngestConfig     `yaml:"ingest"`
	Generator  GeneratorConfig  `yaml:"generator"`
	LocalModel LocalModelConfig `yaml:"local_model"`
	Server     ServerConfig     `yaml:"server"`
}

// ProviderConfig describes one repository hosting provider.
type ProviderConfig struct {
	Type    string `yaml:"type"`     // "github", "gitlab"
	Token   string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url"` // API root for enterprise/self-hosted instances
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	MaxFiles       int           `yaml:"max_files"`
	Concurrency    int           `yaml:"concurrency"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ClientTimeout  time.Duration `yaml:"client_timeout"`
	Proxy          string        `yaml:"proxy"`
}

// GeneratorConfig configures the hosted generation API.
type GeneratorConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	Proxy  string `yaml:"proxy"`
}

// LocalModelConfig configures the local model server (Ollama).
type LocalModelConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// ServerConfig configures the HTTP API. No cross-origin caller is allowed
// unless listed; "*" opts into every origin. ScanRoots, when set, confines
// scans requested over HTTP to those directories.
type ServerConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ScanRoots      []string `yaml:"scan_roots"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths. A .env file in the working
// directory is loaded first when present.
func NewSettings(path string) (*Settings, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range settings.Providers {
		settings.Providers[i].Token = ResolveToken(settings.Providers[i].Token)
	}
	settings.Generator.APIKey = ResolveToken(settings.Generator.APIKey)

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}
	settings.applyDefaults()

	return &settings, nil
}

// LoadSettings loads the given file, or the first file FindConfigFile finds,
// falling back to DefaultSettings when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		_ = godotenv.Load()
		logger.Debug("No config file found, using defaults")
		return DefaultSettings(), nil
	}

	logger.Debugf("Using config file: %s", found)
	return NewSettings(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".repodigest.yaml",
		".repodigest.yml",
		"repodigest.yaml",
		"repodigest.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Provider returns the configuration block of the given provider type.
func (s *Settings) Provider(providerType string) ProviderConfig {
	for _, p := range s.Providers {
		if p.Type == providerType {
			return p
		}
	}
	return ProviderConfig{Type: providerType}
}

// TokenFor picks the credential for a provider: explicit value first, then
// the settings file, then the provider's conventional environment variables.
func (s *Settings) TokenFor(providerType, explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t := s.Provider(providerType).Token; t != "" {
		return t
	}
	return TokenFromEnv(providerType)
}

// TokenFromEnv reads the conventional token variables of a provider.
func TokenFromEnv(providerType string) string {
	switch providerType {
	case ProviderGitHub:
		if t := os.Getenv("GITHUB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GH_TOKEN")
	case ProviderGitLab:
		if t := os.Getenv("GITLAB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GL_TOKEN")
	default:
		return ""
	}
}

func (s *Settings) applyDefaults() {
	if s.Ingest.MaxFiles == 0 {
		s.Ingest.MaxFiles = DefaultMaxFiles
	}
	if s.Ingest.Concurrency <= 0 {
		s.Ingest.Concurrency = DefaultConcurrency
	}
	if s.Ingest.Concurrency > MaxConcurrency {
		s.Ingest.Concurrency = MaxConcurrency
	}
	if s.Ingest.RequestTimeout <= 0 {
		s.Ingest.RequestTimeout = DefaultRequestTimeout
	}
	if s.Ingest.ClientTimeout <= 0 {
		s.Ingest.ClientTimeout = DefaultClientTimeout
	}
	if s.Generator.Model == "" {
		s.Generator.Model = DefaultGeneratorModel
	}
	if s.LocalModel.BaseURL == "" {
		s.LocalModel.BaseURL = DefaultLocalModelURL
	}
	if s.Server.Address == "" {
		s.Server.Address = DefaultServerAddress
	}
}

// validate checks the values that cannot be defaulted.
func validate(settings *Settings) error {
	for i, p := range settings.Providers {
		switch p.Type {
		case ProviderGitHub, ProviderGitLab:
		case "":
			return fmt.Errorf("providers[%d].type is required", i)
		default:
			return fmt.Errorf("providers[%d].type %q is not supported", i, p.Type)
		}
	}

	if settings.Ingest.MaxFiles < 0 {
		return errors.New("ingest.max_files must not be negative")
	}

	return nil
}
