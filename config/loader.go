package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/util"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// configFileNames are tried in order inside every search directory.
var configFileNames = []string{"config.yml", "config.yaml", "config.json"}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile searches for a config file in standard locations.
func (cr *Resolver) findConfigFile(serviceName string) string {
	dirs := []string{
		fmt.Sprintf("./cmd/%s", serviceName),
		fmt.Sprintf("../cmd/%s", serviceName),
		fmt.Sprintf("../../cmd/%s", serviceName),
		"./config",
		"../config",
		".",
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := dir + "/" + name
			if cr.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func (cr *Resolver) findEnvFile(serviceName string) string {
	envFiles := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}

	for _, envFile := range envFiles {
		for _, basePath := range buildEnvSearchPaths(serviceName) {
			fullPath := envFile
			if basePath != "" {
				fullPath = basePath + "/" + envFile
			}
			if cr.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for a service into the provided cfg struct.
// It searches for config and .env files in standard locations, binds
// environment variables, and unmarshals the result into cfg.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	v := newViper(serviceName, opts...)
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// Load loads the promptkit Config for a service. Defaults are not applied.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	v := newViper(serviceName, opts...)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}

	// config.json files of the original nodes keep the key at the top level.
	if cfg.Moonshot.APIKey == "" {
		cfg.Moonshot.APIKey = v.GetString(legacyAPIKey)
	}
	cfg.Moonshot.APIKey = util.SanitizeEnvValue(cfg.Moonshot.APIKey)
	cfg.Moonshot.BaseURL = util.SanitizeEnvValue(cfg.Moonshot.BaseURL)
	cfg.Ollama.BaseURL = util.SanitizeEnvValue(cfg.Ollama.BaseURL)
	cfg.Server.JWTSecret = util.SanitizeEnvValue(cfg.Server.JWTSecret)
	return &cfg, nil
}

const legacyAPIKey = "moonshot_api_key"

func newViper(serviceName string, opts ...LoaderOption) *viper.Viper {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)
	log := logger.WithComponent("config")

	v := viper.New()

	// 1. Load the config file first (base configuration)
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("failed to load config file", logger.Fields("file", files.ConfigFile, logger.FieldError, err.Error()))
		}
	}

	// 2. Load .env so its variables are visible to the binding below
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load env file", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	// 3. Environment variables override file values
	v.AutomaticEnv()
	autoBindEnvVars(v)

	return v
}

// buildEnvSearchPaths creates a list of paths to search for .env files.
func buildEnvSearchPaths(serviceName string) []string {
	var paths []string
	paths = append(paths, pathsByPrefix("cmd/"+serviceName)...)
	paths = append(paths, pathsByPrefix("config")...)
	paths = append(paths, pathsByPrefix("")...)
	return paths
}

func pathsByPrefix(path string) []string {
	if path == "" {
		return []string{".", "..", "../..", ""}
	}
	return []string{
		"./" + path,
		"../" + path,
		"../../" + path,
	}
}

// autoBindEnvVars automatically binds environment variables to Viper
// by converting UPPER_CASE_WITH_UNDERSCORES to multiple possible nested key formats.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || value == "" {
			continue
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	MOONSHOT_API_KEY -> [moonshot_api_key, moonshot.api.key, moonshot.api_key]
//	SERVER_JWT_SECRET -> [server_jwt_secret, server.jwt.secret, server.jwt_secret]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// prefix.rest_joined for every split point
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
