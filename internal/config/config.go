// Package config loads server configuration from an optional YAML file,
// a .env file, and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Transport selects how the MCP server is exposed.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the fully resolved server configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Organization OrganizationConfig `mapstructure:"organization"`
	Vision       VisionConfig       `mapstructure:"vision"`
	Vocabulary   VocabularyConfig   `mapstructure:"vocabulary"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OrganizationConfig templates generated work items with the consuming
// organization's context.
type OrganizationConfig struct {
	Name       string   `mapstructure:"name"`
	FocusAreas []string `mapstructure:"focus_areas"`
	Platform   string   `mapstructure:"platform"`
	Scale      string   `mapstructure:"scale"`
}

// VisionConfig holds the Azure OpenAI coordinates for the image analysis
// collaborator. All fields empty means vision is disabled and image
// processing falls back to the text pipeline.
type VisionConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIKey     string `mapstructure:"api_key"`
	APIVersion string `mapstructure:"api_version"`
	Deployment string `mapstructure:"deployment"`
	Model      string `mapstructure:"model"`
}

// VocabularyConfig extends the built-in heuristic tables with
// deployment-specific keywords. ExtraFeatures maps a keyword to the
// feature label it should produce; a keyword already in the built-in
// table is re-labeled.
type VocabularyConfig struct {
	ExtraFeatures         map[string]string `mapstructure:"extra_features"`
	ExtraRequirementVerbs []string          `mapstructure:"extra_requirement_verbs"`
}

// Enabled reports whether the vision collaborator is configured.
func (v VisionConfig) Enabled() bool {
	return v.Endpoint != "" && v.APIKey != ""
}

// Load resolves configuration: defaults, then an optional config.yaml,
// then .env, then process environment variables.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ADO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the nearest .env, walking up to the directory that
// holds go.mod so tests in nested packages see the same file.
func loadEnvFile() {
	paths := []string{".env", filepath.Join("..", ".env")}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = TransportStdio
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Organization.Name == "" {
		cfg.Organization.Name = "Omar Solutions"
	}
	if len(cfg.Organization.FocusAreas) == 0 {
		cfg.Organization.FocusAreas = []string{"Data Engineering", "Data Visualization", "Analytics"}
	}
	if cfg.Organization.Platform == "" {
		cfg.Organization.Platform = "Azure Cloud Platform"
	}
	if cfg.Organization.Scale == "" {
		cfg.Organization.Scale = "Large scale solutions"
	}
	if cfg.Vision.APIVersion == "" {
		cfg.Vision.APIVersion = "2024-02-15-preview"
	}
	if cfg.Vision.Model == "" {
		cfg.Vision.Model = "gpt-4o"
	}
}

// overrideFromEnv applies the Azure OpenAI environment variables the
// deployment tooling exports, for fields the file and ADO_* variables
// left empty.
func overrideFromEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if *dst == "" {
			if val := os.Getenv(key); val != "" {
				*dst = val
			}
		}
	}
	set(&cfg.Vision.Endpoint, "AZURE_OPENAI_ENDPOINT")
	set(&cfg.Vision.APIKey, "AZURE_OPENAI_API_KEY")
	set(&cfg.Vision.APIVersion, "AZURE_OPENAI_API_VERSION")
	set(&cfg.Vision.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	set(&cfg.Vision.Model, "AZURE_OPENAI_MODEL")
}

func validate(cfg *Config) error {
	switch cfg.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be %q or %q, got %q",
			TransportStdio, TransportHTTP, cfg.Server.Transport)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	return nil
}
