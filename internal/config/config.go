package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Datastore is one physical destination a data-dictionary row can document.
// Column names the spreadsheet column carrying the physical column name for
// this destination; a row documents the destination only when that column is
// non-null.
type Datastore struct {
	Column     string `yaml:"column"`
	Platform   string `yaml:"platform"`
	URNPattern string `yaml:"urn_pattern"`
}

// ServerConfig points at the DataHub metadata service.
type ServerConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// ProjectConfig is the dicthub.yaml file: the static configuration the
// record builders receive. No package in this repo reads these values from
// globals; the loaded config is threaded through each run explicitly.
type ProjectConfig struct {
	Glossary      string       `yaml:"glossary"`
	Actor         string       `yaml:"actor"`
	JiraURLPrefix string       `yaml:"jira_url_prefix,omitempty"`
	Environment   string       `yaml:"environment"`
	Server        ServerConfig `yaml:"server,omitempty"`
	Datastores    []Datastore  `yaml:"datastores"`
}

const ConfigFileName = "dicthub.yaml"

// Default returns the configuration the original one-shot scripts carried as
// constants: two datastores (snowflake + postgres), PROD environment, the
// datahub corpuser as actor.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Glossary:      "MyPlatformGlossary",
		Actor:         dicthub.DefaultActor,
		JiraURLPrefix: "https://your-jira-instance.atlassian.net/browse/",
		Environment:   dicthub.DefaultEnvironment,
		Server: ServerConfig{
			Endpoint: dicthub.DefaultServerEndpoint,
		},
		Datastores: []Datastore{
			{
				Column:     "DataStore1 Attribute/Column physical_name",
				Platform:   "snowflake",
				URNPattern: "prod_db.public.{table_name}",
			},
			{
				Column:     "DataStore2 Column Name",
				Platform:   "postgres",
				URNPattern: "analytics_db.reporting.{table_name}",
			},
		},
	}
}

// Load reads dicthub.yaml from the given directory. Unset fields fall back
// to the defaults, so a minimal config file only has to name what differs.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *ProjectConfig) applyDefaults() {
	def := Default()
	if c.Glossary == "" {
		c.Glossary = def.Glossary
	}
	if c.Actor == "" {
		c.Actor = def.Actor
	}
	if c.JiraURLPrefix == "" {
		c.JiraURLPrefix = def.JiraURLPrefix
	}
	if c.Environment == "" {
		c.Environment = def.Environment
	}
	if c.Server.Endpoint == "" {
		c.Server.Endpoint = def.Server.Endpoint
	}
	if len(c.Datastores) == 0 {
		c.Datastores = def.Datastores
	}
}

// Validate checks that every configured datastore is complete.
func (c *ProjectConfig) Validate() error {
	var errs []error
	for i, ds := range c.Datastores {
		if ds.Column == "" {
			errs = append(errs, fmt.Errorf("datastores[%d]: column is required: %w", i, dicthub.ErrInvalidConfig))
		}
		if ds.Platform == "" {
			errs = append(errs, fmt.Errorf("datastores[%d]: platform is required: %w", i, dicthub.ErrInvalidConfig))
		}
		if ds.URNPattern == "" {
			errs = append(errs, fmt.Errorf("datastores[%d]: urn_pattern is required: %w", i, dicthub.ErrInvalidConfig))
		}
	}
	return errors.Join(errs...)
}

// Write serializes the config to dicthub.yaml in the given directory.
// Used by the init command; refuses to clobber an existing file.
func (c *ProjectConfig) Write(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
