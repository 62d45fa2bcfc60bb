package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wayfinder-dev/wayfinder/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfinder.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"
)

// Routing modes. History mode uses real paths and needs server-side
// fallback to index.html; hash mode keeps routes in the URL fragment.
const (
	RoutingHistory = "history"
	RoutingHash    = "hash"
)

// Config represents the complete wayfinder.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Routing selects the routing mode: "history" or "hash".
	Routing string `json:"routing,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Build contains production build configuration.
	Build BuildConfig `json:"build,omitempty"`

	// Deploy contains deployment configuration.
	Deploy DeployConfig `json:"deploy,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// HTTPS enables HTTPS for the dev server.
	HTTPS bool `json:"https,omitempty"`

	// HotReload enables the live-reload websocket in development.
	HotReload bool `json:"hotReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`
}

// BuildConfig contains production build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty"`

	// BasePath is the public base path the application is served under.
	BasePath string `json:"basePath,omitempty"`
}

// DeployConfig contains S3 deployment settings.
type DeployConfig struct {
	// Bucket is the target S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Region is the AWS region of the bucket.
	Region string `json:"region,omitempty"`

	// Prefix is the object key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Routing: RoutingHistory,
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
			Watch:     []string{"src", "public"},
		},
		Build: BuildConfig{
			Output:   DefaultOutput,
			BasePath: "/",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for wayfinder.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No wayfinder.json found in " + filepath.Dir(path)).
				WithSuggestion("Create wayfinder.json in the project root")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse wayfinder.json: " + err.Error()).
			WithSuggestion("Check that wayfinder.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routing == "" {
		c.Routing = RoutingHistory
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"src", "public"}
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
	if c.Build.BasePath == "" {
		c.Build.BasePath = "/"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port " + strconv.Itoa(c.Dev.Port) + " is out of range")
	}
	if c.Routing != RoutingHistory && c.Routing != RoutingHash {
		return errors.New("E103").
			WithDetail("Unknown routing mode " + strconv.Quote(c.Routing)).
			WithSuggestion("Set \"routing\" to \"history\" or \"hash\"")
	}
	return nil
}

// HistoryMode reports whether the project uses history (path) routing.
func (c *Config) HistoryMode() bool {
	return c.Routing == RoutingHistory
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	scheme := "http"
	if c.Dev.HTTPS {
		scheme = "https"
	}
	return scheme + "://" + c.DevAddress()
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	return filepath.Join(c.Dir(), c.Build.Output)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfinder.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No wayfinder.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create wayfinder.json in the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
