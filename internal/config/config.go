package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

const (
	TransportCurl = "curl"
	TransportHTTP = "http"
)

// Config is the tool configuration. It is built once at startup and
// passed by value; the With* helpers return modified copies.
type Config struct {
	UploadURL    string
	UploadRepo   string
	DownloadURL  string
	DownloadRepo string
	// GroupPrefix is prepended to the sub-group given on the command line.
	GroupPrefix string
	VerifyTLS   bool
	Transport   string
	CurlPath    string
	Timeout     time.Duration
	Retries     int
	RetryDelay  time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UploadURL:    "https://nexus.gsissc.myatos.net",
		UploadRepo:   "GH_FR_BEZ_RRF_MAVEN2_RHR",
		DownloadURL:  "https://nexus.forge-dc.cloudmi.minint.fr",
		DownloadRepo: "rrf-myatos.net",
		GroupPrefix:  "fr.gouv.minint.rrf",
		VerifyTLS:    true,
		Transport:    TransportCurl,
		CurlPath:     "curl",
		Timeout:      2 * time.Hour,
		Retries:      6,
		RetryDelay:   10 * time.Second,
	}
}

// fileConfig mirrors Config as it appears on disk. Pointers distinguish
// "unset" from zero values so that defaults survive partial files.
type fileConfig struct {
	Upload struct {
		URL        *string `yaml:"url" toml:"url"`
		Repository *string `yaml:"repository" toml:"repository"`
	} `yaml:"upload" toml:"upload"`
	Download struct {
		URL        *string `yaml:"url" toml:"url"`
		Repository *string `yaml:"repository" toml:"repository"`
		Retries    *int    `yaml:"retries" toml:"retries"`
		RetryDelay *string `yaml:"retryDelay" toml:"retryDelay"`
	} `yaml:"download" toml:"download"`
	GroupPrefix *string `yaml:"groupPrefix" toml:"groupPrefix"`
	VerifyTLS   *bool   `yaml:"verifyTLS" toml:"verifyTLS"`
	Transport   *string `yaml:"transport" toml:"transport"`
	CurlPath    *string `yaml:"curlPath" toml:"curlPath"`
	Timeout     *string `yaml:"timeout" toml:"timeout"`
}

// DefaultPath returns $HOME/.nexus-cli/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nexus-cli", "config.yaml")
}

// Resolve loads the configuration from path. An empty path falls back to
// DefaultPath when that file exists, and to Default otherwise.
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	def := DefaultPath()
	if def == "" {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), nil
	}
	return Load(def)
}

// Load reads a YAML or TOML file (chosen by extension) over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.NewConfigError(path, "error reading config file", err)
	}

	expanded := expandEnv(string(data))

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, &fc); err != nil {
			return Config{}, errors.NewConfigError(path, "error parsing config file", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
			return Config{}, errors.NewConfigError(path, "error parsing config file", err)
		}
	default:
		return Config{}, errors.NewConfigError(path, "unsupported config file extension (want .yaml, .yml or .toml)", nil)
	}

	cfg, err := fc.apply(Default())
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandEnv expands ${VAR} style environment variables
func expandEnv(content string) string {
	return os.Expand(content, func(key string) string {
		return os.Getenv(key)
	})
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	setString(&cfg.UploadURL, fc.Upload.URL)
	setString(&cfg.UploadRepo, fc.Upload.Repository)
	setString(&cfg.DownloadURL, fc.Download.URL)
	setString(&cfg.DownloadRepo, fc.Download.Repository)
	setString(&cfg.GroupPrefix, fc.GroupPrefix)
	setString(&cfg.Transport, fc.Transport)
	setString(&cfg.CurlPath, fc.CurlPath)
	if fc.VerifyTLS != nil {
		cfg.VerifyTLS = *fc.VerifyTLS
	}
	if fc.Download.Retries != nil {
		cfg.Retries = *fc.Download.Retries
	}
	if err := setDuration(&cfg.RetryDelay, fc.Download.RetryDelay, "download.retryDelay"); err != nil {
		return cfg, err
	}
	if err := setDuration(&cfg.Timeout, fc.Timeout, "timeout"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return errors.NewConfigError(key, "invalid duration", err)
	}
	*dst = d
	return nil
}

// Validate performs basic validation on the configuration
func (c Config) Validate() error {
	if err := validateURL("upload.url", c.UploadURL); err != nil {
		return err
	}
	if err := validateURL("download.url", c.DownloadURL); err != nil {
		return err
	}
	if c.UploadRepo == "" {
		return errors.NewConfigError("upload.repository", "must not be empty", nil)
	}
	if c.DownloadRepo == "" {
		return errors.NewConfigError("download.repository", "must not be empty", nil)
	}

	switch c.Transport {
	case TransportCurl:
		if c.CurlPath == "" {
			return errors.NewConfigError("curlPath", "must not be empty", nil)
		}
	case TransportHTTP:
	default:
		return errors.NewConfigError("transport",
			fmt.Sprintf("unsupported transport %q, must be %q or %q", c.Transport, TransportCurl, TransportHTTP), nil)
	}

	if c.Timeout <= 0 {
		return errors.NewConfigError("timeout", "must be greater than 0", nil)
	}
	if c.Retries < 0 {
		return errors.NewConfigError("download.retries", "must not be negative", nil)
	}
	if c.RetryDelay < 0 {
		return errors.NewConfigError("download.retryDelay", "must not be negative", nil)
	}
	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return errors.NewConfigError(key, "must not be empty", nil)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewConfigError(key, "invalid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewConfigError(key, "URL scheme must be http or https", nil)
	}
	return nil
}

// WithInsecure returns a copy with TLS verification disabled when insecure
// is true.
func (c Config) WithInsecure(insecure bool) Config {
	if insecure {
		c.VerifyTLS = false
	}
	return c
}

// WithTransport returns a copy using the named transport, or c unchanged
// when name is empty.
func (c Config) WithTransport(name string) Config {
	if name != "" {
		c.Transport = name
	}
	return c
}

// UploadEndpoint returns the Maven2 component upload URL.
func (c Config) UploadEndpoint() string {
	return fmt.Sprintf("%s/service/rest/v1/components?repository=%s",
		strings.TrimSuffix(c.UploadURL, "/"), url.QueryEscape(c.UploadRepo))
}

// DownloadBase returns the repository root used for downloads.
func (c Config) DownloadBase() string {
	return fmt.Sprintf("%s/repository/%s", strings.TrimSuffix(c.DownloadURL, "/"), c.DownloadRepo)
}
