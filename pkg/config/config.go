// Package config provides configuration loading and validation for the
// enforcement adapter. Configuration is deliberately startup-only: a Config
// is loaded once, validated, and then read-only for the process lifetime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "LAKEGATE"

// Audit sink kinds.
const (
	AuditSinkLog  = "log"
	AuditSinkFile = "file"
	AuditSinkNone = "none"
)

// Config is the root configuration structure.
type Config struct {
	// Service is the optional service identity used to authenticate this
	// adapter to external systems at startup.
	Service *ServiceConfig `yaml:"service,omitempty"`

	// Policy selects the policy source for the bundled Cedar engine.
	Policy PolicyConfig `yaml:"policy"`

	// Identity configures how principals are resolved to groups.
	Identity IdentityConfig `yaml:"identity,omitempty"`

	// Audit configures decision auditing.
	Audit AuditConfig `yaml:"audit,omitempty"`

	// Metrics configures decision metrics.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// ServiceConfig is the service identity acquired at process start. Both
// fields go together; a missing or unreadable credential file is a fatal
// startup condition, never a silently degraded one.
type ServiceConfig struct {
	// Principal is the service principal name.
	Principal string `yaml:"principal"`

	// CredentialFile is the path to the service credential (e.g. a keytab).
	CredentialFile string `yaml:"credentialFile"`
}

// PolicyConfig selects the Cedar policy source. File and Inline are mutually
// exclusive; with neither set, built-in default policies apply.
type PolicyConfig struct {
	// File is a path to a Cedar policy file.
	File string `yaml:"file,omitempty"`

	// Inline is a Cedar policy set embedded in the configuration.
	Inline string `yaml:"inline,omitempty"`
}

// IdentityConfig configures principal-to-groups resolution.
type IdentityConfig struct {
	// GroupsClaim is the token claim consulted for group membership when
	// identities are derived from token claims. Defaults to "groups".
	GroupsClaim string `yaml:"groupsClaim,omitempty"`

	// StaticGroups maps usernames to group sets for the static resolver.
	StaticGroups map[string][]string `yaml:"staticGroups,omitempty"`
}

// AuditConfig configures decision auditing.
type AuditConfig struct {
	// Sink is the audit destination: "log" (default), "file", or "none".
	// Several destinations may be combined comma separated, e.g.
	// "log,file"; "none" cannot be combined.
	Sink string `yaml:"sink,omitempty"`

	// Path is the audit file path, required for the "file" sink.
	Path string `yaml:"path,omitempty"`
}

// Sinks returns the configured sink kinds, one per comma-separated entry.
func (a AuditConfig) Sinks() []string {
	parts := strings.Split(a.Sink, ",")
	sinks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sinks = append(sinks, p)
		}
	}
	return sinks
}

// MetricsConfig configures decision metrics.
type MetricsConfig struct {
	// Enabled turns decision metrics on.
	Enabled bool `yaml:"enabled,omitempty"`
}

// Option defines the interface for configuration options.
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration.
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file.
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Load reads, parses, and validates configuration. Without a config path it
// returns the validated default configuration.
func Load(opts ...Option) (*Config, error) {
	loader := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loader); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if loader.path != "" {
		data, err := os.ReadFile(loader.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Audit.Sink == "" {
		c.Audit.Sink = AuditSinkLog
	}
	if c.Identity.GroupsClaim == "" {
		c.Identity.GroupsClaim = "groups"
	}
}

// Validate checks the configuration for conditions the process must not
// start under.
func (c *Config) Validate() error {
	if c.Policy.File != "" && c.Policy.Inline != "" {
		return fmt.Errorf("policy.file and policy.inline are mutually exclusive")
	}

	sinks := c.Audit.Sinks()
	if len(sinks) == 0 {
		return fmt.Errorf("audit.sink must name at least one sink")
	}
	for _, sink := range sinks {
		switch sink {
		case AuditSinkLog:
		case AuditSinkNone:
			if len(sinks) > 1 {
				return fmt.Errorf("audit sink %q cannot be combined with other sinks", AuditSinkNone)
			}
		case AuditSinkFile:
			if c.Audit.Path == "" {
				return fmt.Errorf("audit.path is required for the file sink")
			}
		default:
			return fmt.Errorf("unknown audit sink %q", sink)
		}
	}

	if c.Service != nil {
		if err := c.Service.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceConfig) validate() error {
	if s.Principal == "" || s.CredentialFile == "" {
		return fmt.Errorf("service.principal and service.credentialFile are both required when a service identity is configured")
	}

	// Verify the credential is actually usable now rather than discovering
	// it at the first check.
	f, err := os.Open(s.CredentialFile)
	if err != nil {
		return fmt.Errorf("service credential file is not readable: %w", err)
	}
	return f.Close()
}
