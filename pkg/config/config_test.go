package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AuditSinkLog, cfg.Audit.Sink)
	assert.Equal(t, "groups", cfg.Identity.GroupsClaim)
	assert.Nil(t, cfg.Service)
	assert.Empty(t, cfg.Policy.File)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
policy:
  inline: |
    permit(principal, action, resource);
identity:
  groupsClaim: roles
  staticGroups:
    alice:
      - finance
audit:
  sink: none
metrics:
  enabled: true
`)

	cfg, err := Load(WithConfigPath(path))
	require.NoError(t, err)

	assert.Contains(t, cfg.Policy.Inline, "permit")
	assert.Equal(t, "roles", cfg.Identity.GroupsClaim)
	assert.Equal(t, []string{"finance"}, cfg.Identity.StaticGroups["alice"])
	assert.Equal(t, AuditSinkNone, cfg.Audit.Sink)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty path option", func(t *testing.T) {
		t.Parallel()

		_, err := Load(WithConfigPath(""))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(WithConfigPath("/nonexistent/config.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "policy: [unterminated")
		_, err := Load(WithConfigPath(path))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("file and inline policy are mutually exclusive", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Policy: PolicyConfig{File: "a.cedar", Inline: "permit(principal, action, resource);"}}
		cfg.applyDefaults()
		require.Error(t, cfg.Validate())
	})

	t.Run("file sink requires a path", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Audit: AuditConfig{Sink: AuditSinkFile}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audit.path")
	})

	t.Run("unknown audit sink", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Audit: AuditConfig{Sink: "syslog"}}
		require.Error(t, cfg.Validate())
	})

	t.Run("combined sinks", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Audit: AuditConfig{Sink: "log, file", Path: "/tmp/audit.log"}}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, []string{AuditSinkLog, AuditSinkFile}, cfg.Audit.Sinks())
	})

	t.Run("none cannot be combined", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Audit: AuditConfig{Sink: "none,log"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be combined")
	})

	t.Run("unknown sink in a combination", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Audit: AuditConfig{Sink: "log,syslog"}}
		require.Error(t, cfg.Validate())
	})

	t.Run("service identity requires both fields", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{
			Service: &ServiceConfig{Principal: "lakegate/host"},
			Audit:   AuditConfig{Sink: AuditSinkLog},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentialFile")
	})

	t.Run("missing credential file is fatal", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{
			Service: &ServiceConfig{
				Principal:      "lakegate/host",
				CredentialFile: "/nonexistent/service.keytab",
			},
			Audit: AuditConfig{Sink: AuditSinkLog},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not readable")
	})

	t.Run("readable credential file passes", func(t *testing.T) {
		t.Parallel()

		keytab := filepath.Join(t.TempDir(), "service.keytab")
		require.NoError(t, os.WriteFile(keytab, []byte("creds"), 0o600))

		cfg := &Config{
			Service: &ServiceConfig{Principal: "lakegate/host", CredentialFile: keytab},
			Audit:   AuditConfig{Sink: AuditSinkLog},
		}
		require.NoError(t, cfg.Validate())
	})
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: "info", want: slog.LevelInfo},
		{value: "warn", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "", want: slog.LevelInfo},
		{value: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.value, func(t *testing.T) {
			t.Setenv("LAKEGATE_LOG_LEVEL", tt.value)
			assert.Equal(t, tt.want, LogLevelFromEnv())
		})
	}
}
