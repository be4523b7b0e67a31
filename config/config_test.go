package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type githubSection struct {
	APIURL  string        `yaml:"api_url" mapstructure:"api_url"`
	Token   string        `yaml:"token" mapstructure:"token"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	GitHub        githubSection `yaml:"github" mapstructure:"github"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty config gets name and environment", func(t *testing.T) {
		cfg := ServiceConfig{}
		cfg.ApplyDefaults()
		if cfg.Name != "pontos" {
			t.Errorf("expected name 'pontos', got %q", cfg.Name)
		}
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
	})

	t.Run("debug raises log level", func(t *testing.T) {
		cfg := ServiceConfig{Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", ServiceConfig{Name: "pontos", Environment: "development"}, false, ""},
		{"valid ci", ServiceConfig{Name: "pontos", Environment: "ci"}, false, ""},
		{"missing name", ServiceConfig{Environment: "ci"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "pontos", Environment: "staging"}, true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: pontos-test
environment: ci
logging:
  level: debug
  format: json
github:
  api_url: https://ghe.example.com/api/v3
  timeout: 10s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	// Runners export GITHUB_API_URL, which would shadow the file value.
	t.Setenv("GITHUB_API_URL", "")
	os.Unsetenv("GITHUB_API_URL")

	var cfg testConfig
	if err := LoadConfig("pontos", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "pontos-test" {
		t.Errorf("expected name 'pontos-test', got %q", cfg.Name)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("unexpected api_url %q", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.GitHub.Timeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("github:\n  token: from-file\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "from-env")

	var cfg testConfig
	if err := LoadConfig("pontos", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GitHub.Token != "from-env" {
		t.Errorf("expected env token to win, got %q", cfg.GitHub.Token)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("pontos", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{home: "/home/dev", files: map[string]bool{
		"/home/dev/.config/pontos/config.yml": true,
		".env":                                true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("pontos", LoaderConfig{})
	if files.ConfigFile != "/home/dev/.config/pontos/config.yml" {
		t.Errorf("expected user config file, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}
}

func TestResolverPrefersWorkingDirectory(t *testing.T) {
	fs := &mockFS{home: "/home/dev", files: map[string]bool{
		"./pontos.yml":                        true,
		"/home/dev/.config/pontos/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("pontos", LoaderConfig{})
	if files.ConfigFile != "./pontos.yml" {
		t.Errorf("expected ./pontos.yml, got %q", files.ConfigFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("pontos", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("explicit paths not kept: %+v", files)
	}
}

type mockFS struct {
	home  string
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) HomeDir() (string, error)  { return m.home, nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("GITHUB_APP_ID")
	for _, want := range []string{"github_app_id", "github.app.id", "github.app_id"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := envKeyVariants("HOME"); len(got) != 1 || got[0] != "home" {
		t.Errorf("expected single variant, got %v", got)
	}
}
