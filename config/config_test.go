package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Workdir       string `yaml:"workdir" mapstructure:"workdir"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
name: builder
environment: production
workdir: /var/lib/builder
exec:
  timeout: 30s
  max_line_bytes: 65536
`)

	var cfg testConfig
	if err := Load("builder", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "builder" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Workdir != "/var/lib/builder" {
		t.Errorf("workdir = %q", cfg.Workdir)
	}
	if cfg.Exec.Timeout != 30*time.Second {
		t.Errorf("exec timeout = %v", cfg.Exec.Timeout)
	}
	if cfg.Exec.MaxLineBytes != 65536 {
		t.Errorf("max line bytes = %d", cfg.Exec.MaxLineBytes)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", "name: builder\nworkdir: /from/file\n")
	t.Setenv("WORKDIR", "/from/env")

	var cfg testConfig
	if err := Load("builder", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workdir != "/from/env" {
		t.Errorf("workdir = %q, env should win", cfg.Workdir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "NAME=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("NAME") })

	var cfg testConfig
	if err := Load("builder", &cfg, WithEnvFile(envFile)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("name = %q", cfg.Name)
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "builder"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Errorf("debug should default on in development")
	}
	if cfg.Version == "" {
		t.Errorf("version should default to the build version")
	}
	if cfg.Logging.ServiceName != "builder" {
		t.Errorf("logging service name = %q", cfg.Logging.ServiceName)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	cfg := ServiceConfig{Name: "builder", Environment: "production"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := ServiceConfig{Environment: "production"}
	bad.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Fatalf("a config without a name should not validate")
	}
}

func TestExecConfigSpec(t *testing.T) {
	cfg := ExecConfig{Timeout: time.Minute, MaxLineBytes: 1024}
	spec := cfg.Spec("ls -la")
	if spec.Command != "ls -la" {
		t.Errorf("command = %q", spec.Command)
	}
	if spec.Timeout != time.Minute || spec.MaxLineBytes != 1024 {
		t.Errorf("spec = %+v", spec)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("EXEC_MAX_LINE_BYTES")
	want := map[string]bool{
		"exec_max_line_bytes": false,
		"exec.max.line.bytes": false,
		"exec.max_line_bytes": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("variant %q missing from %v", k, variants)
		}
	}
}
