package logger

import (
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("exit_code", 0, "command", "ls")
	if m["exit_code"] != 0 || m["command"] != "ls" {
		t.Errorf("unexpected fields: %v", m)
	}
	if len(Fields("dangling")) != 0 {
		t.Error("dangling key should be dropped")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test").WithComponent("process")
	if l == nil {
		t.Fatal("nil logger")
	}
	// Component loggers share the service tag.
	if l.service != "test" {
		t.Errorf("service = %q, want test", l.service)
	}
}
