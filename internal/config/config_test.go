package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hearth.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("unexpected default server_url: %q", cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("unexpected default timeout: %d", cfg.TimeoutSeconds)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := writeConfig(t, "server_url: https://hearth.example.com\ntheme: light\ntimeout_seconds: 30\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServerURL != "https://hearth.example.com" {
		t.Errorf("server_url not applied: %q", cfg.ServerURL)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme not applied: %q", cfg.Theme)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout not applied: %d", cfg.TimeoutSeconds)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server_url: https://file.example.com\n")
	t.Setenv("HEARTH_SERVER", "https://env.example.com")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServerURL != "https://env.example.com" {
		t.Errorf("env override not applied: %q", cfg.ServerURL)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "server_url: ftp://bad\ntheme: sepia\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestValidateYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"valid", "server_url: https://ok.example.com\ntheme: dark\n", false},
		{"bad theme", "theme: sepia\n", true},
		{"bad timeout", "timeout_seconds: 0\n", true},
		{"unknown key", "extra: true\n", true},
		{"empty document", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verrs, err := ValidateYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ValidateYAML returned error: %v", err)
			}
			if tt.wantErr && len(verrs) == 0 {
				t.Error("expected validation errors, got none")
			}
			if !tt.wantErr && len(verrs) > 0 {
				t.Errorf("unexpected validation errors: %v", verrs)
			}
		})
	}
}

func TestValidateYAMLMalformed(t *testing.T) {
	_, err := ValidateYAML([]byte("server_url: [unclosed\n"))
	if err == nil {
		t.Fatal("expected parse error for malformed yaml")
	}
	if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("unexpected error: %v", err)
	}
}
