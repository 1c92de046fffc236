package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunValidateAcceptsGoodConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hearth.yaml")
	data := "server_url: https://hearth.example.com\ntheme: dark\ntimeout_seconds: 15\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	old := cfgFile
	cfgFile = path
	defer func() { cfgFile = old }()

	if err := runValidate(validateCmd, nil); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestRunValidateRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hearth.yaml")
	data := "server_url: not-a-url\ntheme: purple\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	old := cfgFile
	cfgFile = path
	defer func() { cfgFile = old }()

	if err := runValidate(validateCmd, nil); err == nil {
		t.Error("invalid config must fail validation")
	}
}

func TestRunValidateMissingFileIsFine(t *testing.T) {
	old := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")
	defer func() { cfgFile = old }()

	if err := runValidate(validateCmd, nil); err != nil {
		t.Errorf("missing config must not be an error: %v", err)
	}
}
