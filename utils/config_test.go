package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "favgen.yaml")

	configContent := `
source: "assets/logo.webp"
output: "/srv/site/public"
trash: true
base_url: "/static"
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if want := filepath.Join(tmpDir, "assets", "logo.webp"); cfg.Source != want {
		t.Errorf("Source = %q, want %q", cfg.Source, want)
	}
	if cfg.Output != "/srv/site/public" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if !cfg.Trash {
		t.Error("Trash = false, want true")
	}
	if cfg.BaseURL != "/static" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	os.WriteFile(bad, []byte("source: [unclosed"), 0644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSource:  "/tmp/src.png",
		EnvOutput:  "",
		EnvTrash:   "1",
		EnvBaseURL: "https://example.com",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Config{Source: "file.png", Output: "public"}
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Source != "/tmp/src.png" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Output != "public" {
		t.Errorf("Output = %q, empty env must not override", cfg.Output)
	}
	if !cfg.Trash || cfg.BaseURL != "https://example.com" {
		t.Errorf("cfg = %+v", cfg)
	}

	env[EnvTrash] = "maybe"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected error for invalid FAVGEN_TRASH")
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Validate() = %v, want ErrNoSource", err)
	}

	cfg.Source = filepath.Join("site", "logo.png")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Output != "site" {
		t.Errorf("Output = %q, want source dir", cfg.Output)
	}
}

func TestValidateSourceIsOutput(t *testing.T) {
	dir := t.TempDir()

	cases := []Config{
		{Source: filepath.Join(dir, "icon.png")},
		{Source: filepath.Join(dir, "apple-icon.png"), Output: dir},
		{Source: filepath.Join(dir, "public", "favicon.ico"), Output: filepath.Join(dir, "public", ".")},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); !errors.Is(err, ErrSourceIsOutput) {
			t.Errorf("Validate(%+v) = %v, want ErrSourceIsOutput", cfg, err)
		}
	}

	ok := Config{Source: filepath.Join(dir, "icon.png"), Output: filepath.Join(dir, "public")}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate with separate output: %v", err)
	}
}
