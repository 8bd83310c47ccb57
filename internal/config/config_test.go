package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir substitutes for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func validConfig() Config {
	return Config{
		HTTP:   HTTPConfig{Port: 8000},
		LLM:    LLMConfig{APIKey: "llm-key"},
		Search: SearchConfig{APIKey: "search-key", Depth: "basic"},
	}
}

func TestValidate_MissingLLMKey(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing llm.api_key")
	}
	if err.Error() != "llm.api_key is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_MissingSearchKey(t *testing.T) {
	cfg := validConfig()
	cfg.Search.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing search.api_key")
	}
}

func TestValidate_InvalidSearchDepth(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Depth = "deep"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid search depth")
	}

	expected := `search.search_depth must be "basic" or "advanced", got "deep"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.HTTP.Port)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("default max_results = %d, want 5", cfg.Search.MaxResults)
	}
	if cfg.Search.TimeoutSec != 8 {
		t.Errorf("default timeout_sec = %d, want 8", cfg.Search.TimeoutSec)
	}
	if cfg.Search.Depth != "basic" {
		t.Errorf("default search_depth = %q, want basic", cfg.Search.Depth)
	}
	if cfg.LLM.Model == "" {
		t.Error("default llm model must not be empty")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CLAIMLENS_TEST_KEY", "secret")

	in := []byte("api_key: ${CLAIMLENS_TEST_KEY}\nport: ${CLAIMLENS_TEST_PORT:-8000}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nport: 8000\n"
	if out != want {
		t.Errorf("expanded config:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := `
http:
  port: 9000
llm:
  api_key: ${TEST_LLM_KEY}
  model: test-model
search:
  api_key: tvly-test
  timeout_sec: 3
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_LLM_KEY", "llm-secret")
	chdir(t, dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.LLM.APIKey != "llm-secret" {
		t.Errorf("llm api_key = %q, want env-expanded value", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "test-model" {
		t.Errorf("model = %q, want test-model", cfg.LLM.Model)
	}
	if cfg.Search.TimeoutSec != 3 {
		t.Errorf("timeout_sec = %d, want 3", cfg.Search.TimeoutSec)
	}
	// Defaults fill unspecified fields.
	if cfg.Search.MaxResults != 5 {
		t.Errorf("max_results = %d, want default 5", cfg.Search.MaxResults)
	}
}

func TestLoad_MissingRequiredKeyFailsFast(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := `
http:
  port: 9000
llm:
  api_key: ""
search:
  api_key: tvly-test
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	chdir(t, dir)

	if _, err := Load("test"); err == nil {
		t.Fatal("expected Load to fail without llm.api_key")
	}
}
