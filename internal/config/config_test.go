package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	"github.com/hammamikhairi/ottocart/internal/submit"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".ottocart.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, t.TempDir())

	cfg, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.NoticeDelay != 2*time.Second {
		t.Errorf("NoticeDelay = %s", cfg.NoticeDelay)
	}
	if cfg.RedirectFor(workflow.VariantInventory) != "/main" || cfg.RedirectFor(workflow.VariantVerifyRecipe) != "/main" {
		t.Errorf("redirects = %+v", cfg.Redirect)
	}
	if got := cfg.Policy(workflow.VariantRecipeBatchAdd); got != (submit.Policy{}) {
		t.Errorf("default policy = %+v", got)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://recipes.example.com
http_timeout: 5s
notice_delay: 500ms
list_id: "5"
redirect:
  inventory: /search
workflows:
  recipe-batch-add:
    empty_selection: skip
  verify-recipe:
    hold_on_reject: true
`)

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://recipes.example.com" || cfg.HTTPTimeout != 5*time.Second || cfg.NoticeDelay != 500*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ListID != "5" {
		t.Errorf("ListID = %q", cfg.ListID)
	}
	if cfg.RedirectFor(workflow.VariantInventory) != "/search" {
		t.Errorf("inventory redirect = %q", cfg.Redirect.Inventory)
	}
	if cfg.RedirectFor(workflow.VariantVerifyRecipe) != "/main" {
		t.Errorf("verify redirect = %q", cfg.Redirect.Verify)
	}
	if got := cfg.Policy(workflow.VariantRecipeBatchAdd); got.Empty != submit.EmptySkip {
		t.Errorf("batch policy = %+v", got)
	}
	if got := cfg.Policy(workflow.VariantVerifyRecipe); !got.HoldOnReject {
		t.Errorf("verify policy = %+v", got)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
}

func TestEnvAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, "base_url: http://file:5000\nlist_id: \"1\"\n")
	t.Setenv("OTTOCART_BASE_URL", "http://env:5000")
	t.Setenv("OTTOCART_LIST_ID", "2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("base-url", "", "")
	if err := fs.Parse([]string{"--base-url", "http://flag:5000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	l := NewLoader(path)
	if err := l.BindFlag(KeyBaseURL, fs.Lookup("base-url")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := l.BindFlag(KeyLogFile, fs.Lookup("missing")); err == nil {
		t.Fatal("binding a missing flag should fail")
	}

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://flag:5000" {
		t.Errorf("BaseURL = %q, flag should win", cfg.BaseURL)
	}
	if cfg.ListID != "2" {
		t.Errorf("ListID = %q, env should beat the file", cfg.ListID)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad url", "base_url: localhost\n", "base_url"},
		{"zero timeout", "http_timeout: 0s\n", "http_timeout"},
		{"relative redirect", "redirect:\n  inventory: main\n", "redirect"},
		{"unknown workflow", "workflows:\n  checkout:\n    hold_on_reject: true\n", "checkout"},
		{"bad policy", "workflows:\n  inventory:\n    empty_selection: maybe\n", "maybe"},
		{"broken yaml", "base_url: [\n", "reading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tt.body)).Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLogFileExpandsHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, "log_file: ~/logs/cart.log\n")

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want under %q", cfg.LogFile, home)
	}
}
