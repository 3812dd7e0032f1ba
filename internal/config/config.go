// Package config loads ottocart settings from .ottocart.yaml, the
// environment (OTTOCART_*) and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/ottocart/internal/submit"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

// Keys.
const (
	KeyBaseURL           = "base_url"
	KeyHTTPTimeout       = "http_timeout"
	KeyNoticeDelay       = "notice_delay"
	KeyListID            = "list_id"
	KeyRedirectInventory = "redirect.inventory"
	KeyRedirectVerify    = "redirect.verify"
	KeyLogLevel          = "log_level"
	KeyLogFile           = "log_file"
)

// EnvConfigPath names a directory searched for .ottocart.yaml.
const EnvConfigPath = "OTTOCART_CONFIG_PATH"

// Workflow is the per-variant submission policy.
type Workflow struct {
	EmptySelection string `mapstructure:"empty_selection"`
	HoldOnReject   bool   `mapstructure:"hold_on_reject"`
}

// Config is the resolved configuration.
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
	NoticeDelay time.Duration
	ListID      string
	Redirect    struct {
		Inventory string
		Verify    string
	}
	LogLevel  string
	LogFile   string
	Workflows map[workflow.Variant]Workflow
	// File is the config file that was read, if any.
	File string
}

// Loader reads configuration. Flags bound with BindFlags win over the
// file and the environment.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader creates a loader. file may be empty to search the default
// locations.
func NewLoader(file string) *Loader {
	v := viper.New()
	v.SetDefault(KeyBaseURL, "http://localhost:5000")
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyNoticeDelay, 2*time.Second)
	v.SetDefault(KeyListID, "")
	v.SetDefault(KeyRedirectInventory, workflow.DefaultRedirect)
	v.SetDefault(KeyRedirectVerify, workflow.DefaultRedirect)
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, ".ottocart-logs/ottocart.log")

	v.SetConfigName(".ottocart") // .yaml is implicit
	v.SetEnvPrefix("OTTOCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v, file: file}
}

// BindFlag makes a flag override key when it was set on the command line.
func (l *Loader) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("config: no flag for %s", key)
	}
	return l.v.BindPFlag(key, f)
}

// Load reads the file, if any, and returns the validated configuration.
func (l *Loader) Load() (*Config, error) {
	if l.file != "" {
		l.v.SetConfigFile(l.file)
	} else {
		if override := os.Getenv(EnvConfigPath); override != "" {
			l.v.AddConfigPath(override)
		}
		l.v.AddConfigPath("./")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", l.v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		BaseURL:     strings.TrimSpace(l.v.GetString(KeyBaseURL)),
		HTTPTimeout: l.v.GetDuration(KeyHTTPTimeout),
		NoticeDelay: l.v.GetDuration(KeyNoticeDelay),
		ListID:      strings.TrimSpace(l.v.GetString(KeyListID)),
		LogLevel:    l.v.GetString(KeyLogLevel),
		File:        l.v.ConfigFileUsed(),
		Workflows:   make(map[workflow.Variant]Workflow),
	}
	cfg.Redirect.Inventory = l.v.GetString(KeyRedirectInventory)
	cfg.Redirect.Verify = l.v.GetString(KeyRedirectVerify)

	logFile, err := homedir.Expand(l.v.GetString(KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyLogFile, err)
	}
	cfg.LogFile = logFile

	var raw map[string]Workflow
	if err := l.v.UnmarshalKey("workflows", &raw); err != nil {
		return nil, fmt.Errorf("config: workflows: %w", err)
	}
	for name, wf := range raw {
		v, err := workflow.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("config: workflows: %w", err)
		}
		cfg.Workflows[v] = wf
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: %s %q is not an http(s) url", KeyBaseURL, c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: %s must be positive, got %s", KeyHTTPTimeout, c.HTTPTimeout)
	}
	if c.NoticeDelay <= 0 {
		return fmt.Errorf("config: %s must be positive, got %s", KeyNoticeDelay, c.NoticeDelay)
	}
	for _, target := range []string{c.Redirect.Inventory, c.Redirect.Verify} {
		if !strings.HasPrefix(target, "/") {
			return fmt.Errorf("config: redirect target %q must be a path", target)
		}
	}
	for v, wf := range c.Workflows {
		if _, err := submit.ParseEmptyPolicy(wf.EmptySelection); err != nil {
			return fmt.Errorf("config: workflows.%s: %w", v, err)
		}
	}
	return nil
}

// Policy returns the submission policy of a variant.
func (c *Config) Policy(v workflow.Variant) submit.Policy {
	wf := c.Workflows[v]
	empty, _ := submit.ParseEmptyPolicy(wf.EmptySelection)
	return submit.Policy{Empty: empty, HoldOnReject: wf.HoldOnReject}
}

// RedirectFor returns the navigation target of a variant.
func (c *Config) RedirectFor(v workflow.Variant) string {
	if v == workflow.VariantVerifyRecipe {
		return c.Redirect.Verify
	}
	return c.Redirect.Inventory
}
