package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottocart/internal/config"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// env is what every subcommand runs with.
type env struct {
	configFile string
	verbose    bool
	quiet      bool

	cfg     *config.Config
	log     *logger.Logger
	closeFn func()
}

func newRootCmd() *cobra.Command {
	e := &env{}
	recipes := newRecipesCmd(e)

	cmd := &cobra.Command{
		Use:          "ottocart",
		Short:        "Save recipes and reconcile shopping lists against a recipe server",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Save recipes one card at a time
  ottocart

  # Check several recipes and save them together
  ottocart recipes --batch

  # Check the pantry before cooking recipe 42
  ottocart cook 42

  # Reconcile shopping list 5 and land on the search page
  ottocart confirm 5 --redirect /search
`),
		// No subcommand => recipes.
		RunE: recipes.RunE,
	}
	cmd.Flags().AddFlagSet(recipes.Flags())

	pf := cmd.PersistentFlags()
	pf.StringVar(&e.configFile, "config", "", "config file (default: .ottocart.yaml in $OTTOCART_CONFIG_PATH or ./)")
	pf.BoolVar(&e.verbose, "verbose", false, "enable verbose/debug logging")
	pf.BoolVar(&e.quiet, "quiet", false, "disable all logging")
	pf.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	pf.String("base-url", "", "recipe server root, e.g. http://localhost:5000")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return e.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if e.closeFn != nil {
			e.closeFn()
		}
	}

	cmd.AddCommand(recipes, newCookCmd(e), newConfirmCmd(e), newCatalogCmd(e))
	return cmd
}

func (e *env) setup(cmd *cobra.Command) error {
	loader := config.NewLoader(e.configFile)
	root := cmd.Root().PersistentFlags()
	if err := loader.BindFlag(config.KeyBaseURL, root.Lookup("base-url")); err != nil {
		return err
	}
	if err := loader.BindFlag(config.KeyLogFile, root.Lookup("log-file")); err != nil {
		return err
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %s: %w", config.KeyLogLevel, err)
	}
	if e.verbose {
		level = logger.LevelVerbose
	}
	if e.quiet {
		level = logger.LevelOff
	}

	out, closeFn := openLogOutput(cfg.LogFile)
	e.closeFn = closeFn

	// Third-party libraries log through the standard package; send it to
	// the same place so it doesn't spam the terminal.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	e.log = logger.New(level, out)
	if cfg.File != "" {
		e.log.Debug("config loaded from %s", cfg.File)
	}
	return nil
}

// openLogOutput directs logs to a file by default so the prompt stays
// clean.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}
