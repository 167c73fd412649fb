package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/gitwrap/internal/core/config"
	"github.com/hay-kot/gitwrap/internal/core/git"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Dir        string
	GitPath    string
	Debug      bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// GitOptions overrides the options derived from Config. Used by tests to
	// inject an execution strategy.
	GitOptions *git.Options
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gitwrap", "config.yaml")
}

// LoadConfig loads the config file for the command named by args, the
// arguments left after the global flags. "config validate" gets the file
// unvalidated so it can report structural problems itself.
func LoadConfig(path string, args []string) (*config.Config, error) {
	if isConfigValidate(args) {
		return config.Read(path)
	}
	return config.Load(path)
}

func isConfigValidate(args []string) bool {
	if len(args) == 0 || args[0] != "config" {
		return false
	}
	for _, arg := range args[1:] {
		if !strings.HasPrefix(arg, "-") {
			return arg == "validate"
		}
	}
	return false
}

// Apply folds command line overrides into the loaded config.
func (f *Flags) Apply(cfg *config.Config) {
	if f.GitPath != "" {
		cfg.GitPath = f.GitPath
	}
	if f.Debug {
		cfg.Debug = true
	}
	f.Config = cfg
}

func (f *Flags) config() *config.Config {
	if f.Config == nil {
		cfg := config.DefaultConfig()
		f.Config = &cfg
	}
	return f.Config
}

func (f *Flags) options() git.Options {
	if f.GitOptions != nil {
		return *f.GitOptions
	}
	return f.config().GitOptions()
}

func (f *Flags) dir() string {
	if f.Dir == "" {
		return "."
	}
	return f.Dir
}

// OpenRepo opens the repository selected by --dir.
func (f *Flags) OpenRepo() (*git.Repository, error) {
	return git.Open(f.dir(), f.config().Debug, f.options())
}
