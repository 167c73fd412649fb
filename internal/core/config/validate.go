package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/hay-kot/criterio"
)

// ValidateDeep runs Validate and then the checks that touch the filesystem:
// the config file at configPath, when it exists, must be a regular file, and
// git_path must resolve to an executable. An empty configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		criterio.Run("config_file", configPath, configFileUsable),
		criterio.Run("git_path", c.GitPath, gitExecutableExists),
	)
}

// configFileUsable accepts a missing file, since defaults apply then.
func configFileUsable(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("cannot access: %w", err)
	case info.IsDir():
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// gitExecutableExists resolves path the way the shell would.
func gitExecutableExists(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}
