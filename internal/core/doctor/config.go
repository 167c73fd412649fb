package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/gitwrap/internal/core/config"
)

// ConfigCheck validates the loaded configuration and its file.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); c.path == "" || err != nil {
		result.Items = append(result.Items, pass("file", "not found, using defaults"))
	} else {
		result.Items = append(result.Items, pass("file", c.path))
	}

	err := c.cfg.ValidateDeep(c.path)
	if err == nil {
		result.Items = append(result.Items, pass("valid", ""))
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, fail("valid", err.Error()))
		return result
	}
	for _, fe := range fieldErrs {
		result.Items = append(result.Items, fail(fe.Field, fe.Err.Error()))
	}

	return result
}
