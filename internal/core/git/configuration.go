package git

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kballard/go-shellquote"
)

// UserName is the git option holding the committer name.
const UserName = "user.name"

// Configuration reads and writes git config options of a repository. Lookups
// are memoized per instance, including options known to be unset.
type Configuration struct {
	repo *Repository

	mu sync.Mutex
	// cache maps option names to their value; a nil value means unset.
	cache map[string]*string
}

func newConfiguration(repo *Repository) *Configuration {
	return &Configuration{
		repo:  repo,
		cache: make(map[string]*string),
	}
}

// Lookup returns the value of option. ok is false when git reports the option
// as unset. Errors other than a failed git execution are returned and not cached.
func (c *Configuration) Lookup(ctx context.Context, option string) (value string, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, cached := c.cache[option]; cached {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	out, err := c.repo.Git(c.repo.op(ctx, "config-get"), "config --get "+shellquote.Join(option))
	if err != nil {
		var execErr *ExecutionError
		if errors.As(err, &execErr) {
			c.cache[option] = nil
			return "", false, nil
		}
		return "", false, fmt.Errorf("config get %s: %w", option, err)
	}

	c.cache[option] = &out
	return out, true, nil
}

// Get returns the value of option, or fallback when it is unset or cannot be read.
func (c *Configuration) Get(ctx context.Context, option, fallback string) string {
	value, ok, err := c.Lookup(ctx, option)
	if err != nil {
		c.repo.logger.Warn().Ctx(ctx).Err(err).Str("option", option).Msg("config lookup failed")
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}

// Set writes option to the repository-local config.
func (c *Configuration) Set(ctx context.Context, option, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.repo.Git(c.repo.op(ctx, "config-set"), "config --local "+shellquote.Join(option, value)); err != nil {
		return err
	}
	delete(c.cache, option)
	return nil
}

// Remove unsets option in the repository-local config.
func (c *Configuration) Remove(ctx context.Context, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.repo.Git(c.repo.op(ctx, "config-unset"), "config --local --unset "+shellquote.Join(option)); err != nil {
		return err
	}
	delete(c.cache, option)
	return nil
}
