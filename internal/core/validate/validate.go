// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// OptionName validates a git config option name of the form section.key or
// section.subsection.key. The key must start with a letter and contain only
// letters, digits and '-'.
func OptionName(name string) error {
	first := strings.Index(name, ".")
	last := strings.LastIndex(name, ".")
	if first <= 0 || last == len(name)-1 {
		return fmt.Errorf("%q is not of the form section.key", name)
	}

	for _, r := range name[:first] {
		if !isAlnum(r) && r != '-' && r != '.' {
			return fmt.Errorf("invalid section in %q", name)
		}
	}

	key := name[last+1:]
	if !isAlpha(rune(key[0])) {
		return fmt.Errorf("key in %q must start with a letter", name)
	}
	for _, r := range key {
		if !isAlnum(r) && r != '-' {
			return fmt.Errorf("invalid key in %q", name)
		}
	}

	return nil
}

// OptionNames validates every name, reporting each invalid one as a field error.
func OptionNames(names []string) error {
	var errs criterio.FieldErrorsBuilder
	for _, name := range names {
		if err := OptionName(name); err != nil {
			errs = errs.Append(name, err)
		}
	}
	return errs.ToError()
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9')
}
