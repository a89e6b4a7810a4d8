package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid configuration")

// Validate rejects configurations the compiler cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers must be at least 1, got %d", c.Workers))
	}
	if len(c.Extensions) == 0 {
		problems = append(problems, "extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			problems = append(problems, fmt.Sprintf("extension %q must start with a dot", ext))
		}
	}
	if strings.Trim(c.Format.Indent, " \t") != "" {
		problems = append(problems, fmt.Sprintf("format.indent %q must be blanks only", c.Format.Indent))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
