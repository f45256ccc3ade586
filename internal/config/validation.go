package config

import (
	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
)

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch {
	case c.QuietWindow < 0:
		return errors.ConfigError("quiet_window must not be negative").
			WithContext("quiet_window", c.QuietWindow.String()).
			Build()
	case len(c.Entrypoint) == 0 || c.Entrypoint[0] == "":
		return errors.ConfigError("entrypoint must name the inner build tool").Build()
	case c.Runtime == "":
		return errors.ConfigError("runtime must not be empty").Build()
	}
	return nil
}
