package config

import (
	"strings"

	"git.home.luguber.info/inful/deckshell/internal/foundation/errors"
)

// Validate checks the finalized configuration.
func (c *Config) Validate() error {
	if c.ClientRoot == "" {
		return errors.ValidationError("client_root is required").Build()
	}
	if NormalizeMode(string(c.Mode)) == "" {
		return errors.ValidationError("mode must be one of "+ValidModes()).
			WithContext("mode", string(c.Mode)).
			Build()
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.ValidationError("server.metrics_path must start with /").
			WithContext("metrics_path", c.Server.MetricsPath).
			Build()
	}
	return nil
}
