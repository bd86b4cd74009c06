// Package config parses environment-variable configuration structs shared
// by cmd/director and cmd/scenario-run; it carries no domain content of
// its own, so it is unchanged from the teacher's own platform layer.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
