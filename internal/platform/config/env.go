// Package config loads command configuration from ARITHBIND_* environment
// variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every env tag.
const Prefix = "ARITHBIND_"

// ParseEnv loads configuration from the process environment.
func ParseEnv(target any) error {
	return parse(target, env.Options{Prefix: Prefix})
}

// ParseEnvMap loads configuration from environ instead of the process
// environment. Keys carry the full prefixed name.
func ParseEnvMap(target any, environ map[string]string) error {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(target, env.Options{Prefix: Prefix, Environment: environ})
}

// Lookup returns the prefixed environment value for key.
func Lookup(key string) (string, bool) {
	return os.LookupEnv(Prefix + key)
}

func parse(target any, opts env.Options) error {
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
