package main

import (
	"fmt"

	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// runConfig prints the effective config as YAML, after env vars and flags
// are applied.
func runConfig(positionalArgs []string, flags *buildFlags, env *Environment) error {
	if len(positionalArgs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positionalArgs)
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
