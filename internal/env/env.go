// Package env provides environment variable loading from .env files.
// This allows endpoint credentials and local overrides to live in .env
// files that are gitignored, rather than hardcoded in YAML config files.
package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is the .env file read from the current working directory.
const DefaultFile = ".env"

// Load reads KEY=VALUE pairs from the given .env files (DefaultFile when none
// are given) and exports them into the process environment. It is called at
// the start of the command so ${VAR} references in the config file resolve.
//
// Behavior:
//   - A missing file is skipped silently; system environment variables still apply
//   - Variables set in .env override system environment variables
//   - A file that exists but cannot be parsed is reported as an error
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultFile}
	}

	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}
