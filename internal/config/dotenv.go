package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// DefaultDotEnvFile is read by the CLI before any config is built.
const DefaultDotEnvFile = ".env"

// LoadDotEnv applies the variables of the given .env files to the process
// environment. Variables already set are kept. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "failed to stat env file %s", path)
		}

		if err := gotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load env file %s", path)
		}
	}

	return nil
}
