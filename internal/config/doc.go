// Package config manages user-level settings stored at ~/.dpo/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the Python interpreter override and the pause-on-exit policy.
package config
