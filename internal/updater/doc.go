// Package updater checks GitHub Releases for newer launcher versions. The
// check result is cached for a day in the config directory and powers the
// non-blocking startup banner; upgrades themselves happen through whatever
// channel installed the binary.
package updater
