// Package cli defines the Cobra command tree for the dpo launcher. Each file
// in this package registers one top-level command (launch, install, doctor,
// config, version) with the root command. Command implementations delegate to
// internal packages for the probe/install/launch logic and only handle flag
// parsing, I/O formatting, and user interaction.
package cli
