// Package config loads the posadmin CLI configuration from, in order of
// increasing precedence: built-in defaults, an optional JSON file
// (-c/-config), and command-line flags.
package config
