// Package config loads user configuration for the command-chain editor
// host: TOML settings (cursor marker token, chains file location), JSON
// chain definitions in the heterogeneous element grammar, and live reload
// of the chains file.
package config
