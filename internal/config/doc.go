// Package config loads and validates plexify configuration. Settings come
// from a TOML file with repository defaults, and the encoding parameters can
// additionally be overridden from the environment (optionally seeded from a
// .env file) for parity with older deployments that configured workers that
// way.
package config
