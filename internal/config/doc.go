// Package config loads, normalizes, and validates tubeclip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TUBECLIP_DATASET_ROOT. An optional .env file is merged into the process
// environment before those fallbacks are read.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
