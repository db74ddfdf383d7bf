// Package config loads azrid settings from CUE files.
//
// Settings control CLI defaults (cloud environment, output format),
// lint behavior (policy paths, history store location, failure
// threshold) and telemetry. A settings file is optional; every field
// has a usable default. Files are parsed with CUE and the decoded
// struct is checked with go-playground/validator.
package config
