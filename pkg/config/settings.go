package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"
)

// DefaultFileName is the settings file looked up in the working
// directory and the user's home directory when no explicit path is
// given.
const DefaultFileName = ".azrid.cue"

// Settings holds the azrid configuration.
type Settings struct {
	// DefaultCloud selects the cloud environment used by commands that
	// take no explicit --cloud flag.
	DefaultCloud string `json:"defaultCloud" validate:"omitempty,oneof=public china usgovernment"`

	// Output is the default output format for command results.
	Output string `json:"output" validate:"omitempty,oneof=text json yaml"`

	// Lint configures the identifier linter.
	Lint LintSettings `json:"lint"`

	// Telemetry configures logging, tracing and metrics.
	Telemetry TelemetrySettings `json:"telemetry"`
}

// LintSettings configures the identifier linter.
type LintSettings struct {
	// PolicyPaths are files or directories of rego/json policies loaded
	// in addition to the built-in set.
	PolicyPaths []string `json:"policyPaths"`

	// StorePath is the SQLite database recording lint run history.
	// Empty disables history.
	StorePath string `json:"storePath"`

	// FailOn is the minimum finding severity that fails a lint run.
	FailOn string `json:"failOn" validate:"omitempty,oneof=warning error critical"`
}

// TelemetrySettings configures the observability stack.
type TelemetrySettings struct {
	LogLevel      string  `json:"logLevel" validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogFormat     string  `json:"logFormat" validate:"omitempty,oneof=console json"`
	TraceExporter string  `json:"traceExporter" validate:"omitempty,oneof=otlp stdout none"`
	TraceEndpoint string  `json:"traceEndpoint"`
	SamplingRate  float64 `json:"samplingRate" validate:"gte=0,lte=1"`
	MetricsListen string  `json:"metricsListen"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultCloud: "public",
		Output:       "text",
		Lint: LintSettings{
			FailOn: "error",
		},
		Telemetry: TelemetrySettings{
			LogLevel:      "info",
			LogFormat:     "console",
			TraceExporter: "none",
			SamplingRate:  1.0,
			MetricsListen: ":9090",
		},
	}
}

// Load reads settings from the given path. An empty path falls back to
// DefaultFileName in the working directory, then in the user's home
// directory; if neither exists the defaults are returned.
func Load(path string) (*Settings, error) {
	if path == "" {
		found, ok := findDefaultFile()
		if !ok {
			return DefaultSettings(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a CUE settings document. The name is used
// only in error messages.
func Parse(data []byte, name string) (*Settings, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile settings %s: %w", name, err)
	}

	settings := DefaultSettings()
	if err := value.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings %s: %w", name, err)
	}

	if err := validator.New().Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", name, err)
	}
	return settings, nil
}

// findDefaultFile looks for DefaultFileName in the working directory and
// the user's home directory.
func findDefaultFile() (string, bool) {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, DefaultFileName)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}
