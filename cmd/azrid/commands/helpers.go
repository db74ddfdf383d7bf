package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/piwi3910/azrid/pkg/config"
	"github.com/piwi3910/azrid/pkg/telemetry"
)

// loadSettings loads configuration from the --config path or the
// default locations.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}

// newTelemetry builds a telemetry instance from settings and the
// global flags.
func newTelemetry(settings *config.Settings, metricsListen string) (*telemetry.Telemetry, error) {
	cfg := telemetry.DefaultConfig()
	if settings.Telemetry.LogLevel != "" {
		cfg.Logging.Level = settings.Telemetry.LogLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if settings.Telemetry.LogFormat != "" {
		cfg.Logging.Format = settings.Telemetry.LogFormat
	}
	if settings.Telemetry.TraceExporter != "" && settings.Telemetry.TraceExporter != "none" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Exporter = settings.Telemetry.TraceExporter
		cfg.Tracing.Endpoint = settings.Telemetry.TraceEndpoint
		cfg.Tracing.SamplingRate = settings.Telemetry.SamplingRate
	}
	if metricsListen != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddress = metricsListen
	}

	return telemetry.New(cfg)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printFields writes a field mapping as sorted key=value lines.
func printFields(fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, fields[k])
	}
}
