package telemetry

import (
	"context"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default config", func(c *Config) {}, false},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"otlp without endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
		}, true},
		{"stdout exporter", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "stdout"
		}, false},
		{"bad sampling rate", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "none"
			c.Tracing.SamplingRate = 2.0
		}, true},
		{"metrics without address", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.ListenAddress = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAndContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "stderr"

	tel, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() failed: %v", err)
		}
	}()

	ctx := tel.WithContext(context.Background())
	if got := FromTelemetryContext(ctx); got != tel {
		t.Error("FromTelemetryContext did not return the attached instance")
	}
	if FromTelemetryContext(context.Background()) != nil {
		t.Error("FromTelemetryContext returned non-nil for a bare context")
	}
	if FromContext(ctx) != tel.Logger {
		t.Error("FromContext did not return the attached logger")
	}
}

func TestNoopMetrics(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	// All recorders must be safe no-ops when metrics are disabled.
	m.RecordParse("identifier")
	m.RecordBuild("ok")
	m.RecordValidation("identifier", "valid")
	m.RecordLintRun("completed", 0)
	m.RecordLintedID("valid")
	m.RecordLintFinding("naming", "error")
	m.WatchStarted()
	m.WatchStopped()

	if err := m.StartMetricsServer(); err != nil {
		t.Errorf("StartMetricsServer() on disabled metrics failed: %v", err)
	}
}
