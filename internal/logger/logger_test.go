package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogBeforeInit(t *testing.T) {
	// The package default must accept calls without Init.
	Named("test").Info("dropped", zap.Int("n", 1))
	Debug("dropped")
	Sync()
}

func TestFileLevels(t *testing.T) {
	dir := t.TempDir()
	defer func() { Log = zap.NewNop(); Sugar = Log.Sugar() }()

	tests := []struct {
		level    string
		present  []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			cfg := FileConfig{Path: path, MaxSizeMB: 5, MaxBackups: 1, MaxAgeDays: 1}
			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("InitWithFileConfig() error = %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			out := string(data)
			for _, s := range tt.present {
				if !strings.Contains(out, s) {
					t.Errorf("log at %s missing %s", tt.level, s)
				}
			}
			for _, s := range tt.excluded {
				if strings.Contains(out, s) {
					t.Errorf("log at %s contains %s", tt.level, s)
				}
			}
		})
	}
}

func TestNamedComponent(t *testing.T) {
	dir := t.TempDir()
	defer func() { Log = zap.NewNop(); Sugar = Log.Sugar() }()

	path := filepath.Join(dir, "named.log")
	if err := InitWithFileConfig("info", FileConfig{Path: path, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("InitWithFileConfig() error = %v", err)
	}
	Named("world").Info("generated")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "world") {
		t.Errorf("log = %q, want component name", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/wildmere.log")
	if cfg.Path != "/tmp/wildmere.log" {
		t.Errorf("Path = %q, want /tmp/wildmere.log", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 14 {
		t.Errorf("rotation = %d/%d/%d, want 20/3/14", cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("Compress = false, want true")
	}
}
