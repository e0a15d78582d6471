package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// restoreLog puts back the global logger once the test is done.
func restoreLog(t *testing.T) {
	t.Helper()
	prev := Log
	t.Cleanup(func() { Log = prev })
}

func bufferLogger(buf *bytes.Buffer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			NameKey:    "logger",
			MessageKey: "msg",
			EncodeName: zapcore.FullNameEncoder,
		}),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestInitWithFileConfig_ComponentWarningInFile(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "modelconv.log")

	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	if err := InitWithFileConfig("warn", cfg, false); err != nil {
		t.Fatalf("InitWithFileConfig failed: %v", err)
	}

	Named("obj").Warn("dropping face", zap.Int("corners", 5))
	Info("model converted")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)

	for _, want := range []string{"WARN", "obj", "dropping face", "corners"} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "model converted") {
		t.Errorf("info entry written at warn level:\n%s", out)
	}
}

func TestInitWithFileConfig_Levels(t *testing.T) {
	restoreLog(t)
	dir := t.TempDir()

	tests := []struct {
		level  string
		lowest zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"chatty", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := FileConfig{Path: filepath.Join(dir, tt.level+".log")}
			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("InitWithFileConfig failed: %v", err)
			}
			core := Log.Core()
			if !core.Enabled(tt.lowest) {
				t.Errorf("%s should be enabled", tt.lowest)
			}
			if tt.lowest > zapcore.DebugLevel && core.Enabled(tt.lowest-1) {
				t.Errorf("%s should be filtered", tt.lowest-1)
			}
		})
	}
}

func TestInitWithFileConfig_NoOutputs(t *testing.T) {
	restoreLog(t)
	if err := InitWithFileConfig("debug", FileConfig{}, false); err != nil {
		t.Fatalf("InitWithFileConfig failed: %v", err)
	}
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without console or file should discard everything")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	got := DefaultFileConfig("run.log")
	want := FileConfig{Path: "run.log", MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 14, Compress: true}
	if got != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamed_BoundAtCallTime(t *testing.T) {
	restoreLog(t)

	var before, after bytes.Buffer
	Log = bufferLogger(&before)
	child := Named("ply")

	Log = bufferLogger(&after)
	child.Info("header parsed")
	Named("off").Info("counts read")

	if out := before.String(); !strings.Contains(out, "ply") || !strings.Contains(out, "header parsed") {
		t.Errorf("child should log through the logger it was created from, got %q", out)
	}
	if strings.Contains(after.String(), "header parsed") {
		t.Errorf("child followed the replaced logger: %q", after.String())
	}
	if out := after.String(); !strings.Contains(out, "off") || !strings.Contains(out, "counts read") {
		t.Errorf("new child should use the current logger, got %q", out)
	}
}
