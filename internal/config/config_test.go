package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/Faultbox/modelconv/pkg/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Convert.ChunkSize != DefaultChunkSize {
		t.Errorf("expected chunk size %d, got %d", DefaultChunkSize, cfg.Convert.ChunkSize)
	}
	if cfg.Convert.Normals != NormalsKeep {
		t.Errorf("expected normals to be kept by default, got %q", cfg.Convert.Normals)
	}
	if cfg.Convert.UpFrom != "" || cfg.Convert.UpTo != "" {
		t.Error("expected no up-axis conversion by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
convert:
  up_from: y
  up_to: z
  normals: face
  chunk_size: 512

logging:
  level: "debug"
  log_file: "convert.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Convert.UpFrom != "y" || cfg.Convert.UpTo != "z" {
		t.Errorf("expected y->z, got %s->%s", cfg.Convert.UpFrom, cfg.Convert.UpTo)
	}
	if cfg.Convert.Normals != NormalsFace {
		t.Errorf("expected normals 'face', got %q", cfg.Convert.Normals)
	}
	if cfg.Convert.ChunkSize != 512 {
		t.Errorf("expected chunk size 512, got %d", cfg.Convert.ChunkSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "convert.log" {
		t.Errorf("expected log file 'convert.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
convert:
  chunk_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "modelconv.yaml")
	if err := os.WriteFile(configPath, []byte("convert:\n  chunk_size: 128\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find modelconv.yaml in current directory")
	}
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "up axis flags",
			args: []string{"--up-from", "z", "--up-to", "y"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Convert.UpFrom != "z" || cfg.Convert.UpTo != "y" {
					t.Errorf("expected z->y, got %s->%s", cfg.Convert.UpFrom, cfg.Convert.UpTo)
				}
			},
		},
		{
			name: "normals and chunk size",
			args: []string{"--normals", "vertex", "--chunk-size", "7"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Convert.Normals != NormalsVertex {
					t.Errorf("expected normals 'vertex', got %q", cfg.Convert.Normals)
				}
				if cfg.Convert.ChunkSize != 7 {
					t.Errorf("expected chunk size 7, got %d", cfg.Convert.ChunkSize)
				}
			},
		},
		{
			name: "charset",
			args: []string{"--charset", "euc-kr"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Convert.Charset != "euc-kr" {
					t.Errorf("expected charset 'euc-kr', got %q", cfg.Convert.Charset)
				}
				enc, err := cfg.Convert.Encoding()
				if err != nil || enc == nil {
					t.Errorf("expected EUC-KR encoding, got %v, %v", enc, err)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags Flags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.Register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			flags.Apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
convert:
  normals: face
  chunk_size: 1024
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{ConfigPath: configPath, ChunkSize: 32})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Chunk size comes from the flag, normals from the file
	if cfg.Convert.ChunkSize != 32 {
		t.Errorf("expected chunk size 32 from flag, got %d", cfg.Convert.ChunkSize)
	}
	if cfg.Convert.Normals != NormalsFace {
		t.Errorf("expected normals 'face' from file, got %q", cfg.Convert.Normals)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"unknown normals", Flags{Normals: "smooth"}},
		{"half up conversion", Flags{UpFrom: "y"}},
		{"bad axis", Flags{UpFrom: "y", UpTo: "w"}},
		{"unsupported pair", Flags{UpFrom: "x", UpTo: "y"}},
		{"unknown charset", Flags{Charset: "klingon"}},
		{"utf-16 charset", Flags{Charset: "utf-16le"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := tt.flags
			flags.ConfigPath = filepath.Join(t.TempDir(), "none.yaml")
			if err := os.WriteFile(flags.ConfigPath, nil, 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(&flags); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUpConversion(t *testing.T) {
	conv, err := ConvertConfig{UpFrom: "y", UpTo: "z"}.UpConversion()
	if err != nil {
		t.Fatalf("UpConversion failed: %v", err)
	}
	if conv == nil || conv.From != model.AxisY || conv.To != model.AxisZ {
		t.Errorf("unexpected conversion %v", conv)
	}

	conv, err = ConvertConfig{}.UpConversion()
	if err != nil || conv != nil {
		t.Errorf("expected nil conversion, got %v, %v", conv, err)
	}

	_, err = ConvertConfig{UpFrom: "x", UpTo: "z"}.UpConversion()
	if !errors.Is(err, model.ErrUnsupportedUpConversion) {
		t.Errorf("expected ErrUnsupportedUpConversion, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Convert.UpFrom = "z"
	cfg.Convert.UpTo = "y"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded %+v, want %+v", loaded, cfg)
	}
}
