package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	UpFrom     string
	UpTo       string
	Normals    string
	ChunkSize  int
	Charset    string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file (rotated)")
	fs.StringVar(&f.UpFrom, "up-from", "", "Source up axis (x, y or z)")
	fs.StringVar(&f.UpTo, "up-to", "", "Target up axis (x, y or z)")
	fs.StringVar(&f.Normals, "normals", "", "Generate normals: vertex or face")
	fs.IntVar(&f.ChunkSize, "chunk-size", 0, "Bytes read per parser call")
	fs.StringVar(&f.Charset, "charset", "", "Text encoding of the input (e.g. euc-kr, shift_jis)")
}

// Apply applies flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.UpFrom != "" {
		cfg.Convert.UpFrom = f.UpFrom
	}
	if f.UpTo != "" {
		cfg.Convert.UpTo = f.UpTo
	}
	if f.Normals != "" {
		cfg.Convert.Normals = f.Normals
	}
	if f.ChunkSize > 0 {
		cfg.Convert.ChunkSize = f.ChunkSize
	}
	if f.Charset != "" {
		cfg.Convert.Charset = f.Charset
	}
}
