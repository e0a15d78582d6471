// Package config handles converter configuration loading and management.
package config

import (
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/Faultbox/modelconv/pkg/charset"
	"github.com/Faultbox/modelconv/pkg/formats"
	"github.com/Faultbox/modelconv/pkg/model"
)

// Normal generation modes accepted by ConvertConfig.Normals.
const (
	NormalsKeep   = ""
	NormalsVertex = "vertex"
	NormalsFace   = "face"
)

// DefaultChunkSize is the number of bytes read from a model file per parser call.
const DefaultChunkSize = formats.DefaultChunkSize

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds model loading and export settings.
type ConvertConfig struct {
	UpFrom    string `yaml:"up_from"`    // Source up axis (x, y, z or empty)
	UpTo      string `yaml:"up_to"`      // Target up axis
	Normals   string `yaml:"normals"`    // "", "vertex" or "face"
	ChunkSize int    `yaml:"chunk_size"` // Bytes per read
	Charset   string `yaml:"charset"`    // Text encoding label, empty for UTF-8
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Normals:   NormalsKeep,
			ChunkSize: DefaultChunkSize,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// UpConversion returns the configured up-axis conversion, or nil when neither
// axis is set.
func (c ConvertConfig) UpConversion() (*model.UpConversion, error) {
	if c.UpFrom == "" && c.UpTo == "" {
		return nil, nil
	}
	if c.UpFrom == "" || c.UpTo == "" {
		return nil, fmt.Errorf("up_from and up_to must be set together")
	}

	from, err := model.ParseAxis(c.UpFrom)
	if err != nil {
		return nil, fmt.Errorf("up_from: %w", err)
	}
	to, err := model.ParseAxis(c.UpTo)
	if err != nil {
		return nil, fmt.Errorf("up_to: %w", err)
	}

	conv := &model.UpConversion{From: from, To: to}
	if _, err := conv.Matrix(); err != nil {
		return nil, err
	}
	return conv, nil
}

// Encoding returns the configured text encoding, or nil for UTF-8.
func (c ConvertConfig) Encoding() (encoding.Encoding, error) {
	return charset.Lookup(c.Charset)
}

// Validate checks settings that cannot be expressed by the YAML types.
func (c *Config) Validate() error {
	switch c.Convert.Normals {
	case NormalsKeep, NormalsVertex, NormalsFace:
	default:
		return fmt.Errorf("normals: unknown mode %q", c.Convert.Normals)
	}
	if c.Convert.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.Convert.ChunkSize)
	}
	if _, err := c.Convert.UpConversion(); err != nil {
		return err
	}
	if _, err := c.Convert.Encoding(); err != nil {
		return fmt.Errorf("charset: %w", err)
	}
	return nil
}
