// Package config loads the layered configuration of the thaiseg command:
// defaults, an optional config file, environment variables with prefix
// THAISEG and command line flags, in ascending order of precedence.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the base name of the config file searched for in the working
// directory.
const FileName = "thaiseg"

type Config struct {
	Tokenize TokenizeConfig `mapstructure:"tokenize" yaml:"tokenize"`
	Attacut  AttacutConfig  `mapstructure:"attacut" yaml:"attacut"`
	Runtime  RuntimeConfig  `mapstructure:"runtime" yaml:"runtime"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Trace    TraceConfig    `mapstructure:"trace" yaml:"trace"`
	Files    FilesConfig    `mapstructure:"files" yaml:"files"`
}

type TokenizeConfig struct {
	Engine         string `mapstructure:"engine" yaml:"engine"`
	KeepWhitespace bool   `mapstructure:"keep_whitespace" yaml:"keep_whitespace"`
	Dictionary     string `mapstructure:"dictionary" yaml:"dictionary"`
}

type AttacutConfig struct {
	ModelDir  string  `mapstructure:"model_dir" yaml:"model_dir"`
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

type RuntimeConfig struct {
	ORTLibraryPath string `mapstructure:"ort_library_path" yaml:"ort_library_path"`
	APIVersion     uint32 `mapstructure:"api_version" yaml:"api_version"`
}

type CacheConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

type TraceConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type FilesConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type LoadOptions struct {
	Flags      *pflag.FlagSet
	ConfigFile string
	Defaults   Config
}

func DefaultConfig() Config {
	return Config{
		Tokenize: TokenizeConfig{
			Engine:         "newmm",
			KeepWhitespace: true,
		},
		Attacut: AttacutConfig{
			ModelDir:  "models/attacut",
			Threshold: 0.5,
		},
		Runtime: RuntimeConfig{
			APIVersion: 23,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Trace: TraceConfig{
			Level: "Error",
		},
		Files: FilesConfig{
			Workers: 4,
		},
	}
}

// flag name → config key
var flagKeys = map[string]string{
	"engine":          "tokenize.engine",
	"keep-whitespace": "tokenize.keep_whitespace",
	"dictionary":      "tokenize.dictionary",
	"model-dir":       "attacut.model_dir",
	"threshold":       "attacut.threshold",
	"ort-lib":         "runtime.ort_library_path",
	"ort-api-version": "runtime.api_version",
	"cache":           "cache.path",
	"format":          "output.format",
	"trace":           "trace.level",
	"workers":         "files.workers",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("engine", defaults.Tokenize.Engine, "Word segmentation engine")
	fs.Bool("keep-whitespace", defaults.Tokenize.KeepWhitespace, "Keep whitespace tokens")
	fs.String("dictionary", defaults.Tokenize.Dictionary, "Word list file, one word per line (default: built-in)")
	fs.String("model-dir", defaults.Attacut.ModelDir, "AttaCut model directory")
	fs.Float64("threshold", defaults.Attacut.Threshold, "AttaCut word start threshold")
	fs.String("ort-lib", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library")
	fs.Uint32("ort-api-version", defaults.Runtime.APIVersion, "ONNX Runtime C-API version")
	fs.String("cache", defaults.Cache.Path, "Token cache database (empty: no caching)")
	fs.String("format", defaults.Output.Format, "Output format: text, json or yaml")
	fs.String("trace", defaults.Trace.Level, "Trace level: Debug, Info or Error")
	fs.Int("workers", defaults.Files.Workers, "Number of concurrent workers for file processing")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix("THAISEG")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("runtime.ort_library_path", "THAISEG_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values which cannot be checked by decoding.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	if c.Files.Workers < 1 {
		return fmt.Errorf("invalid number of workers: %d", c.Files.Workers)
	}
	if c.Attacut.Threshold <= 0 || c.Attacut.Threshold >= 1 {
		return fmt.Errorf("attacut threshold out of range (0,1): %g", c.Attacut.Threshold)
	}
	return nil
}

// WriteYAML writes a configuration in the format of the config file.
func WriteYAML(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("tokenize.engine", c.Tokenize.Engine)
	v.SetDefault("tokenize.keep_whitespace", c.Tokenize.KeepWhitespace)
	v.SetDefault("tokenize.dictionary", c.Tokenize.Dictionary)
	v.SetDefault("attacut.model_dir", c.Attacut.ModelDir)
	v.SetDefault("attacut.threshold", c.Attacut.Threshold)
	v.SetDefault("runtime.ort_library_path", c.Runtime.ORTLibraryPath)
	v.SetDefault("runtime.api_version", c.Runtime.APIVersion)
	v.SetDefault("cache.path", c.Cache.Path)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("trace.level", c.Trace.Level)
	v.SetDefault("files.workers", c.Files.Workers)
}
